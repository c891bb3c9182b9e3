package mapper

import (
	"time"

	"scheduler-agent/modules/schedule/dto"
)

// ToInsertPayload builds the calendar insert body for a validated candidate.
func ToInsertPayload(candidate *dto.EventCandidate, start, end time.Time) map[string]any {
	return map[string]any{
		"summary": candidate.Title,
		"start": map[string]string{
			"dateTime": start.Format(time.RFC3339),
		},
		"end": map[string]string{
			"dateTime": end.Format(time.RFC3339),
		},
	}
}
