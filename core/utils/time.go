package utils

import "time"

// eventDateTimeLayout is the wire form the parser instructs the model to emit.
const eventDateTimeLayout = "2006-01-02T15:04:05"

// ParseEventDateTime parses a candidate datetime. The model is told to emit
// yyyy-mm-ddTHH:MM:SS without a zone; some models append one anyway, so
// RFC 3339 is accepted too. Both the parser's validation and the calendar
// writer's end-time computation go through here so an accepted datetime
// always round-trips to the same instant.
func ParseEventDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(eventDateTimeLayout, value, time.Local)
}
