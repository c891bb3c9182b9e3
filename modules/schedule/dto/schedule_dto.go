package dto

type ScheduleRequest struct {
	Input string `json:"input"`
}

// EventCandidate is the unvalidated structured output of the language
// parser. Datetime is the model's yyyy-mm-ddTHH:MM:SS string; it has been
// checked to parse to a valid instant before the candidate leaves the parser.
type EventCandidate struct {
	Title    string `json:"title"`
	Datetime string `json:"datetime"`
}

type EventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

// CalendarEvent mirrors the provider's event resource. The provider owns the
// event once the insert returns; this is only the confirmation snapshot.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Summary  string    `json:"summary"`
	Start    EventTime `json:"start"`
	End      EventTime `json:"end"`
	Status   string    `json:"status,omitempty"`
	HTMLLink string    `json:"htmlLink,omitempty"`
}

type ScheduleResponse struct {
	Success bool           `json:"success"`
	Event   *CalendarEvent `json:"event"`
}

type EventListResponse struct {
	Events []CalendarEvent `json:"events"`
}
