package errors

import "fmt"

type ErrorCode string

const (
	ErrConfig             ErrorCode = "CONFIG_ERROR"
	ErrMissingCode        ErrorCode = "MISSING_CODE"
	ErrMissingInput       ErrorCode = "MISSING_INPUT"
	ErrInvalidRequestData ErrorCode = "INVALID_REQUEST_DATA"
	ErrTokenExchange      ErrorCode = "TOKEN_EXCHANGE_FAILED"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrLLMParse           ErrorCode = "LLM_PARSE_FAILED"
	ErrCalendarAPI        ErrorCode = "CALENDAR_API_ERROR"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrInternalServer     ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is the error type services return. Message is safe to show to
// callers; Err carries diagnostics (provider bodies, wrapped causes).
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Details returns the diagnostic string attached to the error, if any.
func (e *AppError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
