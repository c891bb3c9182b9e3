package controller

import (
	"net/http"

	"scheduler-agent/core/errors"
	"scheduler-agent/core/logger"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of every failure response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type BaseController interface {
	BadRequest(c echo.Context, message string) error
	Unauthorized(c echo.Context, message string) error
	InternalServerError(c echo.Context, message string, details string) error
	ErrorResponse(c echo.Context, err *errors.AppError) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func statusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrMissingCode, errors.ErrMissingInput, errors.ErrInvalidRequestData:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrNotFound:
		return http.StatusNotFound
	default:
		// ErrConfig, ErrTokenExchange, ErrLLMParse, ErrCalendarAPI,
		// ErrInternalServer
		return http.StatusInternalServerError
	}
}

func (h *responseHandler) BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

func (h *responseHandler) Unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorBody{Error: message})
}

func (h *responseHandler) InternalServerError(c echo.Context, message string, details string) error {
	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: message, Details: details})
}

// ErrorResponse converts an AppError into the boundary JSON body. The message
// is caller-safe; the wrapped cause travels in details for operators.
func (h *responseHandler) ErrorResponse(c echo.Context, err *errors.AppError) error {
	status := http.StatusInternalServerError
	code := errors.ErrInternalServer
	body := ErrorBody{Error: "internal server error"}

	if err != nil {
		status = statusForCode(err.Code)
		code = err.Code
		body.Error = err.Message
		body.Details = err.Details()
	}

	logger.Error("BaseController:ErrorResponse",
		"status", status,
		"code", code,
		"message", body.Error,
	)
	return c.JSON(status, body)
}
