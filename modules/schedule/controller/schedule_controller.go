package controller

import (
	"net/http"

	"scheduler-agent/core/controller"
	"scheduler-agent/modules/auth/repository"
	"scheduler-agent/modules/schedule/dto"
	"scheduler-agent/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

const upcomingEventsLimit = 5

type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
	CalendarService service.CalendarServiceInterface
	Credentials     repository.CredentialRepository
}

func NewScheduleController(scheduleService service.ScheduleServiceInterface, calendarService service.CalendarServiceInterface, credentials repository.CredentialRepository) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: scheduleService,
		CalendarService: calendarService,
		Credentials:     credentials,
	}
}

// Schedule parses free text into an event and writes it to the user's
// calendar.
// POST /schedule
func (c *ScheduleController) Schedule(ctx echo.Context) error {
	requestData := new(dto.ScheduleRequest)
	if err := ctx.Bind(requestData); err != nil {
		return c.BadRequest(ctx, "Invalid request data")
	}
	if requestData.Input == "" {
		return c.BadRequest(ctx, "Missing input")
	}

	cred := c.Credentials.Read(ctx)
	if cred == nil {
		return c.Unauthorized(ctx, "Not authenticated")
	}

	event, refreshed, appErr := c.ScheduleService.Schedule(ctx.Request().Context(), cred, requestData.Input)
	if refreshed != nil {
		// A refresh replaces the credential; persist the new pair even
		// when a later step failed.
		c.Credentials.Write(ctx, refreshed)
	}
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.ScheduleResponse{Success: true, Event: event})
}

// ListEvents returns the next few events from the user's primary calendar.
// GET /calendar/events
func (c *ScheduleController) ListEvents(ctx echo.Context) error {
	cred := c.Credentials.Read(ctx)
	if cred == nil {
		return c.Unauthorized(ctx, "Not authenticated")
	}

	events, appErr := c.CalendarService.ListUpcomingEvents(ctx.Request().Context(), cred, upcomingEventsLimit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.EventListResponse{Events: events})
}
