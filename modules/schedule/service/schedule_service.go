package service

import (
	"context"
	"time"

	"scheduler-agent/core/constants"
	"scheduler-agent/core/errors"
	"scheduler-agent/core/logger"
	"scheduler-agent/modules/auth/entity"
	authService "scheduler-agent/modules/auth/service"
	"scheduler-agent/modules/schedule/dto"
)

type ScheduleServiceInterface interface {
	Schedule(ctx context.Context, cred *entity.Credential, input string) (*dto.CalendarEvent, *entity.Credential, *errors.AppError)
}

// ScheduleService sequences parse -> validate -> write for one request. It
// holds no state between calls; failure at any step aborts the operation
// with no partial calendar write.
type ScheduleService struct {
	parser   ParserServiceInterface
	calendar CalendarServiceInterface
	auth     authService.AuthServiceInterface
	now      func() time.Time
}

func NewScheduleService(parser ParserServiceInterface, calendar CalendarServiceInterface, auth authService.AuthServiceInterface) *ScheduleService {
	return &ScheduleService{
		parser:   parser,
		calendar: calendar,
		auth:     auth,
		now:      time.Now,
	}
}

// Schedule turns free text into a created calendar event. The second return
// value is the replacement credential when a synchronous refresh happened,
// nil otherwise; the HTTP layer persists it back to the cookie jar.
func (service *ScheduleService) Schedule(ctx context.Context, cred *entity.Credential, input string) (*dto.CalendarEvent, *entity.Credential, *errors.AppError) {
	if !authService.IsAuthenticated(cred) {
		return nil, nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	active := cred
	var refreshed *entity.Credential

	// Expiry is judged by wall clock against the credential's ExpiresAt.
	// Credentials read from cookies carry no expiry and are used as-is.
	if cred.Expired(service.now(), constants.TokenExpirySkew) && cred.RefreshToken != "" {
		logger.Info("ScheduleService:Schedule:RefreshingToken")
		newCred, appErr := service.auth.RefreshCredential(ctx, cred)
		if appErr != nil {
			return nil, nil, appErr
		}
		active = newCred
		refreshed = newCred
	}

	candidate, appErr := service.parser.Parse(ctx, input, service.now())
	if appErr != nil {
		return nil, refreshed, appErr
	}

	event, appErr := service.calendar.CreateEvent(ctx, active, candidate)
	if appErr != nil {
		return nil, refreshed, appErr
	}

	return event, refreshed, nil
}
