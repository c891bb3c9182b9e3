package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scheduler-agent/core/constants"
	"scheduler-agent/core/errors"
	"scheduler-agent/core/logger"
	"scheduler-agent/core/utils"
	"scheduler-agent/modules/auth/entity"
	authService "scheduler-agent/modules/auth/service"
	"scheduler-agent/modules/schedule/dto"
	"scheduler-agent/modules/schedule/mapper"
)

const googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"

type CalendarServiceInterface interface {
	CreateEvent(ctx context.Context, cred *entity.Credential, candidate *dto.EventCandidate) (*dto.CalendarEvent, *errors.AppError)
	ListUpcomingEvents(ctx context.Context, cred *entity.Credential, maxResults int) ([]dto.CalendarEvent, *errors.AppError)
}

// CalendarService is a plain protocol client against the provider's events
// API. It never refreshes tokens: an expired token surfaces as a provider
// 401 and refresh stays the orchestrator's concern.
type CalendarService struct {
	apiBase string
	client  *http.Client
}

func NewCalendarService() *CalendarService {
	return &CalendarService{
		apiBase: googleCalendarAPIBase,
		client:  &http.Client{Timeout: constants.DefaultTimeout},
	}
}

// NewCalendarServiceWithBase points the client at a non-Google API base.
// Used by tests.
func NewCalendarServiceWithBase(apiBase string) *CalendarService {
	return &CalendarService{
		apiBase: apiBase,
		client:  &http.Client{Timeout: constants.DefaultTimeout},
	}
}

// CreateEvent inserts a one-hour event on the primary calendar. Retried
// calls with the same candidate create duplicate events: no idempotency key
// is supplied, resubmission is the caller's decision and its risk.
func (service *CalendarService) CreateEvent(ctx context.Context, cred *entity.Credential, candidate *dto.EventCandidate) (*dto.CalendarEvent, *errors.AppError) {
	if !authService.IsAuthenticated(cred) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	start, err := utils.ParseEventDateTime(candidate.Datetime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrLLMParse, "candidate datetime is not a valid instant", err)
	}
	end := start.Add(constants.EventDuration)

	payload, err := json.Marshal(mapper.ToInsertPayload(candidate, start, end))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to encode event payload", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	insertURL := service.apiBase + "/calendars/primary/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, insertURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := service.client.Do(req)
	if err != nil {
		logger.Error("CalendarService:CreateEvent:DoRequest:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrCalendarAPI, "Failed to create event", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:CreateEvent:APIError", "status", resp.StatusCode, "body", string(body))
		return nil, errors.NewAppError(errors.ErrCalendarAPI, "Google Calendar API error",
			fmt.Errorf("provider response %d: %s", resp.StatusCode, string(body)))
	}

	var event dto.CalendarEvent
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, errors.NewAppError(errors.ErrCalendarAPI, "failed to parse provider response", err)
	}

	logger.Info("CalendarService:CreateEvent:Success", "event_id", event.ID, "start", event.Start.DateTime)
	return &event, nil
}

// ListUpcomingEvents returns the next maxResults events from the primary
// calendar.
func (service *CalendarService) ListUpcomingEvents(ctx context.Context, cred *entity.Credential, maxResults int) ([]dto.CalendarEvent, *errors.AppError) {
	if !authService.IsAuthenticated(cred) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	params := url.Values{}
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("orderBy", "startTime")
	params.Set("singleEvents", "true")
	params.Set("timeMin", time.Now().Format(time.RFC3339))

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	listURL := service.apiBase + "/calendars/primary/events?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)

	resp, err := service.client.Do(req)
	if err != nil {
		logger.Error("CalendarService:ListUpcomingEvents:DoRequest:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrCalendarAPI, "Failed to fetch calendar events", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("CalendarService:ListUpcomingEvents:APIError", "status", resp.StatusCode, "body", string(body))
		return nil, errors.NewAppError(errors.ErrCalendarAPI, "Google Calendar API error",
			fmt.Errorf("provider response %d: %s", resp.StatusCode, string(body)))
	}

	var listResponse struct {
		Items []dto.CalendarEvent `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResponse); err != nil {
		return nil, errors.NewAppError(errors.ErrCalendarAPI, "failed to parse provider response", err)
	}

	return listResponse.Items, nil
}
