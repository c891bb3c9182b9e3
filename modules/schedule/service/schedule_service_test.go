package service

import (
	"context"
	"testing"
	"time"

	"scheduler-agent/core/errors"
	"scheduler-agent/modules/auth/entity"
	"scheduler-agent/modules/schedule/dto"
)

type spyParser struct {
	calls     int
	sawText   string
	sawRef    time.Time
	candidate *dto.EventCandidate
	err       *errors.AppError
}

func (s *spyParser) Parse(ctx context.Context, freeText string, referenceDate time.Time) (*dto.EventCandidate, *errors.AppError) {
	s.calls++
	s.sawText = freeText
	s.sawRef = referenceDate
	return s.candidate, s.err
}

type spyCalendar struct {
	calls   int
	sawCred *entity.Credential
	event   *dto.CalendarEvent
	err     *errors.AppError
}

func (s *spyCalendar) CreateEvent(ctx context.Context, cred *entity.Credential, candidate *dto.EventCandidate) (*dto.CalendarEvent, *errors.AppError) {
	s.calls++
	s.sawCred = cred
	return s.event, s.err
}

func (s *spyCalendar) ListUpcomingEvents(ctx context.Context, cred *entity.Credential, maxResults int) ([]dto.CalendarEvent, *errors.AppError) {
	return nil, nil
}

type spyAuth struct {
	refreshCalls int
	refreshed    *entity.Credential
	err          *errors.AppError
}

func (s *spyAuth) BuildConsentURL() (string, *errors.AppError) {
	return "", nil
}

func (s *spyAuth) ExchangeCode(ctx context.Context, code string) (*entity.Credential, *errors.AppError) {
	return nil, nil
}

func (s *spyAuth) RefreshCredential(ctx context.Context, cred *entity.Credential) (*entity.Credential, *errors.AppError) {
	s.refreshCalls++
	return s.refreshed, s.err
}

func newScheduleFixture(parser *spyParser, calendar *spyCalendar, auth *spyAuth) *ScheduleService {
	service := NewScheduleService(parser, calendar, auth)
	service.now = func() time.Time {
		return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	}
	return service
}

func TestScheduleUnauthenticated(t *testing.T) {
	parser := &spyParser{}
	calendar := &spyCalendar{}
	auth := &spyAuth{}
	service := newScheduleFixture(parser, calendar, auth)

	_, _, appErr := service.Schedule(context.Background(), nil, "Call Jack tomorrow")
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrUnauthorized {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrUnauthorized)
	}
	if parser.calls != 0 || calendar.calls != 0 || auth.refreshCalls != 0 {
		t.Errorf("downstream called on unauthenticated request: parser=%d calendar=%d refresh=%d",
			parser.calls, calendar.calls, auth.refreshCalls)
	}
}

func TestScheduleSuccess(t *testing.T) {
	cred := &entity.Credential{AccessToken: "access-1"}
	want := &dto.CalendarEvent{ID: "evt-1", Summary: "Call Jack"}
	parser := &spyParser{candidate: &dto.EventCandidate{Title: "Call Jack", Datetime: "2024-06-13T15:00:00"}}
	calendar := &spyCalendar{event: want}
	auth := &spyAuth{}
	service := newScheduleFixture(parser, calendar, auth)

	event, refreshed, appErr := service.Schedule(context.Background(), cred, "Call Jack next Thursday at 3pm")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if event != want {
		t.Errorf("event = %+v", event)
	}
	if refreshed != nil {
		t.Errorf("refreshed = %+v, want nil", refreshed)
	}
	if auth.refreshCalls != 0 {
		t.Errorf("refresh called %d times for a credential without expiry", auth.refreshCalls)
	}
	if parser.sawText != "Call Jack next Thursday at 3pm" {
		t.Errorf("parser input = %q", parser.sawText)
	}
	if got := parser.sawRef.Format("2006-01-02"); got != "2024-06-10" {
		t.Errorf("parser reference date = %s", got)
	}
	if calendar.sawCred != cred {
		t.Errorf("calendar got credential %+v", calendar.sawCred)
	}
}

func TestScheduleRefreshesExpiredCredential(t *testing.T) {
	expired := &entity.Credential{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
	}
	fresh := &entity.Credential{
		AccessToken:  "fresh",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC),
	}
	parser := &spyParser{candidate: &dto.EventCandidate{Title: "Call Jack", Datetime: "2024-06-13T15:00:00"}}
	calendar := &spyCalendar{event: &dto.CalendarEvent{ID: "evt-1"}}
	auth := &spyAuth{refreshed: fresh}
	service := newScheduleFixture(parser, calendar, auth)

	_, refreshed, appErr := service.Schedule(context.Background(), expired, "Call Jack next Thursday at 3pm")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if auth.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", auth.refreshCalls)
	}
	if refreshed != fresh {
		t.Errorf("refreshed = %+v, want the replacement credential", refreshed)
	}
	if calendar.sawCred != fresh {
		t.Errorf("calendar used %+v, want the refreshed credential", calendar.sawCred)
	}
}

func TestScheduleExpiredWithoutRefreshToken(t *testing.T) {
	// No refresh token means no synchronous refresh: the stale token is
	// used as-is and the provider decides.
	expired := &entity.Credential{
		AccessToken: "stale",
		ExpiresAt:   time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
	}
	parser := &spyParser{candidate: &dto.EventCandidate{Title: "Call Jack", Datetime: "2024-06-13T15:00:00"}}
	calendar := &spyCalendar{event: &dto.CalendarEvent{ID: "evt-1"}}
	auth := &spyAuth{}
	service := newScheduleFixture(parser, calendar, auth)

	_, refreshed, appErr := service.Schedule(context.Background(), expired, "Call Jack next Thursday at 3pm")
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if auth.refreshCalls != 0 {
		t.Errorf("refresh called %d times, want 0", auth.refreshCalls)
	}
	if refreshed != nil {
		t.Errorf("refreshed = %+v, want nil", refreshed)
	}
	if calendar.sawCred != expired {
		t.Errorf("calendar used %+v, want the original credential", calendar.sawCred)
	}
}

func TestScheduleParseFailureSkipsWrite(t *testing.T) {
	cred := &entity.Credential{AccessToken: "access-1"}
	parser := &spyParser{err: errors.NewAppError(errors.ErrLLMParse, "No JSON found in model response", nil)}
	calendar := &spyCalendar{}
	service := newScheduleFixture(parser, calendar, &spyAuth{})

	_, _, appErr := service.Schedule(context.Background(), cred, "gibberish")
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrLLMParse {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrLLMParse)
	}
	if calendar.calls != 0 {
		t.Errorf("calendar called %d times after a parse failure", calendar.calls)
	}
}

func TestScheduleRefreshFailure(t *testing.T) {
	expired := &entity.Credential{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
	}
	parser := &spyParser{}
	calendar := &spyCalendar{}
	auth := &spyAuth{err: errors.NewAppError(errors.ErrUnauthorized, "token refresh failed", nil)}
	service := newScheduleFixture(parser, calendar, auth)

	_, _, appErr := service.Schedule(context.Background(), expired, "Call Jack tomorrow")
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrUnauthorized {
		t.Errorf("code = %s, want %s", appErr.Code, errors.ErrUnauthorized)
	}
	if parser.calls != 0 || calendar.calls != 0 {
		t.Errorf("downstream called after a failed refresh: parser=%d calendar=%d", parser.calls, calendar.calls)
	}
}
