package schedule

import (
	authRepository "scheduler-agent/modules/auth/repository"
	authService "scheduler-agent/modules/auth/service"
	"scheduler-agent/modules/schedule/controller"
	"scheduler-agent/modules/schedule/router"
	"scheduler-agent/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, secureCookies bool) {
	credentials := authRepository.NewCredentialRepository(secureCookies)
	authSvc := authService.NewAuthService()

	parser := service.NewParserService()
	calendar := service.NewCalendarService()
	scheduleSvc := service.NewScheduleService(parser, calendar, authSvc)

	ctrl := controller.NewScheduleController(scheduleSvc, calendar, credentials)
	router.NewScheduleRouter(ctrl).Setup(e)
}
