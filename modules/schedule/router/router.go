package router

import (
	"scheduler-agent/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	controller *controller.ScheduleController
}

func NewScheduleRouter(controller *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{controller: controller}
}

func (r *ScheduleRouter) Setup(e *echo.Echo) {
	e.GET("/", r.controller.IndexPage)
	e.POST("/schedule", r.controller.Schedule)
	e.GET("/calendar/events", r.controller.ListEvents)
}
