package router

import (
	"scheduler-agent/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Setup(e *echo.Echo) {
	auth := e.Group("/auth")
	auth.GET("/url", r.controller.GetAuthURL)
	auth.GET("/callback", r.controller.GoogleCallback)
	auth.GET("/session", r.controller.Session)
	auth.POST("/logout", r.controller.Logout)
}
