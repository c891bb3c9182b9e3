package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"scheduler-agent/core/config"
	"scheduler-agent/core/logger"
	"scheduler-agent/core/utils"
	"scheduler-agent/modules/auth"
	"scheduler-agent/modules/schedule"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger())

	// Secure cookies only make sense when the OAuth redirect is HTTPS;
	// local development runs over plain HTTP.
	secureCookies := strings.HasPrefix(cfg.GoogleAPI.RedirectURI, "https://")

	auth.Init(e, secureCookies)
	schedule.Init(e, secureCookies)

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Server:Starting", "addr", addr)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("Server:Stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(ctx)
}

// requestLogger tags every request with a short ID and logs method, path,
// status and latency.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := utils.GenerateRequestID()
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)

			logger.Info("Server:Request",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency", time.Since(start),
			)
			return err
		}
	}
}
