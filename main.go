package main

import (
	"scheduler-agent/core/logger"
	"scheduler-agent/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
