package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateRequestID returns a short ID used to correlate log lines for one
// request.
func GenerateRequestID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 12)
	if err != nil {
		return "unknown"
	}
	return id
}
