// Package config provides configuration helpers for go-proctor commands.
package config

import (
	"os"
	"strconv"
)

// Default process configuration.
const (
	DefaultHTTPPort     = "8090"
	DefaultCameraDevice = 0
)

// LogLevel returns the log level from LOG_LEVEL env var.
// Falls back to "info" if not set.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// HTTPPort returns the dashboard port from HTTP_PORT env var or default.
func HTTPPort() string {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		return port
	}
	return DefaultHTTPPort
}

// CameraDevice returns the capture device index from CAMERA_DEVICE env var.
// Falls back to device 0 if not set or not a number.
func CameraDevice() int {
	if dev := os.Getenv("CAMERA_DEVICE"); dev != "" {
		if n, err := strconv.Atoi(dev); err == nil {
			return n
		}
	}
	return DefaultCameraDevice
}

// LandmarkServiceURL returns the websocket URL of the landmark sidecar
// from LANDMARK_WS_URL env var. Empty means no provider is configured.
func LandmarkServiceURL() string {
	return os.Getenv("LANDMARK_WS_URL")
}

// UplinkURL returns the review-server websocket URL from UPLINK_WS_URL
// env var. Empty disables the uplink.
func UplinkURL() string {
	return os.Getenv("UPLINK_WS_URL")
}
