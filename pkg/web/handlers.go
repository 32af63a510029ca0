package web

import "github.com/gofiber/fiber/v2"

// handleState reports liveness and stream client counts.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics_clients": s.metricsHub.ClientCount(),
		"alerts_clients":  s.alertsHub.ClientCount(),
		"camera_clients":  s.cameraHub.ClientCount(),
	})
}

// handleSummary serves the engine's session summary snapshot.
func (s *Server) handleSummary(c *fiber.Ctx) error {
	if s.OnSummary == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "engine not wired")
	}
	return c.JSON(s.OnSummary())
}

// handleReport serves the session recorder's report.
func (s *Server) handleReport(c *fiber.Ctx) error {
	if s.OnReport == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "session not wired")
	}
	return c.JSON(s.OnReport())
}

// handleConfig serves the engine configuration, read-only.
func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(s.EngineConfig)
}

// handleCalibrate requests a calibration commit. The commit itself
// happens on the frame loop between frames.
func (s *Server) handleCalibrate(c *fiber.Ctx) error {
	if s.OnCalibrate == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "engine not wired")
	}
	s.OnCalibrate()
	return c.JSON(fiber.Map{"status": "queued"})
}
