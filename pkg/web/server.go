// Package web provides the real-time proctoring dashboard: REST
// endpoints for session state and calibration, plus websocket streams
// for per-frame metrics, alerts, and the camera preview.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/proctorsight/go-proctor/internal/log"
	"github.com/proctorsight/go-proctor/pkg/gaze"
	"github.com/proctorsight/go-proctor/pkg/hub"
	"github.com/proctorsight/go-proctor/pkg/protocol"
	"github.com/proctorsight/go-proctor/pkg/session"
)

// Server is the dashboard web server.
//
// Calibration does not touch the engine from the request handler: the
// engine is single-threaded, so POST /api/calibrate only invokes
// OnCalibrate, which owners implement as "set a flag the frame loop
// drains between frames".
type Server struct {
	app  *fiber.App
	port string

	// Hubs for websocket broadcast
	metricsHub *hub.Hub
	alertsHub  *hub.Hub
	cameraHub  *hub.Hub

	// Wiring, set before Run
	OnSummary   func() gaze.Summary
	OnReport    func() session.Report
	OnCalibrate func()

	// EngineConfig is served read-only on /api/config.
	EngineConfig gaze.Config
}

// NewServer creates the dashboard server.
func NewServer(port string) *Server {
	s := &Server{
		port:       port,
		metricsHub: hub.New("metrics"),
		alertsHub:  hub.New("alerts"),
		cameraHub:  hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "ProctorSight Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	s.app = app
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/summary", s.handleSummary)
	api.Get("/report", s.handleReport)
	api.Get("/config", s.handleConfig)
	api.Post("/calibrate", s.handleCalibrate)

	// Websocket upgrade middleware
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	s.app.Get("/ws/metrics", websocket.New(streamHandler(s.metricsHub)))
	s.app.Get("/ws/alerts", websocket.New(streamHandler(s.alertsHub)))
	s.app.Get("/ws/camera", websocket.New(streamHandler(s.cameraHub)))
}

// streamHandler attaches a websocket connection to a broadcast hub.
func streamHandler(h *hub.Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		client := hub.NewClient(h, conn)
		go client.WritePump()
		client.ReadPump() // Blocks until the connection closes
	}
}

// Run starts the hubs and serves until the listener fails.
func (s *Server) Run() error {
	go s.metricsHub.Run()
	go s.alertsHub.Run()
	go s.cameraHub.Run()

	log.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// PublishMetrics broadcasts one frame result to metric stream clients.
func (s *Server) PublishMetrics(res gaze.FrameResult) {
	if s.metricsHub.ClientCount() == 0 {
		return
	}
	msg, err := protocol.NewMessage(protocol.TypeMetrics, res)
	if err != nil {
		log.Error("encode metrics message", "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		log.Error("encode metrics message", "error", err)
		return
	}
	s.metricsHub.Broadcast(hub.NewJSONMessage(data))
}

// PublishAlert broadcasts a violation to alert stream clients.
func (s *Server) PublishAlert(sessionID string, v session.Violation) {
	msg, err := protocol.NewMessage(protocol.TypeAlert, protocol.AlertData{
		SessionID: sessionID,
		Kind:      v.Kind,
		Detail:    v.Detail,
		Score:     v.Score,
	})
	if err != nil {
		log.Error("encode alert message", "error", err)
		return
	}
	data, err := msg.Bytes()
	if err != nil {
		log.Error("encode alert message", "error", err)
		return
	}
	s.alertsHub.Broadcast(hub.NewJSONMessage(data))
}

// PublishFrame broadcasts a JPEG preview frame to camera stream clients.
func (s *Server) PublishFrame(jpeg []byte) {
	if s.cameraHub.ClientCount() == 0 {
		return
	}
	s.cameraHub.Broadcast(hub.NewBinaryMessage(jpeg))
}
