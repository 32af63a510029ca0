// Proctor runs the full monitoring pipeline: webcam capture, landmark
// extraction via the configured sidecar, gaze/attention inference, and
// the live dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/proctorsight/go-proctor/internal/config"
	"github.com/proctorsight/go-proctor/internal/log"
	"github.com/proctorsight/go-proctor/pkg/camera"
	"github.com/proctorsight/go-proctor/pkg/gaze"
	"github.com/proctorsight/go-proctor/pkg/landmarks"
	"github.com/proctorsight/go-proctor/pkg/session"
	"github.com/proctorsight/go-proctor/pkg/web"
)

func main() {
	log.Init(config.LogLevel())

	fmt.Println("👁  ProctorSight")
	fmt.Println("================")

	// Handle Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.CameraDevice()
	cam, err := camera.Open(camCfg)
	if err != nil {
		log.Error("open camera", "error", err)
		os.Exit(1)
	}
	defer cam.Close()
	fmt.Printf("Camera: device %d @ %dx%d\n", camCfg.DeviceID, camCfg.Width, camCfg.Height)

	var provider landmarks.Provider
	if url := config.LandmarkServiceURL(); url != "" {
		provider, err = landmarks.NewRemote(landmarks.RemoteConfig{URL: url})
		if err != nil {
			log.Error("create landmark provider", "error", err)
			os.Exit(1)
		}
		defer provider.Close()
		fmt.Printf("Landmarks: sidecar %s\n", url)
	} else {
		fmt.Println("Landmarks: none configured (set LANDMARK_WS_URL); camera preview only")
	}

	proc := gaze.NewProcessor(gaze.DefaultConfig())
	rec := session.NewRecorder()
	fmt.Printf("Session: %s\n", rec.ID())

	var uplink *session.Uplink
	if url := config.UplinkURL(); url != "" {
		uplink = session.NewUplink(url)
		go uplink.Run(ctx)
		fmt.Printf("Uplink: %s\n", url)
	}

	// The engine is single-threaded; everything that touches it (the
	// frame loop, summary reads, calibration commits) goes through
	// this mutex.
	var engineMu sync.Mutex
	var calibrateRequested atomic.Bool

	srv := web.NewServer(config.HTTPPort())
	srv.EngineConfig = proc.Config()
	srv.OnCalibrate = func() { calibrateRequested.Store(true) }
	srv.OnSummary = func() gaze.Summary {
		engineMu.Lock()
		defer engineMu.Unlock()
		return proc.Summary()
	}
	srv.OnReport = rec.Report

	go func() {
		if err := srv.Run(); err != nil {
			log.Error("dashboard server", "error", err)
			cancel()
		}
	}()
	defer srv.Shutdown()

	fmt.Printf("Dashboard: http://localhost:%s\n\n", config.HTTPPort())

	runLoop(ctx, cam, provider, proc, rec, srv, uplink, &engineMu, &calibrateRequested)

	report := rec.Report()
	log.Info("session finished",
		"session", report.SessionID,
		"frames", report.Frames,
		"mean_attention", fmt.Sprintf("%.1f", report.MeanAttention),
		"violations", len(report.Violations))
}

// runLoop drives the per-frame pipeline at camera cadence until the
// context is cancelled.
func runLoop(
	ctx context.Context,
	cam *camera.Capture,
	provider landmarks.Provider,
	proc *gaze.Processor,
	rec *session.Recorder,
	srv *web.Server,
	uplink *session.Uplink,
	engineMu *sync.Mutex,
	calibrateRequested *atomic.Bool,
) {
	interval := time.Second / time.Duration(cam.Config().Framerate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frame := gocv.NewMat()
	defer frame.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := cam.Read(&frame); err != nil {
			log.Warn("frame capture failed", "error", err)
			continue
		}

		if jpeg, err := cam.EncodeJPEG(frame); err == nil {
			srv.PublishFrame(jpeg)
		}

		if provider == nil {
			continue
		}

		set, ok, err := provider.Detect(frame)
		if err != nil {
			log.Warn("landmark detection failed", "error", err)
			continue
		}
		if !ok {
			continue // No face this frame
		}

		engineMu.Lock()
		if calibrateRequested.Swap(false) {
			center := proc.CalibrateCenter()
			log.Info("gaze calibrated", "center_x", center.X, "center_y", center.Y)
		}
		res := proc.ProcessFrame(set, frame)
		engineMu.Unlock()

		srv.PublishMetrics(res)
		for _, v := range rec.Observe(res) {
			log.Warn("violation", "kind", v.Kind, "detail", v.Detail, "score", v.Score)
			srv.PublishAlert(rec.ID(), v)
			if uplink != nil {
				uplink.SendAlert(rec.ID(), v)
			}
		}
	}
}
