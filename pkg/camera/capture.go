package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Capture wraps a gocv video capture device. It is not safe for
// concurrent use; the frame loop owns it.
type Capture struct {
	cfg Config
	cap *gocv.VideoCapture
}

// Open opens the configured capture device and applies the resolution
// and framerate settings.
func Open(cfg Config) (*Capture, error) {
	if errors := cfg.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("camera: validation failed: %v", errors)
	}

	cap, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", cfg.DeviceID, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	return &Capture{cfg: cfg, cap: cap}, nil
}

// Config returns the capture configuration.
func (c *Capture) Config() Config {
	return c.cfg
}

// Read grabs the next frame into dst. Returns an error when the device
// yields no frame (disconnected or end of stream).
func (c *Capture) Read(dst *gocv.Mat) error {
	if ok := c.cap.Read(dst); !ok {
		return fmt.Errorf("camera: device %d returned no frame", c.cfg.DeviceID)
	}
	if dst.Empty() {
		return fmt.Errorf("camera: device %d returned empty frame", c.cfg.DeviceID)
	}
	return nil
}

// EncodeJPEG encodes a frame for the dashboard camera stream.
func (c *Capture) EncodeJPEG(frame gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, frame,
		[]int{gocv.IMWriteJpegQuality, c.cfg.Quality})
	if err != nil {
		return nil, fmt.Errorf("camera: encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the capture device.
func (c *Capture) Close() error {
	return c.cap.Close()
}
