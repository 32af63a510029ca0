// Package camera provides the webcam frame source for the proctoring
// pipeline. The gaze engine never imports this package; it only sees
// the frames the main loop hands it.
package camera

import "fmt"

// Config holds capture configuration.
type Config struct {
	DeviceID  int // V4L2 / AVFoundation device index
	Width     int
	Height    int
	Framerate int
	Quality   int // JPEG quality for dashboard frames (1-100)
}

// DefaultConfig returns the standard proctoring capture settings.
func DefaultConfig() Config {
	return Config{
		DeviceID:  0,
		Width:     640,
		Height:    480,
		Framerate: 30,
		Quality:   80,
	}
}

// Validate returns a list of problems with the configuration.
func (c Config) Validate() []string {
	var errors []string
	if c.Width <= 0 || c.Height <= 0 {
		errors = append(errors, fmt.Sprintf("invalid resolution %dx%d", c.Width, c.Height))
	}
	if c.Framerate <= 0 {
		errors = append(errors, fmt.Sprintf("invalid framerate %d", c.Framerate))
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, fmt.Sprintf("invalid JPEG quality %d", c.Quality))
	}
	return errors
}
