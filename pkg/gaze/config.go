package gaze

// Config holds all tunable parameters for the gaze engine.
// All values are fixed at construction; the engine never mutates them.
type Config struct {
	// Blink detection
	EARThreshold float64 // EAR below this counts as a closed-eye sample
	BlinkFrames  int     // Consecutive low samples required to confirm a blink

	// Movement
	MovementThreshold float64 // Pixel displacement considered significant per frame

	// Look-away decision (deviation from the calibrated center)
	LookAwayX float64 // Horizontal tolerance, in normalized gaze units
	LookAwayY float64 // Vertical tolerance (tighter than horizontal)

	// GazeBounds are the directional limits attached to the calibration
	// reference and reported with it.
	GazeBounds Bounds

	// History windows, in samples (~30 fps)
	EARHistorySize      int // 1 second
	GazeHistorySize     int // 2 seconds
	MovementHistorySize int // 3 seconds

	// Eye region extraction
	RegionPadX int // Horizontal bbox padding in pixels
	RegionPadY int // Vertical bbox padding in pixels

	// Pupil search
	PupilMinRadius int     // Hough circle minimum radius (pixels)
	PupilMaxRadius int     // Hough circle maximum radius (pixels)
	MinContourArea float64 // Smallest contour accepted by the fallback path
}

// DefaultConfig returns the recommended configuration for webcam proctoring
// at 640x480 / 30 fps.
func DefaultConfig() Config {
	return Config{
		EARThreshold: 0.25,
		BlinkFrames:  3,

		MovementThreshold: 10,

		LookAwayX: 40,
		LookAwayY: 30,

		GazeBounds: Bounds{Left: -50, Right: 50, Up: -30, Down: 30},

		EARHistorySize:      30,
		GazeHistorySize:     60,
		MovementHistorySize: 90,

		RegionPadX: 10,
		RegionPadY: 5,

		PupilMinRadius: 5,
		PupilMaxRadius: 25,
		MinContourArea: 20,
	}
}

// StrictConfig returns a configuration that flags earlier, for
// high-stakes sessions.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.LookAwayX = 30
	cfg.LookAwayY = 22
	cfg.MovementThreshold = 8
	return cfg
}

// RelaxedConfig returns a configuration tolerant of restless candidates
// and poor lighting.
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.LookAwayX = 55
	cfg.LookAwayY = 40
	cfg.MovementThreshold = 14
	cfg.BlinkFrames = 4
	return cfg
}
