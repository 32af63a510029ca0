package gaze

import "math"

// Bounds are the directional gaze limits carried with the calibration
// reference, in normalized gaze units.
type Bounds struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
	Up    float64 `json:"up"`
	Down  float64 `json:"down"`
}

// Reference is a snapshot of the calibration state.
type Reference struct {
	Calibrated bool   `json:"calibrated"`
	Center     Vector `json:"center"`
	Bounds     Bounds `json:"bounds"`
}

// GazeEstimator turns per-eye pupil positions into normalized gaze
// vectors and decides look-away against a calibrated reference.
//
// The reference starts uncalibrated: before the first Calibrate call,
// IsLookingAway always returns false. Calibrate may be called again at
// any point; the last committed vector wins and the reference never
// auto-resets.
type GazeEstimator struct {
	cfg Config

	calibrated  bool
	center      Vector
	bounds      Bounds
	lookingAway bool
}

// NewGazeEstimator creates an uncalibrated estimator.
func NewGazeEstimator(cfg Config) *GazeEstimator {
	return &GazeEstimator{cfg: cfg, bounds: cfg.GazeBounds}
}

// Direction computes the gaze vector for one eye: pupil displacement
// from the eye's mean landmark center, normalized by the eye's pixel
// width/height and scaled by 100 so the signal is invariant to face
// size and camera distance. Returns the zero vector when the pupil is
// absent or the landmarks are empty or degenerate.
func (e *GazeEstimator) Direction(eyeLandmarks []Pixel, pupil Pupil) Vector {
	if !pupil.Found || len(eyeLandmarks) == 0 {
		return Vector{}
	}

	sumX, sumY := 0.0, 0.0
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range eyeLandmarks {
		sumX += float64(p.X)
		sumY += float64(p.Y)
		minX = math.Min(minX, float64(p.X))
		maxX = math.Max(maxX, float64(p.X))
		minY = math.Min(minY, float64(p.Y))
		maxY = math.Max(maxY, float64(p.Y))
	}
	n := float64(len(eyeLandmarks))
	centerX := sumX / n
	centerY := sumY / n

	width := maxX - minX
	height := maxY - minY
	if width <= 0 || height <= 0 {
		return Vector{}
	}

	return Vector{
		X: (float64(pupil.Center.X) - centerX) / width * 100,
		Y: (float64(pupil.Center.Y) - centerY) / height * 100,
	}
}

// Calibrate commits the given gaze vector as the neutral reference
// center. Last write wins.
func (e *GazeEstimator) Calibrate(v Vector) {
	e.center = v
	e.calibrated = true
}

// Calibrated reports whether a reference center has been committed.
func (e *GazeEstimator) Calibrated() bool {
	return e.calibrated
}

// Reference returns the current calibration state.
func (e *GazeEstimator) Reference() Reference {
	return Reference{
		Calibrated: e.calibrated,
		Center:     e.center,
		Bounds:     e.bounds,
	}
}

// IsLookingAway decides whether the gaze deviates from the calibrated
// center beyond tolerance. Horizontal tolerance is looser than vertical:
// glancing sideways at a second screen region is more common, and more
// ambiguous, than looking up or down off-screen.
func (e *GazeEstimator) IsLookingAway(v Vector) bool {
	if !e.calibrated {
		e.lookingAway = false
		return false
	}

	devX := math.Abs(v.X - e.center.X)
	devY := math.Abs(v.Y - e.center.Y)

	e.lookingAway = devX > e.cfg.LookAwayX || devY > e.cfg.LookAwayY
	return e.lookingAway
}

// LookingAway reports the flag from the most recent decision.
func (e *GazeEstimator) LookingAway() bool {
	return e.lookingAway
}
