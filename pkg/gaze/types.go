// Package gaze infers a viewer's ocular state and attentiveness from
// per-frame facial landmark observations: pupil localization, blink
// detection, calibrated gaze direction, eye-movement anomalies, and a
// composite attention score.
package gaze

import "math"

// Pixel is a coordinate in full-frame pixel space.
type Pixel struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo returns the Euclidean distance to another pixel.
func (p Pixel) DistanceTo(q Pixel) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Pupil is an optional pupil location. Found is false when neither
// detection method produced a candidate; Center is meaningless then.
type Pupil struct {
	Center Pixel
	Found  bool
}

// Vector is an eye-size-normalized gaze displacement, scaled by 100.
// It is dimensionless across absolute face size and camera distance.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EyeMetrics holds the per-eye measurements for one frame. Values are
// never mutated after the frame is assembled.
//
// PupilCenter (0,0) is a sentinel for "pupil not found", not a legitimate
// frame coordinate; an eye region never reaches the frame origin in
// practice, but consumers must treat the zero value as absent rather
// than as a detection at the corner.
type EyeMetrics struct {
	EAR           float64 `json:"ear"`
	Gaze          Vector  `json:"gaze_direction"`
	PupilCenter   Pixel   `json:"pupil_center"`
	BlinkDetected bool    `json:"blink_detected"`
}

// BlinkData is the blink detector's per-frame output.
type BlinkData struct {
	BlinkDetected bool    `json:"blink_detected"`
	EAR           float64 `json:"ear"`

	// BlinkRate is total blinks divided by minutes elapsed since the
	// last blink event. This is the historical formula, not a true
	// rate: it diverges for long gaps between blinks.
	BlinkRate float64 `json:"blink_rate"`

	// ExcessiveBlinking is set when more than half of the last second's
	// EAR samples are below threshold. Despite the name it measures
	// "eyes mostly closed", not the count of completed blinks.
	ExcessiveBlinking bool `json:"excessive_blinking"`
}

// MovementData is the movement analyzer's per-frame output.
type MovementData struct {
	Magnitude  float64 `json:"movement_magnitude"`
	Suspicious bool    `json:"suspicious"`
}

// Flags are the proctoring flags raised for one frame.
type Flags struct {
	LookingAway        bool `json:"looking_away"`
	ExcessiveBlinking  bool `json:"excessive_blinking"`
	SuspiciousMovement bool `json:"suspicious_movement"`
}

// FrameResult aggregates everything the engine inferred from one frame.
// It is immutable once returned; the engine retains nothing from it
// beyond its own history buffers.
type FrameResult struct {
	LeftEye  *EyeMetrics `json:"left_eye"`  // nil when the eye region was rejected
	RightEye *EyeMetrics `json:"right_eye"` // nil when the eye region was rejected

	Blink    BlinkData    `json:"blink_data"`
	Gaze     Vector       `json:"gaze_direction"` // Mean of both eyes' vectors
	Movement MovementData `json:"movement_data"`

	AttentionScore float64 `json:"attention_score"` // 0-100
	Flags          Flags   `json:"flags"`
}

// Summary is a read-only snapshot of the accumulated session history,
// queryable at any time independent of frame cadence.
type Summary struct {
	TotalBlinks    int       `json:"total_blinks"`
	AverageEAR     float64   `json:"average_ear"`
	RecentMovement []float64 `json:"recent_movement"` // Last second of movement magnitudes
	RecentGaze     []Vector  `json:"recent_gaze"`     // Last second of gaze vectors
	Flags          Flags     `json:"flags_triggered"` // Flags as of the most recent frame
}
