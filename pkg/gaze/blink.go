package gaze

import (
	"time"

	"github.com/proctorsight/go-proctor/pkg/landmarks"
)

// BlinkDetector tracks the eye-aspect-ratio time series and counts
// blinks with debouncing. State transitions:
//
//	OPEN (counter == 0): sample below threshold increments the counter.
//	CLOSING: further low samples keep incrementing.
//	Release edge (sample at or above threshold):
//	  counter >= BlinkFrames  -> one blink counted, counter reset
//	  counter <  BlinkFrames  -> counter reset, nothing counted (noise)
//
// Blinks are counted only on the release edge, never while the eye is
// still below threshold.
type BlinkDetector struct {
	cfg Config

	counter    int // Consecutive below-threshold samples
	total      int
	earHistory *ring[float64]
	lastBlink  time.Time
	excessive  bool

	now func() time.Time // Injectable for tests
}

// NewBlinkDetector creates a blink detector with the given configuration.
func NewBlinkDetector(cfg Config) *BlinkDetector {
	return &BlinkDetector{
		cfg:        cfg,
		earHistory: newRing[float64](cfg.EARHistorySize),
		lastBlink:  time.Now(),
		now:        time.Now,
	}
}

// earFromIndices computes the eye aspect ratio for one eye:
// (vertical_1 + vertical_2) / (2 * horizontal), using Euclidean pixel
// distances between the 6 EAR landmark points. Returns 0 when the
// horizontal distance is degenerate.
func earFromIndices(set landmarks.Set, idx [6]int, w, h int) float64 {
	var pts [6]Pixel
	for i, li := range idx {
		p := set.At(li)
		pts[i] = Pixel{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))}
	}

	vertical1 := pts[1].DistanceTo(pts[5])
	vertical2 := pts[2].DistanceTo(pts[4])
	horizontal := pts[0].DistanceTo(pts[3])

	if horizontal <= 0 {
		return 0
	}
	return (vertical1 + vertical2) / (2 * horizontal)
}

// Process folds one frame's landmarks into the blink state machine and
// returns the frame's blink data.
func (d *BlinkDetector) Process(set landmarks.Set, w, h int) BlinkData {
	leftEAR := earFromIndices(set, landmarks.LeftEyeEAR, w, h)
	rightEAR := earFromIndices(set, landmarks.RightEyeEAR, w, h)
	avgEAR := (leftEAR + rightEAR) / 2

	d.earHistory.Push(avgEAR)

	blinkDetected := false
	if avgEAR < d.cfg.EARThreshold {
		d.counter++
	} else {
		if d.counter >= d.cfg.BlinkFrames {
			d.total++
			blinkDetected = true
			d.lastBlink = d.now()
		}
		d.counter = 0
	}

	// A degenerate/occluded state: over half of the last second's
	// samples below threshold.
	if d.earHistory.Len() >= d.earHistory.Cap() {
		low := 0
		for _, ear := range d.earHistory.Values() {
			if ear < d.cfg.EARThreshold {
				low++
			}
		}
		d.excessive = low > d.earHistory.Cap()/2
	}

	return BlinkData{
		BlinkDetected:     blinkDetected,
		EAR:               avgEAR,
		BlinkRate:         d.blinkRate(),
		ExcessiveBlinking: d.excessive,
	}
}

// blinkRate divides total blinks by minutes since the last blink event
// (floored at one minute). This mirrors the formula the scoring model
// was tuned against; it is not a true blinks-per-minute rate.
func (d *BlinkDetector) blinkRate() float64 {
	minutes := d.now().Sub(d.lastBlink).Minutes()
	if minutes < 1 {
		minutes = 1
	}
	return float64(d.total) / minutes
}

// TotalBlinks returns the number of completed blinks this session.
func (d *BlinkDetector) TotalBlinks() int {
	return d.total
}

// AverageEAR returns the mean EAR over the history window, or 0 when no
// samples have been recorded.
func (d *BlinkDetector) AverageEAR() float64 {
	return mean(d.earHistory.Values())
}

// Excessive reports the current excessive-blinking flag.
func (d *BlinkDetector) Excessive() bool {
	return d.excessive
}
