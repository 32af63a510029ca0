package gaze

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/proctorsight/go-proctor/internal/log"
	"github.com/proctorsight/go-proctor/pkg/landmarks"
)

// Processor is the per-frame entry point for the gaze engine. It
// sequences eye-region extraction, pupil location, blink detection, gaze
// estimation, movement analysis and attention scoring, and owns all
// rolling history carried between frames.
//
// The processor is synchronous and not reentrant: the caller must finish
// one ProcessFrame before starting the next, and must serialize
// Calibrate calls with frame processing (run both from the same frame
// loop).
type Processor struct {
	cfg Config

	blink     *BlinkDetector
	estimator *GazeEstimator
	movement  *MovementAnalyzer

	gazeHistory *ring[Vector]
	lastGaze    Vector
	lastFlags   Flags
}

// NewProcessor creates a processor with all stage state initialized.
func NewProcessor(cfg Config) *Processor {
	return &Processor{
		cfg:         cfg,
		blink:       NewBlinkDetector(cfg),
		estimator:   NewGazeEstimator(cfg),
		movement:    NewMovementAnalyzer(cfg),
		gazeHistory: newRing[Vector](cfg.GazeHistorySize),
	}
}

// Config returns the processor's immutable configuration.
func (p *Processor) Config() Config {
	return p.cfg
}

// ProcessFrame runs the full pipeline on one (landmarks, frame) pair.
//
// Stages degrade gracefully: a rejected eye region or missing pupil
// zeroes that eye's metrics instead of aborting the frame. A stage fault
// is caught here, logged, and converted into an all-zero FrameResult.
// The fault-prone image stages run before anything touches persistent
// state, so a faulted frame cannot leave the histories or calibration
// half-updated, and the next frame is accepted normally.
func (p *Processor) ProcessFrame(set landmarks.Set, frame gocv.Mat) (res FrameResult) {
	stage := "extract"
	defer func() {
		if r := recover(); r != nil {
			err := &StageError{Stage: stage, Err: fmt.Errorf("%v", r)}
			log.Error("frame processing fault", "error", err)
			res = FrameResult{}
		}
	}()

	w := frame.Cols()
	h := frame.Rows()

	// Image stages first. They touch no persistent state, so a fault
	// here cannot leave a half-updated history behind.
	type eyeObservation struct {
		region *EyeRegion
		pupil  Pupil
	}
	var left, right eyeObservation

	left.region = ExtractEyeRegion(set, landmarks.LeftEye[:], frame, p.cfg)
	right.region = ExtractEyeRegion(set, landmarks.RightEye[:], frame, p.cfg)
	defer func() {
		if left.region != nil {
			left.region.Close()
		}
		if right.region != nil {
			right.region.Close()
		}
	}()

	stage = "pupil"
	if left.region != nil {
		left.pupil = LocatePupil(left.region, p.cfg)
	}
	if right.region != nil {
		right.pupil = LocatePupil(right.region, p.cfg)
	}

	stage = "blink"
	blinkData := p.blink.Process(set, w, h)

	stage = "movement"
	movementData := p.movement.Track(left.pupil, right.pupil)

	stage = "gaze"
	res.LeftEye = p.eyeMetrics(set, landmarks.LeftEyeEAR, left.region, left.pupil, blinkData, w, h)
	res.RightEye = p.eyeMetrics(set, landmarks.RightEyeEAR, right.region, right.pupil, blinkData, w, h)

	// Frame-level gaze: mean of the vectors of the eyes that produced
	// metrics (an absent eye drops out of the average entirely).
	var gaze Vector
	eyes := 0
	for _, m := range []*EyeMetrics{res.LeftEye, res.RightEye} {
		if m != nil {
			gaze.X += m.Gaze.X
			gaze.Y += m.Gaze.Y
			eyes++
		}
	}
	if eyes > 0 {
		gaze.X /= float64(eyes)
		gaze.Y /= float64(eyes)
	}

	lookingAway := p.estimator.IsLookingAway(gaze)

	stage = "score"
	res.Blink = blinkData
	res.Gaze = gaze
	res.Movement = movementData
	res.AttentionScore = ScoreAttention(lookingAway, blinkData, movementData)
	res.Flags = Flags{
		LookingAway:        lookingAway,
		ExcessiveBlinking:  blinkData.ExcessiveBlinking,
		SuspiciousMovement: movementData.Suspicious,
	}

	p.gazeHistory.Push(gaze)
	p.lastGaze = gaze
	p.lastFlags = res.Flags

	return res
}

// eyeMetrics assembles one eye's metrics, or nil when the region was
// rejected. The pupil sentinel convention lives here: an absent pupil
// reports PupilCenter (0,0).
func (p *Processor) eyeMetrics(set landmarks.Set, earIdx [6]int, region *EyeRegion, pupil Pupil, blink BlinkData, w, h int) *EyeMetrics {
	if region == nil {
		return nil
	}

	m := &EyeMetrics{
		EAR:           earFromIndices(set, earIdx, w, h),
		Gaze:          p.estimator.Direction(region.Landmarks, pupil),
		BlinkDetected: blink.BlinkDetected,
	}
	if pupil.Found {
		m.PupilCenter = pupil.Center
	}
	return m
}

// Calibrate commits the given gaze vector as the neutral reference.
// Must not run concurrently with ProcessFrame; see the type comment.
func (p *Processor) Calibrate(v Vector) {
	p.estimator.Calibrate(v)
}

// CalibrateCenter commits the most recent frame's gaze vector as the
// neutral reference and returns it.
func (p *Processor) CalibrateCenter() Vector {
	p.estimator.Calibrate(p.lastGaze)
	return p.lastGaze
}

// Calibrated reports whether a gaze reference has been committed.
func (p *Processor) Calibrated() bool {
	return p.estimator.Calibrated()
}

// Reference returns the current calibration state.
func (p *Processor) Reference() Reference {
	return p.estimator.Reference()
}

// LastGaze returns the most recent frame-level gaze vector.
func (p *Processor) LastGaze() Vector {
	return p.lastGaze
}

// Summary returns a read-only snapshot of the accumulated history. It
// may be queried at any time between frames.
func (p *Processor) Summary() Summary {
	return Summary{
		TotalBlinks:    p.blink.TotalBlinks(),
		AverageEAR:     p.blink.AverageEAR(),
		RecentMovement: p.movement.RecentSamples(movementWindow),
		RecentGaze:     p.gazeHistory.Last(movementWindow),
		Flags:          p.lastFlags,
	}
}
