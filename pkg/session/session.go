// Package session records proctoring events for one monitoring session:
// violations raised by the gaze engine, running tallies, and a report
// snapshot for the review side.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proctorsight/go-proctor/pkg/gaze"
)

const (
	// maxViolations bounds the in-memory violation log; the oldest
	// entries are dropped past this.
	maxViolations = 500

	// lowAttentionScore is the score below which a frame counts as a
	// low-attention violation.
	lowAttentionScore = 40
)

// Violation kinds.
const (
	KindLookingAway        = "looking_away"
	KindExcessiveBlinking  = "excessive_blinking"
	KindSuspiciousMovement = "suspicious_movement"
	KindLowAttention       = "low_attention"
)

// Violation is one recorded proctoring event.
type Violation struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
	Score  float64   `json:"attention_score"`
}

// Report is a snapshot of the session so far.
type Report struct {
	SessionID     string         `json:"session_id"`
	StartedAt     time.Time      `json:"started_at"`
	Duration      time.Duration  `json:"duration"`
	Frames        int            `json:"frames"`
	MeanAttention float64        `json:"mean_attention"`
	Counts        map[string]int `json:"violation_counts"`
	Violations    []Violation    `json:"violations"`
}

// Recorder accumulates session history. Observe is called from the
// frame loop; Report may be called from other goroutines (the dashboard
// handlers), so the recorder locks internally.
type Recorder struct {
	id      string
	started time.Time

	mu         sync.Mutex
	frames     int
	scoreSum   float64
	prevFlags  gaze.Flags
	prevLow    bool
	counts     map[string]int
	violations []Violation
}

// NewRecorder starts a new session with a fresh id.
func NewRecorder() *Recorder {
	return &Recorder{
		id:      uuid.NewString(),
		started: time.Now(),
		counts:  make(map[string]int),
	}
}

// ID returns the session id.
func (r *Recorder) ID() string {
	return r.id
}

// Observe folds one frame result into the session history and returns
// the violations newly raised by this frame. A violation is raised on
// the rising edge of its flag, so a sustained condition produces one
// event, not one per frame.
func (r *Recorder) Observe(res gaze.FrameResult) []Violation {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames++
	r.scoreSum += res.AttentionScore

	var raised []Violation
	record := func(kind, detail string) {
		v := Violation{
			ID:     uuid.NewString(),
			Time:   time.Now(),
			Kind:   kind,
			Detail: detail,
			Score:  res.AttentionScore,
		}
		r.counts[kind]++
		r.violations = append(r.violations, v)
		if len(r.violations) > maxViolations {
			r.violations = r.violations[len(r.violations)-maxViolations:]
		}
		raised = append(raised, v)
	}

	if res.Flags.LookingAway && !r.prevFlags.LookingAway {
		record(KindLookingAway, fmt.Sprintf("gaze deviation (%.1f, %.1f)", res.Gaze.X, res.Gaze.Y))
	}
	if res.Flags.ExcessiveBlinking && !r.prevFlags.ExcessiveBlinking {
		record(KindExcessiveBlinking, fmt.Sprintf("ear %.3f", res.Blink.EAR))
	}
	if res.Flags.SuspiciousMovement && !r.prevFlags.SuspiciousMovement {
		record(KindSuspiciousMovement, fmt.Sprintf("magnitude %.1f px", res.Movement.Magnitude))
	}
	low := res.AttentionScore < lowAttentionScore
	if low && !r.prevLow {
		record(KindLowAttention, fmt.Sprintf("score %.0f", res.AttentionScore))
	}

	r.prevFlags = res.Flags
	r.prevLow = low

	return raised
}

// Report returns a snapshot of the session so far.
func (r *Recorder) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	mean := 0.0
	if r.frames > 0 {
		mean = r.scoreSum / float64(r.frames)
	}

	counts := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		counts[k] = v
	}
	violations := make([]Violation, len(r.violations))
	copy(violations, r.violations)

	return Report{
		SessionID:     r.id,
		StartedAt:     r.started,
		Duration:      time.Since(r.started),
		Frames:        r.frames,
		MeanAttention: mean,
		Counts:        counts,
		Violations:    violations,
	}
}
