package gaze

import (
	"math"
	"testing"
)

func TestMovement_FirstCallBootstraps(t *testing.T) {
	a := NewMovementAnalyzer(DefaultConfig())

	// No prior pupils: zero magnitude, not suspicious, whatever the input
	got := a.Track(foundAt(500, 300), foundAt(600, 300))
	if got.Magnitude != 0 || got.Suspicious {
		t.Errorf("First call = %+v, want zero magnitude, not suspicious", got)
	}
}

func TestMovement_BootstrapRepeatsUntilFullPair(t *testing.T) {
	a := NewMovementAnalyzer(DefaultConfig())

	// A missing eye keeps the analyzer in bootstrap
	got := a.Track(foundAt(500, 300), Pupil{})
	if got.Magnitude != 0 || got.Suspicious {
		t.Errorf("Bootstrap with partial pair = %+v, want zero", got)
	}
	got = a.Track(foundAt(500, 300), foundAt(600, 300))
	if got.Magnitude != 0 {
		t.Errorf("Call after partial pair = %+v, want zero (still bootstrapping)", got)
	}

	// Now both previous pupils exist; displacement is measured
	got = a.Track(foundAt(510, 300), foundAt(610, 300))
	if math.Abs(got.Magnitude-10) > 1e-9 {
		t.Errorf("Magnitude = %v, want 10", got.Magnitude)
	}
}

func TestMovement_MissingEyeExcludedFromAverage(t *testing.T) {
	a := NewMovementAnalyzer(DefaultConfig())

	a.Track(foundAt(500, 300), foundAt(600, 300))

	// Left moved 12px, right absent this frame: the average covers only
	// the left eye (12), not 6.
	got := a.Track(foundAt(512, 300), Pupil{})
	if math.Abs(got.Magnitude-12) > 1e-9 {
		t.Errorf("Magnitude = %v, want 12 with right eye excluded", got.Magnitude)
	}
}

func TestMovement_SuspiciousAfterSustainedMotion(t *testing.T) {
	cfg := DefaultConfig() // MovementThreshold 10 => suspicious above 20 mean
	a := NewMovementAnalyzer(cfg)

	x := 500
	a.Track(foundAt(x, 300), foundAt(x+100, 300))

	var got MovementData
	for i := 0; i < movementWindow; i++ {
		x += 30
		got = a.Track(foundAt(x, 300), foundAt(x+100, 300))
	}
	if !got.Suspicious {
		t.Error("Expected suspicious after a full window of 30px jumps")
	}

	// Sustained stillness clears the flag once the window mean drops
	for i := 0; i < movementWindow; i++ {
		got = a.Track(foundAt(x, 300), foundAt(x+100, 300))
	}
	if got.Suspicious {
		t.Error("Expected flag to clear after a still window")
	}
}

func TestMovement_CalmMotionNotSuspicious(t *testing.T) {
	a := NewMovementAnalyzer(DefaultConfig())

	x := 500
	a.Track(foundAt(x, 300), foundAt(x+100, 300))

	var got MovementData
	for i := 0; i < movementWindow*2; i++ {
		x += 5 // Well under the 20px anomaly mean
		got = a.Track(foundAt(x, 300), foundAt(x+100, 300))
	}
	if got.Suspicious {
		t.Error("5px motion should not be suspicious")
	}
}

func TestMovement_HistoryBounded(t *testing.T) {
	cfg := DefaultConfig()
	a := NewMovementAnalyzer(cfg)

	x := 500
	a.Track(foundAt(x, 300), foundAt(x+100, 300))
	for i := 0; i < cfg.MovementHistorySize*3; i++ {
		x += 3
		a.Track(foundAt(x, 300), foundAt(x+100, 300))
	}
	if a.history.Len() != cfg.MovementHistorySize {
		t.Errorf("History length = %d, want %d", a.history.Len(), cfg.MovementHistorySize)
	}
}
