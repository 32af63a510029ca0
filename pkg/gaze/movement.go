package gaze

// movementWindow is the number of recent samples averaged for the
// anomaly decision (~1 second at 30 fps).
const movementWindow = 30

// MovementAnalyzer tracks frame-to-frame pupil displacement and raises a
// windowed anomaly flag for rapid, erratic eye movement.
type MovementAnalyzer struct {
	cfg Config

	prevLeft   Pupil
	prevRight  Pupil
	history    *ring[float64]
	suspicious bool
}

// NewMovementAnalyzer creates a movement analyzer.
func NewMovementAnalyzer(cfg Config) *MovementAnalyzer {
	return &MovementAnalyzer{
		cfg:     cfg,
		history: newRing[float64](cfg.MovementHistorySize),
	}
}

// Track folds the current pupil pair into the movement state.
//
// Until a full previous pair has been recorded it only stores the
// current pair and reports zero magnitude, not suspicious — no false
// positive on the first frame. Thereafter the displacement is averaged
// across the eyes with valid pupils in both frames; an eye missing in
// either frame is excluded from the average rather than counted as zero
// movement.
func (a *MovementAnalyzer) Track(left, right Pupil) MovementData {
	if !a.prevLeft.Found || !a.prevRight.Found {
		a.prevLeft = left
		a.prevRight = right
		return MovementData{}
	}

	total := 0.0
	valid := 0
	if left.Found && a.prevLeft.Found {
		total += left.Center.DistanceTo(a.prevLeft.Center)
		valid++
	}
	if right.Found && a.prevRight.Found {
		total += right.Center.DistanceTo(a.prevRight.Center)
		valid++
	}
	if valid == 0 {
		return MovementData{}
	}

	magnitude := total / float64(valid)
	a.history.Push(magnitude)

	if a.history.Len() >= movementWindow {
		recent := mean(a.history.Last(movementWindow))
		a.suspicious = recent > a.cfg.MovementThreshold*2
	}

	a.prevLeft = left
	a.prevRight = right

	return MovementData{
		Magnitude:  magnitude,
		Suspicious: a.suspicious,
	}
}

// RecentSamples returns up to n most recent movement magnitudes,
// oldest first.
func (a *MovementAnalyzer) RecentSamples(n int) []float64 {
	return a.history.Last(n)
}

// Suspicious reports the current anomaly flag.
func (a *MovementAnalyzer) Suspicious() bool {
	return a.suspicious
}
