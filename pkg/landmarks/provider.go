package landmarks

import "gocv.io/x/gocv"

// Provider is the interface for face-landmark extraction backends.
// Detect returns ok=false when no face is present in the frame; err is
// reserved for backend faults (model failure, transport failure).
type Provider interface {
	// Detect extracts face landmarks from a BGR frame.
	Detect(frame gocv.Mat) (set Set, ok bool, err error)

	// Close releases resources
	Close() error
}
