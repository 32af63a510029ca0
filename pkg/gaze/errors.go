package gaze

import "fmt"

// StageError identifies which pipeline stage faulted while processing a
// frame. The processor converts stage faults into an all-zero FrameResult
// for that frame; persistent state is left untouched.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("gaze [%s]: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
