package app

import "fmt"

// Pipeline phases named in failure messages.
const (
	PhaseLoading    = "loading"
	PhaseValidating = "validating"
	PhaseOutput     = "processing output"
)

// PhaseError tags a failure with the phase and input file it came from.
type PhaseError struct {
	Phase string
	// File is the document being processed, empty for the output phase.
	File string
	Err  error
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("error %s: %v", e.Phase, e.Err)
	}

	return fmt.Sprintf("error %s %s: %v", e.Phase, e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *PhaseError) Unwrap() error {
	return e.Err
}
