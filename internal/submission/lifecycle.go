// Package submission owns the submit lifecycle: gate check, remote scoring
// call, result rendering and failure recovery.
package submission

import (
	"errors"
	"time"

	"github.com/harrison/aqscreen/internal/scoring"
)

// Lifecycle is the state of the submission controller.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Submitting
	Succeeded
	Failed
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// User-visible failure messages.
const (
	FallbackErrorMessage = "An error occurred during prediction"
	NetworkErrorMessage  = "Network error. Please try again."
)

var (
	// ErrIncomplete means the completion gate is closed. It is a gating
	// condition, not a failure: nothing is shown to the user.
	ErrIncomplete = errors.New("form is incomplete")

	// ErrInProgress is returned while a submission is outstanding.
	ErrInProgress = errors.New("submission already in progress")

	// ErrResultsShown is returned when submitting from the results view.
	ErrResultsShown = errors.New("results are shown, reset before submitting again")

	// ErrServiceFailure marks a response with success=false.
	ErrServiceFailure = errors.New("scoring service reported a failure")
)

// FailureError is returned by Submit after a failure has been surfaced to the
// user. Message is exactly what the user saw.
type FailureError struct {
	Message string
	Err     error
}

func (e *FailureError) Error() string {
	return e.Message
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

// Attempt describes one settled submission.
type Attempt struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Outcome    Lifecycle
	Request    scoring.PredictRequest
	Prediction *scoring.Prediction
	Message    string
}
