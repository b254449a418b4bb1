package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("Record not found")

var (
	// ErrSubmissionRejected means the backend declined a well-formed
	// transfer. The wizard stays on the summary step so the user can retry.
	ErrSubmissionRejected = errors.New("transfer submission rejected")

	// ErrSubmissionTimeout means the backend did not answer in time. The
	// committed draft survives and the confirm call can be repeated.
	ErrSubmissionTimeout = errors.New("transfer submission timed out")

	// ErrSubmissionInFlight is returned by a confirm call that arrives while
	// an earlier one is still pending. Nothing changes.
	ErrSubmissionInFlight = errors.New("transfer submission already in progress")

	// ErrWizardClosed is returned once a wizard has been torn down.
	ErrWizardClosed = errors.New("wizard is closed")
)

// InvalidTransitionError reports a wizard operation invoked from the wrong step.
type InvalidTransitionError struct {
	Op   string
	Step Step
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s is not allowed while the wizard is in the %s step", e.Op, e.Step)
}
