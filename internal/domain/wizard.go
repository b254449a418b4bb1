package domain

import "time"

type Step string

const (
	StepForm    Step = "form"
	StepSummary Step = "summary"
	StepSuccess Step = "success"
)

// TransactionResult is the opaque receipt produced by the backend when a
// transfer submission resolves.
type TransactionResult struct {
	TransactionID string
	SubmittedAt   time.Time
}

// WizardState is a point-in-time snapshot of the wizard. CommittedDraft is
// nil until a draft passes validation; Result is nil until the summary step
// is confirmed.
type WizardState struct {
	Step               Step
	Draft              TransferDraft
	CommittedDraft     *TransferDraft
	Result             *TransactionResult
	SubmissionError    string
	SubmissionInFlight bool
}
