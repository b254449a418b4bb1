package services

import (
	"context"
	"errors"
	"sync"

	"github.com/flutterdev77/purple-bank-transfer/internal/backend"
	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
	"github.com/flutterdev77/purple-bank-transfer/internal/logger"
	"github.com/flutterdev77/purple-bank-transfer/internal/validation"
)

// WizardService drives the three-step transfer flow for a single user
// session: form, summary, success. All state lives on the service and is
// only ever changed through its operations, so every failure path leaves the
// wizard in the last well-defined state.
type WizardService struct {
	mu        sync.Mutex
	client    backend.Client
	step      domain.Step
	draft     domain.TransferDraft
	committed *domain.TransferDraft
	result    *domain.TransactionResult
	submitErr string
	pending   bool
	closed    bool
}

func NewWizardService(client backend.Client) *WizardService {
	return &WizardService{
		client: client,
		step:   domain.StepForm,
		draft:  domain.NewTransferDraft(),
	}
}

// State returns a snapshot of the wizard. The committed draft and result are
// copied so callers cannot reach back into the service.
func (s *WizardService) State() domain.WizardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *WizardService) stateLocked() domain.WizardState {
	state := domain.WizardState{
		Step:               s.step,
		Draft:              s.draft,
		SubmissionError:    s.submitErr,
		SubmissionInFlight: s.pending,
	}
	if s.committed != nil {
		committed := *s.committed
		state.CommittedDraft = &committed
	}
	if s.result != nil {
		result := *s.result
		state.Result = &result
	}
	return state
}

// SelectVariant switches the active schema while on the form step. The
// common fields survive the switch; both variant detail groups and the
// Stripe sub-fields reset to their defaults.
func (s *WizardService) SelectVariant(transferType domain.TransferType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrWizardClosed
	}
	if s.step != domain.StepForm {
		return &domain.InvalidTransitionError{Op: "selectVariant", Step: s.step}
	}
	if !transferType.Valid() {
		return validation.FieldErrors{"transferType": "transferType must be domestic or international"}
	}
	if transferType == s.draft.TransferType {
		return nil
	}

	s.draft.TransferType = transferType
	s.draft.Domestic = domain.DomesticDetails{}
	s.draft.International = domain.InternationalDetails{}
	s.draft.Stripe = domain.StripeDetails{}
	return nil
}

// UpdateDraft replaces the working draft while on the form step. Adapters
// call it as the user types; nothing is validated until submission.
func (s *WizardService) UpdateDraft(draft domain.TransferDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrWizardClosed
	}
	if s.step != domain.StepForm {
		return &domain.InvalidTransitionError{Op: "updateDraft", Step: s.step}
	}

	s.draft = draft
	return nil
}

// SubmitForReview validates the candidate draft. On success the normalized
// draft becomes the committed snapshot and the wizard moves to the summary
// step; on failure the wizard stays on the form step with per-field errors
// and nothing is committed.
func (s *WizardService) SubmitForReview(draft domain.TransferDraft) (domain.WizardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.stateLocked(), domain.ErrWizardClosed
	}
	if s.step != domain.StepForm {
		return s.stateLocked(), &domain.InvalidTransitionError{Op: "submitForReview", Step: s.step}
	}

	normalized, fieldErrs := validation.Validate(draft)
	if fieldErrs != nil {
		s.draft = draft
		logger.Info("wizard validation failed", logger.Fields{
			"fields": len(fieldErrs),
		})
		return s.stateLocked(), fieldErrs
	}

	s.draft = normalized
	committed := normalized
	s.committed = &committed
	s.step = domain.StepSummary
	s.submitErr = ""
	return s.stateLocked(), nil
}

// ConfirmTransfer submits the committed draft to the backend. While a
// submission is pending any further confirm call returns
// domain.ErrSubmissionInFlight and changes nothing, so rapid double-confirms
// issue exactly one backend call. A failure keeps the wizard on the summary
// step with the error surfaced; resolution after Close is discarded.
func (s *WizardService) ConfirmTransfer(ctx context.Context) (domain.WizardState, error) {
	s.mu.Lock()
	if s.closed {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, domain.ErrWizardClosed
	}
	if s.step != domain.StepSummary {
		state := s.stateLocked()
		err := &domain.InvalidTransitionError{Op: "confirmTransfer", Step: s.step}
		s.mu.Unlock()
		return state, err
	}
	if s.pending {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, domain.ErrSubmissionInFlight
	}
	s.pending = true
	committed := *s.committed
	s.mu.Unlock()

	result, err := s.client.CreateTransfer(ctx, committed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false

	if s.closed {
		// The caller was torn down while the call was in flight; the late
		// resolution must not touch state.
		return s.stateLocked(), domain.ErrWizardClosed
	}

	if err != nil {
		s.submitErr = submissionMessage(err)
		logger.Error("wizard transfer submission failed", err, logger.Fields{
			"transferType": string(committed.TransferType),
		})
		return s.stateLocked(), err
	}

	s.result = &result
	s.step = domain.StepSuccess
	s.submitErr = ""
	logger.Info("wizard transfer submitted", logger.Fields{
		"transactionId": result.TransactionID,
		"transferType":  string(committed.TransferType),
	})
	return s.stateLocked(), nil
}

// Edit returns from the summary step to the form step. The working draft is
// restored from the committed snapshot so the user continues where they
// stopped; the snapshot itself is untouched.
func (s *WizardService) Edit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrWizardClosed
	}
	if s.step != domain.StepSummary {
		return &domain.InvalidTransitionError{Op: "edit", Step: s.step}
	}
	if s.pending {
		return domain.ErrSubmissionInFlight
	}

	s.draft = *s.committed
	s.step = domain.StepForm
	s.submitErr = ""
	return nil
}

// StartNewTransfer leaves the success step with a fresh empty draft.
func (s *WizardService) StartNewTransfer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrWizardClosed
	}
	if s.step != domain.StepSuccess {
		return &domain.InvalidTransitionError{Op: "startNewTransfer", Step: s.step}
	}

	s.draft = domain.NewTransferDraft()
	s.committed = nil
	s.result = nil
	s.submitErr = ""
	s.step = domain.StepForm
	return nil
}

// Close tears the wizard down. Every later operation fails with
// domain.ErrWizardClosed, and an in-flight submission that resolves
// afterwards is ignored.
func (s *WizardService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func submissionMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrSubmissionTimeout):
		return "The transfer request timed out. Please try again."
	case errors.Is(err, domain.ErrSubmissionRejected):
		return "The transfer was declined. Please review the details and try again."
	default:
		return "Unable to submit the transfer right now. Please try again."
	}
}
