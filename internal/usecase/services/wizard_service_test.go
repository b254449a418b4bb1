package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flutterdev77/purple-bank-transfer/internal/backend"
	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/services"
	"github.com/flutterdev77/purple-bank-transfer/internal/validation"
)

// gatedClient blocks CreateTransfer until released so tests can hold a
// submission in flight.
type gatedClient struct {
	calls   atomic.Int32
	release chan struct{}
	result  domain.TransactionResult
	err     error
}

func newGatedClient() *gatedClient {
	return &gatedClient{
		release: make(chan struct{}),
		result:  domain.TransactionResult{TransactionID: "txn-1", SubmittedAt: time.Now()},
	}
}

func (c *gatedClient) CreateTransfer(ctx context.Context, _ domain.TransferDraft) (domain.TransactionResult, error) {
	c.calls.Add(1)
	select {
	case <-ctx.Done():
		return domain.TransactionResult{}, ctx.Err()
	case <-c.release:
	}
	return c.result, c.err
}

func (c *gatedClient) GetTransferHistory(context.Context) ([]domain.TransferRecord, error) {
	return nil, nil
}

func (c *gatedClient) CancelTransfer(context.Context, string) error {
	return nil
}

func domesticDraft() domain.TransferDraft {
	return domain.TransferDraft{
		TransferType:  domain.TransferTypeDomestic,
		RecipientName: "John Doe",
		BankName:      "Bank A",
		Amount:        "250.00",
		Domestic: domain.DomesticDetails{
			AccountNumber: "1234567890",
			RoutingNumber: "123456789",
		},
	}
}

func TestSubmitForReviewCommitsValidDraft(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	state, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)
	assert.Equal(t, domain.StepSummary, state.Step)
	require.NotNil(t, state.CommittedDraft)
	assert.Equal(t, domesticDraft(), *state.CommittedDraft)
}

func TestSubmitForReviewKeepsInvalidDraftOnForm(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	draft := domesticDraft()
	draft.Domestic.AccountNumber = "123"

	state, err := wizard.SubmitForReview(draft)
	require.Error(t, err)

	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs, "accountNumber")

	assert.Equal(t, domain.StepForm, state.Step)
	assert.Nil(t, state.CommittedDraft)
	assert.Equal(t, draft, state.Draft, "the user's values survive a failed submit")
}

func TestConfirmTransferReachesSuccess(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	state, err := wizard.ConfirmTransfer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, state.Step)
	require.NotNil(t, state.Result)
	assert.NotEmpty(t, state.Result.TransactionID)
}

func TestConfirmTransferOutsideSummaryFails(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	_, err := wizard.ConfirmTransfer(context.Background())
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StepForm, transitionErr.Step)
}

func TestConfirmTransferSuppressesDuplicates(t *testing.T) {
	client := newGatedClient()
	wizard := services.NewWizardService(client)

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	type confirmOutcome struct {
		state domain.WizardState
		err   error
	}
	firstDone := make(chan confirmOutcome, 1)
	go func() {
		state, err := wizard.ConfirmTransfer(context.Background())
		firstDone <- confirmOutcome{state: state, err: err}
	}()

	// Wait until the first confirm is inside the backend call.
	require.Eventually(t, func() bool {
		return client.calls.Load() == 1
	}, time.Second, time.Millisecond)

	_, err = wizard.ConfirmTransfer(context.Background())
	require.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(client.release)

	outcome := <-firstDone
	require.NoError(t, outcome.err)
	assert.Equal(t, domain.StepSuccess, outcome.state.Step)
	assert.Equal(t, int32(1), client.calls.Load(), "exactly one submission reaches the backend")
}

func TestConfirmTransferRejectionStaysOnSummary(t *testing.T) {
	client := backend.NewSimulatedClient(
		backend.WithDelay(time.Millisecond),
		backend.WithRejection("account blocked"),
	)
	wizard := services.NewWizardService(client)

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	state, err := wizard.ConfirmTransfer(context.Background())
	require.ErrorIs(t, err, domain.ErrSubmissionRejected)
	assert.Equal(t, domain.StepSummary, state.Step)
	assert.Nil(t, state.Result)
	assert.NotEmpty(t, state.SubmissionError)
	require.NotNil(t, state.CommittedDraft, "the committed draft survives a rejection for retry")
}

func TestConfirmTransferTimeoutIsRetryable(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Second)))

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	state, err := wizard.ConfirmTransfer(ctx)
	cancel()
	require.ErrorIs(t, err, domain.ErrSubmissionTimeout)
	assert.Equal(t, domain.StepSummary, state.Step)

	// Retry without re-entering any data.
	fast := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))
	_, err = fast.SubmitForReview(domesticDraft())
	require.NoError(t, err)
	state, err = fast.ConfirmTransfer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, state.Step)
}

func TestCloseDiscardsLateResolution(t *testing.T) {
	client := newGatedClient()
	wizard := services.NewWizardService(client)

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := wizard.ConfirmTransfer(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return client.calls.Load() == 1
	}, time.Second, time.Millisecond)

	wizard.Close()
	close(client.release)

	require.ErrorIs(t, <-done, domain.ErrWizardClosed)
}

func TestEditRestoresDraftFromCommitted(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	require.NoError(t, wizard.Edit())

	state := wizard.State()
	assert.Equal(t, domain.StepForm, state.Step)
	assert.Equal(t, domesticDraft(), state.Draft)
	require.NotNil(t, state.CommittedDraft, "edit leaves the committed snapshot alone")
}

func TestStartNewTransferResetsEverything(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)
	_, err = wizard.ConfirmTransfer(context.Background())
	require.NoError(t, err)

	require.NoError(t, wizard.StartNewTransfer())

	state := wizard.State()
	assert.Equal(t, domain.StepForm, state.Step)
	assert.Equal(t, domain.NewTransferDraft(), state.Draft)
	assert.Nil(t, state.CommittedDraft)
	assert.Nil(t, state.Result)
	assert.Empty(t, state.SubmissionError)
}

func TestStartNewTransferOutsideSuccessFails(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	err := wizard.StartNewTransfer()
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}

func TestSelectVariantResetsVariantFields(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	draft := domesticDraft()
	require.NoError(t, wizard.UpdateDraft(draft))
	require.NoError(t, wizard.SelectVariant(domain.TransferTypeInternational))

	state := wizard.State()
	assert.Equal(t, domain.TransferTypeInternational, state.Draft.TransferType)
	assert.Equal(t, domain.DomesticDetails{}, state.Draft.Domestic)
	assert.Equal(t, "John Doe", state.Draft.RecipientName, "common fields survive the switch")
	assert.Equal(t, "250.00", state.Draft.Amount)
}

func TestSelectVariantOutsideFormFails(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))

	_, err := wizard.SubmitForReview(domesticDraft())
	require.NoError(t, err)

	err = wizard.SelectVariant(domain.TransferTypeInternational)
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}

func TestClosedWizardRefusesEverything(t *testing.T) {
	wizard := services.NewWizardService(backend.NewSimulatedClient(backend.WithDelay(time.Millisecond)))
	wizard.Close()

	_, err := wizard.SubmitForReview(domesticDraft())
	require.ErrorIs(t, err, domain.ErrWizardClosed)
	require.ErrorIs(t, wizard.Edit(), domain.ErrWizardClosed)
	require.ErrorIs(t, wizard.StartNewTransfer(), domain.ErrWizardClosed)
	require.ErrorIs(t, wizard.SelectVariant(domain.TransferTypeInternational), domain.ErrWizardClosed)
}
