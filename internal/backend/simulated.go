package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
)

const defaultDelay = 1500 * time.Millisecond

// SimulatedClient fakes the transfer service with a fixed artificial delay
// in place of a network round-trip. It keeps the submitted transfers in
// memory so the history view has something to show.
type SimulatedClient struct {
	mu           sync.Mutex
	delay        time.Duration
	rejectReason string
	history      []domain.TransferRecord
}

type Option func(*SimulatedClient)

// WithDelay overrides the simulated round-trip time.
func WithDelay(d time.Duration) Option {
	return func(c *SimulatedClient) {
		c.delay = d
	}
}

// WithRejection makes every CreateTransfer call fail with
// domain.ErrSubmissionRejected carrying the given reason.
func WithRejection(reason string) Option {
	return func(c *SimulatedClient) {
		c.rejectReason = reason
	}
}

func NewSimulatedClient(opts ...Option) *SimulatedClient {
	c := &SimulatedClient{delay: defaultDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SimulatedClient) CreateTransfer(ctx context.Context, draft domain.TransferDraft) (domain.TransactionResult, error) {
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.TransactionResult{}, domain.ErrSubmissionTimeout
		}
		return domain.TransactionResult{}, ctx.Err()
	case <-timer.C:
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if c.rejectReason != "" {
		c.history = append(c.history, record(draft, uuid.NewString(), domain.TransferStatusFailed, now))
		return domain.TransactionResult{}, fmt.Errorf("%w: %s", domain.ErrSubmissionRejected, c.rejectReason)
	}

	id := uuid.NewString()
	c.history = append(c.history, record(draft, id, domain.TransferStatusSuccess, now))
	return domain.TransactionResult{TransactionID: id, SubmittedAt: now}, nil
}

func (c *SimulatedClient) GetTransferHistory(_ context.Context) ([]domain.TransferRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.TransferRecord, len(c.history))
	copy(out, c.history)
	return out, nil
}

func (c *SimulatedClient) CancelTransfer(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.history {
		if c.history[i].ID == id {
			c.history[i].Status = domain.TransferStatusCancelled
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func record(draft domain.TransferDraft, id string, status domain.TransferStatus, at time.Time) domain.TransferRecord {
	currency := "USD"
	if draft.TransferType == domain.TransferTypeInternational {
		currency = draft.International.Currency
	}

	return domain.TransferRecord{
		ID:            id,
		TransferType:  draft.TransferType,
		RecipientName: draft.RecipientName,
		BankName:      draft.BankName,
		Amount:        draft.Amount,
		Currency:      currency,
		Status:        status,
		CreatedAt:     at,
	}
}
