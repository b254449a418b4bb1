// Package backend defines the transfer-submission collaborator consumed by
// the wizard, together with a simulated implementation standing in for the
// real service.
package backend

import (
	"context"

	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
)

// Client is the backend transfer service contract. CreateTransfer must be
// treated as capable of failing even when the implementation behind it never
// does; callers map its errors to user-visible messages instead of crashing.
type Client interface {
	CreateTransfer(ctx context.Context, draft domain.TransferDraft) (domain.TransactionResult, error)
	GetTransferHistory(ctx context.Context) ([]domain.TransferRecord, error)
	CancelTransfer(ctx context.Context, id string) error
}
