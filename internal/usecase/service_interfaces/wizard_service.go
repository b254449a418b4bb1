package service_interfaces

import (
	"context"

	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
)

type WizardService interface {
	State() domain.WizardState
	SelectVariant(transferType domain.TransferType) error
	UpdateDraft(draft domain.TransferDraft) error
	SubmitForReview(draft domain.TransferDraft) (domain.WizardState, error)
	ConfirmTransfer(ctx context.Context) (domain.WizardState, error)
	Edit() error
	StartNewTransfer() error
	Close()
}
