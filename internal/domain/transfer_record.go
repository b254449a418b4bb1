package domain

import "time"

type TransferStatus string

const (
	TransferStatusSuccess   TransferStatus = "SUCCESS"
	TransferStatusFailed    TransferStatus = "FAILED"
	TransferStatusCancelled TransferStatus = "CANCELLED"
)

// TransferRecord is a prior transfer as reported by the backend history
// endpoint. It is a read-only view and never feeds back into the wizard.
type TransferRecord struct {
	ID            string
	TransferType  TransferType
	RecipientName string
	BankName      string
	Amount        string
	Currency      string
	Status        TransferStatus
	CreatedAt     time.Time
}
