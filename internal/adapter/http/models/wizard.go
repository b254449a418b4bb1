package models

import (
	"errors"
	"strings"
	"time"

	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
	"github.com/flutterdev77/purple-bank-transfer/internal/summary"
	"github.com/flutterdev77/purple-bank-transfer/internal/validation"
)

// TransferDraftRequest mirrors the flat field layout of the transfer form.
// Only the fields belonging to the selected transferType are read.
type TransferDraftRequest struct {
	TransferType         string `json:"transferType"`
	RecipientName        string `json:"recipientName"`
	BankName             string `json:"bankName"`
	Amount               string `json:"amount"`
	Description          string `json:"description"`
	AccountNumber        string `json:"accountNumber"`
	RoutingNumber        string `json:"routingNumber"`
	IBAN                 string `json:"iban"`
	SwiftCode            string `json:"swiftCode"`
	BankAddress          string `json:"bankAddress"`
	BankCountry          string `json:"bankCountry"`
	Currency             string `json:"currency"`
	UseStripe            bool   `json:"useStripe"`
	StripeAccountID      string `json:"stripeAccountId"`
	StripePublishableKey string `json:"stripePublishableKey"`
}

// ToDomain maps the request onto a draft. The amount is sanitized here, at
// the view boundary, so stray characters never reach the schema.
func (r TransferDraftRequest) ToDomain() (domain.TransferDraft, error) {
	transferType := domain.TransferType(strings.ToLower(strings.TrimSpace(r.TransferType)))
	if !transferType.Valid() {
		return domain.TransferDraft{}, errors.New("transferType must be domestic or international")
	}

	return domain.TransferDraft{
		TransferType:  transferType,
		RecipientName: r.RecipientName,
		BankName:      r.BankName,
		Amount:        validation.SanitizeAmount(r.Amount),
		Description:   r.Description,
		Domestic: domain.DomesticDetails{
			AccountNumber: r.AccountNumber,
			RoutingNumber: r.RoutingNumber,
		},
		International: domain.InternationalDetails{
			IBAN:        r.IBAN,
			SwiftCode:   r.SwiftCode,
			BankAddress: r.BankAddress,
			BankCountry: r.BankCountry,
			Currency:    r.Currency,
		},
		Stripe: domain.StripeDetails{
			UseStripe:            r.UseStripe,
			StripeAccountID:      r.StripeAccountID,
			StripePublishableKey: r.StripePublishableKey,
		},
	}, nil
}

type SelectVariantRequest struct {
	TransferType string `json:"transferType"`
}

type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SummaryResponse struct {
	TransferType string       `json:"transferType"`
	Rows         []SummaryRow `json:"rows"`
}

type TransactionResponse struct {
	TransactionID string `json:"transactionId"`
	SubmittedAt   string `json:"submittedAt"`
}

// WizardStateResponse is the wire shape of a wizard snapshot. The summary is
// present only on the summary step and the transaction only on success.
type WizardStateResponse struct {
	SessionID       string               `json:"sessionId"`
	Step            string               `json:"step"`
	TransferType    string               `json:"transferType"`
	Summary         *SummaryResponse     `json:"summary,omitempty"`
	Transaction     *TransactionResponse `json:"transaction,omitempty"`
	SubmissionError string               `json:"submissionError,omitempty"`
}

func NewWizardStateResponse(sessionID string, state domain.WizardState) WizardStateResponse {
	resp := WizardStateResponse{
		SessionID:       sessionID,
		Step:            string(state.Step),
		TransferType:    string(state.Draft.TransferType),
		SubmissionError: state.SubmissionError,
	}

	if state.Step == domain.StepSummary && state.CommittedDraft != nil {
		model := summary.Render(*state.CommittedDraft)
		rows := make([]SummaryRow, 0, len(model.Rows))
		for _, row := range model.Rows {
			rows = append(rows, SummaryRow{Label: row.Label, Value: row.Value})
		}
		resp.Summary = &SummaryResponse{
			TransferType: string(model.TransferType),
			Rows:         rows,
		}
	}

	if state.Result != nil {
		resp.Transaction = &TransactionResponse{
			TransactionID: state.Result.TransactionID,
			SubmittedAt:   state.Result.SubmittedAt.Format(time.RFC3339),
		}
	}

	return resp
}

type TransferRecordResponse struct {
	ID            string `json:"id"`
	TransferType  string `json:"transferType"`
	RecipientName string `json:"recipientName"`
	BankName      string `json:"bankName"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func NewTransferRecordResponse(record domain.TransferRecord) TransferRecordResponse {
	return TransferRecordResponse{
		ID:            record.ID,
		TransferType:  string(record.TransferType),
		RecipientName: record.RecipientName,
		BankName:      record.BankName,
		Amount:        record.Amount,
		Currency:      record.Currency,
		Status:        string(record.Status),
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
	}
}
