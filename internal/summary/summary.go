// Package summary projects a committed transfer draft into the masked,
// human-readable review shown on the confirmation step. Rendering never
// mutates or re-validates the draft.
package summary

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
)

const (
	maskChar      = "*"
	ibanMaskToken = "****"
)

type Row struct {
	Label string
	Value string
}

// DisplayModel is the ordered review shown before confirmation. Optional
// rows (description, Stripe routing) are omitted entirely when absent.
type DisplayModel struct {
	TransferType domain.TransferType
	Rows         []Row
}

func Render(d domain.TransferDraft) DisplayModel {
	model := DisplayModel{TransferType: d.TransferType}

	typeLabel := "Domestic Transfer"
	if d.TransferType == domain.TransferTypeInternational {
		typeLabel = "International Transfer"
	}
	model.Rows = append(model.Rows,
		Row{Label: "Transfer Type", Value: typeLabel},
		Row{Label: "Recipient", Value: d.RecipientName},
		Row{Label: "Bank", Value: d.BankName},
	)

	switch d.TransferType {
	case domain.TransferTypeDomestic:
		model.Rows = append(model.Rows,
			Row{Label: "Account Number", Value: MaskAccountNumber(d.Domestic.AccountNumber)},
			Row{Label: "Routing Number", Value: d.Domestic.RoutingNumber},
		)
	case domain.TransferTypeInternational:
		model.Rows = append(model.Rows,
			Row{Label: "IBAN", Value: MaskIBAN(d.International.IBAN)},
			Row{Label: "SWIFT Code", Value: d.International.SwiftCode},
			Row{Label: "Bank Country", Value: d.International.BankCountry},
		)
	}

	model.Rows = append(model.Rows, Row{Label: "Amount", Value: FormatAmount(d)})

	if d.Description != "" {
		model.Rows = append(model.Rows, Row{Label: "Description", Value: d.Description})
	}
	if d.Stripe.UseStripe {
		model.Rows = append(model.Rows, Row{Label: "Stripe Account", Value: d.Stripe.StripeAccountID})
	}

	return model
}

// MaskAccountNumber hides all but the last four characters. Account numbers
// shorter than four characters are masked in full rather than leaking a
// partial value.
func MaskAccountNumber(accountNumber string) string {
	if len(accountNumber) < 4 {
		return strings.Repeat(maskChar, len(accountNumber))
	}
	return strings.Repeat(maskChar, len(accountNumber)-4) + accountNumber[len(accountNumber)-4:]
}

// MaskIBAN keeps the first and last four characters around a fixed-length
// mask token. IBANs too short to keep both ends are masked in full.
func MaskIBAN(iban string) string {
	if len(iban) < 8 {
		return strings.Repeat(maskChar, len(iban))
	}
	return iban[:4] + ibanMaskToken + iban[len(iban)-4:]
}

// FormatAmount renders the amount with exactly two decimal places, with the
// currency code appended for international transfers only.
func FormatAmount(d domain.TransferDraft) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil {
		amount = decimal.Zero
	}

	formatted := amount.StringFixed(2)
	if d.TransferType == domain.TransferTypeInternational && d.International.Currency != "" {
		formatted += " " + d.International.Currency
	}
	return formatted
}
