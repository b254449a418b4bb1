// Package validation holds the declarative field rules for the two transfer
// variants. Validation is all-or-nothing: a draft is either returned
// normalized with no errors, or every violated field is reported at once.
package validation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
)

// FieldErrors maps a form field name to a human-readable violation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Validate checks a candidate draft against the schema selected by its
// TransferType. On success it returns the normalized draft (trimmed fields,
// upper-cased currency and SWIFT code) and a nil error map.
func Validate(d domain.TransferDraft) (domain.TransferDraft, FieldErrors) {
	normalized := Normalize(d)
	errs := FieldErrors{}

	if !normalized.TransferType.Valid() {
		errs["transferType"] = "transferType must be domestic or international"
	}
	if len(normalized.RecipientName) < 2 {
		errs["recipientName"] = "recipientName must be at least 2 characters"
	}
	if len(normalized.BankName) < 2 {
		errs["bankName"] = "bankName must be at least 2 characters"
	}
	if !isPositiveAmount(normalized.Amount) {
		errs["amount"] = "amount must be a number greater than zero"
	}

	switch normalized.TransferType {
	case domain.TransferTypeDomestic:
		if len(normalized.Domestic.AccountNumber) < 8 {
			errs["accountNumber"] = "accountNumber must be at least 8 characters"
		}
		if len(normalized.Domestic.RoutingNumber) != 9 {
			errs["routingNumber"] = "routingNumber must be exactly 9 characters"
		}
	case domain.TransferTypeInternational:
		if len(normalized.International.IBAN) < 15 {
			errs["iban"] = "iban must be at least 15 characters"
		}
		if l := len(normalized.International.SwiftCode); l < 8 || l > 11 {
			errs["swiftCode"] = "swiftCode must be between 8 and 11 characters"
		}
		if len(normalized.International.BankAddress) < 5 {
			errs["bankAddress"] = "bankAddress must be at least 5 characters"
		}
		if len(normalized.International.BankCountry) < 2 {
			errs["bankCountry"] = "bankCountry must be at least 2 characters"
		}
		if len(normalized.International.Currency) < 3 {
			errs["currency"] = "currency must be at least 3 characters"
		}
	}

	// Cross-field rule: the Stripe sub-fields are required iff Stripe is
	// enabled, and failures attach to the specific field, not to useStripe.
	if normalized.Stripe.UseStripe {
		if len(normalized.Stripe.StripeAccountID) < 3 {
			errs["stripeAccountId"] = "stripeAccountId must be at least 3 characters"
		}
		if len(normalized.Stripe.StripePublishableKey) < 10 {
			errs["stripePublishableKey"] = "stripePublishableKey must be at least 10 characters"
		}
	}

	if len(errs) > 0 {
		return d, errs
	}
	return normalized, nil
}

// Normalize trims every field and upper-cases the currency and SWIFT codes.
// It touches only the detail group selected by TransferType.
func Normalize(d domain.TransferDraft) domain.TransferDraft {
	out := d
	out.RecipientName = strings.TrimSpace(d.RecipientName)
	out.BankName = strings.TrimSpace(d.BankName)
	out.Amount = strings.TrimSpace(d.Amount)
	out.Description = strings.TrimSpace(d.Description)

	switch d.TransferType {
	case domain.TransferTypeDomestic:
		out.Domestic.AccountNumber = strings.TrimSpace(d.Domestic.AccountNumber)
		out.Domestic.RoutingNumber = strings.TrimSpace(d.Domestic.RoutingNumber)
		out.International = domain.InternationalDetails{}
	case domain.TransferTypeInternational:
		out.International.IBAN = strings.ToUpper(strings.TrimSpace(d.International.IBAN))
		out.International.SwiftCode = strings.ToUpper(strings.TrimSpace(d.International.SwiftCode))
		out.International.BankAddress = strings.TrimSpace(d.International.BankAddress)
		out.International.BankCountry = strings.TrimSpace(d.International.BankCountry)
		out.International.Currency = strings.ToUpper(strings.TrimSpace(d.International.Currency))
		out.Domestic = domain.DomesticDetails{}
	}

	out.Stripe.StripeAccountID = strings.TrimSpace(d.Stripe.StripeAccountID)
	out.Stripe.StripePublishableKey = strings.TrimSpace(d.Stripe.StripePublishableKey)
	return out
}

func isPositiveAmount(value string) bool {
	if value == "" {
		return false
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return amount.GreaterThan(decimal.Zero)
}
