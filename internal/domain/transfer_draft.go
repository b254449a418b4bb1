package domain

type TransferType string

const (
	TransferTypeDomestic      TransferType = "domestic"
	TransferTypeInternational TransferType = "international"
)

func (t TransferType) Valid() bool {
	return t == TransferTypeDomestic || t == TransferTypeInternational
}

type DomesticDetails struct {
	AccountNumber string
	RoutingNumber string
}

type InternationalDetails struct {
	IBAN        string
	SwiftCode   string
	BankAddress string
	BankCountry string
	Currency    string
}

type StripeDetails struct {
	UseStripe            bool
	StripeAccountID      string
	StripePublishableKey string
}

// TransferDraft is the in-progress transfer form data. Exactly one of the
// two detail groups is populated at a time, selected by TransferType;
// switching the type discards the other group's values.
type TransferDraft struct {
	TransferType  TransferType
	RecipientName string
	BankName      string
	Amount        string
	Description   string
	Domestic      DomesticDetails
	International InternationalDetails
	Stripe        StripeDetails
}

func NewTransferDraft() TransferDraft {
	return TransferDraft{TransferType: TransferTypeDomestic}
}
