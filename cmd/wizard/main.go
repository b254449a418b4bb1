// Command wizard runs the transfer flow interactively in the terminal. It
// drives the same wizard service the HTTP surface uses, one prompt per form
// field, with the masked summary shown before confirmation.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/flutterdev77/purple-bank-transfer/internal/backend"
	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
	"github.com/flutterdev77/purple-bank-transfer/internal/summary"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/services"
	"github.com/flutterdev77/purple-bank-transfer/internal/validation"
)

func main() {
	var (
		delayFlag   = flag.Duration("delay", 1500*time.Millisecond, "Simulated backend round-trip delay")
		timeoutFlag = flag.Duration("timeout", 10*time.Second, "Submission timeout")
	)
	flag.Parse()

	client := backend.NewSimulatedClient(backend.WithDelay(*delayFlag))
	wizard := services.NewWizardService(client)
	defer wizard.Close()

	for {
		state := wizard.State()

		switch state.Step {
		case domain.StepForm:
			draft, err := collectDraft(state.Draft)
			if err != nil {
				log.Fatalf("read form: %v", err)
			}

			_, err = wizard.SubmitForReview(draft)
			var fieldErrs validation.FieldErrors
			if errors.As(err, &fieldErrs) {
				fmt.Println("Please correct the following fields:")
				for _, field := range sortedKeys(fieldErrs) {
					fmt.Printf("  - %s\n", fieldErrs[field])
				}
				continue
			}
			if err != nil {
				log.Fatalf("submit for review: %v", err)
			}

		case domain.StepSummary:
			printSummary(*state.CommittedDraft)
			if state.SubmissionError != "" {
				fmt.Printf("\n%s\n", state.SubmissionError)
			}

			choice := ""
			prompt := &survey.Select{
				Message: "What next?",
				Options: []string{"Confirm transfer", "Edit details", "Quit"},
			}
			if err := survey.AskOne(prompt, &choice); err != nil {
				log.Fatalf("read choice: %v", err)
			}

			switch choice {
			case "Confirm transfer":
				ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
				_, err := wizard.ConfirmTransfer(ctx)
				cancel()
				if err != nil && !errors.Is(err, domain.ErrSubmissionRejected) && !errors.Is(err, domain.ErrSubmissionTimeout) {
					log.Fatalf("confirm transfer: %v", err)
				}
			case "Edit details":
				if err := wizard.Edit(); err != nil {
					log.Fatalf("edit: %v", err)
				}
			default:
				return
			}

		case domain.StepSuccess:
			fmt.Printf("\nTransfer submitted. Transaction ID: %s\n\n", state.Result.TransactionID)

			again := false
			if err := survey.AskOne(&survey.Confirm{Message: "Start a new transfer?"}, &again); err != nil {
				log.Fatalf("read choice: %v", err)
			}
			if !again {
				return
			}
			if err := wizard.StartNewTransfer(); err != nil {
				log.Fatalf("start new transfer: %v", err)
			}
		}
	}
}

func collectDraft(current domain.TransferDraft) (domain.TransferDraft, error) {
	draft := current

	transferType := string(current.TransferType)
	if err := survey.AskOne(&survey.Select{
		Message: "Transfer type:",
		Options: []string{string(domain.TransferTypeDomestic), string(domain.TransferTypeInternational)},
		Default: transferType,
	}, &transferType); err != nil {
		return draft, err
	}
	if domain.TransferType(transferType) != current.TransferType {
		// Switching the variant drops the other group's values, same as the
		// form does.
		draft = domain.TransferDraft{
			TransferType:  domain.TransferType(transferType),
			RecipientName: current.RecipientName,
			BankName:      current.BankName,
			Amount:        current.Amount,
			Description:   current.Description,
		}
	}

	common := []*survey.Question{
		{
			Name:   "recipientName",
			Prompt: &survey.Input{Message: "Recipient name:", Default: draft.RecipientName},
		},
		{
			Name:   "bankName",
			Prompt: &survey.Input{Message: "Bank name:", Default: draft.BankName},
		},
		{
			Name:      "amount",
			Prompt:    &survey.Input{Message: "Amount:", Default: draft.Amount},
			Transform: survey.TransformString(validation.SanitizeAmount),
		},
		{
			Name:   "description",
			Prompt: &survey.Input{Message: "Description (optional):", Default: draft.Description},
		},
	}

	commonAnswers := struct {
		RecipientName string
		BankName      string
		Amount        string
		Description   string
	}{}
	if err := survey.Ask(common, &commonAnswers); err != nil {
		return draft, err
	}
	draft.RecipientName = commonAnswers.RecipientName
	draft.BankName = commonAnswers.BankName
	draft.Amount = commonAnswers.Amount
	draft.Description = commonAnswers.Description

	switch draft.TransferType {
	case domain.TransferTypeDomestic:
		questions := []*survey.Question{
			{
				Name:   "accountNumber",
				Prompt: &survey.Input{Message: "Account number:", Default: draft.Domestic.AccountNumber},
			},
			{
				Name:   "routingNumber",
				Prompt: &survey.Input{Message: "Routing number:", Default: draft.Domestic.RoutingNumber},
			},
		}
		answers := struct {
			AccountNumber string
			RoutingNumber string
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return draft, err
		}
		draft.Domestic = domain.DomesticDetails{
			AccountNumber: answers.AccountNumber,
			RoutingNumber: answers.RoutingNumber,
		}

	case domain.TransferTypeInternational:
		questions := []*survey.Question{
			{
				Name:   "iban",
				Prompt: &survey.Input{Message: "IBAN:", Default: draft.International.IBAN},
			},
			{
				Name:   "swiftCode",
				Prompt: &survey.Input{Message: "SWIFT code:", Default: draft.International.SwiftCode},
			},
			{
				Name:   "bankAddress",
				Prompt: &survey.Input{Message: "Bank address:", Default: draft.International.BankAddress},
			},
			{
				Name:   "bankCountry",
				Prompt: &survey.Input{Message: "Bank country:", Default: draft.International.BankCountry},
			},
			{
				Name:   "currency",
				Prompt: &survey.Input{Message: "Currency code:", Default: draft.International.Currency},
			},
		}
		answers := struct {
			IBAN        string
			SwiftCode   string
			BankAddress string
			BankCountry string
			Currency    string
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return draft, err
		}
		draft.International = domain.InternationalDetails{
			IBAN:        answers.IBAN,
			SwiftCode:   answers.SwiftCode,
			BankAddress: answers.BankAddress,
			BankCountry: answers.BankCountry,
			Currency:    answers.Currency,
		}
	}

	useStripe := draft.Stripe.UseStripe
	if err := survey.AskOne(&survey.Confirm{Message: "Route through Stripe?", Default: useStripe}, &useStripe); err != nil {
		return draft, err
	}
	if useStripe {
		questions := []*survey.Question{
			{
				Name:   "stripeAccountId",
				Prompt: &survey.Input{Message: "Stripe account ID:", Default: draft.Stripe.StripeAccountID},
			},
			{
				Name:   "stripePublishableKey",
				Prompt: &survey.Input{Message: "Stripe publishable key:", Default: draft.Stripe.StripePublishableKey},
			},
		}
		answers := struct {
			StripeAccountID      string `survey:"stripeAccountId"`
			StripePublishableKey string `survey:"stripePublishableKey"`
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return draft, err
		}
		draft.Stripe = domain.StripeDetails{
			UseStripe:            true,
			StripeAccountID:      answers.StripeAccountID,
			StripePublishableKey: answers.StripePublishableKey,
		}
	} else {
		draft.Stripe = domain.StripeDetails{}
	}

	return draft, nil
}

func printSummary(committed domain.TransferDraft) {
	model := summary.Render(committed)

	fmt.Println("\nReview your transfer:")
	for _, row := range model.Rows {
		fmt.Printf("  %-15s %s\n", row.Label+":", row.Value)
	}
}

func sortedKeys(fieldErrs validation.FieldErrors) []string {
	keys := make([]string, 0, len(fieldErrs))
	for k := range fieldErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
