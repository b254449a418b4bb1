package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/controller"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/models"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/router"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/session"
	"github.com/flutterdev77/purple-bank-transfer/internal/backend"
	"github.com/flutterdev77/purple-bank-transfer/internal/commons"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/service_interfaces"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/services"
)

func newTestMux() (*http.ServeMux, *backend.SimulatedClient) {
	client := backend.NewSimulatedClient(backend.WithDelay(time.Millisecond))
	sessions := session.NewStore(func() service_interfaces.WizardService {
		return services.NewWizardService(client)
	})
	mux := router.New(
		controller.NewWizardController(sessions),
		controller.NewHistoryController(client),
		nil,
	)
	return mux, client
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) (*httptest.ResponseRecorder, commons.Response[models.WizardStateResponse]) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var parsed commons.Response[models.WizardStateResponse]
	if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response %q: %v", rr.Body.String(), err)
	}
	return rr, parsed
}

func validSubmitBody() models.TransferDraftRequest {
	return models.TransferDraftRequest{
		TransferType:  "domestic",
		RecipientName: "John Doe",
		BankName:      "Bank A",
		Amount:        "250.00",
		AccountNumber: "1234567890",
		RoutingNumber: "123456789",
	}
}

func createSession(t *testing.T, mux *http.ServeMux) string {
	t.Helper()

	rr, parsed := doJSON(t, mux, http.MethodPost, "/wizard", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if parsed.Data == nil || parsed.Data.SessionID == "" {
		t.Fatal("expected a session id in the create response")
	}
	return parsed.Data.SessionID
}

func TestWizardFlowOverHTTP(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	rr, parsed := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/submit", validSubmitBody())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (%s)", http.StatusOK, rr.Code, rr.Body.String())
	}
	if parsed.Data.Step != "summary" {
		t.Fatalf("expected summary step, got %q", parsed.Data.Step)
	}
	if parsed.Data.Summary == nil {
		t.Fatal("expected a summary on the summary step")
	}

	maskedFound := false
	for _, row := range parsed.Data.Summary.Rows {
		if row.Label == "Account Number" && row.Value == "******7890" {
			maskedFound = true
		}
	}
	if !maskedFound {
		t.Fatalf("expected masked account number row, got %+v", parsed.Data.Summary.Rows)
	}

	rr, parsed = doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/confirm", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (%s)", http.StatusOK, rr.Code, rr.Body.String())
	}
	if parsed.Data.Step != "success" {
		t.Fatalf("expected success step, got %q", parsed.Data.Step)
	}
	if parsed.Data.Transaction == nil || parsed.Data.Transaction.TransactionID == "" {
		t.Fatal("expected a transaction id on success")
	}

	rr, parsed = doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/new", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if parsed.Data.Step != "form" {
		t.Fatalf("expected form step after starting over, got %q", parsed.Data.Step)
	}
}

func TestSubmitValidationErrorsPerField(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	body := validSubmitBody()
	body.RoutingNumber = "12345"

	rr, parsed := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/submit", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if len(parsed.FieldErrors) != 1 {
		t.Fatalf("expected exactly one field error, got %+v", parsed.FieldErrors)
	}
	if parsed.FieldErrors["routingNumber"] == "" {
		t.Fatalf("expected an error on routingNumber, got %+v", parsed.FieldErrors)
	}
}

func TestSubmitSanitizesAmount(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	body := validSubmitBody()
	body.Amount = "$250.00"

	rr, _ := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/submit", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected sanitized amount to pass, got %d (%s)", rr.Code, rr.Body.String())
	}
}

func TestSaveDraftDoesNotValidate(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	body := validSubmitBody()
	body.RoutingNumber = "1" // incomplete, but a draft save must still succeed

	rr, parsed := doJSON(t, mux, http.MethodPut, "/wizard/"+id+"/draft", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (%s)", http.StatusOK, rr.Code, rr.Body.String())
	}
	if parsed.Data.Step != "form" {
		t.Fatalf("expected to stay on the form step, got %q", parsed.Data.Step)
	}
	if len(parsed.FieldErrors) != 0 {
		t.Fatalf("draft save must not report validation errors, got %+v", parsed.FieldErrors)
	}
}

func TestConfirmOutsideSummaryConflicts(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	rr, _ := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/confirm", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestEditReturnsToForm(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	rr, _ := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/submit", validSubmitBody())
	if rr.Code != http.StatusOK {
		t.Fatalf("submit failed: %d", rr.Code)
	}

	rr, parsed := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/edit", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if parsed.Data.Step != "form" {
		t.Fatalf("expected form step, got %q", parsed.Data.Step)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	mux, _ := newTestMux()

	rr, _ := doJSON(t, mux, http.MethodGet, "/wizard/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestDeletedSessionIsGoneFromStore(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	rr, _ := doJSON(t, mux, http.MethodDelete, "/wizard/"+id, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	rr, _ = doJSON(t, mux, http.MethodGet, "/wizard/"+id, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d after delete, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestTransferHistoryEndpoint(t *testing.T) {
	mux, _ := newTestMux()
	id := createSession(t, mux)

	if rr, _ := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/submit", validSubmitBody()); rr.Code != http.StatusOK {
		t.Fatalf("submit failed: %d", rr.Code)
	}
	if rr, _ := doJSON(t, mux, http.MethodPost, "/wizard/"+id+"/confirm", nil); rr.Code != http.StatusOK {
		t.Fatalf("confirm failed: %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var parsed commons.Response[[]models.TransferRecordResponse]
	if err := json.Unmarshal(rr.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if parsed.Data == nil || len(*parsed.Data) != 1 {
		t.Fatalf("expected one history record, got %+v", parsed.Data)
	}
	if (*parsed.Data)[0].Status != "SUCCESS" {
		t.Fatalf("expected SUCCESS record, got %q", (*parsed.Data)[0].Status)
	}
}
