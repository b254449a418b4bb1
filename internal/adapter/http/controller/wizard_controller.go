package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/models"
	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/session"
	"github.com/flutterdev77/purple-bank-transfer/internal/commons"
	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
	"github.com/flutterdev77/purple-bank-transfer/internal/usecase/service_interfaces"
	"github.com/flutterdev77/purple-bank-transfer/internal/validation"
)

type WizardController struct {
	sessions *session.Store
}

func NewWizardController(sessions *session.Store) *WizardController {
	return &WizardController{sessions: sessions}
}

func (c *WizardController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /wizard", wrap(c.create))
	mux.Handle("GET /wizard/{id}", wrap(c.state))
	mux.Handle("POST /wizard/{id}/variant", wrap(c.selectVariant))
	mux.Handle("PUT /wizard/{id}/draft", wrap(c.saveDraft))
	mux.Handle("POST /wizard/{id}/submit", wrap(c.submit))
	mux.Handle("POST /wizard/{id}/confirm", wrap(c.confirm))
	mux.Handle("POST /wizard/{id}/edit", wrap(c.edit))
	mux.Handle("POST /wizard/{id}/new", wrap(c.startNew))
	mux.Handle("DELETE /wizard/{id}", wrap(c.remove))
}

func (c *WizardController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, wizard := c.sessions.Create()
	response := commons.SuccessResponse("wizard session created", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *WizardController) state(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	response := commons.SuccessResponse("wizard state", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) selectVariant(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	var req models.SelectVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.WizardStateResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	if err := wizard.SelectVariant(domain.TransferType(req.TransferType)); err != nil {
		c.writeWizardError(w, r, id, wizard, err, start)
		return
	}

	response := commons.SuccessResponse("variant selected", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// saveDraft keeps the server-side working draft in step with the form while
// the user is still typing. Nothing is validated here.
func (c *WizardController) saveDraft(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	var req models.TransferDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.WizardStateResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	draft, err := req.ToDomain()
	if err != nil {
		response := commons.ErrorResponse[models.WizardStateResponse]("invalid draft", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	if err := wizard.UpdateDraft(draft); err != nil {
		c.writeWizardError(w, r, id, wizard, err, start)
		return
	}

	response := commons.SuccessResponse("draft saved", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	var req models.TransferDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.WizardStateResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	draft, err := req.ToDomain()
	if err != nil {
		response := commons.ErrorResponse[models.WizardStateResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	if _, err := wizard.SubmitForReview(draft); err != nil {
		c.writeWizardError(w, r, id, wizard, err, start)
		return
	}

	response := commons.SuccessResponse("draft committed for review", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) confirm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	if _, err := wizard.ConfirmTransfer(r.Context()); err != nil {
		c.writeWizardError(w, r, id, wizard, err, start)
		return
	}

	response := commons.SuccessResponse("transfer submitted", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) edit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	if err := wizard.Edit(); err != nil {
		c.writeWizardError(w, r, id, wizard, err, start)
		return
	}

	response := commons.SuccessResponse("back to form", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) startNew(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, wizard, ok := c.lookup(w, r, start)
	if !ok {
		return
	}

	if err := wizard.StartNewTransfer(); err != nil {
		c.writeWizardError(w, r, id, wizard, err, start)
		return
	}

	response := commons.SuccessResponse("new transfer started", models.NewWizardStateResponse(id, wizard.State()))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) remove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id := r.PathValue("id")
	c.sessions.Delete(id)

	response := commons.SuccessResponse("wizard session closed", struct{}{})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *WizardController) lookup(w http.ResponseWriter, r *http.Request, start time.Time) (string, service_interfaces.WizardService, bool) {
	id := r.PathValue("id")
	wizard, ok := c.sessions.Get(id)
	if !ok {
		response := commons.ErrorResponse[models.WizardStateResponse]("wizard session not found")
		writeJSON(w, http.StatusNotFound, response)
		logResponse(r, http.StatusNotFound, response, start)
		return "", nil, false
	}
	return id, wizard, true
}

func (c *WizardController) writeWizardError(w http.ResponseWriter, r *http.Request, id string, wizard service_interfaces.WizardService, err error, start time.Time) {
	logError(r, err, nil)

	var fieldErrs validation.FieldErrors
	var transitionErr *domain.InvalidTransitionError

	status := http.StatusInternalServerError
	var response commons.Response[models.WizardStateResponse]

	switch {
	case errors.As(err, &fieldErrs):
		status = http.StatusBadRequest
		response = commons.ValidationErrorResponse[models.WizardStateResponse]("validation failed", fieldErrs)
	case errors.As(err, &transitionErr):
		status = http.StatusConflict
		response = commons.ErrorResponse[models.WizardStateResponse]("invalid wizard transition", err.Error())
	case errors.Is(err, domain.ErrSubmissionInFlight):
		status = http.StatusConflict
		response = commons.ErrorResponse[models.WizardStateResponse]("submission already in progress")
	case errors.Is(err, domain.ErrWizardClosed):
		status = http.StatusGone
		response = commons.ErrorResponse[models.WizardStateResponse]("wizard session closed")
	case errors.Is(err, domain.ErrSubmissionTimeout), errors.Is(err, domain.ErrSubmissionRejected):
		status = http.StatusUnprocessableEntity
		state := models.NewWizardStateResponse(id, wizard.State())
		response = commons.ErrorResponse[models.WizardStateResponse]("transfer submission failed", wizard.State().SubmissionError)
		response.Data = &state
	default:
		response = commons.ErrorResponse[models.WizardStateResponse]("unexpected error", err.Error())
	}

	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}
