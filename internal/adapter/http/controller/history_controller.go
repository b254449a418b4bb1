package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/flutterdev77/purple-bank-transfer/internal/adapter/http/models"
	"github.com/flutterdev77/purple-bank-transfer/internal/commons"
	"github.com/flutterdev77/purple-bank-transfer/internal/domain"
)

type TransferHistoryReader interface {
	GetTransferHistory(ctx context.Context) ([]domain.TransferRecord, error)
}

// HistoryController exposes the backend's prior transfers as a read-only
// view. It sits outside the wizard's state machine on purpose.
type HistoryController struct {
	history TransferHistoryReader
}

func NewHistoryController(history TransferHistoryReader) *HistoryController {
	return &HistoryController{history: history}
}

func (c *HistoryController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.list))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}

	mux.Handle("GET /transfers", handler)
}

func (c *HistoryController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	records, err := c.history.GetTransferHistory(r.Context())
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[[]models.TransferRecordResponse]("failed to load transfer history")
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	out := make([]models.TransferRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, models.NewTransferRecordResponse(record))
	}

	response := commons.SuccessResponse("transfer history", out)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
