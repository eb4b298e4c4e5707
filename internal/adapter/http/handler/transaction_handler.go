package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trongnd106/Banking-system/internal/adapter/http/dto"
	"github.com/trongnd106/Banking-system/internal/adapter/http/middleware"
	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/usecase"
)

// TransferService executes fund transfers.
type TransferService interface {
	Create(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
}

// HistoryService reads and manages transaction history.
type HistoryService interface {
	GetAll(ctx context.Context, page int) (domain.Page[*domain.Transaction], error)
	GetMyTransactions(ctx context.Context, username string, page int) (domain.Page[*domain.Transaction], error)
	GetDetail(ctx context.Context, id string) (*usecase.TransactionDetail, error)
	Delete(ctx context.Context, id string) error
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transferUC TransferService
	historyUC  HistoryService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transferUC TransferService, historyUC HistoryService) *TransactionHandler {
	return &TransactionHandler{
		transferUC: transferUC,
		historyUC:  historyUC,
	}
}

// Create executes a transfer between two accounts.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, mapDomainError(err), "invalid transaction request", err.Error())
		return
	}

	txn, err := h.transferUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// List returns one page of all transactions.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)

	result, err := h.historyUC.GetAll(r.Context(), page)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionPageFromDomain(result))
}

// ListMine returns one page of the authenticated user's transactions.
func (h *TransactionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	page := parseIntQuery(r, "page", 1)

	result, err := h.historyUC.GetMyTransactions(r.Context(), user.Username, page)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionPageFromDomain(result))
}

// Get returns the composed detail view of one transaction.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	detail, err := h.historyUC.GetDetail(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DetailFromUseCase(detail))
}

// Delete soft-deletes a transaction from history views.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.historyUC.Delete(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
