package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransferHandler struct {
	transferService *service.TransferService
	logger          *zap.Logger
}

func NewTransferHandler(transferService *service.TransferService, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		logger:          logger,
	}
}

// List returns transfers filtered by status, order or branch
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &repository.TransferFilters{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.TransferStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Unknown transfer status: "+s)
			return
		}
		filters.Status = &status
	}

	if o := r.URL.Query().Get("order_id"); o != "" {
		id, err := uuid.Parse(o)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "order_id must be a valid UUID")
			return
		}
		filters.OrderID = &id
	}

	if b := r.URL.Query().Get("branch_id"); b != "" {
		id, err := uuid.Parse(b)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "branch_id must be a valid UUID")
			return
		}
		filters.BranchID = &id
	}

	transfers, err := h.transferService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list transfers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to list transfers")
		return
	}

	respondJSON(w, http.StatusOK, transfers)
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transfer, err := h.transferService.Create(r.Context(), &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to create transfer", zap.Error(err))
		}
		respondServiceError(w, err, "Failed to create transfer")
		return
	}

	respondMessage(w, http.StatusCreated, transfer, "Transfer created successfully")
}

func (h *TransferHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid transfer ID")
		return
	}

	transfer, err := h.transferService.GetByID(r.Context(), id)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to get transfer", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to get transfer")
		return
	}

	respondJSON(w, http.StatusOK, transfer)
}

// Advance moves a transfer through its lifecycle
func (h *TransferHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid transfer ID")
		return
	}

	var req domain.UpdateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	transfer, err := h.transferService.Advance(r.Context(), id, &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to advance transfer", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to update transfer")
		return
	}

	respondMessage(w, http.StatusOK, transfer, "Transfer updated successfully")
}
