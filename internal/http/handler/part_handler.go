package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PartHandler struct {
	partService *service.PartService
	logger      *zap.Logger
}

func NewPartHandler(partService *service.PartService, logger *zap.Logger) *PartHandler {
	return &PartHandler{
		partService: partService,
		logger:      logger,
	}
}

// ListByOrder returns the part line items for the order named in order_id
func (h *PartHandler) ListByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.URL.Query().Get("order_id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "order_id must be a valid UUID")
		return
	}

	parts, err := h.partService.ListByOrder(r.Context(), orderID)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to list parts", zap.String("orderID", orderID.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to list parts")
		return
	}

	respondJSON(w, http.StatusOK, parts)
}

// Add records a part against an order and refreshes the order totals
func (h *PartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.AddPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	part, err := h.partService.Add(r.Context(), &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to add part", zap.Error(err))
		}
		respondServiceError(w, err, "Failed to add part")
		return
	}

	respondMessage(w, http.StatusCreated, part, "Part added successfully")
}

// Remove deletes a part line item and refreshes the order totals
func (h *PartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid part ID")
		return
	}

	if err := h.partService.Remove(r.Context(), id); err != nil {
		if isInternal(err) {
			h.logger.Error("failed to remove part", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to remove part")
		return
	}

	respondMessage(w, http.StatusOK, nil, "Part removed successfully")
}
