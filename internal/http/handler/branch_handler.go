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

type BranchHandler struct {
	branchService *service.BranchService
	logger        *zap.Logger
}

func NewBranchHandler(branchService *service.BranchService, logger *zap.Logger) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
		logger:        logger,
	}
}

// List returns branches; pass active=true to hide deactivated ones
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	branches, err := h.branchService.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("failed to list branches", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to list branches")
		return
	}

	respondJSON(w, http.StatusOK, branches)
}

func (h *BranchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid branch ID")
		return
	}

	branch, err := h.branchService.GetByID(r.Context(), id)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to get branch", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to get branch")
		return
	}

	respondJSON(w, http.StatusOK, branch)
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	branch, err := h.branchService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create branch", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to create branch")
		return
	}

	respondMessage(w, http.StatusCreated, branch, "Branch created successfully")
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid branch ID")
		return
	}

	var req domain.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	branch, err := h.branchService.Update(r.Context(), id, &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to update branch", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to update branch")
		return
	}

	respondMessage(w, http.StatusOK, branch, "Branch updated successfully")
}

// Delete deactivates a branch; the record is kept for historical orders
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid branch ID")
		return
	}

	if err := h.branchService.Deactivate(r.Context(), id); err != nil {
		if isInternal(err) {
			h.logger.Error("failed to deactivate branch", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to deactivate branch")
		return
	}

	respondMessage(w, http.StatusOK, nil, "Branch deactivated successfully")
}
