package handler

import (
	"net/http"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// branchFilter reads the optional branch_id query parameter
func branchFilter(r *http.Request) (*uuid.UUID, bool) {
	b := r.URL.Query().Get("branch_id")
	if b == "" {
		return nil, true
	}
	id, err := uuid.Parse(b)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// GetDashboard returns the current-month snapshot
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	branchID, ok := branchFilter(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "branch_id must be a valid UUID")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), branchID)
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to build dashboard")
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}

// GetStats serves the stats endpoint. type=daily_sales returns per-day
// intake and revenue for the current month; type=top_devices returns the
// most repaired device type and brand combinations.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	branchID, ok := branchFilter(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "branch_id must be a valid UUID")
		return
	}

	switch r.URL.Query().Get("type") {
	case "daily_sales":
		stats, err := h.dashboardService.GetDailySales(r.Context(), branchID)
		if err != nil {
			h.logger.Error("failed to get daily sales", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to get stats")
			return
		}
		respondJSON(w, http.StatusOK, stats)
	case "top_devices":
		stats, err := h.dashboardService.GetTopDevices(r.Context(), branchID)
		if err != nil {
			h.logger.Error("failed to get top devices", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to get stats")
			return
		}
		respondJSON(w, http.StatusOK, stats)
	default:
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "type must be daily_sales or top_devices")
	}
}
