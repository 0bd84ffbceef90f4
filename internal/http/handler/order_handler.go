package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/repository"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List returns order summaries filtered by status, branch and intake date
// range. Results are newest first, capped at 200 rows.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &repository.OrderFilters{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.OrderStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Unknown order status: "+s)
			return
		}
		filters.Status = &status
	}

	if b := r.URL.Query().Get("branch_id"); b != "" {
		id, err := uuid.Parse(b)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "branch_id must be a valid UUID")
			return
		}
		filters.BranchID = &id
	}

	if df := r.URL.Query().Get("date_from"); df != "" {
		if t, err := time.Parse("2006-01-02", df); err == nil {
			filters.DateFrom = &t
		}
	}
	if dt := r.URL.Query().Get("date_to"); dt != "" {
		if t, err := time.Parse("2006-01-02", dt); err == nil {
			// Include the whole day
			end := t.AddDate(0, 0, 1).Add(-time.Second)
			filters.DateTo = &end
		}
	}

	orders, err := h.orderService.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to list orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to create order", zap.Error(err))
		}
		respondServiceError(w, err, "Failed to create order")
		return
	}

	respondMessage(w, http.StatusCreated, order, "Order created successfully")
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to get order", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to get order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid order ID")
		return
	}

	var req domain.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), id, &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to update order", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to update order")
		return
	}

	respondMessage(w, http.StatusOK, order, "Order updated successfully")
}

// Cancel soft-cancels an order. The record stays in place and keeps showing
// up in listings with status cancelled.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid order ID")
		return
	}

	order, err := h.orderService.Cancel(r.Context(), id, r.URL.Query().Get("changed_by"))
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to cancel order", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to cancel order")
		return
	}

	respondMessage(w, http.StatusOK, order, "Order cancelled successfully")
}

// GetHistory returns an order's status transitions, newest first
func (h *OrderHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid order ID")
		return
	}

	history, err := h.orderService.GetHistory(r.Context(), id)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to get order history", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to get order history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}
