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

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List returns recent clients, or a name/phone search when q is given
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to list clients")
		return
	}

	respondJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to get client", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to get client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "Failed to create client")
		return
	}

	respondMessage(w, http.StatusCreated, client, "Client created successfully")
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, "Invalid client ID")
		return
	}

	var req domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		if isInternal(err) {
			h.logger.Error("failed to update client", zap.String("id", id.String()), zap.Error(err))
		}
		respondServiceError(w, err, "Failed to update client")
		return
	}

	respondMessage(w, http.StatusOK, client, "Client updated successfully")
}
