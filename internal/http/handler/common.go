package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// respondJSON writes a success envelope around data
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIResponse{
		Success: true,
		Data:    data,
	})
}

// respondMessage writes a success envelope with data and a human message
func respondMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondWithError writes a failure envelope with a machine-stable code
func respondWithError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// respondValidationError sends a 400 with per-field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fieldErrors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldErrors[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIResponse{
		Success: false,
		Error:   domain.ErrorCodeValidation,
		Message: "One or more fields failed validation",
		Data:    fieldErrors,
	})
}

// respondServiceError maps service errors to the envelope. Unrecognized
// errors become a 500 with the fallback message; the caller logs them.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var transitionErr *service.InvalidTransitionError
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, domain.ErrorCodeNotFound, "Resource not found")
	case errors.As(err, &transitionErr):
		respondWithError(w, http.StatusConflict, domain.ErrorCodeInvalidTransition, transitionErr.Error())
	case errors.Is(err, service.ErrSameBranchTransfer):
		respondWithError(w, http.StatusConflict, domain.ErrorCodeConflict, service.ErrSameBranchTransfer.Error())
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, domain.ErrorCodeConflict, err.Error())
	case errors.Is(err, service.ErrReceivedByRequired):
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, service.ErrReceivedByRequired.Error())
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, domain.ErrorCodeValidation, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, fallback)
	}
}

// isInternal reports whether respondServiceError would treat err as a 500,
// so handlers know when to log it
func isInternal(err error) bool {
	var transitionErr *service.InvalidTransitionError
	return !errors.Is(err, service.ErrNotFound) &&
		!errors.As(err, &transitionErr) &&
		!errors.Is(err, service.ErrSameBranchTransfer) &&
		!errors.Is(err, service.ErrConflict) &&
		!errors.Is(err, service.ErrReceivedByRequired) &&
		!errors.Is(err, service.ErrInvalidInput)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its snake_case JSON
// equivalent
func toJSONFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	// Collapse runs produced by consecutive capitals (ID -> i_d)
	name := b.String()
	name = strings.ReplaceAll(name, "i_d", "id")
	return name
}
