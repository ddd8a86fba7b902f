package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/service"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondErrorCode(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// respondServiceError maps service sentinels onto stable wire codes. Anything
// unrecognized is logged and surfaced as internal_error without detail.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondErrorCode(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondErrorCode(w, http.StatusUnauthorized, "unauthenticated", "invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		respondErrorCode(w, http.StatusForbidden, "forbidden", "you do not have access to this resource")
	case errors.Is(err, service.ErrNotFound):
		respondErrorCode(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, service.ErrInvalidState):
		respondErrorCode(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, service.ErrAlreadyReviewed):
		respondErrorCode(w, http.StatusConflict, "already_reviewed", "this order has already been reviewed")
	case errors.Is(err, service.ErrInsufficientFunds):
		respondErrorCode(w, http.StatusBadRequest, "insufficient_funds", "wallet balance does not cover this amount")
	case errors.Is(err, service.ErrInvalidOTP):
		respondErrorCode(w, http.StatusBadRequest, "invalid_otp", "the code is invalid or has expired")
	case errors.Is(err, service.ErrVerificationRequired):
		respondErrorCode(w, http.StatusForbidden, "verification_required", "identity verification is required for this action")
	case errors.Is(err, service.ErrDuplicateUser):
		respondErrorCode(w, http.StatusConflict, "validation", "an account with that name or email already exists")
	default:
		logger.Error("Unhandled service error", "error", err)
		respondErrorCode(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
