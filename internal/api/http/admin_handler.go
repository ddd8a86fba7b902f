package http

import (
	"net/http"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/service"
)

type AdminHandler struct {
	admin service.AdminService
}

func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListPendingUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) ListVerified(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListVerifiedUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}

	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.admin.SetUserStatus(r.Context(), userID, domain.VerificationStatus(req.Status)); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (h *AdminHandler) PlatformWallet(w http.ResponseWriter, r *http.Request) {
	balance, err := h.admin.PlatformBalance(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"balance": balance})
}
