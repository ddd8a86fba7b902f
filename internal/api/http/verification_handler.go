package http

import (
	"net/http"

	"partsphere-backend/internal/service"
)

type VerificationHandler struct {
	verification service.VerificationService
}

func NewVerificationHandler(verification service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

type sendOTPRequest struct {
	Mobile string `json:"mobile"`
}

func (h *VerificationHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.verification.SendOTP(r.Context(), req.Mobile); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile"`
	Code   string `json:"code"`
}

func (h *VerificationHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.verification.VerifyOTP(r.Context(), req.Mobile, req.Code); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

// Submit accepts a multipart form with a "mobile" field and "selfie" and
// "id_proof" file parts.
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid multipart form")
		return
	}

	selfie, err := formUpload(r, "selfie")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "selfie image is required")
		return
	}
	idProof, err := formUpload(r, "id_proof")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "id proof image is required")
		return
	}

	if err := h.verification.Submit(r.Context(), userID, r.FormValue("mobile"), selfie, idProof); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "pending"})
}

func formUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}, nil
}
