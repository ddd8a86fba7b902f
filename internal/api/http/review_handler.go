package http

import (
	"net/http"

	"partsphere-backend/internal/service"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	OrderID int32  `json:"order_id"`
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	review, err := h.reviews.Submit(r.Context(), userID, req.OrderID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}
