package http

import (
	"net/http"

	"partsphere-backend/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderRequestBody struct {
	ItemID       int32  `json:"item_id"`
	StartDate    string `json:"start_date"`
	DurationDays int32  `json:"duration_days"`
}

func (h *OrderHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req orderRequestBody
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	order, err := h.orders.Request(r.Context(), userID, req.ItemID, req.StartDate, req.DurationDays)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}
	if err := h.orders.Approve(r.Context(), userID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid id")
		return
	}
	if err := h.orders.Confirm(r.Context(), userID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())
	orders, err := h.orders.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
