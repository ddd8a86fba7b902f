package http

import (
	"net/http"

	"partsphere-backend/internal/service"
)

type WalletHandler struct {
	wallet service.WalletService
}

func NewWalletHandler(wallet service.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

type depositRequest struct {
	Amount int32  `json:"amount"`
	OTP    string `json:"otp"`
}

func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.wallet.Deposit(r.Context(), userID, req.Amount, req.OTP); err != nil {
		respondServiceError(w, err)
		return
	}
	h.respondBalance(w, r, userID)
}

type withdrawRequest struct {
	Amount int32 `json:"amount"`
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req withdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.wallet.Withdraw(r.Context(), userID, req.Amount); err != nil {
		respondServiceError(w, err)
		return
	}
	h.respondBalance(w, r, userID)
}

type payRequest struct {
	OrderID int32 `json:"order_id"`
}

func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req payRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.wallet.Pay(r.Context(), userID, req.OrderID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

// Wallet returns the caller's balance together with the full ledger history.
func (h *WalletHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	balance, err := h.wallet.Balance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	transactions, err := h.wallet.Transactions(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"balance":      balance,
		"transactions": transactions,
	})
}

type bankOTPRequest struct {
	Mobile string `json:"mobile"`
}

func (h *WalletHandler) SendBankOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFrom(r.Context())

	var req bankOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErrorCode(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}
	if err := h.wallet.SendBankOTP(r.Context(), userID, req.Mobile); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *WalletHandler) respondBalance(w http.ResponseWriter, r *http.Request, userID int32) {
	balance, err := h.wallet.Balance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"balance": balance})
}
