package http

import (
	"net/http"

	"partsphere-backend/internal/security"
	"partsphere-backend/internal/service"
	"partsphere-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Items        *ItemHandler
	Orders       *OrderHandler
	Wallet       *WalletHandler
	Chats        *ChatHandler
	Reviews      *ReviewHandler
	Verification *VerificationHandler
	Admin        *AdminHandler
}

// NewRouter wires every endpoint under /api. localStorage is nil when images
// live in a bucket.
func NewRouter(h Handlers, tokens security.TokenManager, auth service.AuthService, localStorage *storage.LocalStorage) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/parts", h.Items.List).Methods(http.MethodGet)
	api.HandleFunc("/parts/{id:[0-9]+}", h.Items.Get).Methods(http.MethodGet)
	api.HandleFunc("/items/{id:[0-9]+}/bookings", h.Items.Bookings).Methods(http.MethodGet)
	api.HandleFunc("/otp/send", h.Verification.SendOTP).Methods(http.MethodPost)
	api.HandleFunc("/otp/verify", h.Verification.VerifyOTP).Methods(http.MethodPost)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(tokens))
	authed.HandleFunc("/user/me", h.Auth.Me).Methods(http.MethodGet)
	authed.HandleFunc("/parts", h.Items.Create).Methods(http.MethodPost)
	authed.HandleFunc("/parts/{id:[0-9]+}", h.Items.Update).Methods(http.MethodPut)
	authed.HandleFunc("/parts/{id:[0-9]+}", h.Items.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/orders/request", h.Orders.Request).Methods(http.MethodPost)
	authed.HandleFunc("/orders", h.Orders.List).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}/approve", h.Orders.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{id:[0-9]+}/confirm", h.Orders.Confirm).Methods(http.MethodPost)
	authed.HandleFunc("/wallet", h.Wallet.Wallet).Methods(http.MethodGet)
	authed.HandleFunc("/wallet/deposit", h.Wallet.Deposit).Methods(http.MethodPost)
	authed.HandleFunc("/wallet/withdraw", h.Wallet.Withdraw).Methods(http.MethodPost)
	authed.HandleFunc("/wallet/pay", h.Wallet.Pay).Methods(http.MethodPost)
	authed.HandleFunc("/bank/otp", h.Wallet.SendBankOTP).Methods(http.MethodPost)
	authed.HandleFunc("/chats", h.Chats.List).Methods(http.MethodGet)
	authed.HandleFunc("/chats/{id:[0-9]+}/messages", h.Chats.Messages).Methods(http.MethodGet)
	authed.HandleFunc("/messages", h.Chats.PostMessage).Methods(http.MethodPost)
	authed.HandleFunc("/support/chat", h.Chats.SupportThread).Methods(http.MethodPost)
	authed.HandleFunc("/reviews", h.Reviews.Submit).Methods(http.MethodPost)
	authed.HandleFunc("/verify/submit", h.Verification.Submit).Methods(http.MethodPost)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware(tokens), adminMiddleware(auth))
	admin.HandleFunc("/pending", h.Admin.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/verified", h.Admin.ListVerified).Methods(http.MethodGet)
	admin.HandleFunc("/user/{id:[0-9]+}/status", h.Admin.SetUserStatus).Methods(http.MethodPut)
	admin.HandleFunc("/wallet", h.Admin.PlatformWallet).Methods(http.MethodGet)
	admin.HandleFunc("/support-chats", h.Chats.ListSupportChats).Methods(http.MethodGet)

	if localStorage != nil {
		uploads := NewUploadHandler(localStorage)
		r.HandleFunc("/uploads/{key}", uploads.Serve).Methods(http.MethodGet)
	}

	return r
}
