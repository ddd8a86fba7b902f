package service

import (
	"context"
	"io"

	"partsphere-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error) // token, user
	Me(ctx context.Context, userID int32) (*domain.User, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID int32, item *domain.Item, imageName, imageType string, image io.Reader) (*domain.Item, error)
	Get(ctx context.Context, id int32) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, callerID int32, item *domain.Item) error
	Delete(ctx context.Context, callerID, itemID int32) error
	BlockedDates(ctx context.Context, itemID int32) ([]string, error)
}

type OrderService interface {
	Request(ctx context.Context, buyerID, itemID int32, startDate string, durationDays int32) (*domain.Order, error)
	Approve(ctx context.Context, callerID, orderID int32) error
	Confirm(ctx context.Context, callerID, orderID int32) error
	List(ctx context.Context, userID int32) ([]domain.Order, error)
}

type WalletService interface {
	Deposit(ctx context.Context, userID, amount int32, otp string) error
	Withdraw(ctx context.Context, userID, amount int32) error
	Pay(ctx context.Context, buyerID, orderID int32) error
	Balance(ctx context.Context, userID int32) (int32, error)
	Transactions(ctx context.Context, userID int32) ([]domain.Transaction, error)
	SendBankOTP(ctx context.Context, userID int32, mobile string) error
}

type ChatService interface {
	ListChats(ctx context.Context, userID int32) ([]domain.Chat, error)
	Messages(ctx context.Context, callerID, chatID int32) ([]domain.Message, error)
	PostMessage(ctx context.Context, senderID, chatID int32, content string) (*domain.Message, error)
	SupportThread(ctx context.Context, userID int32) (*domain.Chat, error)
	ListSupportChats(ctx context.Context) ([]domain.Chat, error)
}

type ReviewService interface {
	Submit(ctx context.Context, callerID, orderID, rating int32, comment string) (*domain.Review, error)
}

type VerificationService interface {
	SendOTP(ctx context.Context, mobile string) error
	VerifyOTP(ctx context.Context, mobile, code string) error
	Submit(ctx context.Context, userID int32, mobile string, selfie, idProof *Upload) error
}

// Upload is a received multipart file ready to hand to storage.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type AdminService interface {
	ListPendingUsers(ctx context.Context) ([]domain.User, error)
	ListVerifiedUsers(ctx context.Context) ([]domain.User, error)
	SetUserStatus(ctx context.Context, userID int32, status domain.VerificationStatus) error
	PlatformBalance(ctx context.Context) (int32, error)
}

type EmailService interface {
	SendOrderRequestNotification(ctx context.Context, sellerEmail, buyerName, itemTitle string) error
	SendOrderApprovalNotification(ctx context.Context, buyerEmail, itemTitle string) error
	SendOrderCompletionNotification(ctx context.Context, email, role, itemTitle string, amount int32) error
	SendVerificationDecisionNotification(ctx context.Context, email, name string, status domain.VerificationStatus) error
}
