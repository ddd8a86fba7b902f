package repository

import (
	"context"
	"errors"

	"partsphere-backend/internal/domain"
)

// ErrNoRows is returned by repositories when a lookup matches nothing.
// Implementations translate their driver's sentinel into this one.
var ErrNoRows = errors.New("no rows found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate row")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// CreateWithID inserts a user with an explicit id, skipping when the id
	// already exists. Used to bootstrap the reserved platform account.
	CreateWithID(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus) ([]domain.User, error)
	SetVerificationStatus(ctx context.Context, userID int32, status domain.VerificationStatus, verified bool) error
	SetVerificationDocuments(ctx context.Context, userID int32, mobile, selfieURL, idProofURL string) error
	UpdateRating(ctx context.Context, userID int32, ratingSum, ratingCount int32, avgRating float64) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	ListByParticipant(ctx context.Context, userID int32) ([]domain.Order, error)
	ListBookedDates(ctx context.Context, itemID int32) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error
	// TransitionStatus updates the status only when the order is currently
	// in from. Returns ErrNoRows when the order is in any other state, so
	// concurrent callers racing on the same transition cannot both win.
	TransitionStatus(ctx context.Context, id int32, from, to domain.OrderStatus) error
	SetConfirmation(ctx context.Context, id int32, asBuyer bool) error
	SetReviewed(ctx context.Context, id int32) error
	CancelStale(ctx context.Context, statuses []domain.OrderStatus, olderThanHours int32) (int64, error)
}

type LedgerRepository interface {
	// CreditBalance unconditionally adds amount to the user's wallet.
	CreditBalance(ctx context.Context, userID, amount int32) error
	// DebitBalance subtracts amount only if the balance covers it; the check
	// and the decrement are a single statement. Returns ErrInsufficientBalance
	// when the predicate matches no row.
	DebitBalance(ctx context.Context, userID, amount int32) error
	GetBalance(ctx context.Context, userID int32) (int32, error)
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	ListTransactions(ctx context.Context, userID int32) ([]domain.Transaction, error)
}

// ErrInsufficientBalance is returned by DebitBalance when the conditional
// decrement matches no row.
var ErrInsufficientBalance = errors.New("insufficient balance")

type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id int32) (*domain.Chat, error)
	GetBetween(ctx context.Context, user1ID, user2ID int32) (*domain.Chat, error)
	ListByParticipant(ctx context.Context, userID int32) ([]domain.Chat, error)
	UpdatePreview(ctx context.Context, chatID int32, lastMessage string) error
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, chatID int32) ([]domain.Message, error)
}

type ReviewRepository interface {
	// Create returns ErrDuplicate when a review already exists for the order.
	Create(ctx context.Context, review *domain.Review) error
	ListByTarget(ctx context.Context, targetUserID int32) ([]domain.Review, error)
}

type OTPRepository interface {
	Create(ctx context.Context, otp *domain.OTPCode) error
	// Consume marks the newest live code matching (mobile, code, purpose) as
	// used. Returns ErrNoRows when no unconsumed, unexpired code matches.
	Consume(ctx context.Context, mobile, code string, purpose domain.OTPPurpose) error
	// ConsumeForUser is Consume keyed on the issuing user's id instead of the
	// mobile number, for codes bound to an authenticated identity.
	ConsumeForUser(ctx context.Context, userID int32, code string, purpose domain.OTPPurpose) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// Store bundles every repository plus transactional scope. WithTx runs fn
// against a store whose repositories share one database transaction; fn
// returning an error rolls the whole unit back.
type Store interface {
	Users() UserRepository
	Items() ItemRepository
	Orders() OrderRepository
	Ledger() LedgerRepository
	Chats() ChatRepository
	Reviews() ReviewRepository
	OTPs() OTPRepository
	WithTx(ctx context.Context, fn func(Store) error) error
}
