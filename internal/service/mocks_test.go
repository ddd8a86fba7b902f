package service_test

import (
	"context"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// mockStore bundles the repository mocks behind the Store interface. WithTx
// simply runs the callback against the same mocks, which keeps settlement
// tests focused on the calls rather than transaction plumbing.
type mockStore struct {
	users   *MockUserRepo
	items   *MockItemRepo
	orders  *MockOrderRepo
	ledger  *MockLedgerRepo
	chats   *MockChatRepo
	reviews *MockReviewRepo
	otps    *MockOTPRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users:   new(MockUserRepo),
		items:   new(MockItemRepo),
		orders:  new(MockOrderRepo),
		ledger:  new(MockLedgerRepo),
		chats:   new(MockChatRepo),
		reviews: new(MockReviewRepo),
		otps:    new(MockOTPRepo),
	}
}

func (s *mockStore) Users() repository.UserRepository     { return s.users }
func (s *mockStore) Items() repository.ItemRepository     { return s.items }
func (s *mockStore) Orders() repository.OrderRepository   { return s.orders }
func (s *mockStore) Ledger() repository.LedgerRepository  { return s.ledger }
func (s *mockStore) Chats() repository.ChatRepository     { return s.chats }
func (s *mockStore) Reviews() repository.ReviewRepository { return s.reviews }
func (s *mockStore) OTPs() repository.OTPRepository       { return s.otps }

func (s *mockStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) CreateWithID(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus) ([]domain.User, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetVerificationStatus(ctx context.Context, userID int32, status domain.VerificationStatus, verified bool) error {
	args := m.Called(ctx, userID, status, verified)
	return args.Error(0)
}
func (m *MockUserRepo) SetVerificationDocuments(ctx context.Context, userID int32, mobile, selfieURL, idProofURL string) error {
	args := m.Called(ctx, userID, mobile, selfieURL, idProofURL)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateRating(ctx context.Context, userID int32, ratingSum, ratingCount int32, avgRating float64) error {
	args := m.Called(ctx, userID, ratingSum, ratingCount, avgRating)
	return args.Error(0)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Item), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListByParticipant(ctx context.Context, userID int32) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListBookedDates(ctx context.Context, itemID int32) ([]domain.Order, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockOrderRepo) TransitionStatus(ctx context.Context, id int32, from, to domain.OrderStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockOrderRepo) SetConfirmation(ctx context.Context, id int32, asBuyer bool) error {
	args := m.Called(ctx, id, asBuyer)
	return args.Error(0)
}
func (m *MockOrderRepo) SetReviewed(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) CancelStale(ctx context.Context, statuses []domain.OrderStatus, olderThanHours int32) (int64, error) {
	args := m.Called(ctx, statuses, olderThanHours)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreditBalance(ctx context.Context, userID, amount int32) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}
func (m *MockLedgerRepo) DebitBalance(ctx context.Context, userID, amount int32) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetBalance(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLedgerRepo) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListTransactions(ctx context.Context, userID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockChatRepo
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Create(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}
func (m *MockChatRepo) GetByID(ctx context.Context, id int32) (*domain.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}
func (m *MockChatRepo) GetBetween(ctx context.Context, user1ID, user2ID int32) (*domain.Chat, error) {
	args := m.Called(ctx, user1ID, user2ID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}
func (m *MockChatRepo) ListByParticipant(ctx context.Context, userID int32) ([]domain.Chat, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Chat), args.Error(1)
}
func (m *MockChatRepo) UpdatePreview(ctx context.Context, chatID int32, lastMessage string) error {
	args := m.Called(ctx, chatID, lastMessage)
	return args.Error(0)
}
func (m *MockChatRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockChatRepo) ListMessages(ctx context.Context, chatID int32) ([]domain.Message, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) ListByTarget(ctx context.Context, targetUserID int32) ([]domain.Review, error) {
	args := m.Called(ctx, targetUserID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// MockOTPRepo
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Create(ctx context.Context, otp *domain.OTPCode) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}
func (m *MockOTPRepo) Consume(ctx context.Context, mobile, code string, purpose domain.OTPPurpose) error {
	args := m.Called(ctx, mobile, code, purpose)
	return args.Error(0)
}
func (m *MockOTPRepo) ConsumeForUser(ctx context.Context, userID int32, code string, purpose domain.OTPPurpose) error {
	args := m.Called(ctx, userID, code, purpose)
	return args.Error(0)
}
func (m *MockOTPRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrderRequestNotification(ctx context.Context, sellerEmail, buyerName, itemTitle string) error {
	args := m.Called(ctx, sellerEmail, buyerName, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderApprovalNotification(ctx context.Context, buyerEmail, itemTitle string) error {
	args := m.Called(ctx, buyerEmail, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderCompletionNotification(ctx context.Context, email, role, itemTitle string, amount int32) error {
	args := m.Called(ctx, email, role, itemTitle, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendVerificationDecisionNotification(ctx context.Context, email, name string, status domain.VerificationStatus) error {
	args := m.Called(ctx, email, name, status)
	return args.Error(0)
}
