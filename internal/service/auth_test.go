package service_test

import (
	"context"
	"testing"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/security"
	"partsphere-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-0123456789abcdef0123456789abcdef"

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	tm := security.NewTokenManager(testJWTSecret, 60)

	t.Run("New account gets the starting balance", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tm, 500000)

		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "alice" &&
				u.WalletBalance == 500000 &&
				u.VerificationStatus == domain.VerificationStatusUnverified &&
				u.PasswordHash != "hunter22"
		})).Return(nil)

		user, err := svc.Register(ctx, "alice", "alice@test.com", "hunter22")
		assert.NoError(t, err)
		assert.Equal(t, int32(500000), user.WalletBalance)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
	})

	t.Run("Duplicate name or email is rejected", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tm, 500000)

		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(repository.ErrDuplicate)

		_, err := svc.Register(ctx, "alice", "alice@test.com", "hunter22")
		assert.ErrorIs(t, err, service.ErrDuplicateUser)
	})

	t.Run("Blank fields are invalid", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tm, 500000)

		_, err := svc.Register(ctx, "", "alice@test.com", "hunter22")
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tm := security.NewTokenManager(testJWTSecret, 60)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: 7, Name: "alice", PasswordHash: string(hash)}

	t.Run("Valid credentials return a usable token", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tm, 500000)

		users.On("GetByName", ctx, "alice").Return(stored, nil)

		token, user, err := svc.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, int32(7), user.ID)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(7), claims.UserID)
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tm, 500000)

		users.On("GetByName", ctx, "alice").Return(stored, nil)

		_, _, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("Unknown user fails the same way", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tm, 500000)

		users.On("GetByName", ctx, "bob").Return(nil, repository.ErrNoRows)

		_, _, err := svc.Login(ctx, "bob", "hunter22")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
