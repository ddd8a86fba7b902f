package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users           repository.UserRepository
	tokens          security.TokenManager
	startingBalance int32
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager, startingBalance int32) AuthService {
	return &authService{
		users:           users,
		tokens:          tokens,
		startingBalance: startingBalance,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:               name,
		Email:              email,
		PasswordHash:       string(hash),
		VerificationStatus: domain.VerificationStatusUnverified,
		WalletBalance:      s.startingBalance,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByName(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Name)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Me(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
