package service

import (
	"context"
	"errors"
	"fmt"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
)

type adminService struct {
	store       repository.Store
	email       EmailService
	adminUserID int32
}

func NewAdminService(store repository.Store, email EmailService, adminUserID int32) AdminService {
	return &adminService{
		store:       store,
		email:       email,
		adminUserID: adminUserID,
	}
}

func (s *adminService) ListPendingUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListByVerificationStatus(ctx, domain.VerificationStatusPending)
}

func (s *adminService) ListVerifiedUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListByVerificationStatus(ctx, domain.VerificationStatusApproved)
}

func (s *adminService) SetUserStatus(ctx context.Context, userID int32, status domain.VerificationStatus) error {
	if status != domain.VerificationStatusApproved && status != domain.VerificationStatusRejected {
		return fmt.Errorf("%w: status must be APPROVED or REJECTED", ErrValidation)
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	verified := status == domain.VerificationStatusApproved
	if err := s.store.Users().SetVerificationStatus(ctx, userID, status, verified); err != nil {
		return err
	}

	if err := s.email.SendVerificationDecisionNotification(ctx, user.Email, user.Name, status); err != nil {
		logger.Get().Warn("verification decision notification failed", "user_id", userID, "error", err)
	}

	logger.Get().Info("verification decision", "user_id", userID, "status", status)
	return nil
}

func (s *adminService) PlatformBalance(ctx context.Context) (int32, error) {
	return s.store.Ledger().GetBalance(ctx, s.adminUserID)
}
