package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/storage"

	"github.com/google/uuid"
)

type verificationService struct {
	store   repository.Store
	storage storage.Storage
	otpTTL  time.Duration
}

func NewVerificationService(store repository.Store, st storage.Storage, otpTTL time.Duration) VerificationService {
	return &verificationService{
		store:   store,
		storage: st,
		otpTTL:  otpTTL,
	}
}

func (s *verificationService) SendOTP(ctx context.Context, mobile string) error {
	if mobile == "" {
		return fmt.Errorf("%w: mobile number is required", ErrValidation)
	}
	code, err := generateOTPCode(verifyOTPDigits)
	if err != nil {
		return err
	}
	otp := &domain.OTPCode{
		Mobile:    mobile,
		Code:      code,
		Purpose:   domain.OTPPurposeVerify,
		ExpiresAt: time.Now().UTC().Add(s.otpTTL),
	}
	if err := s.store.OTPs().Create(ctx, otp); err != nil {
		return err
	}

	logger.Get().Info("verification otp issued", "mobile", mobile, "code", code)
	return nil
}

func (s *verificationService) VerifyOTP(ctx context.Context, mobile, code string) error {
	if err := s.store.OTPs().Consume(ctx, mobile, code, domain.OTPPurposeVerify); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrInvalidOTP
		}
		return err
	}
	return nil
}

// Submit stores the applicant's documents and queues the account for manual
// review. Approval happens through the admin endpoints.
func (s *verificationService) Submit(ctx context.Context, userID int32, mobile string, selfie, idProof *Upload) error {
	if mobile == "" {
		return fmt.Errorf("%w: mobile number is required", ErrValidation)
	}
	if selfie == nil || idProof == nil {
		return fmt.Errorf("%w: selfie and id proof images are required", ErrValidation)
	}

	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	selfieURL, err := s.storage.Save(ctx, uuid.New().String()+path.Ext(selfie.Filename), selfie.ContentType, selfie.Reader)
	if err != nil {
		return fmt.Errorf("saving selfie: %w", err)
	}
	idProofURL, err := s.storage.Save(ctx, uuid.New().String()+path.Ext(idProof.Filename), idProof.ContentType, idProof.Reader)
	if err != nil {
		return fmt.Errorf("saving id proof: %w", err)
	}

	if err := s.store.Users().SetVerificationDocuments(ctx, userID, mobile, selfieURL, idProofURL); err != nil {
		return err
	}
	if err := s.store.Users().SetVerificationStatus(ctx, userID, domain.VerificationStatusPending, false); err != nil {
		return err
	}

	logger.Get().Info("verification submitted", "user_id", userID)
	return nil
}
