package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
)

type walletService struct {
	store  repository.Store
	otpTTL time.Duration
}

func NewWalletService(store repository.Store, otpTTL time.Duration) WalletService {
	return &walletService{
		store:  store,
		otpTTL: otpTTL,
	}
}

func (s *walletService) Deposit(ctx context.Context, userID, amount int32, otp string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit amount must be positive", ErrValidation)
	}

	if err := s.store.OTPs().ConsumeForUser(ctx, userID, otp, domain.OTPPurposeBank); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrInvalidOTP
		}
		return err
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Ledger().CreditBalance(ctx, userID, amount); err != nil {
			return err
		}
		return tx.Ledger().CreateTransaction(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionTypeCredit,
			Amount:      amount,
			Description: "Wallet deposit",
		})
	})
	if err != nil {
		return err
	}

	logger.Get().Info("wallet deposit", "user_id", userID, "amount", amount)
	return nil
}

func (s *walletService) Withdraw(ctx context.Context, userID, amount int32) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal amount must be positive", ErrValidation)
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Ledger().DebitBalance(ctx, userID, amount); err != nil {
			return err
		}
		return tx.Ledger().CreateTransaction(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionTypeDebit,
			Amount:      amount,
			Description: "Wallet withdrawal",
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return ErrInsufficientFunds
		}
		return err
	}

	logger.Get().Info("wallet withdrawal", "user_id", userID, "amount", amount)
	return nil
}

func (s *walletService) Pay(ctx context.Context, buyerID, orderID int32) error {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if order.BuyerID != buyerID {
		return ErrForbidden
	}
	if order.Status != domain.OrderStatusApprovedPayPending {
		return fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	// The status flip is conditional on the order still awaiting payment, so
	// a second concurrent payment rolls back instead of debiting twice.
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Orders().TransitionStatus(ctx, orderID, domain.OrderStatusApprovedPayPending, domain.OrderStatusInEscrow); err != nil {
			return err
		}
		if err := tx.Ledger().DebitBalance(ctx, buyerID, order.TotalAmount); err != nil {
			return err
		}
		return tx.Ledger().CreateTransaction(ctx, &domain.Transaction{
			UserID:      buyerID,
			Type:        domain.TransactionTypeDebit,
			Amount:      order.TotalAmount,
			Description: fmt.Sprintf("Payment for Order #%d", order.ID),
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return ErrInsufficientFunds
		}
		if errors.Is(err, repository.ErrNoRows) {
			return fmt.Errorf("%w: order is no longer awaiting payment", ErrInvalidState)
		}
		return err
	}

	logger.Get().Info("order funded", "order_id", orderID, "buyer_id", buyerID, "amount", order.TotalAmount)
	return nil
}

func (s *walletService) Balance(ctx context.Context, userID int32) (int32, error) {
	return s.store.Ledger().GetBalance(ctx, userID)
}

func (s *walletService) Transactions(ctx context.Context, userID int32) ([]domain.Transaction, error) {
	return s.store.Ledger().ListTransactions(ctx, userID)
}

func (s *walletService) SendBankOTP(ctx context.Context, userID int32, mobile string) error {
	if mobile == "" {
		return fmt.Errorf("%w: mobile number is required", ErrValidation)
	}
	code, err := generateOTPCode(bankOTPDigits)
	if err != nil {
		return err
	}
	// The code is bound to the requesting account, so redemption at deposit
	// time cannot use a code issued to someone else.
	otp := &domain.OTPCode{
		Mobile:    mobile,
		Code:      code,
		Purpose:   domain.OTPPurposeBank,
		UserID:    &userID,
		ExpiresAt: time.Now().UTC().Add(s.otpTTL),
	}
	if err := s.store.OTPs().Create(ctx, otp); err != nil {
		return err
	}

	// SMS delivery is out of band; the code surfaces in the server log so
	// operators can relay it in environments without a gateway.
	logger.Get().Info("bank otp issued", "user_id", userID, "mobile", mobile, "code", code)
	return nil
}
