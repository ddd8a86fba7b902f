package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/utils"
)

const dateLayout = "2006-01-02"

type orderService struct {
	store       repository.Store
	email       EmailService
	adminUserID int32
}

func NewOrderService(store repository.Store, email EmailService, adminUserID int32) OrderService {
	return &orderService{
		store:       store,
		email:       email,
		adminUserID: adminUserID,
	}
}

func (s *orderService) Request(ctx context.Context, buyerID, itemID int32, startDate string, durationDays int32) (*domain.Order, error) {
	log := logger.Get()

	buyer, err := s.store.Users().GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if !buyer.IsVerified {
		return nil, ErrVerificationRequired
	}

	item, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.OwnerID == buyerID {
		return nil, fmt.Errorf("%w: cannot order your own listing", ErrValidation)
	}

	order := &domain.Order{
		BuyerID:  buyerID,
		SellerID: item.OwnerID,
		ItemID:   item.ID,
		Status:   domain.OrderStatusPendingApproval,
	}

	if item.ListingType == domain.ListingTypeRent {
		if durationDays < 1 {
			return nil, fmt.Errorf("%w: rental duration must be at least one day", ErrValidation)
		}
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date must be yyyy-mm-dd", ErrValidation)
		}
		if err := s.checkAvailability(ctx, item.ID, start, durationDays); err != nil {
			return nil, err
		}
		formatted := start.Format(dateLayout)
		order.StartDate = &formatted
		order.DurationDays = durationDays
	}

	pricing := utils.ComputeOrderPricing(item, order.DurationDays)
	order.TotalAmount = pricing.Total
	order.PlatformFee = pricing.Fee
	order.OwnerAmount = pricing.Base

	if err := s.store.Orders().Create(ctx, order); err != nil {
		return nil, err
	}

	if seller, err := s.store.Users().GetByID(ctx, item.OwnerID); err == nil {
		if err := s.email.SendOrderRequestNotification(ctx, seller.Email, buyer.Name, item.Title); err != nil {
			log.Warn("order request notification failed", "order_id", order.ID, "error", err)
		}
	}

	log.Info("order requested", "order_id", order.ID, "item_id", item.ID, "buyer_id", buyerID, "total", order.TotalAmount)
	return order, nil
}

// checkAvailability rejects rental windows that overlap an existing
// non-cancelled booking for the same item.
func (s *orderService) checkAvailability(ctx context.Context, itemID int32, start time.Time, durationDays int32) error {
	booked, err := s.store.Orders().ListBookedDates(ctx, itemID)
	if err != nil {
		return err
	}
	end := start.AddDate(0, 0, int(durationDays)-1)
	for _, b := range booked {
		if b.StartDate == nil {
			continue
		}
		bStart, err := time.Parse(dateLayout, *b.StartDate)
		if err != nil {
			continue
		}
		bEnd := bStart.AddDate(0, 0, int(b.DurationDays)-1)
		if !start.After(bEnd) && !bStart.After(end) {
			return fmt.Errorf("%w: the requested dates are no longer available", ErrValidation)
		}
	}
	return nil
}

func (s *orderService) Approve(ctx context.Context, callerID, orderID int32) error {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if order.SellerID != callerID {
		return ErrForbidden
	}
	if order.Status != domain.OrderStatusPendingApproval {
		return fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	if err := s.store.Orders().UpdateStatus(ctx, orderID, domain.OrderStatusApprovedPayPending); err != nil {
		return err
	}

	if buyer, err := s.store.Users().GetByID(ctx, order.BuyerID); err == nil {
		title := ""
		if item, err := s.store.Items().GetByID(ctx, order.ItemID); err == nil {
			title = item.Title
		}
		if err := s.email.SendOrderApprovalNotification(ctx, buyer.Email, title); err != nil {
			logger.Get().Warn("order approval notification failed", "order_id", orderID, "error", err)
		}
	}

	logger.Get().Info("order approved", "order_id", orderID, "seller_id", callerID)
	return nil
}

func (s *orderService) Confirm(ctx context.Context, callerID, orderID int32) error {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if order.BuyerID != callerID && order.SellerID != callerID {
		return ErrForbidden
	}
	// Confirming an already settled order is a harmless retry.
	if order.Status == domain.OrderStatusCompleted {
		return nil
	}
	if order.Status != domain.OrderStatusInEscrow {
		return fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	asBuyer := order.BuyerID == callerID
	if err := s.store.Orders().SetConfirmation(ctx, orderID, asBuyer); err != nil {
		return err
	}

	order, err = s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.BuyerConfirmed || !order.SellerConfirmed || order.Status != domain.OrderStatusInEscrow {
		return nil
	}

	item, err := s.store.Items().GetByID(ctx, order.ItemID)
	if err != nil && !errors.Is(err, repository.ErrNoRows) {
		return err
	}
	return s.settle(ctx, order, item)
}

// errAlreadySettled aborts a settlement transaction that lost the race to a
// concurrent confirm. Never returned to callers.
var errAlreadySettled = errors.New("order already settled")

// settle releases escrowed funds once both parties have confirmed. The seller
// payout, the platform fee credit, the status flip and the SELL delisting are
// one database transaction. The status flip is conditional on the order still
// being in escrow, so two racing confirms cannot credit the payout twice: the
// loser's transaction rolls back and the call reports success without paying.
func (s *orderService) settle(ctx context.Context, order *domain.Order, item *domain.Item) error {
	log := logger.Get()

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Orders().TransitionStatus(ctx, order.ID, domain.OrderStatusInEscrow, domain.OrderStatusCompleted); err != nil {
			if errors.Is(err, repository.ErrNoRows) {
				return errAlreadySettled
			}
			return err
		}
		if err := tx.Ledger().CreditBalance(ctx, order.SellerID, order.OwnerAmount); err != nil {
			return err
		}
		if err := tx.Ledger().CreateTransaction(ctx, &domain.Transaction{
			UserID:      order.SellerID,
			Type:        domain.TransactionTypeCredit,
			Amount:      order.OwnerAmount,
			Description: fmt.Sprintf("Earnings: Order #%d", order.ID),
		}); err != nil {
			return err
		}
		if err := tx.Ledger().CreditBalance(ctx, s.adminUserID, order.PlatformFee); err != nil {
			return err
		}
		if err := tx.Ledger().CreateTransaction(ctx, &domain.Transaction{
			UserID:      s.adminUserID,
			Type:        domain.TransactionTypeCredit,
			Amount:      order.PlatformFee,
			Description: fmt.Sprintf("Platform fee: Order #%d", order.ID),
		}); err != nil {
			return err
		}
		if item != nil && item.ListingType == domain.ListingTypeSell {
			if err := tx.Items().Delete(ctx, order.ItemID); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errAlreadySettled) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("order settled",
		"order_id", order.ID,
		"seller_id", order.SellerID,
		"owner_amount", order.OwnerAmount,
		"platform_fee", order.PlatformFee)

	title := ""
	if item != nil {
		title = item.Title
	}
	if seller, err := s.store.Users().GetByID(ctx, order.SellerID); err == nil {
		if err := s.email.SendOrderCompletionNotification(ctx, seller.Email, "seller", title, order.OwnerAmount); err != nil {
			log.Warn("settlement notification failed", "order_id", order.ID, "error", err)
		}
	}
	if buyer, err := s.store.Users().GetByID(ctx, order.BuyerID); err == nil {
		if err := s.email.SendOrderCompletionNotification(ctx, buyer.Email, "buyer", title, order.TotalAmount); err != nil {
			log.Warn("settlement notification failed", "order_id", order.ID, "error", err)
		}
	}
	return nil
}

func (s *orderService) List(ctx context.Context, userID int32) ([]domain.Order, error) {
	return s.store.Orders().ListByParticipant(ctx, userID)
}
