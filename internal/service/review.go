package service

import (
	"context"
	"errors"
	"fmt"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
)

type reviewService struct {
	store repository.Store
}

func NewReviewService(store repository.Store) ReviewService {
	return &reviewService{store: store}
}

func (s *reviewService) Submit(ctx context.Context, callerID, orderID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Only the buyer rates, and always rates the seller.
	if order.BuyerID != callerID {
		return nil, ErrForbidden
	}
	if order.Status != domain.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	targetID := order.SellerID

	review := &domain.Review{
		OrderID:      orderID,
		TargetUserID: targetID,
		Rating:       rating,
		Comment:      comment,
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}
		if err := tx.Orders().SetReviewed(ctx, orderID); err != nil {
			return err
		}
		target, err := tx.Users().GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		sum := target.RatingSum + rating
		count := target.RatingCount + 1
		avg := float64(sum) / float64(count)
		return tx.Users().UpdateRating(ctx, targetID, sum, count, avg)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	logger.Get().Info("review submitted", "order_id", orderID, "target_user_id", targetID, "rating", rating)
	return review, nil
}
