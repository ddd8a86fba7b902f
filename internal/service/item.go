package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/storage"

	"github.com/google/uuid"
)

type itemService struct {
	store   repository.Store
	storage storage.Storage
}

func NewItemService(store repository.Store, st storage.Storage) ItemService {
	return &itemService{
		store:   store,
		storage: st,
	}
}

func (s *itemService) Create(ctx context.Context, ownerID int32, item *domain.Item, imageName, imageType string, image io.Reader) (*domain.Item, error) {
	owner, err := s.store.Users().GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsVerified {
		return nil, ErrVerificationRequired
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("%w: a listing image is required", ErrValidation)
	}
	item.OwnerID = ownerID

	key := uuid.New().String() + path.Ext(imageName)
	url, err := s.storage.Save(ctx, key, imageType, image)
	if err != nil {
		return nil, fmt.Errorf("saving listing image: %w", err)
	}
	item.ImageURL = url

	if err := s.store.Items().Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Get().Info("listing created", "item_id", item.ID, "owner_id", ownerID, "listing_type", item.ListingType)
	return item, nil
}

func validateItem(item *domain.Item) error {
	if item.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	switch item.ListingType {
	case domain.ListingTypeRent, domain.ListingTypeSell:
	default:
		return fmt.Errorf("%w: listing_type must be RENT or SELL", ErrValidation)
	}
	if item.PriceDay <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return nil
}

func (s *itemService) Get(ctx context.Context, id int32) (*domain.Item, error) {
	item, err := s.store.Items().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	return s.store.Items().List(ctx, filter)
}

func (s *itemService) Update(ctx context.Context, callerID int32, item *domain.Item) error {
	existing, err := s.store.Items().GetByID(ctx, item.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.OwnerID != callerID {
		return ErrForbidden
	}
	if err := validateItem(item); err != nil {
		return err
	}
	item.OwnerID = existing.OwnerID
	if item.ImageURL == "" {
		item.ImageURL = existing.ImageURL
	}
	return s.store.Items().Update(ctx, item)
}

func (s *itemService) Delete(ctx context.Context, callerID, itemID int32) error {
	existing, err := s.store.Items().GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.OwnerID != callerID {
		return ErrForbidden
	}
	return s.store.Items().Delete(ctx, itemID)
}

func (s *itemService) BlockedDates(ctx context.Context, itemID int32) ([]string, error) {
	booked, err := s.store.Orders().ListBookedDates(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0)
	seen := make(map[string]struct{})
	for _, b := range booked {
		if b.StartDate == nil || b.DurationDays < 1 {
			continue
		}
		start, err := time.Parse(dateLayout, *b.StartDate)
		if err != nil {
			continue
		}
		for i := int32(0); i < b.DurationDays; i++ {
			d := start.AddDate(0, 0, int(i)).Format(dateLayout)
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}
	return dates, nil
}
