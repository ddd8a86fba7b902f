package service_test

import (
	"context"
	"testing"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const adminID = int32(9999)

func TestOrderService_Request(t *testing.T) {
	ctx := context.Background()

	buyer := &domain.User{ID: 1, Name: "Buyer", Email: "buyer@test.com", IsVerified: true}
	seller := &domain.User{ID: 10, Name: "Seller", Email: "seller@test.com", IsVerified: true}

	t.Run("Sell listing uses the flat price", func(t *testing.T) {
		store := newMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc, adminID)

		item := &domain.Item{ID: 2, OwnerID: 10, Title: "Hydraulic pump", ListingType: domain.ListingTypeSell, PriceDay: 1000}
		store.users.On("GetByID", ctx, int32(1)).Return(buyer, nil)
		store.users.On("GetByID", ctx, int32(10)).Return(seller, nil)
		store.items.On("GetByID", ctx, int32(2)).Return(item, nil)
		store.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		emailSvc.On("SendOrderRequestNotification", ctx, "seller@test.com", "Buyer", "Hydraulic pump").Return(nil)

		order, err := svc.Request(ctx, 1, 2, "", 0)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPendingApproval, order.Status)
		assert.Equal(t, int32(1000), order.OwnerAmount)
		assert.Equal(t, int32(20), order.PlatformFee)
		assert.Equal(t, int32(1020), order.TotalAmount)
		assert.Nil(t, order.StartDate)
	})

	t.Run("Rental multiplies daily price by duration", func(t *testing.T) {
		store := newMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc, adminID)

		item := &domain.Item{ID: 3, OwnerID: 10, Title: "Excavator", ListingType: domain.ListingTypeRent, PriceDay: 1000}
		store.users.On("GetByID", ctx, int32(1)).Return(buyer, nil)
		store.users.On("GetByID", ctx, int32(10)).Return(seller, nil)
		store.items.On("GetByID", ctx, int32(3)).Return(item, nil)
		store.orders.On("ListBookedDates", ctx, int32(3)).Return([]domain.Order{}, nil)
		store.orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)
		emailSvc.On("SendOrderRequestNotification", ctx, "seller@test.com", "Buyer", "Excavator").Return(nil)

		order, err := svc.Request(ctx, 1, 3, "2026-09-10", 3)
		assert.NoError(t, err)
		assert.Equal(t, int32(3000), order.OwnerAmount)
		assert.Equal(t, int32(60), order.PlatformFee)
		assert.Equal(t, int32(3060), order.TotalAmount)
		assert.Equal(t, "2026-09-10", *order.StartDate)
	})

	t.Run("Unverified buyer is rejected", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		store.users.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, IsVerified: false}, nil)

		_, err := svc.Request(ctx, 1, 2, "", 0)
		assert.ErrorIs(t, err, service.ErrVerificationRequired)
	})

	t.Run("Cannot order own listing", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		item := &domain.Item{ID: 2, OwnerID: 1, ListingType: domain.ListingTypeSell, PriceDay: 1000}
		store.users.On("GetByID", ctx, int32(1)).Return(buyer, nil)
		store.items.On("GetByID", ctx, int32(2)).Return(item, nil)

		_, err := svc.Request(ctx, 1, 2, "", 0)
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("Overlapping rental dates are rejected", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		item := &domain.Item{ID: 3, OwnerID: 10, ListingType: domain.ListingTypeRent, PriceDay: 1000}
		booked := "2026-09-11"
		store.users.On("GetByID", ctx, int32(1)).Return(buyer, nil)
		store.items.On("GetByID", ctx, int32(3)).Return(item, nil)
		store.orders.On("ListBookedDates", ctx, int32(3)).Return([]domain.Order{
			{ID: 7, StartDate: &booked, DurationDays: 2},
		}, nil)

		_, err := svc.Request(ctx, 1, 3, "2026-09-10", 3)
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("Missing item maps to not found", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		store.users.On("GetByID", ctx, int32(1)).Return(buyer, nil)
		store.items.On("GetByID", ctx, int32(99)).Return(nil, repository.ErrNoRows)

		_, err := svc.Request(ctx, 1, 99, "", 0)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestOrderService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Only the seller can approve", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		order := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusPendingApproval}
		store.orders.On("GetByID", ctx, int32(5)).Return(order, nil)

		err := svc.Approve(ctx, 1, 5)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("Approve requires pending state", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		order := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusInEscrow}
		store.orders.On("GetByID", ctx, int32(5)).Return(order, nil)

		err := svc.Approve(ctx, 10, 5)
		assert.ErrorIs(t, err, service.ErrInvalidState)
	})

	t.Run("Success moves the order to payment pending", func(t *testing.T) {
		store := newMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc, adminID)

		order := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, ItemID: 2, Status: domain.OrderStatusPendingApproval}
		store.orders.On("GetByID", ctx, int32(5)).Return(order, nil)
		store.orders.On("UpdateStatus", ctx, int32(5), domain.OrderStatusApprovedPayPending).Return(nil)
		store.users.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "buyer@test.com"}, nil)
		store.items.On("GetByID", ctx, int32(2)).Return(&domain.Item{ID: 2, Title: "Excavator"}, nil)
		emailSvc.On("SendOrderApprovalNotification", ctx, "buyer@test.com", "Excavator").Return(nil)

		err := svc.Approve(ctx, 10, 5)
		assert.NoError(t, err)
		store.orders.AssertCalled(t, "UpdateStatus", ctx, int32(5), domain.OrderStatusApprovedPayPending)
	})
}

func TestOrderService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Non-participant is forbidden", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		order := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusInEscrow}
		store.orders.On("GetByID", ctx, int32(5)).Return(order, nil)

		err := svc.Confirm(ctx, 42, 5)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("Confirming a completed order is a no-op", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		order := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusCompleted}
		store.orders.On("GetByID", ctx, int32(5)).Return(order, nil)

		err := svc.Confirm(ctx, 1, 5)
		assert.NoError(t, err)
		store.orders.AssertNotCalled(t, "SetConfirmation", ctx, int32(5), true)
		store.ledger.AssertNotCalled(t, "CreditBalance", ctx, int32(10), mock.Anything)
	})

	t.Run("Confirm outside escrow is invalid", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		order := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusPendingApproval}
		store.orders.On("GetByID", ctx, int32(5)).Return(order, nil)

		err := svc.Confirm(ctx, 1, 5)
		assert.ErrorIs(t, err, service.ErrInvalidState)
	})

	t.Run("First confirmation does not settle", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		initial := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusInEscrow}
		afterFlag := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, Status: domain.OrderStatusInEscrow, BuyerConfirmed: true}
		store.orders.On("GetByID", ctx, int32(5)).Return(initial, nil).Once()
		store.orders.On("GetByID", ctx, int32(5)).Return(afterFlag, nil).Once()
		store.orders.On("SetConfirmation", ctx, int32(5), true).Return(nil)

		err := svc.Confirm(ctx, 1, 5)
		assert.NoError(t, err)
		store.ledger.AssertNotCalled(t, "CreditBalance", ctx, int32(10), mock.Anything)
	})

	t.Run("Second confirmation settles and delists sold items", func(t *testing.T) {
		store := newMockStore()
		emailSvc := new(MockEmailService)
		svc := service.NewOrderService(store, emailSvc, adminID)

		initial := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, ItemID: 2, Status: domain.OrderStatusInEscrow, BuyerConfirmed: true,
			TotalAmount: 1020, PlatformFee: 20, OwnerAmount: 1000}
		settled := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, ItemID: 2, Status: domain.OrderStatusInEscrow, BuyerConfirmed: true, SellerConfirmed: true,
			TotalAmount: 1020, PlatformFee: 20, OwnerAmount: 1000}
		item := &domain.Item{ID: 2, OwnerID: 10, Title: "Hydraulic pump", ListingType: domain.ListingTypeSell, PriceDay: 1000}

		store.orders.On("GetByID", ctx, int32(5)).Return(initial, nil).Once()
		store.orders.On("GetByID", ctx, int32(5)).Return(settled, nil).Once()
		store.orders.On("SetConfirmation", ctx, int32(5), false).Return(nil)
		store.items.On("GetByID", ctx, int32(2)).Return(item, nil)

		store.orders.On("TransitionStatus", ctx, int32(5), domain.OrderStatusInEscrow, domain.OrderStatusCompleted).Return(nil)
		store.ledger.On("CreditBalance", ctx, int32(10), int32(1000)).Return(nil)
		store.ledger.On("CreditBalance", ctx, adminID, int32(20)).Return(nil)
		store.ledger.On("CreateTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)
		store.items.On("Delete", ctx, int32(2)).Return(nil)

		store.users.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "seller@test.com"}, nil)
		store.users.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "buyer@test.com"}, nil)
		emailSvc.On("SendOrderCompletionNotification", ctx, "seller@test.com", "seller", "Hydraulic pump", int32(1000)).Return(nil)
		emailSvc.On("SendOrderCompletionNotification", ctx, "buyer@test.com", "buyer", "Hydraulic pump", int32(1020)).Return(nil)

		err := svc.Confirm(ctx, 10, 5)
		assert.NoError(t, err)
		store.ledger.AssertCalled(t, "CreditBalance", ctx, int32(10), int32(1000))
		store.ledger.AssertCalled(t, "CreditBalance", ctx, adminID, int32(20))
		store.orders.AssertCalled(t, "TransitionStatus", ctx, int32(5), domain.OrderStatusInEscrow, domain.OrderStatusCompleted)
		store.items.AssertCalled(t, "Delete", ctx, int32(2))
	})

	t.Run("Settlement that loses the status race pays nothing", func(t *testing.T) {
		store := newMockStore()
		svc := service.NewOrderService(store, new(MockEmailService), adminID)

		// Both flags read as set and the stale read still says IN_ESCROW,
		// but another confirm completed the order in between.
		initial := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, ItemID: 2, Status: domain.OrderStatusInEscrow, SellerConfirmed: true,
			TotalAmount: 1020, PlatformFee: 20, OwnerAmount: 1000}
		stale := &domain.Order{ID: 5, BuyerID: 1, SellerID: 10, ItemID: 2, Status: domain.OrderStatusInEscrow, BuyerConfirmed: true, SellerConfirmed: true,
			TotalAmount: 1020, PlatformFee: 20, OwnerAmount: 1000}
		item := &domain.Item{ID: 2, OwnerID: 10, ListingType: domain.ListingTypeSell, PriceDay: 1000}

		store.orders.On("GetByID", ctx, int32(5)).Return(initial, nil).Once()
		store.orders.On("GetByID", ctx, int32(5)).Return(stale, nil).Once()
		store.orders.On("SetConfirmation", ctx, int32(5), true).Return(nil)
		store.items.On("GetByID", ctx, int32(2)).Return(item, nil)
		store.orders.On("TransitionStatus", ctx, int32(5), domain.OrderStatusInEscrow, domain.OrderStatusCompleted).Return(repository.ErrNoRows)

		err := svc.Confirm(ctx, 1, 5)
		assert.NoError(t, err)
		store.ledger.AssertNotCalled(t, "CreditBalance", ctx, int32(10), int32(1000))
		store.ledger.AssertNotCalled(t, "CreditBalance", ctx, adminID, int32(20))
		store.items.AssertNotCalled(t, "Delete", ctx, int32(2))
	})
}
