package jobs

import (
	"context"
	"testing"

	"partsphere-backend/internal/config"
	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"

	"github.com/stretchr/testify/assert"
)

type stubOrderRepo struct {
	repository.OrderRepository
	gotStatuses []domain.OrderStatus
	gotHours    int32
	cancelled   int64
}

func (s *stubOrderRepo) CancelStale(ctx context.Context, statuses []domain.OrderStatus, olderThanHours int32) (int64, error) {
	s.gotStatuses = statuses
	s.gotHours = olderThanHours
	return s.cancelled, nil
}

type stubOTPRepo struct {
	repository.OTPRepository
	purged int64
	called bool
}

func (s *stubOTPRepo) DeleteExpired(ctx context.Context) (int64, error) {
	s.called = true
	return s.purged, nil
}

type stubStore struct {
	repository.Store
	orders *stubOrderRepo
	otps   *stubOTPRepo
}

func (s *stubStore) Orders() repository.OrderRepository { return s.orders }
func (s *stubStore) OTPs() repository.OTPRepository     { return s.otps }

func TestExpireStaleOrders(t *testing.T) {
	orders := &stubOrderRepo{cancelled: 2}
	store := &stubStore{orders: orders, otps: &stubOTPRepo{}}
	cfg := &config.Config{}
	cfg.Orders.StaleAfterHours = 168

	jr := NewJobRunner(store, cfg)
	jr.ExpireStaleOrders()

	assert.Equal(t, int32(168), orders.gotHours)
	assert.ElementsMatch(t, []domain.OrderStatus{
		domain.OrderStatusPendingApproval,
		domain.OrderStatusApprovedPayPending,
	}, orders.gotStatuses)
}

func TestPurgeExpiredOTPs(t *testing.T) {
	otps := &stubOTPRepo{purged: 5}
	store := &stubStore{orders: &stubOrderRepo{}, otps: otps}

	jr := NewJobRunner(store, &config.Config{})
	jr.PurgeExpiredOTPs()

	assert.True(t, otps.called)
}
