package jobs

import (
	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/logger"
)

// ExpireStaleOrders cancels orders that never reached escrow within the
// configured window. Funded orders are untouched; money never moves here.
func (jr *JobRunner) ExpireStaleOrders() {
	jr.runWithRecovery("ExpireStaleOrders", func() {
		ctx, cancel := jr.jobContext()
		defer cancel()

		statuses := []domain.OrderStatus{
			domain.OrderStatusPendingApproval,
			domain.OrderStatusApprovedPayPending,
		}
		cancelled, err := jr.store.Orders().CancelStale(ctx, statuses, jr.config.Orders.StaleAfterHours)
		if err != nil {
			logger.Error("Failed to expire stale orders", "error", err)
			return
		}
		if cancelled > 0 {
			logger.Info("Expired stale orders", "count", cancelled, "older_than_hours", jr.config.Orders.StaleAfterHours)
		}
	})
}
