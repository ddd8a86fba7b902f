package jobs

import (
	"partsphere-backend/internal/logger"
)

// PurgeExpiredOTPs removes one-time codes past their expiry so the table
// stays small and dead codes cannot be enumerated.
func (jr *JobRunner) PurgeExpiredOTPs() {
	jr.runWithRecovery("PurgeExpiredOTPs", func() {
		ctx, cancel := jr.jobContext()
		defer cancel()

		purged, err := jr.store.OTPs().DeleteExpired(ctx)
		if err != nil {
			logger.Error("Failed to purge expired OTP codes", "error", err)
			return
		}
		if purged > 0 {
			logger.Info("Purged expired OTP codes", "count", purged)
		}
	})
}
