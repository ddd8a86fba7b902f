package postgres

import (
	"context"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type otpRepository struct {
	db DBTX
}

func NewOTPRepository(db DBTX) repository.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *domain.OTPCode) error {
	query := `INSERT INTO otp_codes (mobile, code, purpose, user_id, expires_at, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id`
	var userID any
	if otp.UserID != nil {
		userID = *otp.UserID
	}
	return r.db.QueryRowContext(ctx, query, otp.Mobile, otp.Code, otp.Purpose, userID, otp.ExpiresAt).Scan(&otp.ID)
}

// Consume marks the newest live match as used. The consumed_at IS NULL
// predicate makes redemption single-use even under concurrent attempts.
func (r *otpRepository) Consume(ctx context.Context, mobile, code string, purpose domain.OTPPurpose) error {
	query := `UPDATE otp_codes SET consumed_at = NOW()
	          WHERE id = (
	              SELECT id FROM otp_codes
	              WHERE mobile = $1 AND code = $2 AND purpose = $3
	                AND consumed_at IS NULL AND expires_at > NOW()
	              ORDER BY created_on DESC LIMIT 1
	          )`
	res, err := r.db.ExecContext(ctx, query, mobile, code, purpose)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *otpRepository) ConsumeForUser(ctx context.Context, userID int32, code string, purpose domain.OTPPurpose) error {
	query := `UPDATE otp_codes SET consumed_at = NOW()
	          WHERE id = (
	              SELECT id FROM otp_codes
	              WHERE user_id = $1 AND code = $2 AND purpose = $3
	                AND consumed_at IS NULL AND expires_at > NOW()
	              ORDER BY created_on DESC LIMIT 1
	          )`
	res, err := r.db.ExecContext(ctx, query, userID, code, purpose)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otp_codes WHERE expires_at < NOW() OR consumed_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
