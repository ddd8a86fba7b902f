package postgres_test

import (
	"context"
	"testing"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
	"partsphere-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOTPRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	otp := &domain.OTPCode{
		Mobile:    "5551234",
		Code:      "123456",
		Purpose:   domain.OTPPurposeBank,
		ExpiresAt: time.Now().UTC().Add(5 * time.Minute),
	}

	mock.ExpectQuery("INSERT INTO otp_codes").
		WithArgs(otp.Mobile, otp.Code, otp.Purpose, nil, otp.ExpiresAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err = repo.Create(ctx, otp)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), otp.ID)
}

func TestOTPRepository_Consume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	t.Run("Live code is consumed", func(t *testing.T) {
		mock.ExpectExec("UPDATE otp_codes SET consumed_at").
			WithArgs("5551234", "123456", domain.OTPPurposeBank).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Consume(ctx, "5551234", "123456", domain.OTPPurposeBank)
		assert.NoError(t, err)
	})

	t.Run("Expired or spent code matches nothing", func(t *testing.T) {
		mock.ExpectExec("UPDATE otp_codes SET consumed_at").
			WithArgs("5551234", "123456", domain.OTPPurposeBank).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Consume(ctx, "5551234", "123456", domain.OTPPurposeBank)
		assert.ErrorIs(t, err, repository.ErrNoRows)
	})
}

func TestOTPRepository_ConsumeForUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	t.Run("Code issued to the user is consumed", func(t *testing.T) {
		mock.ExpectExec("UPDATE otp_codes SET consumed_at").
			WithArgs(int32(1), "1234", domain.OTPPurposeBank).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ConsumeForUser(ctx, 1, "1234", domain.OTPPurposeBank)
		assert.NoError(t, err)
	})

	t.Run("Another user's code matches nothing", func(t *testing.T) {
		mock.ExpectExec("UPDATE otp_codes SET consumed_at").
			WithArgs(int32(2), "1234", domain.OTPPurposeBank).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ConsumeForUser(ctx, 2, "1234", domain.OTPPurposeBank)
		assert.ErrorIs(t, err, repository.ErrNoRows)
	})
}

func TestOTPRepository_DeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewOTPRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM otp_codes").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
