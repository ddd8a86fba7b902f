package postgres

import (
	"context"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, COALESCE(mobile_number, ''), is_verified, verification_status,
	COALESCE(selfie_url, ''), COALESCE(id_proof_url, ''), rating_sum, rating_count, avg_rating, wallet_balance, is_admin, created_on, updated_on`

func (r *userRepository) scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.MobileNumber, &u.IsVerified, &u.VerificationStatus,
		&u.SelfieURL, &u.IDProofURL, &u.RatingSum, &u.RatingCount, &u.AvgRating, &u.WalletBalance, &u.IsAdmin, &createdOn, &updatedOn)
	if err != nil {
		return nil, translateNoRows(err)
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, mobile_number, is_verified, verification_status, wallet_balance, is_admin, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.MobileNumber, u.IsVerified, u.VerificationStatus, u.WalletBalance, u.IsAdmin).Scan(&u.ID)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *userRepository) CreateWithID(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, mobile_number, is_verified, verification_status, wallet_balance, is_admin, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()) ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.MobileNumber, u.IsVerified, u.VerificationStatus, u.WalletBalance, u.IsAdmin)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(name) = LOWER($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, name))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, mobile_number=$3, updated_on=NOW() WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.MobileNumber, u.ID)
	return err
}

func (r *userRepository) ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE verification_status = $1 ORDER BY updated_on DESC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) SetVerificationStatus(ctx context.Context, userID int32, status domain.VerificationStatus, verified bool) error {
	query := `UPDATE users SET verification_status=$1, is_verified=$2, updated_on=NOW() WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, verified, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *userRepository) SetVerificationDocuments(ctx context.Context, userID int32, mobile, selfieURL, idProofURL string) error {
	query := `UPDATE users SET mobile_number=$1, selfie_url=$2, id_proof_url=$3, verification_status=$4, updated_on=NOW() WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, mobile, selfieURL, idProofURL, domain.VerificationStatusPending, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateRating(ctx context.Context, userID int32, ratingSum, ratingCount int32, avgRating float64) error {
	query := `UPDATE users SET rating_sum=$1, rating_count=$2, avg_rating=$3, updated_on=NOW() WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, ratingSum, ratingCount, avgRating, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}
