package postgres

import (
	"context"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type reviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create relies on the UNIQUE(order_id) constraint to reject a second review
// for the same order, including concurrent duplicates.
func (r *reviewRepository) Create(ctx context.Context, rev *domain.Review) error {
	query := `INSERT INTO reviews (order_id, target_user_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rev.OrderID, rev.TargetUserID, rev.Rating, rev.Comment).Scan(&rev.ID)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *reviewRepository) ListByTarget(ctx context.Context, targetUserID int32) ([]domain.Review, error) {
	query := `SELECT id, order_id, target_user_id, rating, COALESCE(comment, ''), created_on
	          FROM reviews WHERE target_user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, targetUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		var createdOn time.Time
		if err := rows.Scan(&rev.ID, &rev.OrderID, &rev.TargetUserID, &rev.Rating, &rev.Comment, &createdOn); err != nil {
			return nil, err
		}
		rev.CreatedOn = createdOn.Format("2006-01-02")
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
