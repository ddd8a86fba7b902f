package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (buyer_id, seller_id, item_id, status, total_amount, platform_fee, owner_amount, start_date, duration_days, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()) RETURNING id`
	var startDate any
	if o.StartDate != nil {
		startDate = *o.StartDate
	}
	return r.db.QueryRowContext(ctx, query, o.BuyerID, o.SellerID, o.ItemID, o.Status, o.TotalAmount, o.PlatformFee, o.OwnerAmount, startDate, o.DurationDays).Scan(&o.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	o := &domain.Order{}
	query := `SELECT id, buyer_id, seller_id, item_id, status, total_amount, platform_fee, owner_amount, start_date, duration_days, buyer_confirmed, seller_confirmed, is_reviewed, created_on, updated_on
	          FROM orders WHERE id = $1`
	var startDate sql.NullTime
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.ItemID, &o.Status, &o.TotalAmount, &o.PlatformFee, &o.OwnerAmount, &startDate, &o.DurationDays, &o.BuyerConfirmed, &o.SellerConfirmed, &o.IsReviewed, &createdOn, &updatedOn)
	if err != nil {
		return nil, translateNoRows(err)
	}
	if startDate.Valid {
		dateStr := startDate.Time.Format("2006-01-02")
		o.StartDate = &dateStr
	}
	o.CreatedOn = createdOn.Format("2006-01-02")
	o.UpdatedOn = updatedOn.Format("2006-01-02")
	return o, nil
}

// ListByParticipant returns all orders where the user is buyer or seller,
// newest first, with the item and both party profiles embedded.
func (r *orderRepository) ListByParticipant(ctx context.Context, userID int32) ([]domain.Order, error) {
	query := `SELECT o.id, o.buyer_id, o.seller_id, o.item_id, o.status, o.total_amount, o.platform_fee, o.owner_amount, o.start_date, o.duration_days, o.buyer_confirmed, o.seller_confirmed, o.is_reviewed, o.created_on, o.updated_on,
	                 COALESCE(i.title, ''), COALESCE(i.listing_type, ''), COALESCE(i.image_url, ''),
	                 b.name, b.is_verified, b.avg_rating,
	                 s.name, s.is_verified, s.avg_rating
	          FROM orders o
	          LEFT JOIN items i ON i.id = o.item_id
	          JOIN users b ON b.id = o.buyer_id
	          JOIN users s ON s.id = o.seller_id
	          WHERE o.buyer_id = $1 OR o.seller_id = $1
	          ORDER BY o.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var startDate sql.NullTime
		var createdOn, updatedOn time.Time
		var itemTitle, itemType, itemImage string
		var buyer, seller domain.PublicProfile
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.ItemID, &o.Status, &o.TotalAmount, &o.PlatformFee, &o.OwnerAmount, &startDate, &o.DurationDays, &o.BuyerConfirmed, &o.SellerConfirmed, &o.IsReviewed, &createdOn, &updatedOn,
			&itemTitle, &itemType, &itemImage,
			&buyer.Name, &buyer.IsVerified, &buyer.AvgRating,
			&seller.Name, &seller.IsVerified, &seller.AvgRating); err != nil {
			return nil, err
		}
		if startDate.Valid {
			dateStr := startDate.Time.Format("2006-01-02")
			o.StartDate = &dateStr
		}
		o.CreatedOn = createdOn.Format("2006-01-02")
		o.UpdatedOn = updatedOn.Format("2006-01-02")
		if itemTitle != "" {
			o.Item = &domain.Item{ID: o.ItemID, Title: itemTitle, ListingType: domain.ListingType(itemType), ImageURL: itemImage}
		}
		buyer.ID = o.BuyerID
		seller.ID = o.SellerID
		o.Buyer = &buyer
		o.Seller = &seller
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListBookedDates returns non-cancelled dated orders for an item, used to
// compute blocked calendar days.
func (r *orderRepository) ListBookedDates(ctx context.Context, itemID int32) ([]domain.Order, error) {
	query := `SELECT id, start_date, duration_days FROM orders
	          WHERE item_id = $1 AND status != $2 AND start_date IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, query, itemID, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var startDate time.Time
		if err := rows.Scan(&o.ID, &startDate, &o.DurationDays); err != nil {
			return nil, err
		}
		dateStr := startDate.Format("2006-01-02")
		o.StartDate = &dateStr
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int32, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status=$1, updated_on=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

// TransitionStatus is the guarded variant of UpdateStatus, matching zero rows
// unless the order is still in the expected state.
func (r *orderRepository) TransitionStatus(ctx context.Context, id int32, from, to domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status=$1, updated_on=NOW() WHERE id=$2 AND status=$3`, to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *orderRepository) SetConfirmation(ctx context.Context, id int32, asBuyer bool) error {
	column := "seller_confirmed"
	if asBuyer {
		column = "buyer_confirmed"
	}
	query := fmt.Sprintf(`UPDATE orders SET %s=TRUE, updated_on=NOW() WHERE id=$1`, column)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *orderRepository) SetReviewed(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET is_reviewed=TRUE, updated_on=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

// CancelStale moves pre-escrow orders older than the window to CANCELLED.
func (r *orderRepository) CancelStale(ctx context.Context, statuses []domain.OrderStatus, olderThanHours int32) (int64, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	query := `UPDATE orders SET status=$1, updated_on=NOW()
	          WHERE status = ANY($2) AND created_on < NOW() - ($3 || ' hours')::interval`
	res, err := r.db.ExecContext(ctx, query, domain.OrderStatusCancelled, pq.Array(strs), olderThanHours)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
