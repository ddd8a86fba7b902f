package postgres

import (
	"context"
	"fmt"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type itemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (owner_id, title, description, part_number, category, subcategory, listing_type, price_day, price_week, price_month, location, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, it.OwnerID, it.Title, it.Description, it.PartNumber, it.Category, it.Subcategory, it.ListingType, it.PriceDay, it.PriceWeek, it.PriceMonth, it.Location, it.ImageURL).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT id, owner_id, title, COALESCE(description, ''), COALESCE(part_number, ''), COALESCE(category, ''), COALESCE(subcategory, ''), listing_type, price_day, COALESCE(price_week, 0), COALESCE(price_month, 0), location, COALESCE(image_url, ''), created_on, updated_on
	          FROM items WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.PartNumber, &it.Category, &it.Subcategory, &it.ListingType, &it.PriceDay, &it.PriceWeek, &it.PriceMonth, &it.Location, &it.ImageURL, &createdOn, &updatedOn)
	if err != nil {
		return nil, translateNoRows(err)
	}
	it.CreatedOn = createdOn.Format("2006-01-02")
	it.UpdatedOn = updatedOn.Format("2006-01-02")
	return it, nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET title=$1, description=$2, part_number=$3, category=$4, subcategory=$5, listing_type=$6, price_day=$7, price_week=$8, price_month=$9, location=$10, image_url=$11, updated_on=NOW() WHERE id=$12`
	res, err := r.db.ExecContext(ctx, query, it.Title, it.Description, it.PartNumber, it.Category, it.Subcategory, it.ListingType, it.PriceDay, it.PriceWeek, it.PriceMonth, it.Location, it.ImageURL, it.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

// List applies the catalog filters and embeds the owner's public profile.
func (r *itemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	query := `SELECT i.id, i.owner_id, i.title, COALESCE(i.description, ''), COALESCE(i.part_number, ''), COALESCE(i.category, ''), COALESCE(i.subcategory, ''), i.listing_type, i.price_day, COALESCE(i.price_week, 0), COALESCE(i.price_month, 0), i.location, COALESCE(i.image_url, ''), i.created_on, i.updated_on,
	                 u.id, u.name, u.is_verified, u.avg_rating
	          FROM items i JOIN users u ON u.id = i.owner_id WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.OwnerID != 0 {
		query += fmt.Sprintf(" AND i.owner_id = $%d", argIdx)
		args = append(args, filter.OwnerID)
		argIdx++
	}
	if filter.Location != "" {
		query += fmt.Sprintf(" AND i.location ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Location+"%")
		argIdx++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND i.category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.ListingType != "" {
		query += fmt.Sprintf(" AND i.listing_type = $%d", argIdx)
		args = append(args, filter.ListingType)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (i.title ILIKE $%d OR i.description ILIKE $%d OR i.part_number ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	switch filter.Sort {
	case domain.ItemSortPriceAsc:
		query += " ORDER BY i.price_day ASC"
	case domain.ItemSortPriceDesc:
		query += " ORDER BY i.price_day DESC"
	default:
		query += " ORDER BY i.created_on DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		var owner domain.PublicProfile
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.PartNumber, &it.Category, &it.Subcategory, &it.ListingType, &it.PriceDay, &it.PriceWeek, &it.PriceMonth, &it.Location, &it.ImageURL, &createdOn, &updatedOn,
			&owner.ID, &owner.Name, &owner.IsVerified, &owner.AvgRating); err != nil {
			return nil, err
		}
		it.CreatedOn = createdOn.Format("2006-01-02")
		it.UpdatedOn = updatedOn.Format("2006-01-02")
		it.Owner = &owner
		items = append(items, it)
	}
	return items, rows.Err()
}
