package postgres

import (
	"context"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreditBalance(ctx context.Context, userID, amount int32) error {
	query := `UPDATE users SET wallet_balance = wallet_balance + $1, updated_on=NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

// DebitBalance performs the balance check and the decrement as one statement,
// so two concurrent debits can never both pass a stale read.
func (r *ledgerRepository) DebitBalance(ctx context.Context, userID, amount int32) error {
	query := `UPDATE users SET wallet_balance = wallet_balance - $1, updated_on=NOW()
	          WHERE id = $2 AND wallet_balance >= $1`
	res, err := r.db.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrInsufficientBalance
	}
	return nil
}

func (r *ledgerRepository) GetBalance(ctx context.Context, userID int32) (int32, error) {
	var balance int32
	query := `SELECT COALESCE(wallet_balance, 0) FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	return balance, translateNoRows(err)
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, type, amount, description, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, tx.UserID, tx.Type, tx.Amount, tx.Description).Scan(&tx.ID)
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, userID int32) ([]domain.Transaction, error) {
	query := `SELECT id, user_id, type, amount, COALESCE(description, ''), created_on
	          FROM transactions WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		var createdOn time.Time
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Description, &createdOn); err != nil {
			return nil, err
		}
		tx.CreatedOn = createdOn.Format("2006-01-02")
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
