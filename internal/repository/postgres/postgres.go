package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"partsphere-backend/internal/repository"

	"github.com/lib/pq"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories use, so the same
// implementations serve both plain and transactional stores.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db      *sql.DB // nil on a tx-bound store
	users   repository.UserRepository
	items   repository.ItemRepository
	orders  repository.OrderRepository
	ledger  repository.LedgerRepository
	chats   repository.ChatRepository
	reviews repository.ReviewRepository
	otps    repository.OTPRepository
}

func NewStore(db *sql.DB) *Store {
	s := newStore(db)
	s.db = db
	return s
}

func newStore(q DBTX) *Store {
	return &Store{
		users:   NewUserRepository(q),
		items:   NewItemRepository(q),
		orders:  NewOrderRepository(q),
		ledger:  NewLedgerRepository(q),
		chats:   NewChatRepository(q),
		reviews: NewReviewRepository(q),
		otps:    NewOTPRepository(q),
	}
}

func (s *Store) Users() repository.UserRepository     { return s.users }
func (s *Store) Items() repository.ItemRepository     { return s.items }
func (s *Store) Orders() repository.OrderRepository   { return s.orders }
func (s *Store) Ledger() repository.LedgerRepository  { return s.ledger }
func (s *Store) Chats() repository.ChatRepository     { return s.chats }
func (s *Store) Reviews() repository.ReviewRepository { return s.reviews }
func (s *Store) OTPs() repository.OTPRepository       { return s.otps }

// WithTx runs fn against a store bound to a single serializable transaction.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fmt.Errorf("nested transactions are not supported")
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(newStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

func translateNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNoRows
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
