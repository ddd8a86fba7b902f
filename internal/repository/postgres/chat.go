package postgres

import (
	"context"
	"database/sql"
	"time"

	"partsphere-backend/internal/domain"
	"partsphere-backend/internal/repository"
)

type chatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, c *domain.Chat) error {
	query := `INSERT INTO chats (user1_id, user2_id, item_id, last_message, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id`
	var itemID any
	if c.ItemID != nil {
		itemID = *c.ItemID
	}
	return r.db.QueryRowContext(ctx, query, c.User1ID, c.User2ID, itemID, c.LastMessage).Scan(&c.ID)
}

const chatColumns = `c.id, c.user1_id, c.user2_id, c.item_id, COALESCE(c.last_message, ''), c.last_message_at, c.created_on,
	u1.name, u1.is_verified, u1.avg_rating,
	u2.name, u2.is_verified, u2.avg_rating`

const chatJoins = ` FROM chats c
	JOIN users u1 ON u1.id = c.user1_id
	JOIN users u2 ON u2.id = c.user2_id`

func scanChat(row interface{ Scan(dest ...any) error }) (*domain.Chat, error) {
	c := &domain.Chat{}
	var itemID sql.NullInt32
	var lastMessageAt sql.NullTime
	var createdOn time.Time
	var u1, u2 domain.PublicProfile
	err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &itemID, &c.LastMessage, &lastMessageAt, &createdOn,
		&u1.Name, &u1.IsVerified, &u1.AvgRating,
		&u2.Name, &u2.IsVerified, &u2.AvgRating)
	if err != nil {
		return nil, translateNoRows(err)
	}
	if itemID.Valid {
		id := itemID.Int32
		c.ItemID = &id
	}
	if lastMessageAt.Valid {
		ts := lastMessageAt.Time.Format(time.RFC3339)
		c.LastMessageAt = &ts
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	u1.ID = c.User1ID
	u2.ID = c.User2ID
	c.User1 = &u1
	c.User2 = &u2
	return c, nil
}

func (r *chatRepository) GetByID(ctx context.Context, id int32) (*domain.Chat, error) {
	query := `SELECT ` + chatColumns + chatJoins + ` WHERE c.id = $1`
	return scanChat(r.db.QueryRowContext(ctx, query, id))
}

func (r *chatRepository) GetBetween(ctx context.Context, user1ID, user2ID int32) (*domain.Chat, error) {
	query := `SELECT ` + chatColumns + chatJoins + `
	          WHERE (c.user1_id = $1 AND c.user2_id = $2) OR (c.user1_id = $2 AND c.user2_id = $1)`
	return scanChat(r.db.QueryRowContext(ctx, query, user1ID, user2ID))
}

func (r *chatRepository) ListByParticipant(ctx context.Context, userID int32) ([]domain.Chat, error) {
	query := `SELECT ` + chatColumns + chatJoins + `
	          WHERE c.user1_id = $1 OR c.user2_id = $1
	          ORDER BY c.last_message_at DESC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, *c)
	}
	return chats, rows.Err()
}

func (r *chatRepository) UpdatePreview(ctx context.Context, chatID int32, lastMessage string) error {
	query := `UPDATE chats SET last_message=$1, last_message_at=NOW() WHERE id=$2`
	res, err := r.db.ExecContext(ctx, query, lastMessage, chatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNoRows
	}
	return nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (chat_id, sender_id, content, is_read, created_on)
	          VALUES ($1, $2, $3, FALSE, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.ChatID, m.SenderID, m.Content).Scan(&m.ID)
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID int32) ([]domain.Message, error) {
	query := `SELECT id, chat_id, sender_id, content, is_read, created_on
	          FROM messages WHERE chat_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		var createdOn time.Time
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.IsRead, &createdOn); err != nil {
			return nil, err
		}
		m.CreatedOn = createdOn.Format(time.RFC3339)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
