package domain

// Chat is an unordered pair of participants. One slot may hold the reserved
// platform admin account, which makes the chat a support thread.
type Chat struct {
	ID            int32          `json:"id"`
	User1ID       int32          `json:"user1_id"`
	User2ID       int32          `json:"user2_id"`
	User1         *PublicProfile `json:"user1,omitempty"`
	User2         *PublicProfile `json:"user2,omitempty"`
	ItemID        *int32         `json:"item_id,omitempty"`
	LastMessage   string         `json:"last_message"`
	LastMessageAt *string        `json:"last_message_at,omitempty"`
	CreatedOn     string         `json:"created_on"`
}

func (c *Chat) HasParticipant(userID int32) bool {
	return c.User1ID == userID || c.User2ID == userID
}

type Message struct {
	ID        int32  `json:"id"`
	ChatID    int32  `json:"chat_id"`
	SenderID  int32  `json:"sender_id"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	CreatedOn string `json:"created_on"`
}
