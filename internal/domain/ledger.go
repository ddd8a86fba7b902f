package domain

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// Transaction is an append-only ledger entry. Every wallet balance change is
// written together with exactly one Transaction row in the same database
// transaction.
type Transaction struct {
	ID          int32           `json:"id"`
	UserID      int32           `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      int32           `json:"amount"` // always positive; Type carries the sign
	Description string          `json:"description"`
	CreatedOn   string          `json:"created_on"`
}
