package models

// TransactionType is either income or expense.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single money movement owned by a user.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	CategoryID  int64           `db:"category_id" json:"category_id"`
	Amount      float64         `db:"amount" json:"amount"`
	Type        TransactionType `db:"type" json:"type"`
	Description string          `db:"description" json:"description"`
	Date        string          `db:"date" json:"date"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
}

// OwnerID implements the ownership contract used by the HTTP layer.
func (t *Transaction) OwnerID() int64 { return t.UserID }

// TransactionInput is the create/update payload. UserID is resolved by the caller.
type TransactionInput struct {
	UserID      int64    `json:"user_id"`
	CategoryID  *int64   `json:"category_id"`
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// Apply overlays the non-nil fields of in onto a copy of t.
func (t Transaction) Apply(in TransactionInput) TransactionInput {
	out := TransactionInput{
		UserID:      t.UserID,
		CategoryID:  &t.CategoryID,
		Amount:      &t.Amount,
		Type:        ptr(string(t.Type)),
		Description: &t.Description,
		Date:        &t.Date,
	}
	if in.CategoryID != nil {
		out.CategoryID = in.CategoryID
	}
	if in.Amount != nil {
		out.Amount = in.Amount
	}
	if in.Type != nil {
		out.Type = in.Type
	}
	if in.Description != nil {
		out.Description = in.Description
	}
	if in.Date != nil {
		out.Date = in.Date
	}
	return out
}

// TransactionFilter narrows a transaction listing. UserID always comes from
// the forced filter.
type TransactionFilter struct {
	UserID     int64
	Type       string
	CategoryID int64
	From       string
	To         string
}

func ptr[T any](v T) *T { return &v }
