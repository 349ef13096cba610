package models

// OthersCategoryName is the fallback category used when a transaction has none.
const OthersCategoryName = "Others"

// Category groups transactions and budgets. Categories are shared by all users.
type Category struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type CategoryInput struct {
	Name *string `json:"name"`
}
