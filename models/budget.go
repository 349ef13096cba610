package models

// Budget caps spending in one category for one calendar month (YYYY-MM).
type Budget struct {
	ID         int64   `db:"id" json:"id"`
	UserID     int64   `db:"user_id" json:"user_id"`
	CategoryID int64   `db:"category_id" json:"category_id"`
	Amount     float64 `db:"amount" json:"amount"`
	Month      string  `db:"month" json:"month"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}

func (b *Budget) OwnerID() int64 { return b.UserID }

type BudgetInput struct {
	UserID     int64    `json:"user_id"`
	CategoryID *int64   `json:"category_id"`
	Amount     *float64 `json:"amount"`
	Month      *string  `json:"month"`
}

// Apply overlays the non-nil fields of in onto a copy of b.
func (b Budget) Apply(in BudgetInput) BudgetInput {
	out := BudgetInput{UserID: b.UserID, CategoryID: &b.CategoryID, Amount: &b.Amount, Month: &b.Month}
	if in.CategoryID != nil {
		out.CategoryID = in.CategoryID
	}
	if in.Amount != nil {
		out.Amount = in.Amount
	}
	if in.Month != nil {
		out.Month = in.Month
	}
	return out
}

// RemainingBudget is one row of the remaining-budget report.
type RemainingBudget struct {
	BudgetID     int64   `json:"budget_id"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Month        string  `json:"month"`
	Budget       float64 `json:"budget"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
}

// BudgetAlert is a budget whose spending reached the requested threshold.
type BudgetAlert struct {
	BudgetID        int64   `json:"budget_id"`
	CategoryID      int64   `json:"category_id"`
	CategoryName    string  `json:"category_name"`
	Month           string  `json:"month"`
	Budget          float64 `json:"budget"`
	Spent           float64 `json:"spent"`
	PercentageSpent float64 `json:"percentage_spent"`
}
