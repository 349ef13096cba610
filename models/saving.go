package models

// Saving tracks money put aside towards an optional target.
type Saving struct {
	ID           int64    `db:"id" json:"id"`
	UserID       int64    `db:"user_id" json:"user_id"`
	Name         string   `db:"name" json:"name"`
	Amount       float64  `db:"amount" json:"amount"`
	TargetAmount *float64 `db:"target_amount" json:"target_amount"`
	TargetDate   *string  `db:"target_date" json:"target_date"`
	CreatedAt    string   `db:"created_at" json:"created_at"`
}

func (s *Saving) OwnerID() int64 { return s.UserID }

type SavingInput struct {
	UserID       int64    `json:"user_id"`
	Name         *string  `json:"name"`
	Amount       *float64 `json:"amount"`
	TargetAmount *float64 `json:"target_amount"`
	TargetDate   *string  `json:"target_date"`
}

// Apply overlays the non-nil fields of in onto a copy of s.
func (s Saving) Apply(in SavingInput) SavingInput {
	out := SavingInput{UserID: s.UserID, Name: &s.Name, Amount: &s.Amount, TargetAmount: s.TargetAmount, TargetDate: s.TargetDate}
	if in.Name != nil {
		out.Name = in.Name
	}
	if in.Amount != nil {
		out.Amount = in.Amount
	}
	if in.TargetAmount != nil {
		out.TargetAmount = in.TargetAmount
	}
	if in.TargetDate != nil {
		out.TargetDate = in.TargetDate
	}
	return out
}

// SavingProgress is one row of the savings progress report. Percent and days
// are null when the saving has no target amount or no target date.
type SavingProgress struct {
	SavingID        int64    `json:"saving_id"`
	Name            string   `json:"name"`
	Amount          float64  `json:"amount"`
	TargetAmount    *float64 `json:"target_amount"`
	TargetDate      *string  `json:"target_date"`
	ProgressPercent *float64 `json:"progress_percent"`
	DaysLeft        *int64   `json:"days_left"`
}
