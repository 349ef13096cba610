package repository

import (
	"context"
	"database/sql"
	"time"

	"personalFinance/models"
)

// spentPerBudget joins each budget of a user to the expenses recorded in its
// category during its month.
const spentPerBudget = `
SELECT b.id, b.category_id, c.name, b.month, b.amount, COALESCE(SUM(t.amount), 0) AS spent
FROM budgets b
JOIN categories c ON c.id = b.category_id
LEFT JOIN transactions t
       ON t.user_id = b.user_id
      AND t.category_id = b.category_id
      AND t.type = 'expense'
      AND substr(t.date, 1, 7) = b.month
WHERE b.user_id = ?`

// RemainingBudgets returns budget, spent and remaining per budget of userID.
// month, when set, restricts the report to one YYYY-MM month.
func (r *BudgetRepository) RemainingBudgets(ctx context.Context, userID int64, month string) ([]models.RemainingBudget, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	query := spentPerBudget
	args := []any{userID}
	if month != "" {
		query += ` AND b.month = ?`
		args = append(args, month)
	}
	query += ` GROUP BY b.id ORDER BY b.month DESC, c.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.RemainingBudget{}
	for rows.Next() {
		var rb models.RemainingBudget
		if err := rows.Scan(&rb.BudgetID, &rb.CategoryID, &rb.CategoryName, &rb.Month, &rb.Budget, &rb.Spent); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

// BudgetAlerts returns the budgets of userID whose spent share, in percent
// rounded to two decimals, is at least threshold.
func (r *BudgetRepository) BudgetAlerts(ctx context.Context, userID int64, threshold float64) ([]models.BudgetAlert, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	query := spentPerBudget + `
GROUP BY b.id
HAVING ROUND(COALESCE(SUM(t.amount), 0) * 100.0 / b.amount, 2) >= ?
ORDER BY ROUND(COALESCE(SUM(t.amount), 0) * 100.0 / b.amount, 2) DESC, b.id`

	rows, err := r.db.QueryContext(ctx, query, userID, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.BudgetAlert{}
	for rows.Next() {
		var a models.BudgetAlert
		if err := rows.Scan(&a.BudgetID, &a.CategoryID, &a.CategoryName, &a.Month, &a.Budget, &a.Spent); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SavingsProgress reports each saving of userID against its target as of today (YYYY-MM-DD).
func (r *SavingRepository) SavingsProgress(ctx context.Context, userID int64, today string) ([]models.SavingProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, amount, target_amount, target_date,
       CASE WHEN target_amount IS NULL OR target_amount = 0 THEN NULL
            ELSE ROUND(amount * 100.0 / target_amount, 2) END AS progress_percent,
       CASE WHEN target_date IS NULL THEN NULL
            ELSE CAST(julianday(date(target_date)) - julianday(date(?)) AS INTEGER) END AS days_left
FROM savings
WHERE user_id = ?
ORDER BY id`, today, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.SavingProgress{}
	for rows.Next() {
		var p models.SavingProgress
		var target, percent sql.NullFloat64
		var targetDate sql.NullString
		var days sql.NullInt64
		if err := rows.Scan(&p.SavingID, &p.Name, &p.Amount, &target, &targetDate, &percent, &days); err != nil {
			return nil, err
		}
		if target.Valid {
			v := target.Float64
			p.TargetAmount = &v
		}
		if targetDate.Valid {
			v := targetDate.String
			p.TargetDate = &v
		}
		if percent.Valid {
			v := percent.Float64
			p.ProgressPercent = &v
		}
		if days.Valid {
			v := days.Int64
			p.DaysLeft = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
