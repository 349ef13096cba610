package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"personalFinance/models"
)

const budgetColumns = `id, user_id, category_id, amount, month, created_at`

type BudgetRepository struct {
	db DBTX
}

func NewBudgetRepository(db DBTX) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create inserts a budget. A second budget for the same user, category and
// month violates the unique constraint.
func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	if b == nil {
		return nil, errors.New("budget is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO budgets (user_id, category_id, amount, month) VALUES (?,?,?,?)`,
		b.UserID, b.CategoryID, b.Amount, b.Month)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("created budget not found: id=%d", id)
	}
	return created, nil
}

func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*models.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var b models.Budget
	err := r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// List returns the user's budgets, optionally restricted to one month.
func (r *BudgetRepository) List(ctx context.Context, userID int64, month string) ([]models.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = ?`
	args := []any{userID}
	if month != "" {
		query += ` AND month = ?`
		args = append(args, month)
	}
	query += ` ORDER BY month DESC, id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BudgetRepository) Update(ctx context.Context, b *models.Budget) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE budgets SET category_id = ?, amount = ?, month = ? WHERE id = ?`,
		b.CategoryID, b.Amount, b.Month, b.ID)
	return err
}

func (r *BudgetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}
