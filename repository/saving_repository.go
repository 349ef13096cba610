package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"personalFinance/models"
)

const savingColumns = `id, user_id, name, amount, target_amount, target_date, created_at`

type SavingRepository struct {
	db DBTX
}

func NewSavingRepository(db DBTX) *SavingRepository {
	return &SavingRepository{db: db}
}

func (r *SavingRepository) Create(ctx context.Context, s *models.Saving) (*models.Saving, error) {
	if s == nil {
		return nil, errors.New("saving is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO savings (user_id, name, amount, target_amount, target_date) VALUES (?,?,?,?,?)`,
		s.UserID, s.Name, s.Amount, s.TargetAmount, s.TargetDate)
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
		return nil, fmt.Errorf("created saving not found: id=%d", id)
	}
	return created, nil
}

func (r *SavingRepository) GetByID(ctx context.Context, id int64) (*models.Saving, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	s, err := scanSaving(r.db.QueryRowContext(ctx, `SELECT `+savingColumns+` FROM savings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SavingRepository) ListByUser(ctx context.Context, userID int64) ([]models.Saving, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+savingColumns+` FROM savings WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Saving{}
	for rows.Next() {
		s, err := scanSaving(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SavingRepository) Update(ctx context.Context, s *models.Saving) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE savings SET name = ?, amount = ?, target_amount = ?, target_date = ? WHERE id = ?`,
		s.Name, s.Amount, s.TargetAmount, s.TargetDate, s.ID)
	return err
}

func (r *SavingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM savings WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaving(row rowScanner) (*models.Saving, error) {
	var s models.Saving
	var target sql.NullFloat64
	var targetDate sql.NullString
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Amount, &target, &targetDate, &s.CreatedAt); err != nil {
		return nil, err
	}
	if target.Valid {
		v := target.Float64
		s.TargetAmount = &v
	}
	if targetDate.Valid {
		v := targetDate.String
		s.TargetDate = &v
	}
	return &s, nil
}
