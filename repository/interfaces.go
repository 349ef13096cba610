package repository

import (
	"context"

	"personalFinance/internal/validation"
	"personalFinance/models"
)

// UserLookup is the read side of UserRepository used by login.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

var (
	_ UserLookup            = (*UserRepository)(nil)
	_ validation.References = (*References)(nil)
)
