package service

import (
	"context"
	"database/sql"
	"strings"

	"personalFinance/internal/auth"
	"personalFinance/internal/events"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

// DefaultProfileID is assigned to users created without an administrator choosing otherwise.
const DefaultProfileID int64 = 2

type UserService struct {
	db    *sql.DB
	users *repository.UserRepository
	auditor
}

func NewUserService(db *sql.DB, pub events.Publisher) *UserService {
	return &UserService{db: db, users: repository.NewUserRepository(db), auditor: auditor{pub: pub}}
}

// Create registers a user. Only an administrator caller may choose the profile.
func (s *UserService) Create(ctx context.Context, caller *auth.Identity, in models.UserInput) result.Result[*models.User] {
	if f, missing := validation.CheckRequiredFields(map[string]any{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}, "name", "email", "password"); missing {
		return result.FailWith[*models.User](result.MissingField(f))
	}
	if !validation.IsNonEmptyString(in.Name) {
		return result.FailWith[*models.User](result.MissingField("name"))
	}
	email := normalizeEmail(*in.Email)
	if !validation.IsValidEmail(email) {
		return result.FailWith[*models.User](result.InvalidEmail())
	}
	if !validation.IsStrongPassword(*in.Password) {
		return result.FailWith[*models.User](result.WeakPassword())
	}
	profileID := DefaultProfileID
	if in.ProfileID != nil && auth.IsAdministrator(caller) {
		if !validation.IsValidID(in.ProfileID) {
			return result.FailWith[*models.User](result.InvalidID("profile"))
		}
		profileID = *in.ProfileID
	}
	hash, err := auth.HashPassword(*in.Password)
	if err != nil {
		return internalFailure[*models.User](ctx, "user.create.hash", err)
	}

	var created *models.User
	var failure *result.Error
	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := repository.NewProfileRepository(tx).Exists(ctx, profileID)
		if err != nil {
			return err
		}
		if !ok {
			failure = result.NotFound("profile")
			return errAbort
		}
		users := repository.NewUserRepository(tx)
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			failure = result.AlreadyExists("email")
			return errAbort
		}
		created, err = users.Create(ctx, &models.User{
			Name:         strings.TrimSpace(*in.Name),
			Email:        email,
			PasswordHash: hash,
			ProfileID:    profileID,
		})
		return err
	})
	switch {
	case failure != nil:
		return result.FailWith[*models.User](failure)
	case repository.IsUniqueViolation(err):
		return result.FailWith[*models.User](result.AlreadyExists("email"))
	case err != nil:
		return internalFailure[*models.User](ctx, "user.create", err)
	}
	s.record(ctx, "user", created.ID, events.ActionCreated, created.ID)
	return result.Success(created)
}

func (s *UserService) Get(ctx context.Context, id int64) result.Result[*models.User] {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return internalFailure[*models.User](ctx, "user.get", err)
	}
	if u == nil {
		return result.FailWith[*models.User](result.NotFound("user"))
	}
	return result.Success(u)
}

func (s *UserService) List(ctx context.Context, limit, offset int) result.Result[[]models.User] {
	list, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return internalFailure[[]models.User](ctx, "user.list", err)
	}
	return result.Success(list)
}

// Update applies the non-nil fields of in. profile_id is honoured for
// administrator callers only and silently dropped otherwise.
func (s *UserService) Update(ctx context.Context, caller *auth.Identity, id int64, in models.UserInput) result.Result[*models.User] {
	if !auth.IsAdministrator(caller) {
		in.ProfileID = nil
	}
	if in.Name != nil && !validation.IsNonEmptyString(in.Name) {
		return result.FailWith[*models.User](result.MissingField("name"))
	}
	if in.Email != nil && !validation.IsValidEmail(normalizeEmail(*in.Email)) {
		return result.FailWith[*models.User](result.InvalidEmail())
	}
	if in.Password != nil && !validation.IsStrongPassword(*in.Password) {
		return result.FailWith[*models.User](result.WeakPassword())
	}
	if in.ProfileID != nil && !validation.IsValidID(in.ProfileID) {
		return result.FailWith[*models.User](result.InvalidID("profile"))
	}
	var hash string
	if in.Password != nil {
		h, err := auth.HashPassword(*in.Password)
		if err != nil {
			return internalFailure[*models.User](ctx, "user.update.hash", err)
		}
		hash = h
	}

	var updated *models.User
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		users := repository.NewUserRepository(tx)
		u, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			failure = result.NotFound("user")
			return errAbort
		}
		if in.Name != nil {
			u.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			u.Email = normalizeEmail(*in.Email)
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if in.ProfileID != nil {
			ok, err := repository.NewProfileRepository(tx).Exists(ctx, *in.ProfileID)
			if err != nil {
				return err
			}
			if !ok {
				failure = result.NotFound("profile")
				return errAbort
			}
			u.ProfileID = *in.ProfileID
		}
		if err := users.Update(ctx, u); err != nil {
			return err
		}
		updated, err = users.GetByID(ctx, id)
		return err
	})
	switch {
	case failure != nil:
		return result.FailWith[*models.User](failure)
	case repository.IsUniqueViolation(err):
		return result.FailWith[*models.User](result.AlreadyExists("email"))
	case err != nil:
		return internalFailure[*models.User](ctx, "user.update", err)
	}
	s.record(ctx, "user", id, events.ActionUpdated, id)
	return result.Success(updated)
}

func (s *UserService) Delete(ctx context.Context, id int64) result.Result[struct{}] {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return internalFailure[struct{}](ctx, "user.delete", err)
	}
	if !ok {
		return result.FailWith[struct{}](result.NotFound("user"))
	}
	s.record(ctx, "user", id, events.ActionDeleted, id)
	return result.Success(struct{}{})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
