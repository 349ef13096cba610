package service

import (
	"context"
	"net/http"
	"strings"

	"personalFinance/internal/auth"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

type ProfileService struct {
	profiles *repository.ProfileRepository
}

func NewProfileService(profiles *repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context) result.Result[[]models.Profile] {
	list, err := s.profiles.List(ctx)
	if err != nil {
		return internalFailure[[]models.Profile](ctx, "profile.list", err)
	}
	return result.Success(list)
}

func (s *ProfileService) Get(ctx context.Context, id int64) result.Result[*models.Profile] {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return internalFailure[*models.Profile](ctx, "profile.get", err)
	}
	if p == nil {
		return result.FailWith[*models.Profile](result.NotFound("profile"))
	}
	return result.Success(p)
}

func (s *ProfileService) Create(ctx context.Context, in models.ProfileInput) result.Result[*models.Profile] {
	if !validation.IsNonEmptyString(in.Name) {
		return result.FailWith[*models.Profile](result.MissingField("name"))
	}
	p, err := s.profiles.Create(ctx, strings.TrimSpace(*in.Name))
	if repository.IsUniqueViolation(err) {
		return result.FailWith[*models.Profile](result.AlreadyExists("profile"))
	}
	if err != nil {
		return internalFailure[*models.Profile](ctx, "profile.create", err)
	}
	return result.Success(p)
}

func (s *ProfileService) Update(ctx context.Context, id int64, in models.ProfileInput) result.Result[*models.Profile] {
	if !validation.IsNonEmptyString(in.Name) {
		return result.FailWith[*models.Profile](result.MissingField("name"))
	}
	ok, err := s.profiles.Update(ctx, id, strings.TrimSpace(*in.Name))
	if repository.IsUniqueViolation(err) {
		return result.FailWith[*models.Profile](result.AlreadyExists("profile"))
	}
	if err != nil {
		return internalFailure[*models.Profile](ctx, "profile.update", err)
	}
	if !ok {
		return result.FailWith[*models.Profile](result.NotFound("profile"))
	}
	return s.Get(ctx, id)
}

// Delete refuses the two built-in profiles and profiles still assigned to users.
func (s *ProfileService) Delete(ctx context.Context, id int64) result.Result[struct{}] {
	if id == auth.AdministratorProfileID || id == DefaultProfileID {
		return result.Fail[struct{}]("Built-in profiles cannot be deleted", http.StatusConflict)
	}
	ok, err := s.profiles.Delete(ctx, id)
	if repository.IsForeignKeyViolation(err) {
		return result.FailWith[struct{}](result.InUse("profile"))
	}
	if err != nil {
		return internalFailure[struct{}](ctx, "profile.delete", err)
	}
	if !ok {
		return result.FailWith[struct{}](result.NotFound("profile"))
	}
	return result.Success(struct{}{})
}
