package service

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"personalFinance/internal/events"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

type CategoryService struct {
	categories *repository.CategoryRepository
	// collapses concurrent Others lookups within this process
	others singleflight.Group
	auditor
}

func NewCategoryService(categories *repository.CategoryRepository, pub events.Publisher) *CategoryService {
	return &CategoryService{categories: categories, auditor: auditor{pub: pub}}
}

func (s *CategoryService) List(ctx context.Context) result.Result[[]models.Category] {
	list, err := s.categories.List(ctx)
	if err != nil {
		return internalFailure[[]models.Category](ctx, "category.list", err)
	}
	return result.Success(list)
}

func (s *CategoryService) Get(ctx context.Context, id int64) result.Result[*models.Category] {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return internalFailure[*models.Category](ctx, "category.get", err)
	}
	if c == nil {
		return result.FailWith[*models.Category](result.NotFound("category"))
	}
	return result.Success(c)
}

func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) result.Result[*models.Category] {
	if !validation.IsNonEmptyString(in.Name) {
		return result.FailWith[*models.Category](result.MissingField("name"))
	}
	c, err := s.categories.Create(ctx, strings.TrimSpace(*in.Name))
	if repository.IsUniqueViolation(err) {
		return result.FailWith[*models.Category](result.AlreadyExists("category"))
	}
	if err != nil {
		return internalFailure[*models.Category](ctx, "category.create", err)
	}
	s.record(ctx, "category", c.ID, events.ActionCreated, 0)
	return result.Success(c)
}

func (s *CategoryService) Update(ctx context.Context, id int64, in models.CategoryInput) result.Result[*models.Category] {
	if !validation.IsNonEmptyString(in.Name) {
		return result.FailWith[*models.Category](result.MissingField("name"))
	}
	ok, err := s.categories.Update(ctx, id, strings.TrimSpace(*in.Name))
	if repository.IsUniqueViolation(err) {
		return result.FailWith[*models.Category](result.AlreadyExists("category"))
	}
	if err != nil {
		return internalFailure[*models.Category](ctx, "category.update", err)
	}
	if !ok {
		return result.FailWith[*models.Category](result.NotFound("category"))
	}
	s.record(ctx, "category", id, events.ActionUpdated, 0)
	return s.Get(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) result.Result[struct{}] {
	ok, err := s.categories.Delete(ctx, id)
	if repository.IsForeignKeyViolation(err) {
		return result.FailWith[struct{}](result.InUse("category"))
	}
	if err != nil {
		return internalFailure[struct{}](ctx, "category.delete", err)
	}
	if !ok {
		return result.FailWith[struct{}](result.NotFound("category"))
	}
	s.record(ctx, "category", id, events.ActionDeleted, 0)
	return result.Success(struct{}{})
}

// GetOrCreateOthers resolves the fallback category. The database's unique
// name constraint keeps it to a single row across processes.
func (s *CategoryService) GetOrCreateOthers(ctx context.Context) result.Result[*models.Category] {
	v, err, _ := s.others.Do(models.OthersCategoryName, func() (any, error) {
		return s.categories.FindOrCreateByName(context.WithoutCancel(ctx), models.OthersCategoryName)
	})
	if err != nil {
		return internalFailure[*models.Category](ctx, "category.others", err)
	}
	return result.Success(v.(*models.Category))
}
