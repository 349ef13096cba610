package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"personalFinance/internal/events"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

type SavingService struct {
	db      *sql.DB
	savings *repository.SavingRepository
	now     func() time.Time
	auditor
}

func NewSavingService(db *sql.DB, pub events.Publisher) *SavingService {
	return &SavingService{db: db, savings: repository.NewSavingRepository(db), now: time.Now, auditor: auditor{pub: pub}}
}

func (s *SavingService) List(ctx context.Context, userID int64) result.Result[[]models.Saving] {
	list, err := s.savings.ListByUser(ctx, userID)
	if err != nil {
		return internalFailure[[]models.Saving](ctx, "saving.list", err)
	}
	return result.Success(list)
}

func (s *SavingService) Get(ctx context.Context, id int64) result.Result[*models.Saving] {
	sv, err := s.savings.GetByID(ctx, id)
	if err != nil {
		return internalFailure[*models.Saving](ctx, "saving.get", err)
	}
	if sv == nil {
		return result.FailWith[*models.Saving](result.NotFound("saving"))
	}
	return result.Success(sv)
}

func (s *SavingService) Create(ctx context.Context, in models.SavingInput) result.Result[*models.Saving] {
	var created *models.Saving
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if failure = validation.ValidateSavingData(ctx, repository.NewReferences(tx), in); failure != nil {
			return errAbort
		}
		var err error
		created, err = repository.NewSavingRepository(tx).Create(ctx, savingFromInput(0, in))
		return err
	})
	if failure != nil {
		return result.FailWith[*models.Saving](failure)
	}
	if err != nil {
		return internalFailure[*models.Saving](ctx, "saving.create", err)
	}
	s.record(ctx, "saving", created.ID, events.ActionCreated, created.UserID)
	return result.Success(created)
}

func (s *SavingService) Update(ctx context.Context, current *models.Saving, in models.SavingInput) result.Result[*models.Saving] {
	merged := current.Apply(in)

	var updated *models.Saving
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if failure = validation.ValidateSavingData(ctx, repository.NewReferences(tx), merged); failure != nil {
			return errAbort
		}
		savings := repository.NewSavingRepository(tx)
		if err := savings.Update(ctx, savingFromInput(current.ID, merged)); err != nil {
			return err
		}
		var err error
		updated, err = savings.GetByID(ctx, current.ID)
		if err == nil && updated == nil {
			failure = result.NotFound("saving")
			return errAbort
		}
		return err
	})
	if failure != nil {
		return result.FailWith[*models.Saving](failure)
	}
	if err != nil {
		return internalFailure[*models.Saving](ctx, "saving.update", err)
	}
	s.record(ctx, "saving", updated.ID, events.ActionUpdated, updated.UserID)
	return result.Success(updated)
}

func (s *SavingService) Delete(ctx context.Context, sv *models.Saving) result.Result[struct{}] {
	ok, err := s.savings.Delete(ctx, sv.ID)
	if err != nil {
		return internalFailure[struct{}](ctx, "saving.delete", err)
	}
	if !ok {
		return result.FailWith[struct{}](result.NotFound("saving"))
	}
	s.record(ctx, "saving", sv.ID, events.ActionDeleted, sv.UserID)
	return result.Success(struct{}{})
}

// ProgressReport returns progress_percent and days_left for every saving of userID.
func (s *SavingService) ProgressReport(ctx context.Context, userID int64) result.Result[[]models.SavingProgress] {
	today := s.now().Format(validation.DateLayout)
	rows, err := s.savings.SavingsProgress(ctx, userID, today)
	if err != nil {
		return internalFailure[[]models.SavingProgress](ctx, "saving.report.progress", err)
	}
	return result.Success(rows)
}

func savingFromInput(id int64, in models.SavingInput) *models.Saving {
	sv := &models.Saving{ID: id, UserID: in.UserID, Name: strings.TrimSpace(*in.Name), TargetAmount: in.TargetAmount}
	if in.Amount != nil {
		sv.Amount = *in.Amount
	}
	if in.TargetDate != nil {
		d, _ := validation.ParseDate(*in.TargetDate)
		v := d.Format(validation.DateLayout)
		sv.TargetDate = &v
	}
	return sv
}
