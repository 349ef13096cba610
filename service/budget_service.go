package service

import (
	"context"
	"database/sql"
	"math"

	"github.com/shopspring/decimal"

	"personalFinance/internal/events"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

// DefaultAlertThreshold is used when the alerts report is requested without a threshold.
const DefaultAlertThreshold = 80.0

type BudgetService struct {
	db      *sql.DB
	budgets *repository.BudgetRepository
	auditor
}

func NewBudgetService(db *sql.DB, pub events.Publisher) *BudgetService {
	return &BudgetService{db: db, budgets: repository.NewBudgetRepository(db), auditor: auditor{pub: pub}}
}

func (s *BudgetService) List(ctx context.Context, userID int64, month string) result.Result[[]models.Budget] {
	if month != "" && !validation.IsValidMonth(month) {
		return result.FailWith[[]models.Budget](result.InvalidDate("month"))
	}
	list, err := s.budgets.List(ctx, userID, month)
	if err != nil {
		return internalFailure[[]models.Budget](ctx, "budget.list", err)
	}
	return result.Success(list)
}

func (s *BudgetService) Get(ctx context.Context, id int64) result.Result[*models.Budget] {
	b, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return internalFailure[*models.Budget](ctx, "budget.get", err)
	}
	if b == nil {
		return result.FailWith[*models.Budget](result.NotFound("budget"))
	}
	return result.Success(b)
}

func (s *BudgetService) Create(ctx context.Context, in models.BudgetInput) result.Result[*models.Budget] {
	var created *models.Budget
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if failure = validation.ValidateBudgetData(ctx, repository.NewReferences(tx), in); failure != nil {
			return errAbort
		}
		var err error
		created, err = repository.NewBudgetRepository(tx).Create(ctx, &models.Budget{
			UserID:     in.UserID,
			CategoryID: *in.CategoryID,
			Amount:     *in.Amount,
			Month:      *in.Month,
		})
		return err
	})
	switch {
	case failure != nil:
		return result.FailWith[*models.Budget](failure)
	case repository.IsUniqueViolation(err):
		return result.FailWith[*models.Budget](result.AlreadyExists("budget"))
	case err != nil:
		return internalFailure[*models.Budget](ctx, "budget.create", err)
	}
	s.record(ctx, "budget", created.ID, events.ActionCreated, created.UserID)
	return result.Success(created)
}

func (s *BudgetService) Update(ctx context.Context, current *models.Budget, in models.BudgetInput) result.Result[*models.Budget] {
	merged := current.Apply(in)

	var updated *models.Budget
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if failure = validation.ValidateBudgetData(ctx, repository.NewReferences(tx), merged); failure != nil {
			return errAbort
		}
		budgets := repository.NewBudgetRepository(tx)
		err := budgets.Update(ctx, &models.Budget{
			ID:         current.ID,
			CategoryID: *merged.CategoryID,
			Amount:     *merged.Amount,
			Month:      *merged.Month,
		})
		if err != nil {
			return err
		}
		updated, err = budgets.GetByID(ctx, current.ID)
		if err == nil && updated == nil {
			failure = result.NotFound("budget")
			return errAbort
		}
		return err
	})
	switch {
	case failure != nil:
		return result.FailWith[*models.Budget](failure)
	case repository.IsUniqueViolation(err):
		return result.FailWith[*models.Budget](result.AlreadyExists("budget"))
	case err != nil:
		return internalFailure[*models.Budget](ctx, "budget.update", err)
	}
	s.record(ctx, "budget", updated.ID, events.ActionUpdated, updated.UserID)
	return result.Success(updated)
}

func (s *BudgetService) Delete(ctx context.Context, b *models.Budget) result.Result[struct{}] {
	ok, err := s.budgets.Delete(ctx, b.ID)
	if err != nil {
		return internalFailure[struct{}](ctx, "budget.delete", err)
	}
	if !ok {
		return result.FailWith[struct{}](result.NotFound("budget"))
	}
	s.record(ctx, "budget", b.ID, events.ActionDeleted, b.UserID)
	return result.Success(struct{}{})
}

// RemainingReport returns budget, spent and remaining for every budget of userID.
func (s *BudgetService) RemainingReport(ctx context.Context, userID int64, month string) result.Result[[]models.RemainingBudget] {
	if month != "" && !validation.IsValidMonth(month) {
		return result.FailWith[[]models.RemainingBudget](result.InvalidDate("month"))
	}
	rows, err := s.budgets.RemainingBudgets(ctx, userID, month)
	if err != nil {
		return internalFailure[[]models.RemainingBudget](ctx, "budget.report.remaining", err)
	}
	for i := range rows {
		rows[i].Spent = round2(decimal.NewFromFloat(rows[i].Spent))
		rows[i].Remaining = round2(decimal.NewFromFloat(rows[i].Budget).Sub(decimal.NewFromFloat(rows[i].Spent)))
	}
	return result.Success(rows)
}

// AlertsReport returns the budgets of userID with at least threshold percent spent.
// threshold must be a number within [0, 100].
func (s *BudgetService) AlertsReport(ctx context.Context, userID int64, threshold float64) result.Result[[]models.BudgetAlert] {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 100 {
		return result.FailWith[[]models.BudgetAlert](result.ThresholdRange())
	}
	rows, err := s.budgets.BudgetAlerts(ctx, userID, threshold)
	if err != nil {
		return internalFailure[[]models.BudgetAlert](ctx, "budget.report.alerts", err)
	}
	hundred := decimal.NewFromInt(100)
	for i := range rows {
		spent := decimal.NewFromFloat(rows[i].Spent)
		rows[i].Spent = round2(spent)
		rows[i].PercentageSpent = round2(spent.Mul(hundred).Div(decimal.NewFromFloat(rows[i].Budget)))
	}
	return result.Success(rows)
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
