package validation

import (
	"context"

	"github.com/rs/zerolog"

	"personalFinance/internal/result"
	"personalFinance/models"
)

const (
	// MaxAmount bounds every monetary field.
	MaxAmount = 1_000_000_000
	// AmountDecimals is the precision accepted for monetary fields.
	AmountDecimals = 2
)

// References answers the relationship-existence checks run last by the
// composite validators.
type References interface {
	UserExists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// ValidateTransactionData checks a full transaction payload and returns the first failure:
// required fields, amount, type, date, then user and category existence.
func ValidateTransactionData(ctx context.Context, refs References, in models.TransactionInput) *result.Error {
	if f, missing := CheckRequiredFields(map[string]any{
		"amount": in.Amount,
		"type":   in.Type,
		"date":   in.Date,
	}, "amount", "type", "date"); missing {
		return result.MissingField(f)
	}
	if !IsAmountInRange(in.Amount, MaxAmount, AmountDecimals) {
		return result.AmountOutOfRange("amount", MaxAmount, AmountDecimals)
	}
	switch models.TransactionType(*in.Type) {
	case models.TransactionIncome, models.TransactionExpense:
	default:
		return result.InvalidType(string(models.TransactionIncome), string(models.TransactionExpense))
	}
	if !IsValidDate(*in.Date) {
		return result.InvalidDate("date")
	}
	if e := userMustExist(ctx, refs, in.UserID); e != nil {
		return e
	}
	if in.CategoryID != nil {
		return categoryMustExist(ctx, refs, *in.CategoryID)
	}
	return nil
}

// ValidateSavingData checks a full saving payload: name, amount, optional
// target amount and date, then user existence.
func ValidateSavingData(ctx context.Context, refs References, in models.SavingInput) *result.Error {
	if f, missing := CheckRequiredFields(map[string]any{"name": in.Name}, "name"); missing {
		return result.MissingField(f)
	}
	if !IsNonEmptyString(in.Name) {
		return result.MissingField("name")
	}
	if in.Amount != nil && !IsPositiveNumber(*in.Amount) {
		return result.AmountMustBePositive("amount")
	}
	if in.Amount != nil && !IsBalanceInRange(*in.Amount, MaxAmount, AmountDecimals) {
		return result.BalanceOutOfRange("amount", MaxAmount, AmountDecimals)
	}
	if in.TargetAmount != nil && !IsAmountInRange(*in.TargetAmount, MaxAmount, AmountDecimals) {
		return result.AmountOutOfRange("target_amount", MaxAmount, AmountDecimals)
	}
	if in.TargetDate != nil && !IsValidDate(*in.TargetDate) {
		return result.InvalidDate("target_date")
	}
	return userMustExist(ctx, refs, in.UserID)
}

// ValidateBudgetData checks a full budget payload: category, amount and month
// are required, then amount range, month format, user and category existence.
func ValidateBudgetData(ctx context.Context, refs References, in models.BudgetInput) *result.Error {
	if f, missing := CheckRequiredFields(map[string]any{
		"category_id": in.CategoryID,
		"amount":      in.Amount,
		"month":       in.Month,
	}, "category_id", "amount", "month"); missing {
		return result.MissingField(f)
	}
	if !IsAmountInRange(in.Amount, MaxAmount, AmountDecimals) {
		return result.AmountOutOfRange("amount", MaxAmount, AmountDecimals)
	}
	if !IsValidMonth(*in.Month) {
		return result.InvalidDate("month")
	}
	if !IsValidID(in.CategoryID) {
		return result.InvalidID("category")
	}
	if e := userMustExist(ctx, refs, in.UserID); e != nil {
		return e
	}
	return categoryMustExist(ctx, refs, *in.CategoryID)
}

func userMustExist(ctx context.Context, refs References, id int64) *result.Error {
	if id <= 0 {
		return result.InvalidID("user")
	}
	ok, err := refs.UserExists(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", id).Msg("check user exists")
		return result.InternalError()
	}
	if !ok {
		return result.NotFound("user")
	}
	return nil
}

func categoryMustExist(ctx context.Context, refs References, id int64) *result.Error {
	if id <= 0 {
		return result.InvalidID("category")
	}
	ok, err := refs.CategoryExists(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("category_id", id).Msg("check category exists")
		return result.InternalError()
	}
	if !ok {
		return result.NotFound("category")
	}
	return nil
}
