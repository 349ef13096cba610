package validation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalFinance/models"
)

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Abcdefg1"))
	for _, pw := range []string{"abcdefgh", "ABCDEFGH", "Abcdefgh", "Ab1"} {
		assert.False(t, IsStrongPassword(pw), pw)
	}
	assert.False(t, IsStrongPassword(12345678))

	assert.True(t, IsStrongPassword("Abcdefg1"+strings.Repeat("x", MaxPasswordBytes-8)))
	assert.False(t, IsStrongPassword("Abcdefg1"+strings.Repeat("x", MaxPasswordBytes-7)))
}

func TestIsAmountInRange(t *testing.T) {
	assert.False(t, IsAmountInRange(19.999, 1000, 2))
	assert.True(t, IsAmountInRange(19.99, 1000, 2))
	assert.False(t, IsAmountInRange(1001.0, 1000, 2))
	assert.True(t, IsAmountInRange(1000, 1000, 2))
	assert.False(t, IsAmountInRange(0.0, 1000, 2))
	assert.False(t, IsAmountInRange(-5.0, 1000, 2))
	assert.False(t, IsAmountInRange("12", 1000, 2))
}

func TestIsBalanceInRange(t *testing.T) {
	assert.True(t, IsBalanceInRange(0.0, 1000, 2))
	assert.True(t, IsBalanceInRange(19.99, 1000, 2))
	assert.False(t, IsBalanceInRange(19.999, 1000, 2))
	assert.False(t, IsBalanceInRange(1000.01, 1000, 2))
	assert.False(t, IsBalanceInRange(-0.01, 1000, 2))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(1))
	assert.True(t, IsValidID("42"))
	assert.True(t, IsValidID(float64(7)))
	assert.False(t, IsValidID(0))
	assert.False(t, IsValidID("-3"))
	assert.False(t, IsValidID("1.5"))
	assert.False(t, IsValidID("abc"))
	assert.False(t, IsValidID(2.5))
	assert.False(t, IsValidID(nil))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana@example.com"))
	assert.True(t, IsValidEmail("a.b+c@mail.example.org"))
	assert.False(t, IsValidEmail("ana@example"))
	assert.False(t, IsValidEmail("ana@example.c"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestPositiveDateAndStrings(t *testing.T) {
	assert.True(t, IsPositiveNumber(0.0))
	assert.True(t, IsPositiveNumber(3))
	assert.False(t, IsPositiveNumber(-0.01))

	assert.True(t, IsValidDate("2024-02-29"))
	assert.True(t, IsValidDate("2024-03-01T10:00:00Z"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("   "))
	assert.True(t, IsValidMonth("2024-05"))
	assert.False(t, IsValidMonth("2024-13"))

	assert.True(t, IsNonEmptyString(" x "))
	assert.False(t, IsNonEmptyString(" \t"))
	assert.False(t, IsNonEmptyString(5))
}

func TestCheckRequiredFields(t *testing.T) {
	zero := 0.0
	amount := 10.0
	f, missing := CheckRequiredFields(map[string]any{"amount": &zero, "type": "expense"}, "type", "amount", "date")
	require.True(t, missing)
	assert.Equal(t, "amount", f)

	_, missing = CheckRequiredFields(map[string]any{"amount": &amount, "type": "expense"}, "type", "amount")
	assert.False(t, missing)

	var nilStr *string
	f, missing = CheckRequiredFields(map[string]any{"name": nilStr}, "name")
	require.True(t, missing)
	assert.Equal(t, "name", f)
}

type fakeRefs struct {
	users      map[int64]bool
	categories map[int64]bool
	err        error
}

func (f fakeRefs) UserExists(_ context.Context, id int64) (bool, error) {
	return f.users[id], f.err
}

func (f fakeRefs) CategoryExists(_ context.Context, id int64) (bool, error) {
	return f.categories[id], f.err
}

func ptr[T any](v T) *T { return &v }

func TestValidateTransactionData_Order(t *testing.T) {
	ctx := context.Background()
	refs := fakeRefs{users: map[int64]bool{1: true}, categories: map[int64]bool{3: true}}

	// Missing fields are reported before the bad amount and the unknown user.
	e := ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 99, Amount: ptr(19.999)})
	require.NotNil(t, e)
	assert.Equal(t, "Missing required field: type", e.Message)

	e = ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 99, Amount: ptr(19.999), Type: ptr("expense"), Date: ptr("2024-01-02")})
	require.NotNil(t, e)
	assert.Contains(t, e.Message, "amount")

	e = ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 1, Amount: ptr(5.0), Type: ptr("gift"), Date: ptr("2024-01-02")})
	require.NotNil(t, e)
	assert.Equal(t, "Type must be one of: income, expense", e.Message)

	e = ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 1, Amount: ptr(5.0), Type: ptr("expense"), Date: ptr("nope")})
	require.NotNil(t, e)
	assert.Equal(t, "Invalid date for field: date", e.Message)

	e = ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 99, Amount: ptr(5.0), Type: ptr("expense"), Date: ptr("2024-01-02")})
	require.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, e.Code)
	assert.Equal(t, "User not found", e.Message)

	e = ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 1, CategoryID: ptr(int64(4)), Amount: ptr(5.0), Type: ptr("expense"), Date: ptr("2024-01-02")})
	require.NotNil(t, e)
	assert.Equal(t, "Category not found", e.Message)

	e = ValidateTransactionData(ctx, refs, models.TransactionInput{UserID: 1, CategoryID: ptr(int64(3)), Amount: ptr(5.0), Type: ptr("income"), Date: ptr("2024-01-02")})
	assert.Nil(t, e)
}

func TestValidateSavingData(t *testing.T) {
	ctx := context.Background()
	refs := fakeRefs{users: map[int64]bool{1: true}}

	e := ValidateSavingData(ctx, refs, models.SavingInput{UserID: 1, Amount: ptr(-1.0)})
	require.NotNil(t, e)
	assert.Equal(t, "Missing required field: name", e.Message)

	e = ValidateSavingData(ctx, refs, models.SavingInput{UserID: 1, Name: ptr("Trip"), Amount: ptr(-1.0)})
	require.NotNil(t, e)
	assert.Equal(t, "amount must be a positive number", e.Message)

	e = ValidateSavingData(ctx, refs, models.SavingInput{UserID: 1, Name: ptr("Trip"), TargetDate: ptr("31/12/2025")})
	require.NotNil(t, e)
	assert.Equal(t, "Invalid date for field: target_date", e.Message)

	e = ValidateSavingData(ctx, refs, models.SavingInput{UserID: 1, Name: ptr("Trip"), Amount: ptr(19.999)})
	require.NotNil(t, e)
	assert.Equal(t, "amount must be at most 1000000000 and have at most 2 decimal places", e.Message)

	assert.Nil(t, ValidateSavingData(ctx, refs, models.SavingInput{UserID: 1, Name: ptr("Trip"), Amount: ptr(0.0)}))
	assert.Nil(t, ValidateSavingData(ctx, refs, models.SavingInput{UserID: 1, Name: ptr("Trip"), Amount: ptr(19.99)}))
}

func TestValidateBudgetData_InfraErrorIsInternal(t *testing.T) {
	refs := fakeRefs{err: errors.New("db down")}
	e := ValidateBudgetData(context.Background(), refs, models.BudgetInput{
		UserID: 1, CategoryID: ptr(int64(1)), Amount: ptr(100.0), Month: ptr("2024-05"),
	})
	require.NotNil(t, e)
	assert.Equal(t, http.StatusInternalServerError, e.Code)
	assert.Equal(t, "Internal server error", e.Message)
}
