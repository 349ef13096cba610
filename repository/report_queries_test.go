package repository

import (
	"context"
	"testing"

	"personalFinance/models"
)

type fixture struct {
	users        *UserRepository
	categories   *CategoryRepository
	transactions *TransactionRepository
	budgets      *BudgetRepository
	savings      *SavingRepository
	userID       int64
	categoryID   int64
}

func newFixture(t *testing.T, name string) fixture {
	t.Helper()
	d := openDB(t, name)
	f := fixture{
		users:        NewUserRepository(d),
		categories:   NewCategoryRepository(d),
		transactions: NewTransactionRepository(d),
		budgets:      NewBudgetRepository(d),
		savings:      NewSavingRepository(d),
	}
	ctx := context.Background()
	u, err := f.users.Create(ctx, &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	c, err := f.categories.Create(ctx, "Food")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	f.userID, f.categoryID = u.ID, c.ID
	return f
}

func (f fixture) expense(t *testing.T, amount float64, date string) {
	t.Helper()
	_, err := f.transactions.Create(context.Background(), &models.Transaction{
		UserID: f.userID, CategoryID: f.categoryID, Amount: amount, Type: models.TransactionExpense, Date: date,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
}

func TestRemainingBudgets(t *testing.T) {
	f := newFixture(t, "reportremaining")
	ctx := context.Background()
	if _, err := f.budgets.Create(ctx, &models.Budget{UserID: f.userID, CategoryID: f.categoryID, Amount: 1000, Month: "2024-05"}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	f.expense(t, 300, "2024-05-10")
	f.expense(t, 50, "2024-06-01") // other month
	// income in the same category does not count as spending
	if _, err := f.transactions.Create(ctx, &models.Transaction{UserID: f.userID, CategoryID: f.categoryID, Amount: 80, Type: models.TransactionIncome, Date: "2024-05-11"}); err != nil {
		t.Fatalf("create income: %v", err)
	}

	rows, err := f.budgets.RemainingBudgets(ctx, f.userID, "")
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if len(rows) != 1 || rows[0].Budget != 1000 || rows[0].Spent != 300 || rows[0].CategoryName != "Food" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestBudgetAlerts(t *testing.T) {
	f := newFixture(t, "reportalerts")
	ctx := context.Background()
	if _, err := f.budgets.Create(ctx, &models.Budget{UserID: f.userID, CategoryID: f.categoryID, Amount: 400, Month: "2024-05"}); err != nil {
		t.Fatalf("create budget: %v", err)
	}
	f.expense(t, 200, "2024-05-03")

	alerts, err := f.budgets.BudgetAlerts(ctx, f.userID, 25)
	if err != nil || len(alerts) != 1 || alerts[0].Spent != 200 {
		t.Fatalf("alerts: %v %+v", err, alerts)
	}
	alerts, err = f.budgets.BudgetAlerts(ctx, f.userID, 75)
	if err != nil || len(alerts) != 0 {
		t.Fatalf("expected no alerts above 75%%: %v %+v", err, alerts)
	}
}

func TestSavingsProgress(t *testing.T) {
	f := newFixture(t, "reportsavings")
	ctx := context.Background()
	target := 2000.0
	date := "2024-12-31"
	if _, err := f.savings.Create(ctx, &models.Saving{UserID: f.userID, Name: "Trip", Amount: 500, TargetAmount: &target, TargetDate: &date}); err != nil {
		t.Fatalf("create saving: %v", err)
	}
	if _, err := f.savings.Create(ctx, &models.Saving{UserID: f.userID, Name: "Rainy day", Amount: 120}); err != nil {
		t.Fatalf("create saving: %v", err)
	}

	rows, err := f.savings.SavingsProgress(ctx, f.userID, "2024-12-01")
	if err != nil || len(rows) != 2 {
		t.Fatalf("progress: %v %+v", err, rows)
	}
	if rows[0].ProgressPercent == nil || *rows[0].ProgressPercent != 25 {
		t.Fatalf("expected 25%%, got %+v", rows[0].ProgressPercent)
	}
	if rows[0].DaysLeft == nil || *rows[0].DaysLeft != 30 {
		t.Fatalf("expected 30 days left, got %+v", rows[0].DaysLeft)
	}
	if rows[1].ProgressPercent != nil || rows[1].DaysLeft != nil {
		t.Fatalf("expected nulls for saving without target: %+v", rows[1])
	}
}

func TestTransactionRepository_ListFilters(t *testing.T) {
	f := newFixture(t, "txfilters")
	ctx := context.Background()
	f.expense(t, 10, "2024-01-05")
	f.expense(t, 20, "2024-02-05")
	other, err := f.users.Create(ctx, &models.User{Name: "Bo", Email: "bo@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := f.transactions.Create(ctx, &models.Transaction{UserID: other.ID, CategoryID: f.categoryID, Amount: 99, Type: models.TransactionExpense, Date: "2024-01-06"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := f.transactions.List(ctx, models.TransactionFilter{UserID: f.userID})
	if err != nil || len(all) != 2 || all[0].Date != "2024-02-05" {
		t.Fatalf("list: %v %+v", err, all)
	}
	jan, err := f.transactions.List(ctx, models.TransactionFilter{UserID: f.userID, From: "2024-01-01", To: "2024-01-31", Type: "expense"})
	if err != nil || len(jan) != 1 || jan[0].Amount != 10 {
		t.Fatalf("filtered list: %v %+v", err, jan)
	}
}
