package service

import (
	"context"
	"database/sql"
	"strings"

	"personalFinance/internal/events"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

type TransactionService struct {
	db           *sql.DB
	transactions *repository.TransactionRepository
	categories   *CategoryService
	auditor
}

func NewTransactionService(db *sql.DB, categories *CategoryService, pub events.Publisher) *TransactionService {
	return &TransactionService{
		db:           db,
		transactions: repository.NewTransactionRepository(db),
		categories:   categories,
		auditor:      auditor{pub: pub},
	}
}

// List returns the transactions matching f. f.UserID must come from the forced filter.
func (s *TransactionService) List(ctx context.Context, f models.TransactionFilter) result.Result[[]models.Transaction] {
	if f.Type != "" && f.Type != string(models.TransactionIncome) && f.Type != string(models.TransactionExpense) {
		return result.FailWith[[]models.Transaction](result.InvalidType(string(models.TransactionIncome), string(models.TransactionExpense)))
	}
	if f.From != "" && !validation.IsValidDate(f.From) {
		return result.FailWith[[]models.Transaction](result.InvalidDate("from"))
	}
	if f.To != "" && !validation.IsValidDate(f.To) {
		return result.FailWith[[]models.Transaction](result.InvalidDate("to"))
	}
	list, err := s.transactions.List(ctx, f)
	if err != nil {
		return internalFailure[[]models.Transaction](ctx, "transaction.list", err)
	}
	return result.Success(list)
}

func (s *TransactionService) Get(ctx context.Context, id int64) result.Result[*models.Transaction] {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return internalFailure[*models.Transaction](ctx, "transaction.get", err)
	}
	if t == nil {
		return result.FailWith[*models.Transaction](result.NotFound("transaction"))
	}
	return result.Success(t)
}

// Create validates and stores a transaction for in.UserID. Without a
// category the transaction is filed under Others.
func (s *TransactionService) Create(ctx context.Context, in models.TransactionInput) result.Result[*models.Transaction] {
	if in.CategoryID == nil {
		others := s.categories.GetOrCreateOthers(ctx)
		if !others.OK() {
			return result.Forward[*models.Transaction](others)
		}
		id := others.Data().ID
		in.CategoryID = &id
	}

	var created *models.Transaction
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if failure = validation.ValidateTransactionData(ctx, repository.NewReferences(tx), in); failure != nil {
			return errAbort
		}
		var err error
		created, err = repository.NewTransactionRepository(tx).Create(ctx, transactionFromInput(0, in))
		return err
	})
	if failure != nil {
		return result.FailWith[*models.Transaction](failure)
	}
	if err != nil {
		return internalFailure[*models.Transaction](ctx, "transaction.create", err)
	}
	s.record(ctx, "transaction", created.ID, events.ActionCreated, created.UserID)
	return result.Success(created)
}

// Update merges in onto current, re-validates the whole record and stores it.
// The owner never changes.
func (s *TransactionService) Update(ctx context.Context, current *models.Transaction, in models.TransactionInput) result.Result[*models.Transaction] {
	merged := current.Apply(in)

	var updated *models.Transaction
	var failure *result.Error
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if failure = validation.ValidateTransactionData(ctx, repository.NewReferences(tx), merged); failure != nil {
			return errAbort
		}
		txs := repository.NewTransactionRepository(tx)
		if err := txs.Update(ctx, transactionFromInput(current.ID, merged)); err != nil {
			return err
		}
		var err error
		updated, err = txs.GetByID(ctx, current.ID)
		if err == nil && updated == nil {
			failure = result.NotFound("transaction")
			return errAbort
		}
		return err
	})
	if failure != nil {
		return result.FailWith[*models.Transaction](failure)
	}
	if err != nil {
		return internalFailure[*models.Transaction](ctx, "transaction.update", err)
	}
	s.record(ctx, "transaction", updated.ID, events.ActionUpdated, updated.UserID)
	return result.Success(updated)
}

func (s *TransactionService) Delete(ctx context.Context, t *models.Transaction) result.Result[struct{}] {
	ok, err := s.transactions.Delete(ctx, t.ID)
	if err != nil {
		return internalFailure[struct{}](ctx, "transaction.delete", err)
	}
	if !ok {
		return result.FailWith[struct{}](result.NotFound("transaction"))
	}
	s.record(ctx, "transaction", t.ID, events.ActionDeleted, t.UserID)
	return result.Success(struct{}{})
}

// transactionFromInput builds the row from a validated input; dates are stored as YYYY-MM-DD.
func transactionFromInput(id int64, in models.TransactionInput) *models.Transaction {
	date, _ := validation.ParseDate(*in.Date)
	t := &models.Transaction{
		ID:         id,
		UserID:     in.UserID,
		CategoryID: *in.CategoryID,
		Amount:     *in.Amount,
		Type:       models.TransactionType(*in.Type),
		Date:       date.Format(validation.DateLayout),
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	return t
}
