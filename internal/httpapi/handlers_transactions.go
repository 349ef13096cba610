package httpapi

import (
	"net/http"

	"personalFinance/internal/auth"
	"personalFinance/internal/authz"
	"personalFinance/models"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, _ *auth.Identity, f authz.Filter) {
	q := r.URL.Query()
	filter := models.TransactionFilter{
		UserID: f.UserID,
		Type:   q.Get("type"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
	if raw := q.Get("category_id"); raw != "" {
		id, e := authz.ParseID(raw, "category")
		if e != nil {
			writeError(w, r, e)
			return
		}
		filter.CategoryID = id
	}
	writeResult(w, r, s.Transactions.List(r.Context(), filter), http.StatusOK)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.TransactionInput
	if !decode(w, r, &in) {
		return
	}
	who, _ := auth.FromContext(r.Context())
	in.UserID = authz.OwnerForCreate(who, in.UserID)
	writeResult(w, r, s.Transactions.Create(r.Context(), in), http.StatusCreated)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request, _ *auth.Identity, t *models.Transaction) {
	writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, _ *auth.Identity, t *models.Transaction) {
	var in models.TransactionInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Transactions.Update(r.Context(), t, in), http.StatusOK)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, _ *auth.Identity, t *models.Transaction) {
	writeEmpty(w, r, s.Transactions.Delete(r.Context(), t))
}
