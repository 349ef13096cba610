package httpapi

import (
	"net/http"
	"strconv"

	"personalFinance/internal/auth"
	"personalFinance/internal/authz"
	"personalFinance/internal/result"
	"personalFinance/models"
	"personalFinance/service"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request, _ *auth.Identity, f authz.Filter) {
	writeResult(w, r, s.Budgets.List(r.Context(), f.UserID, r.URL.Query().Get("month")), http.StatusOK)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var in models.BudgetInput
	if !decode(w, r, &in) {
		return
	}
	who, _ := auth.FromContext(r.Context())
	in.UserID = authz.OwnerForCreate(who, in.UserID)
	writeResult(w, r, s.Budgets.Create(r.Context(), in), http.StatusCreated)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request, _ *auth.Identity, b *models.Budget) {
	writeJSON(w, r, http.StatusOK, b)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request, _ *auth.Identity, b *models.Budget) {
	var in models.BudgetInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Budgets.Update(r.Context(), b, in), http.StatusOK)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request, _ *auth.Identity, b *models.Budget) {
	writeEmpty(w, r, s.Budgets.Delete(r.Context(), b))
}

func (s *Server) handleRemainingReport(w http.ResponseWriter, r *http.Request, _ *auth.Identity, f authz.Filter) {
	writeResult(w, r, s.Budgets.RemainingReport(r.Context(), f.UserID, r.URL.Query().Get("month")), http.StatusOK)
}

func (s *Server) handleAlertsReport(w http.ResponseWriter, r *http.Request, _ *auth.Identity, f authz.Filter) {
	threshold := service.DefaultAlertThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, result.ThresholdRange())
			return
		}
		threshold = v
	}
	writeResult(w, r, s.Budgets.AlertsReport(r.Context(), f.UserID, threshold), http.StatusOK)
}
