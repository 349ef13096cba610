package httpapi

import (
	"net/http"

	"personalFinance/internal/auth"
	"personalFinance/internal/authz"
	"personalFinance/models"
)

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request, _ *auth.Identity, f authz.Filter) {
	writeResult(w, r, s.Savings.List(r.Context(), f.UserID), http.StatusOK)
}

func (s *Server) handleCreateSaving(w http.ResponseWriter, r *http.Request) {
	var in models.SavingInput
	if !decode(w, r, &in) {
		return
	}
	who, _ := auth.FromContext(r.Context())
	in.UserID = authz.OwnerForCreate(who, in.UserID)
	writeResult(w, r, s.Savings.Create(r.Context(), in), http.StatusCreated)
}

func (s *Server) handleGetSaving(w http.ResponseWriter, r *http.Request, _ *auth.Identity, sv *models.Saving) {
	writeJSON(w, r, http.StatusOK, sv)
}

func (s *Server) handleUpdateSaving(w http.ResponseWriter, r *http.Request, _ *auth.Identity, sv *models.Saving) {
	var in models.SavingInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Savings.Update(r.Context(), sv, in), http.StatusOK)
}

func (s *Server) handleDeleteSaving(w http.ResponseWriter, r *http.Request, _ *auth.Identity, sv *models.Saving) {
	writeEmpty(w, r, s.Savings.Delete(r.Context(), sv))
}

func (s *Server) handleProgressReport(w http.ResponseWriter, r *http.Request, _ *auth.Identity, f authz.Filter) {
	writeResult(w, r, s.Savings.ProgressReport(r.Context(), f.UserID), http.StatusOK)
}
