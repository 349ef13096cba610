package httpapi

import (
	"net/http"

	"personalFinance/models"
)

// Profiles and categories are shared reference data; only administrators change them.

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	writeResult(w, r, s.Profiles.List(r.Context()), http.StatusOK)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, id int64) {
	writeResult(w, r, s.Profiles.Get(r.Context(), id), http.StatusOK)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Profiles.Create(r.Context(), in), http.StatusCreated)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, id int64) {
	var in models.ProfileInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Profiles.Update(r.Context(), id, in), http.StatusOK)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request, id int64) {
	writeEmpty(w, r, s.Profiles.Delete(r.Context(), id))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeResult(w, r, s.Categories.List(r.Context()), http.StatusOK)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request, id int64) {
	writeResult(w, r, s.Categories.Get(r.Context(), id), http.StatusOK)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Categories.Create(r.Context(), in), http.StatusCreated)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, id int64) {
	var in models.CategoryInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Categories.Update(r.Context(), id, in), http.StatusOK)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, id int64) {
	writeEmpty(w, r, s.Categories.Delete(r.Context(), id))
}
