package httpapi

import (
	"net/http"
	"strconv"

	"personalFinance/internal/auth"
	"personalFinance/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	writeResult(w, r, s.Auth.Login(r.Context(), req.Email, req.Password), http.StatusOK)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	who, _ := auth.FromContext(r.Context())
	writeResult(w, r, s.Users.Get(r.Context(), who.ID), http.StatusOK)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if !decode(w, r, &in) {
		return
	}
	who, _ := auth.FromContext(r.Context())
	writeResult(w, r, s.Users.Create(r.Context(), who, in), http.StatusCreated)
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := defaultPageSize, 0
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxPageSize)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, r, http.StatusBadRequest, errorBody{Error: "offset must be a non-negative integer"})
			return
		}
		offset = n
	}
	writeResult(w, r, s.Users.List(r.Context(), limit, offset), http.StatusOK)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, _ *auth.Identity, id int64) {
	writeResult(w, r, s.Users.Get(r.Context(), id), http.StatusOK)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, who *auth.Identity, id int64) {
	var in models.UserInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, r, s.Users.Update(r.Context(), who, id, in), http.StatusOK)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, _ *auth.Identity, id int64) {
	writeEmpty(w, r, s.Users.Delete(r.Context(), id))
}
