// Package httpapi exposes the services over HTTP with chi.
//
// Every request passes through the same chain: request id, request logger,
// recovery, timeout and security headers, then the per-route authentication
// and authorization steps, then the handler. Handlers only translate between
// JSON and service calls; the mapping of a Result to a status code lives in
// writeResult.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"personalFinance/internal/auth"
	"personalFinance/service"
)

// Pinger reports database liveness for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Users        *service.UserService
	Auth         *service.AuthService
	Profiles     *service.ProfileService
	Categories   *service.CategoryService
	Transactions *service.TransactionService
	Budgets      *service.BudgetService
	Savings      *service.SavingService
	Issuer       *auth.Issuer
	DB           Pinger
	Logger       zerolog.Logger
	// RequestTimeout bounds each request; zero means 30s.
	RequestTimeout time.Duration
}

type Server struct {
	Deps
	r chi.Router
}

func New(d Deps) *Server {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	s := &Server{Deps: d, r: chi.NewRouter()}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(hlog.NewHandler(d.Logger))
	s.r.Use(requestIDField)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(d.RequestTimeout))
	s.r.Use(securityHeaders)

	s.routes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorBody{Error: "Route not found"})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

func (s *Server) routes() {
	s.r.Get("/health", s.handleHealth)

	s.r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.With(s.authenticate).Get("/me", s.handleMe)
	})

	s.r.Route("/users", func(r chi.Router) {
		r.With(s.optionalAuth).Post("/", s.handleCreateUser)
		r.With(s.authenticate, requireAdmin).Get("/", s.handleListUsers)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/", selfOrAdmin(s.handleGetUser))
			r.Put("/", selfOrAdmin(s.handleUpdateUser))
			r.Patch("/", selfOrAdmin(s.handleUpdateUser))
			r.Delete("/", selfOrAdmin(s.handleDeleteUser))
		})
	})

	s.r.Route("/profiles", func(r chi.Router) {
		r.Use(s.authenticate, requireAdmin)
		r.Get("/", s.handleListProfiles)
		r.Post("/", s.handleCreateProfile)
		r.Get("/{id}", byID("profile", s.handleGetProfile))
		r.Put("/{id}", byID("profile", s.handleUpdateProfile))
		r.Patch("/{id}", byID("profile", s.handleUpdateProfile))
		r.Delete("/{id}", byID("profile", s.handleDeleteProfile))
	})

	s.r.Route("/categories", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.handleListCategories)
		r.Get("/{id}", byID("category", s.handleGetCategory))
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", s.handleCreateCategory)
			r.Put("/{id}", byID("category", s.handleUpdateCategory))
			r.Patch("/{id}", byID("category", s.handleUpdateCategory))
			r.Delete("/{id}", byID("category", s.handleDeleteCategory))
		})
	})

	s.r.Route("/transactions", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", scoped(s.handleListTransactions))
		r.Post("/", s.handleCreateTransaction)
		r.Get("/{id}", owned("transaction", s.Transactions.Get, s.handleGetTransaction))
		r.Put("/{id}", owned("transaction", s.Transactions.Get, s.handleUpdateTransaction))
		r.Patch("/{id}", owned("transaction", s.Transactions.Get, s.handleUpdateTransaction))
		r.Delete("/{id}", owned("transaction", s.Transactions.Get, s.handleDeleteTransaction))
	})

	s.r.Route("/budgets", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", scoped(s.handleListBudgets))
		r.Post("/", s.handleCreateBudget)
		r.Get("/report/remaining", scoped(s.handleRemainingReport))
		r.Get("/report/alerts", scoped(s.handleAlertsReport))
		r.Get("/{id}", owned("budget", s.Budgets.Get, s.handleGetBudget))
		r.Put("/{id}", owned("budget", s.Budgets.Get, s.handleUpdateBudget))
		r.Patch("/{id}", owned("budget", s.Budgets.Get, s.handleUpdateBudget))
		r.Delete("/{id}", owned("budget", s.Budgets.Get, s.handleDeleteBudget))
	})

	s.r.Route("/savings", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", scoped(s.handleListSavings))
		r.Post("/", s.handleCreateSaving)
		r.Get("/report/progress", scoped(s.handleProgressReport))
		r.Get("/{id}", owned("saving", s.Savings.Get, s.handleGetSaving))
		r.Put("/{id}", owned("saving", s.Savings.Get, s.handleUpdateSaving))
		r.Patch("/{id}", owned("saving", s.Savings.Get, s.handleUpdateSaving))
		r.Delete("/{id}", owned("saving", s.Savings.Get, s.handleDeleteSaving))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("health: db ping")
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
