package httpapi

import (
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"personalFinance/internal/auth"
	"personalFinance/internal/result"
)

const (
	msgMissingBearer = "Missing or invalid Authorization header"
	msgTokenExpired  = "Token expired"
	msgInvalidToken  = "Invalid token"
)

// authenticate rejects requests without a valid bearer token and stores the
// caller's identity in the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.identify(r)
		if err != nil {
			msg := msgInvalidToken
			switch {
			case errors.Is(err, auth.ErrMissingBearer):
				msg = msgMissingBearer
			case errors.Is(err, auth.ErrTokenExpired):
				msg = msgTokenExpired
			}
			writeJSON(w, r, http.StatusUnauthorized, errorBody{Error: msg})
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// optionalAuth attaches an identity when a valid token is present and
// otherwise lets the request through anonymously.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := s.identify(r); err == nil {
			r = r.WithContext(auth.WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) identify(r *http.Request) (*auth.Identity, error) {
	tok, err := auth.ParseBearer(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	id, err := s.Issuer.Verify(tok)
	if err != nil {
		return nil, err
	}
	hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Int64("user_id", id.ID)
	})
	return id, nil
}

// requireProfiles allows only callers whose profile id is listed.
func requireProfiles(ids ...int64) func(http.Handler) http.Handler {
	allowed := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			who, ok := auth.FromContext(r.Context())
			if !ok {
				writeError(w, r, result.Forbidden())
				return
			}
			if _, ok := allowed[who.ProfileID]; !ok {
				writeError(w, r, result.Forbidden())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var requireAdmin = requireProfiles(auth.AdministratorProfileID)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// requestIDField copies chi's request id onto the request logger.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	ev := hlog.FromRequest(r).Info()
	if status >= http.StatusInternalServerError {
		ev = hlog.FromRequest(r).Error()
	}
	ev.Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
