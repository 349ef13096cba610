package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"personalFinance/internal/auth"
	"personalFinance/internal/authz"
	"personalFinance/internal/result"
)

// ownedHandler receives the resource already fetched and authorized.
type ownedHandler[T authz.Owned] func(w http.ResponseWriter, r *http.Request, who *auth.Identity, res T)

// owned resolves {id}, fetches the resource and applies the ownership rule
// in that order: 400 on a bad id, 404 when absent, 403 for a foreign owner.
func owned[T authz.Owned](entity string, get func(context.Context, int64) result.Result[T], h ownedHandler[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, _ := auth.FromContext(r.Context())
		id, e := authz.ParseID(chi.URLParam(r, "id"), entity)
		if e != nil {
			writeError(w, r, e)
			return
		}
		res, e := get(r.Context(), id).Unpack()
		if e != nil {
			writeError(w, r, e)
			return
		}
		if e := authz.Authorize(who, res); e != nil {
			writeError(w, r, e)
			return
		}
		h(w, r, who, res)
	}
}

type selfHandler func(w http.ResponseWriter, r *http.Request, who *auth.Identity, userID int64)

// selfOrAdmin resolves {id} as a user id that the caller must be or administer.
func selfOrAdmin(h selfHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, _ := auth.FromContext(r.Context())
		id, e := authz.ParseID(chi.URLParam(r, "id"), "user")
		if e != nil {
			writeError(w, r, e)
			return
		}
		if !authz.SelfOrAdmin(who, id) {
			writeError(w, r, result.Forbidden())
			return
		}
		h(w, r, who, id)
	}
}

type scopedHandler func(w http.ResponseWriter, r *http.Request, who *auth.Identity, f authz.Filter)

// scoped computes the forced filter for listings and report queries.
func scoped(h scopedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, _ := auth.FromContext(r.Context())
		h(w, r, who, authz.ForcedFilter(who, r.URL.Query()))
	}
}

// byID parses {id} for routes without an ownership rule.
func byID(entity string, h func(w http.ResponseWriter, r *http.Request, id int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, e := authz.ParseID(chi.URLParam(r, "id"), entity)
		if e != nil {
			writeError(w, r, e)
			return
		}
		h(w, r, id)
	}
}
