// Package authz decides who may see or change what. It holds the ownership
// rule for owned resources, the self-or-admin rule for users, the forced
// filter applied to listings and path id parsing.
package authz

import (
	"net/url"

	"personalFinance/internal/auth"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
)

// Owned is implemented by resources that belong to a single user.
type Owned interface {
	OwnerID() int64
}

// Filter is the server-computed listing scope. It is never built from the
// raw query alone.
type Filter struct {
	UserID int64
}

// ForcedFilter pins non-administrators to their own id. Administrators may
// target another user through a positive integer user_id query value and
// otherwise fall back to their own id.
func ForcedFilter(who *auth.Identity, q url.Values) Filter {
	if who == nil {
		return Filter{}
	}
	if !auth.IsAdministrator(who) {
		return Filter{UserID: who.ID}
	}
	if id, ok := validation.ToID(q.Get("user_id")); ok {
		return Filter{UserID: id}
	}
	return Filter{UserID: who.ID}
}

// ParseID validates a path id. entity names the resource in the error message.
func ParseID(raw, entity string) (int64, *result.Error) {
	id, ok := validation.ToID(raw)
	if !ok {
		return 0, result.InvalidID(entity)
	}
	return id, nil
}

// CanAccess reports whether who may act on a resource owned by ownerID.
func CanAccess(who *auth.Identity, ownerID int64) bool {
	if who == nil {
		return false
	}
	return auth.IsAdministrator(who) || who.ID == ownerID
}

// Authorize applies the ownership rule to an already fetched resource.
// Absence must be reported by the caller before this runs.
func Authorize(who *auth.Identity, res Owned) *result.Error {
	if !CanAccess(who, res.OwnerID()) {
		return result.Forbidden()
	}
	return nil
}

// SelfOrAdmin reports whether who may act on the user with id userID.
func SelfOrAdmin(who *auth.Identity, userID int64) bool {
	return CanAccess(who, userID)
}

// OwnerForCreate picks the owner of a new resource. Non-administrators always
// create for themselves; administrators may name another user.
func OwnerForCreate(who *auth.Identity, requested int64) int64 {
	if auth.IsAdministrator(who) && requested > 0 {
		return requested
	}
	return who.ID
}
