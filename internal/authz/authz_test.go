package authz

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"personalFinance/internal/auth"
)

var (
	admin  = &auth.Identity{ID: 1, ProfileID: auth.AdministratorProfileID}
	member = &auth.Identity{ID: 7, ProfileID: 2}
)

type owned int64

func (o owned) OwnerID() int64 { return int64(o) }

func TestForcedFilter(t *testing.T) {
	cases := []struct {
		name string
		who  *auth.Identity
		q    string
		want int64
	}{
		{"member without query", member, "", 7},
		{"member asking for someone else", member, "user_id=3", 7},
		{"member with garbage", member, "user_id=abc", 7},
		{"admin without query", admin, "", 1},
		{"admin targeting user", admin, "user_id=3", 3},
		{"admin with zero", admin, "user_id=0", 1},
		{"admin with negative", admin, "user_id=-4", 1},
		{"admin with float", admin, "user_id=2.5", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.q)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			assert.Equal(t, Filter{UserID: tc.want}, ForcedFilter(tc.who, q))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42", "budget")
	assert.Nil(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseID(raw, "budget")
		if assert.NotNil(t, err, raw) {
			assert.Equal(t, http.StatusBadRequest, err.Code)
			assert.Equal(t, "Invalid budget ID", err.Message)
		}
	}
}

func TestAuthorize(t *testing.T) {
	assert.Nil(t, Authorize(member, owned(7)))
	assert.Nil(t, Authorize(admin, owned(7)))

	err := Authorize(member, owned(8))
	if assert.NotNil(t, err) {
		assert.Equal(t, http.StatusForbidden, err.Code)
	}
	assert.NotNil(t, Authorize(nil, owned(8)))
}

func TestSelfOrAdmin(t *testing.T) {
	assert.True(t, SelfOrAdmin(member, 7))
	assert.False(t, SelfOrAdmin(member, 8))
	assert.True(t, SelfOrAdmin(admin, 8))
}

func TestOwnerForCreate(t *testing.T) {
	assert.Equal(t, int64(7), OwnerForCreate(member, 3))
	assert.Equal(t, int64(3), OwnerForCreate(admin, 3))
	assert.Equal(t, int64(1), OwnerForCreate(admin, 0))
}
