package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// AdministratorProfileID is the profile id that grants unrestricted access.
const AdministratorProfileID int64 = 1

var (
	ErrMissingBearer = errors.New("missing or invalid authorization header")
	ErrTokenExpired  = errors.New("token expired")
	ErrInvalidToken  = errors.New("invalid token")
)

// Identity is the authenticated caller decoded from a bearer token.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	ProfileID int64  `json:"profile_id"`
}

// IsAdministrator is the single place where "profile 1 means admin" lives.
func IsAdministrator(id *Identity) bool {
	return id != nil && id.ProfileID == AdministratorProfileID
}

type identityKey struct{}

// WithIdentity stores the identity in context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the identity from context (if any).
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

type claims struct {
	UserID    int64  `json:"id"`
	Email     string `json:"email"`
	ProfileID int64  `json:"profile_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens carrying an Identity.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer returns an Issuer. ttl <= 0 falls back to one hour.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a token for id and returns it with its expiry.
func (i *Issuer) Sign(id Identity) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	now := i.now()
	exp := now.Add(i.ttl)
	c := claims{
		UserID:    id.ID,
		Email:     id.Email,
		ProfileID: id.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Verify validates signature and expiry. Expired tokens yield ErrTokenExpired,
// every other failure ErrInvalidToken.
func (i *Issuer) Verify(tokenStr string) (*Identity, error) {
	if len(i.secret) == 0 {
		return nil, ErrInvalidToken
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	c, _ := tok.Claims.(*claims)
	if !tok.Valid || c == nil || c.UserID <= 0 || c.ProfileID <= 0 {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: c.UserID, Email: c.Email, ProfileID: c.ProfileID}, nil
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>" value.
func ParseBearer(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingBearer
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", ErrMissingBearer
	}
	return tok, nil
}

// ParseFromMD extracts and validates a bearer token from gRPC metadata.
func (i *Issuer) ParseFromMD(ctx context.Context) (*Identity, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, ErrMissingBearer
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return nil, ErrMissingBearer
	}
	tok, err := ParseBearer(vals[0])
	if err != nil {
		return nil, err
	}
	return i.Verify(tok)
}
