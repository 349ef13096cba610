package service

import (
	"context"
	"time"

	"personalFinance/internal/auth"
	"personalFinance/internal/result"
	"personalFinance/internal/validation"
	"personalFinance/models"
	"personalFinance/repository"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type AuthService struct {
	users  repository.UserLookup
	issuer *auth.Issuer
}

func NewAuthService(users repository.UserLookup, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords produce the same 401.
func (s *AuthService) Login(ctx context.Context, email, password string) result.Result[*LoginResponse] {
	if f, missing := validation.CheckRequiredFields(map[string]any{"email": email, "password": password}, "email", "password"); missing {
		return result.FailWith[*LoginResponse](result.MissingField(f))
	}
	email = normalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return result.FailWith[*LoginResponse](result.InvalidEmail())
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return internalFailure[*LoginResponse](ctx, "auth.login.lookup", err)
	}
	if u == nil {
		return result.FailWith[*LoginResponse](result.InvalidCredentials())
	}
	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return internalFailure[*LoginResponse](ctx, "auth.login.compare", err)
	}
	if !ok {
		return result.FailWith[*LoginResponse](result.InvalidCredentials())
	}
	tok, exp, err := s.issuer.Sign(auth.Identity{ID: u.ID, Email: u.Email, ProfileID: u.ProfileID})
	if err != nil {
		return internalFailure[*LoginResponse](ctx, "auth.login.sign", err)
	}
	return result.Success(&LoginResponse{Token: tok, ExpiresAt: exp, User: u})
}
