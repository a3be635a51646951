package service

import (
	"context"

	"user_management/internal/hasher"
	"user_management/internal/repository"
)

// AuthService checks login credentials against stored hashes.
type AuthService struct {
	users repository.Users
	hash  hasher.PasswordHasher
}

func NewAuthService(users repository.Users, h hasher.PasswordHasher) *AuthService {
	return &AuthService{users: users, hash: h}
}

var _ Authorization = (*AuthService)(nil)

// Authenticate returns the user id for a matching email/password pair.
//
// The email is looked up exactly as supplied, while registration stores
// emails lower-cased; a mixed-case login can therefore miss. Kept as the
// documented reference behavior.
//
// An unknown email and a wrong password both return ErrInvalidCredentials,
// with no distinguishable signal, to avoid user enumeration.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (int, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if u == nil || !s.hash.Verify(password, u.PasswordHash) {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}
