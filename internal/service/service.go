package service

import (
	"context"

	"user_management/internal/hasher"
	"user_management/internal/models"
	"user_management/internal/repository"
)

// Users owns the account lifecycle: validation, uniqueness, update and
// delete semantics, search.
type Users interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (int, error)
	Update(ctx context.Context, id int, p UpdateParams) error
	Delete(ctx context.Context, id int) (bool, error)
	Search(ctx context.Context, nameQuery string) ([]models.User, error)
}

// Authorization checks credentials. No tokens or sessions are issued;
// a successful login yields the user id only.
type Authorization interface {
	Authenticate(ctx context.Context, email, password string) (int, error)
}

// UpdateParams carries the optional fields of an update; nil means
// "keep the current value".
type UpdateParams struct {
	Name  *string
	Email *string
}

type Service struct {
	Users
	Authorization
}

// NewService wires the repository layer and the password hasher into the
// concrete services.
func NewService(repos *repository.Repository, h hasher.PasswordHasher) *Service {
	return &Service{
		Users:         NewUserService(repos.Users, h),
		Authorization: NewAuthService(repos.Users, h),
	}
}
