package service

import (
	"context"
	"fmt"
	"strings"

	"user_management/internal/hasher"
	"user_management/internal/models"
	"user_management/internal/repository"
)

// UserService implements Users against the storage accessor and the
// password hasher.
type UserService struct {
	users repository.Users
	hash  hasher.PasswordHasher
}

func NewUserService(users repository.Users, h hasher.PasswordHasher) *UserService {
	return &UserService{users: users, hash: h}
}

var _ Users = (*UserService)(nil)

// List returns every user. Hashes stay out of responses via the model's
// json tag.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// GetByID returns the user or ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Register creates a new account and returns its id.
//
// The pre-checks against name and email give friendly conflict errors; the
// unique indexes remain the authoritative guard, so a race that slips past
// them surfaces as ErrStorageIntegrity, still a conflict to the caller.
func (s *UserService) Register(ctx context.Context, name, email, password string) (int, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return 0, ErrInvalidInput
	}

	if existing, err := s.users.GetByName(ctx, name); err != nil {
		return 0, err
	} else if existing != nil {
		return 0, ErrNameConflict
	}

	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return 0, err
	} else if existing != nil {
		return 0, ErrEmailConflict
	}

	hashed, err := s.hash.Hash(password)
	if err != nil {
		// Shouldn't happen after the empty check above, but kept so a
		// hasher fault never stores an empty hash.
		return 0, fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}

	id, err := s.users.Create(ctx, name, email, hashed)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, ErrStorageIntegrity
		}
		return 0, err
	}
	return id, nil
}

// Update changes name and/or email of an existing user. Unspecified fields
// keep their current values; uniqueness is only checked for values that
// actually change, and only against other users.
func (s *UserService) Update(ctx context.Context, id int, p UpdateParams) error {
	if p.Name == nil && p.Email == nil {
		return ErrNoFieldsProvided
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	name := existing.Name
	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
		if name != existing.Name {
			other, err := s.users.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return ErrNameConflict
			}
		}
	}

	email := existing.Email
	if p.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*p.Email))
		if email != existing.Email {
			other, err := s.users.GetByEmail(ctx, email)
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return ErrEmailConflict
			}
		}
	}

	ok, err := s.users.Update(ctx, id, name, email)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrStorageIntegrity
		}
		return err
	}
	if !ok {
		// Row vanished between the fetch and the write.
		return ErrNotFound
	}
	return nil
}

// Delete removes the user. A second delete of the same id returns false,
// not an error.
func (s *UserService) Delete(ctx context.Context, id int) (bool, error) {
	return s.users.Delete(ctx, id)
}

// Search returns users whose name contains nameQuery literally; an empty
// result is a normal outcome.
func (s *UserService) Search(ctx context.Context, nameQuery string) ([]models.User, error) {
	return s.users.SearchByName(ctx, nameQuery)
}
