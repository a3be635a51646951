package repository

import (
	"context"
	"database/sql"

	"user_management/internal/models"
	"user_management/internal/repository/db"
)

// Users is the storage accessor for the users table: parameterized CRUD
// primitives plus a name-substring search, no business rules.
type Users interface {
	Create(ctx context.Context, name, email, passwordHash string) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SearchByName(ctx context.Context, nameQuery string) ([]models.User, error)
	Update(ctx context.Context, id int, name, email string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Repository struct {
	Users Users
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and ensures the schema, so callers only
// deal with the repository package.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
