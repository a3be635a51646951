package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"user_management/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`
	selectUserByIDSQL    = `SELECT id, name, email, password FROM users WHERE id = ?`
	selectUserByNameSQL  = `SELECT id, name, email, password FROM users WHERE name = ?`
	selectUserByEmailSQL = `SELECT id, name, email, password FROM users WHERE email = ?`
	selectAllUsersSQL    = `SELECT id, name, email, password FROM users`
	searchUsersByNameSQL = `SELECT id, name, email, password FROM users WHERE name LIKE ? ESCAPE '\'`
	updateUserSQL        = `UPDATE users SET name = ?, email = ? WHERE id = ?`
	deleteUserSQL        = `DELETE FROM users WHERE id = ?`
)

// IsUniqueViolation reports whether err comes from the unique indexes on
// name/email. The driver exposes no typed error for this, so the constraint
// message is matched.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, name, email, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", name, err)
	}
	return int(lastID), nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id, fmt.Sprintf("id %d", id))
}

// GetByName fetches a user by exact name. Returns (nil, nil) if not found.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	return r.getOne(ctx, selectUserByNameSQL, name, fmt.Sprintf("name %q", name))
}

// GetByEmail fetches a user by the email exactly as given; callers decide
// whether to lower-case first. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email, fmt.Sprintf("email %q", email))
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any, what string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by %s: %w", what, err)
	}
	return &u, nil
}

// List returns all users.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectAllUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select all users: %w", err)
	}
	return scanUsers(rows)
}

// escapeLike makes user input safe inside a LIKE pattern so %, _ and \
// match themselves.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchByName returns users whose name contains nameQuery as a literal
// substring.
func (r *UserRepository) SearchByName(ctx context.Context, nameQuery string) ([]models.User, error) {
	pattern := "%" + escapeLike(nameQuery) + "%"
	rows, err := r.db.QueryContext(ctx, searchUsersByNameSQL, pattern)
	if err != nil {
		return nil, fmt.Errorf("search users by name %q: %w", nameQuery, err)
	}
	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]models.User, error) {
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

// Update writes name and email for the given id. Returns false if no row
// matched.
func (r *UserRepository) Update(ctx context.Context, id int, name, email string) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateUserSQL, name, email, id)
	if err != nil {
		return false, fmt.Errorf("update user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected for user %d: %w", id, err)
	}
	return affected > 0, nil
}

// Delete removes the user row. Returns false if no row matched.
func (r *UserRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected for user %d: %w", id, err)
	}
	return affected > 0, nil
}
