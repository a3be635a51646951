package service

import (
	"context"
	"errors"
	"testing"

	"user_management/internal/hasher"
	"user_management/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// mockUsersRepo is a lightweight in-test mock for repository.Users.
type mockUsersRepo struct {
	CreateFn       func(name, email, hash string) (int, error)
	GetByIDFn      func(id int) (*models.User, error)
	GetByNameFn    func(name string) (*models.User, error)
	GetByEmailFn   func(email string) (*models.User, error)
	ListFn         func() ([]models.User, error)
	SearchByNameFn func(q string) ([]models.User, error)
	UpdateFn       func(id int, name, email string) (bool, error)
	DeleteFn       func(id int) (bool, error)

	createCalls []struct{ name, email, hash string }
	updateCalls []struct {
		id          int
		name, email string
	}
	emailLookups []string
}

func (m *mockUsersRepo) Create(_ context.Context, name, email, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct{ name, email, hash string }{name, email, hash})
	return m.CreateFn(name, email, hash)
}

func (m *mockUsersRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	return m.GetByIDFn(id)
}

func (m *mockUsersRepo) GetByName(_ context.Context, name string) (*models.User, error) {
	return m.GetByNameFn(name)
}

func (m *mockUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.emailLookups = append(m.emailLookups, email)
	return m.GetByEmailFn(email)
}

func (m *mockUsersRepo) List(_ context.Context) ([]models.User, error) {
	return m.ListFn()
}

func (m *mockUsersRepo) SearchByName(_ context.Context, q string) ([]models.User, error) {
	return m.SearchByNameFn(q)
}

func (m *mockUsersRepo) Update(_ context.Context, id int, name, email string) (bool, error) {
	m.updateCalls = append(m.updateCalls, struct {
		id          int
		name, email string
	}{id, name, email})
	return m.UpdateFn(id, name, email)
}

func (m *mockUsersRepo) Delete(_ context.Context, id int) (bool, error) {
	return m.DeleteFn(id)
}

func testHasher() *hasher.BcryptHasher {
	return hasher.NewBcryptHasher(bcrypt.MinCost)
}

// --- Register tests ---

func TestUserService_Register_Success(t *testing.T) {
	mock := &mockUsersRepo{
		GetByNameFn:  func(string) (*models.User, error) { return nil, nil },
		GetByEmailFn: func(string) (*models.User, error) { return nil, nil },
		CreateFn:     func(name, email, hash string) (int, error) { return 42, nil },
	}
	h := testHasher()
	svc := NewUserService(mock, h)

	id, err := svc.Register(context.Background(), "Bob", "Bob@Example.COM", "Securepass1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.name != "Bob" {
		t.Errorf("expected name 'Bob', got %q", call.name)
	}
	if call.email != "bob@example.com" {
		t.Errorf("expected lower-cased email, got %q", call.email)
	}
	if call.hash == "Securepass1" {
		t.Errorf("expected hashed password, got the plaintext")
	}
	if !h.Verify("Securepass1", call.hash) {
		t.Errorf("stored hash does not verify with original password")
	}
}

func TestUserService_Register_EmptyFields(t *testing.T) {
	mock := &mockUsersRepo{
		GetByNameFn:  func(string) (*models.User, error) { t.Fatal("no lookups expected"); return nil, nil },
		GetByEmailFn: func(string) (*models.User, error) { return nil, nil },
	}
	svc := NewUserService(mock, testHasher())

	cases := []struct{ name, email, password string }{
		{"", "a@b.com", "Securepass1"},
		{"  ", "a@b.com", "Securepass1"},
		{"Bob", "", "Securepass1"},
		{"Bob", "a@b.com", ""},
		{"Bob", "a@b.com", "   "},
	}
	for _, c := range cases {
		if _, err := svc.Register(context.Background(), c.name, c.email, c.password); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Register(%q,%q,%q): expected ErrInvalidInput, got %v", c.name, c.email, c.password, err)
		}
	}
}

func TestUserService_Register_NameConflict(t *testing.T) {
	mock := &mockUsersRepo{
		GetByNameFn: func(name string) (*models.User, error) {
			return &models.User{ID: 1, Name: name}, nil
		},
		GetByEmailFn: func(string) (*models.User, error) { t.Fatal("email lookup should not happen"); return nil, nil },
	}
	svc := NewUserService(mock, testHasher())

	_, err := svc.Register(context.Background(), "Alice Smith", "other@example.com", "Securepass1")
	if !errors.Is(err, ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
}

func TestUserService_Register_EmailConflictIsCaseInsensitive(t *testing.T) {
	mock := &mockUsersRepo{
		GetByNameFn: func(string) (*models.User, error) { return nil, nil },
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "alice@example.com" {
				return &models.User{ID: 1, Email: email}, nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(mock, testHasher())

	_, err := svc.Register(context.Background(), "Someone", "Alice@Example.COM", "Securepass1")
	if !errors.Is(err, ErrEmailConflict) {
		t.Fatalf("expected ErrEmailConflict, got %v", err)
	}
	if len(mock.emailLookups) != 1 || mock.emailLookups[0] != "alice@example.com" {
		t.Fatalf("expected lower-cased lookup, got %v", mock.emailLookups)
	}
}

func TestUserService_Register_StorageIntegrityOnInsertRace(t *testing.T) {
	mock := &mockUsersRepo{
		GetByNameFn:  func(string) (*models.User, error) { return nil, nil },
		GetByEmailFn: func(string) (*models.User, error) { return nil, nil },
		CreateFn: func(string, string, string) (int, error) {
			// Concurrent registration won the race; the unique index fires.
			return 0, errors.New("insert user: constraint failed: UNIQUE constraint failed: users.name")
		},
	}
	svc := NewUserService(mock, testHasher())

	_, err := svc.Register(context.Background(), "Bob", "bob@example.com", "Securepass1")
	if !errors.Is(err, ErrStorageIntegrity) {
		t.Fatalf("expected ErrStorageIntegrity, got %v", err)
	}
}

func TestUserService_Register_RepoError(t *testing.T) {
	wantErr := errors.New("db down")
	mock := &mockUsersRepo{
		GetByNameFn: func(string) (*models.User, error) { return nil, wantErr },
	}
	svc := NewUserService(mock, testHasher())

	_, err := svc.Register(context.Background(), "Bob", "bob@example.com", "Securepass1")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected repo error to propagate, got %v", err)
	}
}

// --- Update tests ---

func strPtr(s string) *string { return &s }

func TestUserService_Update_NoFields(t *testing.T) {
	svc := NewUserService(&mockUsersRepo{}, testHasher())
	err := svc.Update(context.Background(), 1, UpdateParams{})
	if !errors.Is(err, ErrNoFieldsProvided) {
		t.Fatalf("expected ErrNoFieldsProvided, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(int) (*models.User, error) { return nil, nil },
	}
	svc := NewUserService(mock, testHasher())

	err := svc.Update(context.Background(), 7, UpdateParams{Name: strPtr("New Name")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_Update_NameConflictWithOtherUser(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			return &models.User{ID: id, Name: "Bob", Email: "bob@example.com"}, nil
		},
		GetByNameFn: func(name string) (*models.User, error) {
			return &models.User{ID: 99, Name: name}, nil
		},
	}
	svc := NewUserService(mock, testHasher())

	err := svc.Update(context.Background(), 7, UpdateParams{Name: strPtr("Alice Smith")})
	if !errors.Is(err, ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
	if len(mock.updateCalls) != 0 {
		t.Fatalf("no write expected on conflict, got %d", len(mock.updateCalls))
	}
}

func TestUserService_Update_OwnValuesDontConflict(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			return &models.User{ID: id, Name: "Bob", Email: "bob@example.com"}, nil
		},
		GetByNameFn: func(string) (*models.User, error) { t.Fatal("unchanged name should skip the check"); return nil, nil },
		GetByEmailFn: func(email string) (*models.User, error) {
			t.Fatal("unchanged email should skip the check")
			return nil, nil
		},
		UpdateFn: func(int, string, string) (bool, error) { return true, nil },
	}
	svc := NewUserService(mock, testHasher())

	// Same name, same email (different case) — nothing actually changes.
	err := svc.Update(context.Background(), 7, UpdateParams{Name: strPtr("Bob"), Email: strPtr("Bob@Example.com")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.updateCalls) != 1 {
		t.Fatalf("expected 1 write, got %d", len(mock.updateCalls))
	}
	w := mock.updateCalls[0]
	if w.name != "Bob" || w.email != "bob@example.com" {
		t.Fatalf("unexpected merged write: %+v", w)
	}
}

func TestUserService_Update_MergesUnspecifiedFields(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			return &models.User{ID: id, Name: "Bob", Email: "bob@example.com"}, nil
		},
		GetByEmailFn: func(string) (*models.User, error) { return nil, nil },
		UpdateFn:     func(int, string, string) (bool, error) { return true, nil },
	}
	svc := NewUserService(mock, testHasher())

	err := svc.Update(context.Background(), 7, UpdateParams{Email: strPtr("Robert@Example.com")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := mock.updateCalls[0]
	if w.name != "Bob" {
		t.Fatalf("name should keep current value, got %q", w.name)
	}
	if w.email != "robert@example.com" {
		t.Fatalf("email should be lower-cased, got %q", w.email)
	}
}

func TestUserService_Update_RowVanished(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			return &models.User{ID: id, Name: "Bob", Email: "bob@example.com"}, nil
		},
		GetByNameFn: func(string) (*models.User, error) { return nil, nil },
		UpdateFn:    func(int, string, string) (bool, error) { return false, nil },
	}
	svc := NewUserService(mock, testHasher())

	err := svc.Update(context.Background(), 7, UpdateParams{Name: strPtr("New Name")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when row vanished, got %v", err)
	}
}

// --- GetByID / Delete / List / Search tests ---

func TestUserService_GetByID(t *testing.T) {
	mock := &mockUsersRepo{
		GetByIDFn: func(id int) (*models.User, error) {
			if id == 3 {
				return &models.User{ID: 3, Name: "Bob", Email: "bob@example.com"}, nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(mock, testHasher())

	u, err := svc.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 3 || u.Name != "Bob" || u.Email != "bob@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.GetByID(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_Delete_IsIdempotent(t *testing.T) {
	present := true
	mock := &mockUsersRepo{
		DeleteFn: func(int) (bool, error) {
			was := present
			present = false
			return was, nil
		},
	}
	svc := NewUserService(mock, testHasher())

	ok, err := svc.Delete(context.Background(), 5)
	if err != nil || !ok {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}
	ok, err = svc.Delete(context.Background(), 5)
	if err != nil {
		t.Fatalf("second delete must not error: %v", err)
	}
	if ok {
		t.Fatalf("second delete should report nothing removed")
	}
}

func TestUserService_Search_EmptyResultIsNotAnError(t *testing.T) {
	mock := &mockUsersRepo{
		SearchByNameFn: func(q string) ([]models.User, error) {
			if q != "john" {
				t.Fatalf("unexpected query %q", q)
			}
			return nil, nil
		},
	}
	svc := NewUserService(mock, testHasher())

	users, err := svc.Search(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty result, got %+v", users)
	}
}
