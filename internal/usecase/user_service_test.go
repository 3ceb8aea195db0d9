package usecase

import (
	"context"
	"errors"
	"testing"

	"flightboard-service/internal/domain/entity"
)

// mockUserRepository implements repository.UserRepository for testing
type mockUserRepository struct {
	users map[string]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*entity.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return entity.NewValidationError("email", "already registered")
		}
	}
	if user.ID == "" {
		user.ID = "u-1"
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewUserService(newMockUserRepository(), nopLogger{})

	user, err := svc.CreateUser(context.Background(), "Ops@Example.com", "Ops", "hunter2hunter2", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.Email != "ops@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "hunter2hunter2" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"bad email", "not-an-email", "hunter2hunter2", entity.RoleAdmin},
		{"short password", "ops@example.com", "short", entity.RoleAdmin},
		{"bad role", "ops@example.com", "hunter2hunter2", "superuser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(newMockUserRepository(), nopLogger{})
			_, err := svc.CreateUser(context.Background(), tt.email, "Ops", tt.password, tt.role)
			if !entity.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestVerifyCredentials(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo, nopLogger{})

	if _, err := svc.CreateUser(context.Background(), "ops@example.com", "Ops", "hunter2hunter2", entity.RoleViewer); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if _, err := svc.VerifyCredentials(context.Background(), "ops@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("expected credentials to verify: %v", err)
	}

	if _, err := svc.VerifyCredentials(context.Background(), "ops@example.com", "wrong-password"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad password, got %v", err)
	}
}
