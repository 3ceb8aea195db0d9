package usecase

import (
	"context"
	"strings"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/domain/repository"
	"flightboard-service/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages board operator accounts. Token issuance lives in the
// gateway; this service only stores accounts and checks credentials.
type UserService struct {
	userRepo repository.UserRepository
	logger   logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, log logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   log,
	}
}

// CreateUser registers an operator account with a bcrypt-hashed password
func (s *UserService) CreateUser(ctx context.Context, email, displayName, password, role string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, entity.NewValidationError("email", "must be a valid address")
	}
	if len(password) < 8 {
		return nil, entity.NewValidationError("password", "must be at least 8 characters")
	}
	if role != entity.RoleAdmin && role != entity.RoleViewer {
		return nil, entity.NewValidationError("role", "must be admin or viewer")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info("User created", "userId", user.ID, "role", role)
	return user, nil
}

// GetUser finds a user by id
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// VerifyCredentials checks an email/password pair against the stored hash
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

// DeleteUser removes an operator account
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
