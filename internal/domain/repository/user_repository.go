package repository

import (
	"context"
	"flightboard-service/internal/domain/entity"
)

// UserRepository defines the interface for operator account persistence
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
