package repository

import (
	"context"
	"flightboard-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight persistence
type FlightRepository interface {
	Create(ctx context.Context, flight *entity.Flight) (*entity.Flight, error)
	Update(ctx context.Context, flight *entity.Flight) (*entity.Flight, error)
	GetByID(ctx context.Context, id string) (*entity.Flight, error)
	List(ctx context.Context, flightType *entity.FlightType) ([]*entity.Flight, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}
