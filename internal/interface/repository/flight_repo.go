package repository

import (
	"context"
	"errors"
	"time"

	"flightboard-service/internal/domain/entity"
	"flightboard-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID                 string         `gorm:"primaryKey"`
	FlightNumber       string         `gorm:"column:flight_number;index"`
	AirlineCode        string         `gorm:"column:airline_code"`
	Origin             string         `gorm:"column:origin"`
	Destination        string         `gorm:"column:destination"`
	Type               string         `gorm:"column:type;index"`
	ScheduledDeparture time.Time
	ScheduledArrival   time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	Status             string         `gorm:"column:status"`
	DelayMinutes       int            `gorm:"column:delay_minutes"`
	Gate               string         `gorm:"column:gate"`
	Terminal           string         `gorm:"column:terminal"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "m_flights"
}

// Create inserts a new flight row
func (r *GormFlightRepository) Create(ctx context.Context, flight *entity.Flight) (*entity.Flight, error) {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	model := toModel(flight)
	model.CreatedAt = time.Now().UTC()
	model.UpdatedAt = model.CreatedAt

	if result := r.db.WithContext(ctx).Create(&model); result.Error != nil {
		return nil, result.Error
	}
	return toEntity(&model), nil
}

// Update writes every mutable column of an existing flight
func (r *GormFlightRepository) Update(ctx context.Context, flight *entity.Flight) (*entity.Flight, error) {
	model := toModel(flight)
	model.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&Flights{ID: flight.ID}).Updates(map[string]interface{}{
		"flight_number":       model.FlightNumber,
		"airline_code":        model.AirlineCode,
		"origin":              model.Origin,
		"destination":         model.Destination,
		"type":                model.Type,
		"scheduled_departure": model.ScheduledDeparture,
		"scheduled_arrival":   model.ScheduledArrival,
		"actual_departure":    model.ActualDeparture,
		"actual_arrival":      model.ActualArrival,
		"status":              model.Status,
		"delay_minutes":       model.DelayMinutes,
		"gate":                model.Gate,
		"terminal":            model.Terminal,
		"updated_at":          model.UpdatedAt,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, entity.ErrNotFound
	}
	return r.GetByID(ctx, flight.ID)
}

// GetByID finds a flight by id, excluding soft-deleted rows
func (r *GormFlightRepository) GetByID(ctx context.Context, id string) (*entity.Flight, error) {
	var model Flights
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	return toEntity(&model), nil
}

// List returns all live flights, optionally filtered by type, ordered by
// scheduled departure
func (r *GormFlightRepository) List(ctx context.Context, flightType *entity.FlightType) ([]*entity.Flight, error) {
	query := r.db.WithContext(ctx).Order("scheduled_departure asc")
	if flightType != nil {
		query = query.Where("type = ?", string(*flightType))
	}

	var models []Flights
	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	flights := make([]*entity.Flight, 0, len(models))
	for i := range models {
		flights = append(flights, toEntity(&models[i]))
	}
	return flights, nil
}

// SoftDelete marks a flight deleted without removing the row. Returns false
// when the id does not exist or is already deleted.
func (r *GormFlightRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&Flights{ID: id})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func toModel(f *entity.Flight) Flights {
	return Flights{
		ID:                 f.ID,
		FlightNumber:       f.FlightNumber,
		AirlineCode:        f.AirlineCode,
		Origin:             f.Origin,
		Destination:        f.Destination,
		Type:               string(f.Type),
		ScheduledDeparture: f.ScheduledDeparture,
		ScheduledArrival:   f.ScheduledArrival,
		ActualDeparture:    f.ActualDeparture,
		ActualArrival:      f.ActualArrival,
		Status:             string(f.StoredStatus),
		DelayMinutes:       f.DelayMinutes,
		Gate:               f.Gate,
		Terminal:           f.Terminal,
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

func toEntity(m *Flights) *entity.Flight {
	return &entity.Flight{
		ID:                 m.ID,
		FlightNumber:       m.FlightNumber,
		AirlineCode:        m.AirlineCode,
		Origin:             m.Origin,
		Destination:        m.Destination,
		Type:               entity.FlightType(m.Type),
		ScheduledDeparture: m.ScheduledDeparture,
		ScheduledArrival:   m.ScheduledArrival,
		ActualDeparture:    m.ActualDeparture,
		ActualArrival:      m.ActualArrival,
		StoredStatus:       entity.FlightStatus(m.Status),
		DelayMinutes:       m.DelayMinutes,
		Gate:               m.Gate,
		Terminal:           m.Terminal,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
