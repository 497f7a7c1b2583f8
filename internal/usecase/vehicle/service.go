package vehicle

import (
	"context"
	"fmt"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/repository"
	"github.com/google/uuid"
)

// CreateVehicleRequest - запрос на создание автомобиля
type CreateVehicleRequest struct {
	OwnerID  uuid.UUID `json:"owner_id"`
	Make     string    `json:"make" validate:"required"`
	Model    string    `json:"model" validate:"required"`
	Year     int       `json:"year" validate:"required"`
	PhotoURL string    `json:"photo_url,omitempty"`

	StartKm   int64 `json:"start_km"`
	CurrentKm int64 `json:"current_km"`

	FuelType             domain.FuelType `json:"fuel_type"`
	AvgConsumptionL100Km float64         `json:"avg_consumption_l_100km"`

	MaintenanceIntervalKm int64   `json:"maintenance_interval_km"`
	MaintenanceCost       float64 `json:"maintenance_cost"`
	LastServiceKm         int64   `json:"last_service_km"`
	ServiceIntervalKm     int64   `json:"service_interval_km"`

	YearlyInsurance float64 `json:"yearly_insurance"`
	YearlyRoadTax   float64 `json:"yearly_road_tax"`
	YearlyAverageKm int64   `json:"yearly_average_km"`

	CurrentPrice float64 `json:"current_price"`
	FuturePrice  float64 `json:"future_price"`
	FutureKm     int64   `json:"future_km"`
}

// UpdateVehicleRequest - запрос на обновление (полная замена записи)
type UpdateVehicleRequest = CreateVehicleRequest

// Значения по умолчанию для необязательных полей
const (
	defaultMaintenanceIntervalKm = 10000
	defaultServiceIntervalKm     = 10000
	defaultYearlyAverageKm       = 15000
)

// Service содержит бизнес-логику работы с автомобилями
type Service struct {
	vehicleRepo repository.VehicleRepository
	logger      logger.Logger
}

// NewService создает новый экземпляр VehicleService
func NewService(vehicleRepo repository.VehicleRepository, logger logger.Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// CreateVehicle создает новый автомобиль
func (s *Service) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*domain.Vehicle, error) {
	s.logger.Info("Creating new vehicle", map[string]interface{}{
		"owner_id": req.OwnerID,
		"make":     req.Make,
		"model":    req.Model,
	})

	vehicle := vehicleFromRequest(req)
	applyDefaults(vehicle)

	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("Vehicle created successfully", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})

	return vehicle, nil
}

// GetVehicleByID возвращает автомобиль по ID
func (s *Service) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// GetVehiclesByOwner возвращает все автомобили пользователя
func (s *Service) GetVehiclesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetByOwnerID(ctx, ownerID)
}

// UpdateVehicle обновляет данные автомобиля (полная замена записи).
// Владелец не меняется: запись остается за исходным пользователем
func (s *Service) UpdateVehicle(ctx context.Context, id int64, req *UpdateVehicleRequest) (*domain.Vehicle, error) {
	existing, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle := vehicleFromRequest(req)
	vehicle.ID = existing.ID
	vehicle.OwnerID = existing.OwnerID
	vehicle.CreatedAt = existing.CreatedAt
	applyDefaults(vehicle)

	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return vehicle, nil
}

// DeleteVehicle удаляет автомобиль вместе с деталями и историей обслуживания
func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrVehicleNotFound {
			return domain.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.logger.Info("Vehicle deleted", map[string]interface{}{
		"vehicle_id": id,
	})

	return nil
}

// ListVehicles возвращает список всех автомобилей (для администратора)
func (s *Service) ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx, limit, offset)
}

func vehicleFromRequest(req *CreateVehicleRequest) *domain.Vehicle {
	return &domain.Vehicle{
		OwnerID:               req.OwnerID,
		Make:                  req.Make,
		Model:                 req.Model,
		Year:                  req.Year,
		PhotoURL:              req.PhotoURL,
		StartKm:               req.StartKm,
		CurrentKm:             req.CurrentKm,
		FuelType:              req.FuelType,
		AvgConsumptionL100Km:  req.AvgConsumptionL100Km,
		MaintenanceIntervalKm: req.MaintenanceIntervalKm,
		MaintenanceCost:       req.MaintenanceCost,
		LastServiceKm:         req.LastServiceKm,
		ServiceIntervalKm:     req.ServiceIntervalKm,
		YearlyInsurance:       req.YearlyInsurance,
		YearlyRoadTax:         req.YearlyRoadTax,
		YearlyAverageKm:       req.YearlyAverageKm,
		CurrentPrice:          req.CurrentPrice,
		FuturePrice:           req.FuturePrice,
		FutureKm:              req.FutureKm,
	}
}

func applyDefaults(vehicle *domain.Vehicle) {
	if vehicle.FuelType == "" {
		vehicle.FuelType = domain.FuelGasoline
	}
	if vehicle.MaintenanceIntervalKm == 0 {
		vehicle.MaintenanceIntervalKm = defaultMaintenanceIntervalKm
	}
	if vehicle.ServiceIntervalKm == 0 {
		vehicle.ServiceIntervalKm = defaultServiceIntervalKm
	}
	if vehicle.YearlyAverageKm == 0 {
		vehicle.YearlyAverageKm = defaultYearlyAverageKm
	}
}
