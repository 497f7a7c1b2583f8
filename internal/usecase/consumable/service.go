package consumable

import (
	"context"
	"fmt"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/repository"
)

// CreateConsumableRequest - запрос на создание изнашиваемой детали
// LastReplacedKm == nil означает "деталь установлена только что":
// берется текущий пробег автомобиля
type CreateConsumableRequest struct {
	VehicleID      int64   `json:"vehicle_id"`
	Name           string  `json:"name" validate:"required"`
	Cost           float64 `json:"cost"`
	LifetimeKm     int64   `json:"lifetime_km"`
	LastReplacedKm *int64  `json:"last_replaced_km,omitempty"`
}

// UpdateConsumableRequest - запрос на обновление детали
type UpdateConsumableRequest struct {
	Name           string  `json:"name" validate:"required"`
	Cost           float64 `json:"cost"`
	LifetimeKm     int64   `json:"lifetime_km"`
	LastReplacedKm int64   `json:"last_replaced_km"`
}

// Service содержит бизнес-логику работы с изнашиваемыми деталями
type Service struct {
	consumableRepo repository.ConsumableRepository
	vehicleRepo    repository.VehicleRepository
	logger         logger.Logger
}

// NewService создает новый экземпляр ConsumableService
func NewService(
	consumableRepo repository.ConsumableRepository,
	vehicleRepo repository.VehicleRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		consumableRepo: consumableRepo,
		vehicleRepo:    vehicleRepo,
		logger:         logger,
	}
}

// CreateConsumable создает новую деталь для автомобиля
func (s *Service) CreateConsumable(ctx context.Context, req *CreateConsumableRequest) (*domain.Consumable, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	lastReplacedKm := vehicle.CurrentKm
	if req.LastReplacedKm != nil {
		lastReplacedKm = *req.LastReplacedKm
	}

	consumable := &domain.Consumable{
		VehicleID:      vehicle.ID,
		Name:           req.Name,
		Cost:           req.Cost,
		LifetimeKm:     req.LifetimeKm,
		LastReplacedKm: lastReplacedKm,
	}

	if err := consumable.Validate(); err != nil {
		return nil, err
	}

	if err := s.consumableRepo.Create(ctx, consumable); err != nil {
		s.logger.Error("Failed to create consumable", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create consumable: %w", err)
	}

	s.logger.Info("Consumable created", map[string]interface{}{
		"consumable_id": consumable.ID,
		"vehicle_id":    consumable.VehicleID,
		"name":          consumable.Name,
	})

	return consumable, nil
}

// GetConsumableByID возвращает деталь по ID
func (s *Service) GetConsumableByID(ctx context.Context, id int64) (*domain.Consumable, error) {
	return s.consumableRepo.GetByID(ctx, id)
}

// GetVehicleConsumables возвращает все детали автомобиля
func (s *Service) GetVehicleConsumables(ctx context.Context, vehicleID int64) ([]*domain.Consumable, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return s.consumableRepo.GetByVehicleID(ctx, vehicleID)
}

// UpdateConsumable обновляет данные детали
func (s *Service) UpdateConsumable(ctx context.Context, id int64, req *UpdateConsumableRequest) (*domain.Consumable, error) {
	consumable, err := s.consumableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	consumable.Name = req.Name
	consumable.Cost = req.Cost
	consumable.LifetimeKm = req.LifetimeKm
	consumable.LastReplacedKm = req.LastReplacedKm

	if err := consumable.Validate(); err != nil {
		return nil, err
	}

	if err := s.consumableRepo.Update(ctx, consumable); err != nil {
		return nil, fmt.Errorf("failed to update consumable: %w", err)
	}

	return consumable, nil
}

// DeleteConsumable удаляет деталь
func (s *Service) DeleteConsumable(ctx context.Context, id int64) error {
	if err := s.consumableRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrConsumableNotFound {
			return domain.ErrConsumableNotFound
		}
		return fmt.Errorf("failed to delete consumable: %w", err)
	}

	return nil
}
