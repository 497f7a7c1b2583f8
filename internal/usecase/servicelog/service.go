package servicelog

import (
	"context"
	"fmt"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/repository"
)

// RecordServiceRequest - запрос на запись выполненного обслуживания
type RecordServiceRequest struct {
	VehicleID     int64   `json:"vehicle_id"`
	Date          string  `json:"date"`
	Km            int64   `json:"km"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	PartsReplaced string  `json:"parts_replaced"`
}

// Service содержит бизнес-логику истории обслуживания
type Service struct {
	serviceLogRepo repository.ServiceLogRepository
	vehicleRepo    repository.VehicleRepository
	logger         logger.Logger
}

// NewService создает новый экземпляр ServiceLogService
func NewService(
	serviceLogRepo repository.ServiceLogRepository,
	vehicleRepo repository.VehicleRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		serviceLogRepo: serviceLogRepo,
		vehicleRepo:    vehicleRepo,
		logger:         logger,
	}
}

// RecordService записывает обслуживание и продвигает базовую точку ТО.
// Операция атомарна: запись истории и обновление last_service_km автомобиля
// выполняются одной транзакцией на уровне репозитория
func (s *Service) RecordService(ctx context.Context, req *RecordServiceRequest) (*domain.ServiceLog, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	log := &domain.ServiceLog{
		VehicleID:     req.VehicleID,
		Date:          req.Date,
		Km:            req.Km,
		Description:   req.Description,
		Cost:          req.Cost,
		PartsReplaced: req.PartsReplaced,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	if err := s.serviceLogRepo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to record service", map[string]interface{}{
			"error":      err.Error(),
			"vehicle_id": req.VehicleID,
		})
		return nil, fmt.Errorf("failed to record service: %w", err)
	}

	s.logger.Info("Service recorded", map[string]interface{}{
		"service_log_id": log.ID,
		"vehicle_id":     log.VehicleID,
		"km":             log.Km,
	})

	return log, nil
}

// GetVehicleServiceLogs возвращает историю обслуживания автомобиля
func (s *Service) GetVehicleServiceLogs(ctx context.Context, vehicleID int64) ([]*domain.ServiceLog, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return s.serviceLogRepo.GetByVehicleID(ctx, vehicleID)
}

// GetServiceLogByID возвращает запись обслуживания по ID
func (s *Service) GetServiceLogByID(ctx context.Context, id int64) (*domain.ServiceLog, error) {
	return s.serviceLogRepo.GetByID(ctx, id)
}

// DeleteServiceLog удаляет запись обслуживания.
// last_service_km автомобиля при этом сознательно не откатывается
func (s *Service) DeleteServiceLog(ctx context.Context, id int64) error {
	if err := s.serviceLogRepo.Delete(ctx, id); err != nil {
		if err == domain.ErrServiceLogNotFound {
			return domain.ErrServiceLogNotFound
		}
		return fmt.Errorf("failed to delete service log: %w", err)
	}

	return nil
}
