package maintenance

import (
	"context"
	"fmt"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/repository"
)

// DefaultWarningThresholdKm - запас хода, при котором появляется предупреждение
const DefaultWarningThresholdKm = 500

// MaintenanceWarningName - имя синтетического предупреждения о периодическом ТО
const MaintenanceWarningName = "Periodic Maintenance"

// Service содержит бизнес-логику состояния обслуживания и предупреждений
type Service struct {
	vehicleRepo    repository.VehicleRepository
	consumableRepo repository.ConsumableRepository
	logger         logger.Logger
}

// NewService создает новый экземпляр MaintenanceService
func NewService(
	vehicleRepo repository.VehicleRepository,
	consumableRepo repository.ConsumableRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		vehicleRepo:    vehicleRepo,
		consumableRepo: consumableRepo,
		logger:         logger,
	}
}

// GetStatus возвращает состояние периодического обслуживания автомобиля
func (s *Service) GetStatus(ctx context.Context, vehicleID int64) (*domain.MaintenanceStatus, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return ComputeStatus(vehicle), nil
}

// GetCriticalWarnings возвращает предупреждения о деталях и ТО,
// ресурс которых близок к исчерпанию. thresholdKm <= 0 означает "по умолчанию"
func (s *Service) GetCriticalWarnings(ctx context.Context, vehicleID int64, thresholdKm int64) ([]*domain.Warning, error) {
	if thresholdKm <= 0 {
		thresholdKm = DefaultWarningThresholdKm
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	consumables, err := s.consumableRepo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consumables: %w", err)
	}

	status := ComputeStatus(vehicle)
	warnings := EvaluateWarnings(vehicle, consumables, status, thresholdKm)

	if len(warnings) > 0 {
		s.logger.Debug("Critical warnings evaluated", map[string]interface{}{
			"vehicle_id":   vehicleID,
			"threshold_km": thresholdKm,
			"warnings":     len(warnings),
		})
	}

	return warnings, nil
}

// ComputeStatus - чистая функция расчета состояния обслуживания.
// RemainingKm - знаковое расстояние и может уходить в минус (ТО просрочено);
// ProgressPct - индикатор для UI, всегда зажат в [0, 100]
func ComputeStatus(vehicle *domain.Vehicle) *domain.MaintenanceStatus {
	nextDueKm := vehicle.LastServiceKm + vehicle.ServiceIntervalKm
	remainingKm := nextDueKm - vehicle.CurrentKm

	var progress float64
	if vehicle.ServiceIntervalKm > 0 {
		progress = float64(vehicle.CurrentKm-vehicle.LastServiceKm) / float64(vehicle.ServiceIntervalKm) * 100
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
	}

	return &domain.MaintenanceStatus{
		VehicleID:     vehicle.ID,
		LastServiceKm: vehicle.LastServiceKm,
		IntervalKm:    vehicle.ServiceIntervalKm,
		NextDueKm:     nextDueKm,
		CurrentKm:     vehicle.CurrentKm,
		RemainingKm:   remainingKm,
		ProgressPct:   progress,
	}
}

// EvaluateWarnings - чистая функция оценки предупреждений.
// Деталь попадает в список, когда остаток ресурса <= порога (включительно),
// и помечается критической при остатке <= 0. Порядок деталей сохраняется,
// синтетическое предупреждение о периодическом ТО добавляется последним
func EvaluateWarnings(
	vehicle *domain.Vehicle,
	consumables []*domain.Consumable,
	status *domain.MaintenanceStatus,
	thresholdKm int64,
) []*domain.Warning {
	warnings := make([]*domain.Warning, 0)

	for _, c := range consumables {
		endOfLifeKm := c.EndOfLifeKm()
		remainingKm := endOfLifeKm - vehicle.CurrentKm

		if remainingKm > thresholdKm {
			continue
		}

		partID := c.ID
		warnings = append(warnings, &domain.Warning{
			PartID:          &partID,
			PartName:        c.Name,
			RemainingLifeKm: remainingKm,
			EndOfLifeKm:     endOfLifeKm,
			IsCritical:      remainingKm <= 0,
		})
	}

	if status.RemainingKm <= thresholdKm {
		warnings = append(warnings, &domain.Warning{
			PartID:          nil,
			PartName:        MaintenanceWarningName,
			RemainingLifeKm: status.RemainingKm,
			EndOfLifeKm:     status.NextDueKm,
			IsCritical:      status.RemainingKm <= 0,
		})
	}

	return warnings
}
