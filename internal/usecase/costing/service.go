package costing

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/repository"
)

// DefaultFuelPrice используется, когда в настройках еще нет сохраненной цены
const DefaultFuelPrice = 45.0

// Service содержит бизнес-логику расчета стоимости километра
type Service struct {
	vehicleRepo    repository.VehicleRepository
	consumableRepo repository.ConsumableRepository
	settingRepo    repository.SettingRepository
	logger         logger.Logger
}

// NewService создает новый экземпляр CostingService
func NewService(
	vehicleRepo repository.VehicleRepository,
	consumableRepo repository.ConsumableRepository,
	settingRepo repository.SettingRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		vehicleRepo:    vehicleRepo,
		consumableRepo: consumableRepo,
		settingRepo:    settingRepo,
		logger:         logger,
	}
}

// ComputeCost загружает автомобиль с деталями, разрешает цену топлива
// и возвращает полную декомпозицию стоимости километра
func (s *Service) ComputeCost(ctx context.Context, vehicleID int64) (*domain.CostBreakdown, error) {
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

	fuelPrice := s.resolveFuelPrice(ctx, vehicle.FuelType)

	breakdown := Compute(vehicle, consumables, fuelPrice)

	s.logger.Debug("Cost computed", map[string]interface{}{
		"vehicle_id":        vehicleID,
		"total_cost_per_km": breakdown.TotalCostPerKm,
		"fuel_price_used":   fuelPrice,
	})

	return breakdown, nil
}

// resolveFuelPrice выбирает цену по типу топлива автомобиля.
// Непустая настройка manual_fuel_price безусловно перекрывает живую цену
// независимо от типа топлива - это глобальный операторский override
func (s *Service) resolveFuelPrice(ctx context.Context, fuelType domain.FuelType) float64 {
	if manual := s.readPrice(ctx, domain.SettingManualFuelPrice); manual != nil {
		return *manual
	}

	key := domain.SettingGasolinePrice
	if fuelType == domain.FuelDiesel {
		key = domain.SettingDieselPrice
	}

	if price := s.readPrice(ctx, key); price != nil {
		return *price
	}

	return DefaultFuelPrice
}

// readPrice читает цену из настроек; nil означает "нет пригодного значения"
func (s *Service) readPrice(ctx context.Context, key domain.SettingKey) *float64 {
	raw, err := s.settingRepo.Get(ctx, key)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}

	return &value
}

// Compute - чистая функция расчета стоимости километра.
// Никогда не ошибается: пустые и нулевые знаменатели дают 0, а не панику.
// Фиксированные расходы возвращаются отдельным полем и не входят в итог
func Compute(vehicle *domain.Vehicle, consumables []*domain.Consumable, fuelPrice float64) *domain.CostBreakdown {
	// 1. Топливо: литры на километр * цена литра
	fuelCost := vehicle.AvgConsumptionL100Km / 100 * fuelPrice

	// 2. Удельная стоимость периодического обслуживания
	maintenanceCost := safeDiv(vehicle.MaintenanceCost, float64(vehicle.MaintenanceIntervalKm))

	// 3. Износ деталей: сумма по всем деталям
	var consumableCost float64
	details := make([]domain.ConsumableCostDetail, 0, len(consumables))
	for _, c := range consumables {
		perKm := safeDiv(c.Cost, float64(c.LifetimeKm))
		consumableCost += perKm
		details = append(details, domain.ConsumableCostDetail{
			PartID:     c.ID,
			Name:       c.Name,
			CostPerKm:  round4(perKm),
			TotalCost:  c.Cost,
			LifetimeKm: c.LifetimeKm,
		})
	}

	// 4. Амортизация: только при future_km строго больше current_km,
	// отрицательная амортизация ("прибыль") обнуляется
	var depreciationCost float64
	if vehicle.FutureKm > vehicle.CurrentKm {
		depreciationCost = (vehicle.CurrentPrice - vehicle.FuturePrice) / float64(vehicle.FutureKm-vehicle.CurrentKm)
		if depreciationCost < 0 {
			depreciationCost = 0
		}
	}

	// 5. Фиксированные годовые расходы, распределенные по пробегу
	fixedCost := safeDiv(vehicle.YearlyInsurance+vehicle.YearlyRoadTax, float64(vehicle.YearlyAverageKm))

	// Итог - маржинальная стоимость километра, без фиксированных расходов
	totalCost := fuelCost + maintenanceCost + consumableCost + depreciationCost

	return &domain.CostBreakdown{
		VehicleID:      vehicle.ID,
		TotalCostPerKm: round4(totalCost),
		Breakdown: domain.CostComponents{
			FuelCostPerKm:         round4(fuelCost),
			MaintenanceCostPerKm:  round4(maintenanceCost),
			ConsumableCostPerKm:   round4(consumableCost),
			DepreciationCostPerKm: round4(depreciationCost),
			FixedCostPerKm:        round4(fixedCost),
		},
		Consumables: details,
		Params: domain.CostParams{
			FuelPriceUsed:        fuelPrice,
			CurrentKm:            vehicle.CurrentKm,
			AvgConsumptionL100Km: vehicle.AvgConsumptionL100Km,
		},
	}
}

// safeDiv возвращает 0 вместо деления на нулевой или отрицательный знаменатель
func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// round4 округляет до 4 знаков после запятой (точность меньше копейки)
func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}
