package settings

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/infrastructure/fuelprice"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/repository"
)

// View - представление настроек для API
// Пустая строка означает, что значение еще не сохранено
type View struct {
	GasolinePrice   string `json:"current_gasoline_price"`
	DieselPrice     string `json:"current_diesel_price"`
	ManualFuelPrice string `json:"manual_fuel_price"`
	LastPriceUpdate string `json:"last_price_update_timestamp"`
}

// UpdateSettingsRequest - запрос на обновление настроек
// nil означает "не трогать", отрицательное значение - "сбросить override"
type UpdateSettingsRequest struct {
	ManualFuelPrice *float64 `json:"manual_fuel_price,omitempty"`
}

// Service содержит бизнес-логику настроек и обновления цен на топливо
type Service struct {
	settingRepo repository.SettingRepository
	priceClient fuelprice.Client
	logger      logger.Logger
}

// NewService создает новый экземпляр SettingsService
func NewService(
	settingRepo repository.SettingRepository,
	priceClient fuelprice.Client,
	logger logger.Logger,
) *Service {
	return &Service{
		settingRepo: settingRepo,
		priceClient: priceClient,
		logger:      logger,
	}
}

// GetSettings возвращает все настройки, известные системе
func (s *Service) GetSettings(ctx context.Context) (*View, error) {
	view := &View{
		GasolinePrice:   s.readOrEmpty(ctx, domain.SettingGasolinePrice),
		DieselPrice:     s.readOrEmpty(ctx, domain.SettingDieselPrice),
		ManualFuelPrice: s.readOrEmpty(ctx, domain.SettingManualFuelPrice),
		LastPriceUpdate: s.readOrEmpty(ctx, domain.SettingLastPriceUpdate),
	}

	return view, nil
}

// UpdateSettings применяет изменения настроек
func (s *Service) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) error {
	if req.ManualFuelPrice == nil {
		return nil
	}

	// Отрицательное значение снимает ручной override
	if *req.ManualFuelPrice < 0 {
		if err := s.settingRepo.Delete(ctx, domain.SettingManualFuelPrice); err != nil && err != domain.ErrSettingNotFound {
			return fmt.Errorf("failed to clear manual fuel price: %w", err)
		}
		s.logger.Info("Manual fuel price cleared")
		return nil
	}

	value := strconv.FormatFloat(*req.ManualFuelPrice, 'f', -1, 64)
	if err := s.settingRepo.Set(ctx, domain.SettingManualFuelPrice, value); err != nil {
		return fmt.Errorf("failed to set manual fuel price: %w", err)
	}

	s.logger.Info("Manual fuel price set", map[string]interface{}{
		"manual_fuel_price": *req.ManualFuelPrice,
	})

	return nil
}

// RefreshFuelPrices запрашивает живые цены у поставщика и сохраняет их.
// При любой ошибке поставщика сохраненные цены остаются нетронутыми
func (s *Service) RefreshFuelPrices(ctx context.Context) (*fuelprice.Prices, error) {
	prices, err := s.priceClient.Fetch(ctx)
	if err != nil {
		s.logger.Warn("Fuel price fetch failed, keeping stored prices", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to fetch fuel prices: %w", err)
	}

	gasoline := strconv.FormatFloat(prices.Gasoline, 'f', -1, 64)
	diesel := strconv.FormatFloat(prices.Diesel, 'f', -1, 64)

	if err := s.settingRepo.Set(ctx, domain.SettingGasolinePrice, gasoline); err != nil {
		return nil, fmt.Errorf("failed to store gasoline price: %w", err)
	}
	if err := s.settingRepo.Set(ctx, domain.SettingDieselPrice, diesel); err != nil {
		return nil, fmt.Errorf("failed to store diesel price: %w", err)
	}
	if err := s.settingRepo.Set(ctx, domain.SettingLastPriceUpdate, time.Now().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("failed to store price update timestamp: %w", err)
	}

	s.logger.Info("Fuel prices updated", map[string]interface{}{
		"gasoline": prices.Gasoline,
		"diesel":   prices.Diesel,
	})

	return prices, nil
}

func (s *Service) readOrEmpty(ctx context.Context, key domain.SettingKey) string {
	value, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		return ""
	}
	return value
}
