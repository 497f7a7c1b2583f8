package settings

import (
	"context"
	"fmt"
	"testing"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/infrastructure/fuelprice"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSettingRepository - мок репозитория настроек
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context, key domain.SettingKey) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingRepository) Set(ctx context.Context, key domain.SettingKey, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSettingRepository) Delete(ctx context.Context, key domain.SettingKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockPriceClient - мок поставщика цен на топливо
type MockPriceClient struct {
	mock.Mock
}

func (m *MockPriceClient) Fetch(ctx context.Context) (*fuelprice.Prices, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fuelprice.Prices), args.Error(1)
}

func floatPtr(v float64) *float64 {
	return &v
}

// TestUpdateSettings тестирует обновление ручного override цены
func TestUpdateSettings(t *testing.T) {
	tests := []struct {
		name      string
		req       *UpdateSettingsRequest
		mockSetup func(*MockSettingRepository)
	}{
		{
			name:      "nil означает не трогать настройку",
			req:       &UpdateSettingsRequest{ManualFuelPrice: nil},
			mockSetup: func(m *MockSettingRepository) {},
		},
		{
			name: "положительное значение сохраняется",
			req:  &UpdateSettingsRequest{ManualFuelPrice: floatPtr(52.5)},
			mockSetup: func(m *MockSettingRepository) {
				m.On("Set", mock.Anything, domain.SettingManualFuelPrice, "52.5").Return(nil)
			},
		},
		{
			name: "отрицательное значение снимает override",
			req:  &UpdateSettingsRequest{ManualFuelPrice: floatPtr(-1)},
			mockSetup: func(m *MockSettingRepository) {
				m.On("Delete", mock.Anything, domain.SettingManualFuelPrice).Return(nil)
			},
		},
		{
			name: "снятие несуществующего override не ошибка",
			req:  &UpdateSettingsRequest{ManualFuelPrice: floatPtr(-1)},
			mockSetup: func(m *MockSettingRepository) {
				m.On("Delete", mock.Anything, domain.SettingManualFuelPrice).
					Return(domain.ErrSettingNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingRepo := new(MockSettingRepository)
			priceClient := new(MockPriceClient)
			tt.mockSetup(settingRepo)

			service := NewService(settingRepo, priceClient, logger.NewNoop())

			err := service.UpdateSettings(context.Background(), tt.req)

			assert.NoError(t, err)
			settingRepo.AssertExpectations(t)
		})
	}
}

// TestRefreshFuelPrices тестирует обновление живых цен
func TestRefreshFuelPrices(t *testing.T) {
	t.Run("успешное обновление сохраняет цены и отметку времени", func(t *testing.T) {
		settingRepo := new(MockSettingRepository)
		priceClient := new(MockPriceClient)

		priceClient.On("Fetch", mock.Anything).
			Return(&fuelprice.Prices{Gasoline: 53.16, Diesel: 50.44}, nil)
		settingRepo.On("Set", mock.Anything, domain.SettingGasolinePrice, "53.16").Return(nil)
		settingRepo.On("Set", mock.Anything, domain.SettingDieselPrice, "50.44").Return(nil)
		settingRepo.On("Set", mock.Anything, domain.SettingLastPriceUpdate, mock.AnythingOfType("string")).Return(nil)

		service := NewService(settingRepo, priceClient, logger.NewNoop())

		prices, err := service.RefreshFuelPrices(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 53.16, prices.Gasoline)
		assert.Equal(t, 50.44, prices.Diesel)
		settingRepo.AssertExpectations(t)
	})

	t.Run("ошибка поставщика не трогает сохраненные цены", func(t *testing.T) {
		settingRepo := new(MockSettingRepository)
		priceClient := new(MockPriceClient)

		priceClient.On("Fetch", mock.Anything).Return(nil, fmt.Errorf("network error"))

		service := NewService(settingRepo, priceClient, logger.NewNoop())

		prices, err := service.RefreshFuelPrices(context.Background())

		assert.Error(t, err)
		assert.Nil(t, prices)
		// Ни одного вызова Set: цены в БД остались прежними
		settingRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestGetSettings тестирует чтение настроек
func TestGetSettings(t *testing.T) {
	t.Run("сохраненные значения возвращаются как есть", func(t *testing.T) {
		settingRepo := new(MockSettingRepository)
		priceClient := new(MockPriceClient)

		settingRepo.On("Get", mock.Anything, domain.SettingGasolinePrice).Return("53.16", nil)
		settingRepo.On("Get", mock.Anything, domain.SettingDieselPrice).Return("50.44", nil)
		settingRepo.On("Get", mock.Anything, domain.SettingManualFuelPrice).
			Return("", domain.ErrSettingNotFound)
		settingRepo.On("Get", mock.Anything, domain.SettingLastPriceUpdate).
			Return("2025-01-15T10:00:00Z", nil)

		service := NewService(settingRepo, priceClient, logger.NewNoop())

		view, err := service.GetSettings(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "53.16", view.GasolinePrice)
		assert.Equal(t, "50.44", view.DieselPrice)
		assert.Equal(t, "", view.ManualFuelPrice)
		assert.Equal(t, "2025-01-15T10:00:00Z", view.LastPriceUpdate)
	})
}
