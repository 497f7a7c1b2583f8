package maintenance

import (
	"context"
	"testing"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVehicleRepository - мок репозитория автомобилей
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

// MockConsumableRepository - мок репозитория деталей
type MockConsumableRepository struct {
	mock.Mock
}

func (m *MockConsumableRepository) Create(ctx context.Context, consumable *domain.Consumable) error {
	args := m.Called(ctx, consumable)
	return args.Error(0)
}

func (m *MockConsumableRepository) GetByID(ctx context.Context, id int64) (*domain.Consumable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumable), args.Error(1)
}

func (m *MockConsumableRepository) GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.Consumable, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Consumable), args.Error(1)
}

func (m *MockConsumableRepository) Update(ctx context.Context, consumable *domain.Consumable) error {
	args := m.Called(ctx, consumable)
	return args.Error(0)
}

func (m *MockConsumableRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestComputeStatus тестирует расчет состояния обслуживания
func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name    string
		vehicle *domain.Vehicle
		check   func(*testing.T, *domain.MaintenanceStatus)
	}{
		{
			name: "обычное состояние",
			vehicle: &domain.Vehicle{
				ID:                5,
				LastServiceKm:     10500,
				ServiceIntervalKm: 2000,
				CurrentKm:         11100,
			},
			check: func(t *testing.T, s *domain.MaintenanceStatus) {
				assert.Equal(t, int64(12500), s.NextDueKm)
				assert.Equal(t, int64(1400), s.RemainingKm)
				assert.Equal(t, 30.0, s.ProgressPct)
			},
		},
		{
			name: "просроченное ТО дает отрицательный остаток",
			vehicle: &domain.Vehicle{
				ID:                5,
				LastServiceKm:     10000,
				ServiceIntervalKm: 2000,
				CurrentKm:         12500,
			},
			check: func(t *testing.T, s *domain.MaintenanceStatus) {
				assert.Equal(t, int64(-500), s.RemainingKm)
				// Прогресс зажат в 100 даже при просрочке
				assert.Equal(t, 100.0, s.ProgressPct)
			},
		},
		{
			name: "нулевой интервал дает нулевой прогресс",
			vehicle: &domain.Vehicle{
				ID:                5,
				LastServiceKm:     10000,
				ServiceIntervalKm: 0,
				CurrentKm:         12500,
			},
			check: func(t *testing.T, s *domain.MaintenanceStatus) {
				assert.Equal(t, 0.0, s.ProgressPct)
				assert.Equal(t, int64(10000), s.NextDueKm)
			},
		},
		{
			name: "пробег меньше точки последнего ТО",
			vehicle: &domain.Vehicle{
				ID:                5,
				LastServiceKm:     12000,
				ServiceIntervalKm: 2000,
				CurrentKm:         11000,
			},
			check: func(t *testing.T, s *domain.MaintenanceStatus) {
				// Прогресс не уходит в минус
				assert.Equal(t, 0.0, s.ProgressPct)
				assert.Equal(t, int64(3000), s.RemainingKm)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ComputeStatus(tt.vehicle)
			tt.check(t, status)
		})
	}
}

// TestEvaluateWarnings тестирует оценку предупреждений
func TestEvaluateWarnings(t *testing.T) {
	// Автомобиль с большим запасом до ТО, чтобы синтетическое
	// предупреждение не мешало кейсам про детали
	healthyVehicle := &domain.Vehicle{
		ID:                1,
		CurrentKm:         50000,
		LastServiceKm:     49000,
		ServiceIntervalKm: 10000,
	}

	tests := []struct {
		name        string
		vehicle     *domain.Vehicle
		consumables []*domain.Consumable
		thresholdKm int64
		check       func(*testing.T, []*domain.Warning)
	}{
		{
			name:        "без деталей и с запасом до ТО предупреждений нет",
			vehicle:     healthyVehicle,
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Empty(t, w)
			},
		},
		{
			name:    "остаток ровно на пороге включается",
			vehicle: healthyVehicle,
			consumables: []*domain.Consumable{
				// end_of_life = 30500, остаток = 500
				{ID: 10, Name: "Timing Belt", LastReplacedKm: 10500, LifetimeKm: 40000},
			},
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Len(t, w, 1)
				assert.Equal(t, "Timing Belt", w[0].PartName)
				assert.Equal(t, int64(500), w[0].RemainingLifeKm)
				assert.False(t, w[0].IsCritical)
			},
		},
		{
			name:    "остаток на километр выше порога не включается",
			vehicle: healthyVehicle,
			consumables: []*domain.Consumable{
				// остаток = 501
				{ID: 10, Name: "Timing Belt", LastReplacedKm: 10501, LifetimeKm: 40000},
			},
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Empty(t, w)
			},
		},
		{
			name:    "нулевой остаток критичен",
			vehicle: healthyVehicle,
			consumables: []*domain.Consumable{
				// остаток = 0
				{ID: 10, Name: "Brake Pads", LastReplacedKm: 10000, LifetimeKm: 40000},
			},
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Len(t, w, 1)
				assert.True(t, w[0].IsCritical)
			},
		},
		{
			name:    "просроченная деталь критична",
			vehicle: healthyVehicle,
			consumables: []*domain.Consumable{
				{ID: 10, Name: "Oil Filter", LastReplacedKm: 0, LifetimeKm: 40000},
			},
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Len(t, w, 1)
				assert.Equal(t, int64(-10000), w[0].RemainingLifeKm)
				assert.True(t, w[0].IsCritical)
			},
		},
		{
			name: "предупреждение о ТО добавляется последним с nil part_id",
			vehicle: &domain.Vehicle{
				ID:                1,
				CurrentKm:         50000,
				LastServiceKm:     48000,
				ServiceIntervalKm: 2000,
			},
			consumables: []*domain.Consumable{
				{ID: 10, Name: "Timing Belt", LastReplacedKm: 10000, LifetimeKm: 40000},
			},
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Len(t, w, 2)
				assert.NotNil(t, w[0].PartID)
				assert.Equal(t, "Timing Belt", w[0].PartName)
				assert.Nil(t, w[1].PartID)
				assert.Equal(t, MaintenanceWarningName, w[1].PartName)
				assert.True(t, w[1].IsCritical)
			},
		},
		{
			name:    "порядок деталей сохраняется",
			vehicle: healthyVehicle,
			consumables: []*domain.Consumable{
				{ID: 10, Name: "First", LastReplacedKm: 10000, LifetimeKm: 40000},
				{ID: 11, Name: "Second", LastReplacedKm: 10100, LifetimeKm: 40000},
			},
			thresholdKm: 500,
			check: func(t *testing.T, w []*domain.Warning) {
				assert.Len(t, w, 2)
				assert.Equal(t, "First", w[0].PartName)
				assert.Equal(t, "Second", w[1].PartName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ComputeStatus(tt.vehicle)
			warnings := EvaluateWarnings(tt.vehicle, tt.consumables, status, tt.thresholdKm)
			tt.check(t, warnings)
		})
	}
}

// TestGetCriticalWarnings_DefaultThreshold тестирует порог по умолчанию
func TestGetCriticalWarnings_DefaultThreshold(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	consumableRepo := new(MockConsumableRepository)

	vehicleRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Vehicle{
		ID:                1,
		CurrentKm:         50000,
		LastServiceKm:     49000,
		ServiceIntervalKm: 10000,
	}, nil)
	consumableRepo.On("GetByVehicleID", mock.Anything, int64(1)).Return([]*domain.Consumable{
		// Остаток = 400: попадает под порог по умолчанию (500)
		{ID: 10, Name: "Timing Belt", LastReplacedKm: 10400, LifetimeKm: 40000},
	}, nil)

	service := NewService(vehicleRepo, consumableRepo, logger.NewNoop())

	warnings, err := service.GetCriticalWarnings(context.Background(), 1, 0)

	assert.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Equal(t, int64(400), warnings[0].RemainingLifeKm)
}

// TestGetStatus_VehicleNotFound тестирует статус для несуществующего автомобиля
func TestGetStatus_VehicleNotFound(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	consumableRepo := new(MockConsumableRepository)

	vehicleRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrVehicleNotFound)

	service := NewService(vehicleRepo, consumableRepo, logger.NewNoop())

	status, err := service.GetStatus(context.Background(), 99)

	assert.Nil(t, status)
	assert.Equal(t, domain.ErrVehicleNotFound, err)
}
