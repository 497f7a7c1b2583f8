package consumable

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

func int64Ptr(v int64) *int64 {
	return &v
}

// TestCreateConsumable тестирует создание детали
func TestCreateConsumable(t *testing.T) {
	testVehicle := &domain.Vehicle{
		ID:        1,
		CurrentKm: 42000,
	}

	tests := []struct {
		name      string
		req       *CreateConsumableRequest
		mockSetup func(*MockVehicleRepository, *MockConsumableRepository)
		check     func(*testing.T, *domain.Consumable, error)
	}{
		{
			name: "пробег замены по умолчанию равен текущему пробегу",
			req: &CreateConsumableRequest{
				VehicleID:  1,
				Name:       "Timing Belt",
				Cost:       6000,
				LifetimeKm: 20000,
			},
			mockSetup: func(vr *MockVehicleRepository, cr *MockConsumableRepository) {
				vr.On("GetByID", mock.Anything, int64(1)).Return(testVehicle, nil)
				cr.On("Create", mock.Anything, mock.AnythingOfType("*domain.Consumable")).Return(nil)
			},
			check: func(t *testing.T, c *domain.Consumable, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(42000), c.LastReplacedKm)
			},
		},
		{
			name: "явный пробег замены сохраняется",
			req: &CreateConsumableRequest{
				VehicleID:      1,
				Name:           "Brake Pads",
				Cost:           2000,
				LifetimeKm:     40000,
				LastReplacedKm: int64Ptr(35000),
			},
			mockSetup: func(vr *MockVehicleRepository, cr *MockConsumableRepository) {
				vr.On("GetByID", mock.Anything, int64(1)).Return(testVehicle, nil)
				cr.On("Create", mock.Anything, mock.AnythingOfType("*domain.Consumable")).Return(nil)
			},
			check: func(t *testing.T, c *domain.Consumable, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(35000), c.LastReplacedKm)
			},
		},
		{
			name: "несуществующий автомобиль",
			req: &CreateConsumableRequest{
				VehicleID: 99,
				Name:      "Timing Belt",
			},
			mockSetup: func(vr *MockVehicleRepository, cr *MockConsumableRepository) {
				vr.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrVehicleNotFound)
			},
			check: func(t *testing.T, c *domain.Consumable, err error) {
				assert.Nil(t, c)
				assert.Equal(t, domain.ErrVehicleNotFound, err)
			},
		},
		{
			name: "деталь без имени не проходит валидацию",
			req: &CreateConsumableRequest{
				VehicleID: 1,
				Name:      "",
			},
			mockSetup: func(vr *MockVehicleRepository, cr *MockConsumableRepository) {
				vr.On("GetByID", mock.Anything, int64(1)).Return(testVehicle, nil)
			},
			check: func(t *testing.T, c *domain.Consumable, err error) {
				assert.Nil(t, c)
				assert.Equal(t, domain.ErrInvalidConsumableData, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vehicleRepo := new(MockVehicleRepository)
			consumableRepo := new(MockConsumableRepository)
			tt.mockSetup(vehicleRepo, consumableRepo)

			service := NewService(consumableRepo, vehicleRepo, logger.NewNoop())

			c, err := service.CreateConsumable(context.Background(), tt.req)
			tt.check(t, c, err)

			consumableRepo.AssertExpectations(t)
		})
	}
}
