package servicelog

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

// MockServiceLogRepository - мок репозитория истории обслуживания
type MockServiceLogRepository struct {
	mock.Mock
}

func (m *MockServiceLogRepository) Create(ctx context.Context, log *domain.ServiceLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockServiceLogRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceLog), args.Error(1)
}

func (m *MockServiceLogRepository) GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.ServiceLog, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceLog), args.Error(1)
}

func (m *MockServiceLogRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestRecordService тестирует запись обслуживания
func TestRecordService(t *testing.T) {
	testVehicle := &domain.Vehicle{ID: 1, CurrentKm: 42000}

	tests := []struct {
		name      string
		req       *RecordServiceRequest
		mockSetup func(*MockVehicleRepository, *MockServiceLogRepository)
		check     func(*testing.T, *domain.ServiceLog, error)
	}{
		{
			name: "успешная запись",
			req: &RecordServiceRequest{
				VehicleID:   1,
				Date:        "2025-01-15",
				Km:          42000,
				Description: "Oil change",
				Cost:        850,
			},
			mockSetup: func(vr *MockVehicleRepository, sr *MockServiceLogRepository) {
				vr.On("GetByID", mock.Anything, int64(1)).Return(testVehicle, nil)
				sr.On("Create", mock.Anything, mock.AnythingOfType("*domain.ServiceLog")).Return(nil)
			},
			check: func(t *testing.T, log *domain.ServiceLog, err error) {
				assert.NoError(t, err)
				assert.Equal(t, int64(42000), log.Km)
			},
		},
		{
			name: "несуществующий автомобиль",
			req: &RecordServiceRequest{
				VehicleID: 99,
				Km:        42000,
			},
			mockSetup: func(vr *MockVehicleRepository, sr *MockServiceLogRepository) {
				vr.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrVehicleNotFound)
			},
			check: func(t *testing.T, log *domain.ServiceLog, err error) {
				assert.Nil(t, log)
				assert.Equal(t, domain.ErrVehicleNotFound, err)
			},
		},
		{
			name: "отрицательный пробег не проходит валидацию",
			req: &RecordServiceRequest{
				VehicleID: 1,
				Km:        -100,
			},
			mockSetup: func(vr *MockVehicleRepository, sr *MockServiceLogRepository) {
				vr.On("GetByID", mock.Anything, int64(1)).Return(testVehicle, nil)
			},
			check: func(t *testing.T, log *domain.ServiceLog, err error) {
				assert.Nil(t, log)
				assert.Equal(t, domain.ErrInvalidServiceLogData, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vehicleRepo := new(MockVehicleRepository)
			serviceLogRepo := new(MockServiceLogRepository)
			tt.mockSetup(vehicleRepo, serviceLogRepo)

			service := NewService(serviceLogRepo, vehicleRepo, logger.NewNoop())

			log, err := service.RecordService(context.Background(), tt.req)
			tt.check(t, log, err)

			serviceLogRepo.AssertExpectations(t)
		})
	}
}

// TestDeleteServiceLog тестирует удаление записи обслуживания
func TestDeleteServiceLog(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepository)
		serviceLogRepo := new(MockServiceLogRepository)
		serviceLogRepo.On("Delete", mock.Anything, int64(5)).Return(nil)

		service := NewService(serviceLogRepo, vehicleRepo, logger.NewNoop())

		err := service.DeleteServiceLog(context.Background(), 5)

		assert.NoError(t, err)
		// Удаление записи не трогает автомобиль
		vehicleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepository)
		serviceLogRepo := new(MockServiceLogRepository)
		serviceLogRepo.On("Delete", mock.Anything, int64(99)).Return(domain.ErrServiceLogNotFound)

		service := NewService(serviceLogRepo, vehicleRepo, logger.NewNoop())

		err := service.DeleteServiceLog(context.Background(), 99)

		assert.Equal(t, domain.ErrServiceLogNotFound, err)
	})
}
