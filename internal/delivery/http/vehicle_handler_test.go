package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/frontandrew/vmaster/internal/usecase/vehicle"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVehicleService - мок сервиса автомобилей
type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) CreateVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*domain.Vehicle, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) GetVehiclesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) UpdateVehicle(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*domain.Vehicle, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleService) ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

// withChiParam добавляет URL параметр chi в контекст запроса
func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestVehicleHandler_CreateVehicle тестирует создание автомобиля
func TestVehicleHandler_CreateVehicle(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		role           domain.UserRole
		mockSetup      func(*MockVehicleService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "успешное создание",
			requestBody: vehicle.CreateVehicleRequest{
				Make:  "Toyota",
				Model: "Corolla",
				Year:  2018,
			},
			role: domain.RoleUser,
			mockSetup: func(m *MockVehicleService) {
				m.On("CreateVehicle", mock.Anything, mock.AnythingOfType("*vehicle.CreateVehicleRequest")).
					Return(&domain.Vehicle{
						ID:      1,
						OwnerID: userID,
						Make:    "Toyota",
						Model:   "Corolla",
						Year:    2018,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertSuccess(t, resp)
				if data, ok := resp["data"].(map[string]interface{}); ok {
					assert.Equal(t, "Toyota", data["make"])
				}
			},
		},
		{
			name: "создание для другого пользователя запрещено",
			requestBody: vehicle.CreateVehicleRequest{
				OwnerID: otherID,
				Make:    "Toyota",
				Model:   "Corolla",
				Year:    2018,
			},
			role:           domain.RoleUser,
			mockSetup:      func(m *MockVehicleService) {},
			expectedStatus: http.StatusForbidden,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertError(t, resp)
			},
		},
		{
			name: "админ создает для другого пользователя",
			requestBody: vehicle.CreateVehicleRequest{
				OwnerID: otherID,
				Make:    "Toyota",
				Model:   "Corolla",
				Year:    2018,
			},
			role: domain.RoleAdmin,
			mockSetup: func(m *MockVehicleService) {
				m.On("CreateVehicle", mock.Anything, mock.AnythingOfType("*vehicle.CreateVehicleRequest")).
					Return(&domain.Vehicle{ID: 2, OwnerID: otherID, Make: "Toyota", Model: "Corolla", Year: 2018}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertSuccess(t, resp)
			},
		},
		{
			name: "невалидные данные",
			requestBody: vehicle.CreateVehicleRequest{
				Make:  "",
				Model: "",
			},
			role: domain.RoleUser,
			mockSetup: func(m *MockVehicleService) {
				m.On("CreateVehicle", mock.Anything, mock.AnythingOfType("*vehicle.CreateVehicleRequest")).
					Return(nil, domain.ErrInvalidVehicleData)
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertError(t, resp)
			},
		},
		{
			name:           "невалидный JSON",
			requestBody:    "invalid",
			role:           domain.RoleUser,
			mockSetup:      func(m *MockVehicleService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				AssertError(t, resp)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockVehicleService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewVehicleHandler(mockService, log)

			var body []byte
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, _ = json.Marshal(tt.requestBody)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", bytes.NewReader(body))
			req = req.WithContext(CreateAuthContext(t, userID, "test@example.com", tt.role))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateVehicle(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			tt.checkResponse(t, response)

			mockService.AssertExpectations(t)
		})
	}
}

// TestVehicleHandler_GetVehicleByID тестирует получение автомобиля по ID
func TestVehicleHandler_GetVehicleByID(t *testing.T) {
	ownerID := uuid.New()
	strangerID := uuid.New()

	tests := []struct {
		name           string
		vehicleID      string
		userID         uuid.UUID
		role           domain.UserRole
		mockSetup      func(*MockVehicleService)
		expectedStatus int
	}{
		{
			name:      "владелец получает свой автомобиль",
			vehicleID: "1",
			userID:    ownerID,
			role:      domain.RoleUser,
			mockSetup: func(m *MockVehicleService) {
				m.On("GetVehicleByID", mock.Anything, int64(1)).
					Return(CreateTestVehicle(1, ownerID), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "чужой автомобиль недоступен",
			vehicleID: "1",
			userID:    strangerID,
			role:      domain.RoleUser,
			mockSetup: func(m *MockVehicleService) {
				m.On("GetVehicleByID", mock.Anything, int64(1)).
					Return(CreateTestVehicle(1, ownerID), nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "админ видит чужой автомобиль",
			vehicleID: "1",
			userID:    strangerID,
			role:      domain.RoleAdmin,
			mockSetup: func(m *MockVehicleService) {
				m.On("GetVehicleByID", mock.Anything, int64(1)).
					Return(CreateTestVehicle(1, ownerID), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "автомобиль не найден",
			vehicleID: "99",
			userID:    ownerID,
			role:      domain.RoleUser,
			mockSetup: func(m *MockVehicleService) {
				m.On("GetVehicleByID", mock.Anything, int64(99)).
					Return(nil, domain.ErrVehicleNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "нечисловой ID",
			vehicleID:      "abc",
			userID:         ownerID,
			role:           domain.RoleUser,
			mockSetup:      func(m *MockVehicleService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockVehicleService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewVehicleHandler(mockService, log)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/"+tt.vehicleID, nil)
			req = req.WithContext(CreateAuthContext(t, tt.userID, "test@example.com", tt.role))
			req = withChiParam(req, "id", tt.vehicleID)

			w := httptest.NewRecorder()
			handler.GetVehicleByID(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

// TestVehicleHandler_GetMyVehicles тестирует получение автомобилей пользователя
func TestVehicleHandler_GetMyVehicles(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		mockSetup      func(*MockVehicleService)
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "успешное получение",
			mockSetup: func(m *MockVehicleService) {
				m.On("GetVehiclesByOwner", mock.Anything, userID).Return([]*domain.Vehicle{
					CreateTestVehicle(1, userID),
					CreateTestVehicle(2, userID),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "нет автомобилей",
			mockSetup: func(m *MockVehicleService) {
				m.On("GetVehiclesByOwner", mock.Anything, userID).Return([]*domain.Vehicle{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockVehicleService)
			tt.mockSetup(mockService)

			log := logger.NewNoop()
			handler := NewVehicleHandler(mockService, log)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/me", nil)
			req = req.WithContext(CreateAuthContext(t, userID, "test@example.com", domain.RoleUser))

			w := httptest.NewRecorder()
			handler.GetMyVehicles(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			AssertSuccess(t, response)
			if data, ok := response["data"].([]interface{}); ok {
				assert.Len(t, data, tt.expectedLen)
			}

			mockService.AssertExpectations(t)
		})
	}
}

// TestVehicleHandler_DeleteVehicle тестирует удаление автомобиля
func TestVehicleHandler_DeleteVehicle(t *testing.T) {
	ownerID := uuid.New()

	t.Run("владелец удаляет свой автомобиль", func(t *testing.T) {
		mockService := new(MockVehicleService)
		mockService.On("GetVehicleByID", mock.Anything, int64(1)).
			Return(CreateTestVehicle(1, ownerID), nil)
		mockService.On("DeleteVehicle", mock.Anything, int64(1)).Return(nil)

		handler := NewVehicleHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/vehicles/1", nil)
		req = req.WithContext(CreateAuthContext(t, ownerID, "test@example.com", domain.RoleUser))
		req = withChiParam(req, "id", "1")

		w := httptest.NewRecorder()
		handler.DeleteVehicle(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("чужой автомобиль удалить нельзя", func(t *testing.T) {
		mockService := new(MockVehicleService)
		mockService.On("GetVehicleByID", mock.Anything, int64(1)).
			Return(CreateTestVehicle(1, ownerID), nil)

		handler := NewVehicleHandler(mockService, logger.NewNoop())

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/vehicles/1", nil)
		req = req.WithContext(CreateAuthContext(t, uuid.New(), "other@example.com", domain.RoleUser))
		req = withChiParam(req, "id", "1")

		w := httptest.NewRecorder()
		handler.DeleteVehicle(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "DeleteVehicle", mock.Anything, mock.Anything)
	})
}
