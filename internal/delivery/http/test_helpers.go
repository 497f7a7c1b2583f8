package http

import (
	"context"
	"testing"

	"github.com/frontandrew/vmaster/internal/delivery/http/middleware"
	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/jwt"
	"github.com/google/uuid"
)

// CreateTestUser создает тестового пользователя
func CreateTestUser(id uuid.UUID, email string, role domain.UserRole) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    email,
		FullName: "Test User",
		Role:     role,
		IsActive: true,
	}
}

// CreateTestVehicle создает тестовый автомобиль
func CreateTestVehicle(id int64, ownerID uuid.UUID) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                    id,
		OwnerID:               ownerID,
		Make:                  "Toyota",
		Model:                 "Corolla",
		Year:                  2018,
		CurrentKm:             42000,
		FuelType:              domain.FuelGasoline,
		AvgConsumptionL100Km:  7.5,
		MaintenanceIntervalKm: 10000,
		MaintenanceCost:       800,
		ServiceIntervalKm:     10000,
		LastServiceKm:         40000,
	}
}

// CreateAuthContext создает контекст с claims аутентифицированного пользователя
func CreateAuthContext(t *testing.T, userID uuid.UUID, email string, role domain.UserRole) context.Context {
	t.Helper()
	claims := &jwt.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	return context.WithValue(context.Background(), middleware.UserClaimsKey, claims)
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}

// AssertError проверяет ошибочный ответ API
func AssertError(t *testing.T, response map[string]interface{}) {
	t.Helper()
	if _, ok := response["error"]; !ok {
		t.Errorf("Expected error field in response, got %v", response)
	}
}
