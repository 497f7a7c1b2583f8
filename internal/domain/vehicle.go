package domain

import (
	"time"

	"github.com/google/uuid"
)

// FuelType представляет тип топлива автомобиля
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
)

// Vehicle - автомобиль пользователя со всеми параметрами,
// необходимыми для расчета стоимости километра
// ВАЖНО: Автомобиль ОБЯЗАТЕЛЬНО привязан к владельцу (OwnerID NOT NULL)
type Vehicle struct {
	ID       int64     `json:"id"`
	OwnerID  uuid.UUID `json:"owner_id"` // ОБЯЗАТЕЛЬНАЯ связь с User
	Make     string    `json:"make"`
	Model    string    `json:"model"`
	Year     int       `json:"year"`
	PhotoURL string    `json:"photo_url,omitempty"`

	// Пробег
	StartKm   int64 `json:"start_km"`
	CurrentKm int64 `json:"current_km"` // инвариант current_km >= start_km гарантирует вызывающая сторона

	// Топливо и расход
	FuelType             FuelType `json:"fuel_type"`
	AvgConsumptionL100Km float64  `json:"avg_consumption_l_100km"`

	// Периодическое обслуживание
	MaintenanceIntervalKm int64   `json:"maintenance_interval_km"`
	MaintenanceCost       float64 `json:"maintenance_cost"`
	LastServiceKm         int64   `json:"last_service_km"`
	ServiceIntervalKm     int64   `json:"service_interval_km"`

	// Фиксированные годовые расходы
	YearlyInsurance float64 `json:"yearly_insurance"`
	YearlyRoadTax   float64 `json:"yearly_road_tax"`
	YearlyAverageKm int64   `json:"yearly_average_km"`

	// Параметры амортизации (потеря стоимости)
	CurrentPrice float64 `json:"current_price"`
	FuturePrice  float64 `json:"future_price"`
	FutureKm     int64   `json:"future_km"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate проверяет корректность данных автомобиля
func (v *Vehicle) Validate() error {
	if v.OwnerID == uuid.Nil {
		return ErrInvalidVehicleData
	}
	if v.Make == "" || v.Model == "" {
		return ErrInvalidVehicleData
	}
	if v.Year < 1900 || v.Year > 2030 {
		return ErrInvalidYear
	}
	if v.FuelType != FuelGasoline && v.FuelType != FuelDiesel {
		return ErrInvalidFuelType
	}
	return nil
}
