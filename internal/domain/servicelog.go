package domain

import "time"

// ServiceLog - запись о выполненном обслуживании автомобиля
// История append-only: запись можно удалить, но удаление НЕ откатывает
// last_service_km автомобиля (принятое ограничение, см. DESIGN.md)
type ServiceLog struct {
	ID            int64     `json:"id"`
	VehicleID     int64     `json:"vehicle_id"`
	Date          string    `json:"date"` // свободная строка, формат не валидируется
	Km            int64     `json:"km"`
	Description   string    `json:"description"`
	Cost          float64   `json:"cost"`
	PartsReplaced string    `json:"parts_replaced"`
	CreatedAt     time.Time `json:"created_at"`
}

// Validate проверяет корректность данных записи обслуживания
func (sl *ServiceLog) Validate() error {
	if sl.VehicleID == 0 {
		return ErrInvalidServiceLogData
	}
	if sl.Km < 0 {
		return ErrInvalidServiceLogData
	}
	return nil
}
