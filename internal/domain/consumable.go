package domain

import "time"

// Consumable - изнашиваемая деталь автомобиля (шины, тормозные колодки и т.д.)
// Деталь принадлежит ровно одному автомобилю; при удалении автомобиля
// удаляются и все его детали. Деталь не удаляется автоматически по истечении
// ресурса - вместо этого она помечается предупреждением (см. maintenance)
type Consumable struct {
	ID             int64     `json:"id"`
	VehicleID      int64     `json:"vehicle_id"`
	Name           string    `json:"name"`
	Cost           float64   `json:"cost"`
	LifetimeKm     int64     `json:"lifetime_km"`
	LastReplacedKm int64     `json:"last_replaced_km"` // по умолчанию - текущий пробег автомобиля на момент создания
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EndOfLifeKm возвращает пробег, при котором ресурс детали будет исчерпан
func (c *Consumable) EndOfLifeKm() int64 {
	return c.LastReplacedKm + c.LifetimeKm
}

// Validate проверяет корректность данных детали
func (c *Consumable) Validate() error {
	if c.VehicleID == 0 {
		return ErrInvalidConsumableData
	}
	if c.Name == "" {
		return ErrInvalidConsumableData
	}
	return nil
}
