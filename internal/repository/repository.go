package repository

import (
	"context"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/google/uuid"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateLastLogin обновляет время последнего входа
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// VehicleRepository определяет методы для работы с автомобилями
type VehicleRepository interface {
	// Create создает новый автомобиль
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID возвращает автомобиль по ID
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)

	// GetByOwnerID возвращает все автомобили пользователя
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Vehicle, error)

	// Update обновляет данные автомобиля (полная замена записи)
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// Delete удаляет автомобиль вместе с его деталями и историей обслуживания
	Delete(ctx context.Context, id int64) error

	// List возвращает список автомобилей с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error)
}

// ConsumableRepository определяет методы для работы с изнашиваемыми деталями
type ConsumableRepository interface {
	// Create создает новую деталь
	Create(ctx context.Context, consumable *domain.Consumable) error

	// GetByID возвращает деталь по ID
	GetByID(ctx context.Context, id int64) (*domain.Consumable, error)

	// GetByVehicleID возвращает все детали автомобиля в порядке создания
	GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.Consumable, error)

	// Update обновляет данные детали
	Update(ctx context.Context, consumable *domain.Consumable) error

	// Delete удаляет деталь
	Delete(ctx context.Context, id int64) error
}

// ServiceLogRepository определяет методы для работы с историей обслуживания
type ServiceLogRepository interface {
	// Create записывает обслуживание и В ТОЙ ЖЕ транзакции продвигает
	// last_service_km автомобиля до пробега из записи
	Create(ctx context.Context, log *domain.ServiceLog) error

	// GetByID возвращает запись по ID
	GetByID(ctx context.Context, id int64) (*domain.ServiceLog, error)

	// GetByVehicleID возвращает историю обслуживания автомобиля
	GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.ServiceLog, error)

	// Delete удаляет запись; last_service_km автомобиля НЕ откатывается
	Delete(ctx context.Context, id int64) error
}

// SettingRepository определяет методы для работы с настройками
type SettingRepository interface {
	// Get возвращает значение настройки или domain.ErrSettingNotFound
	Get(ctx context.Context, key domain.SettingKey) (string, error)

	// Set сохраняет значение настройки (insert or replace)
	Set(ctx context.Context, key domain.SettingKey, value string) error

	// Delete удаляет настройку
	Delete(ctx context.Context, key domain.SettingKey) error
}

// RefreshTokenRepository определяет методы для работы с refresh токенами
type RefreshTokenRepository interface {
	// Create сохраняет новый refresh token
	Create(ctx context.Context, token *domain.RefreshToken) error

	// GetByTokenHash возвращает refresh token по хешу
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// Revoke отзывает refresh token
	Revoke(ctx context.Context, tokenHash string) error

	// DeleteExpired удаляет истекшие токены
	DeleteExpired(ctx context.Context) error
}
