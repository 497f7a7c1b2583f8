package cached

import (
	"context"
	"time"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/pkg/redis"
	"github.com/frontandrew/vmaster/internal/repository"
	redisv9 "github.com/redis/go-redis/v9"
)

const (
	settingCachePrefix = "setting:"
	settingCacheTTL    = 10 * time.Minute

	// Отсутствующий в БД ключ тоже кэшируем, иначе каждый расчет
	// стоимости ходил бы в БД за несуществующим manual_fuel_price
	settingCacheMissMarker = "\x00miss"
)

// SettingRepository добавляет кэширование к setting repository
// Настройки (цены на топливо) читаются при каждом расчете стоимости,
// поэтому читаем через Redis, а пишем насквозь с инвалидацией
type SettingRepository struct {
	repo  repository.SettingRepository
	cache *redis.Client
}

// NewSettingRepository создает новый кэшируемый setting repository
func NewSettingRepository(repo repository.SettingRepository, cache *redis.Client) *SettingRepository {
	return &SettingRepository{
		repo:  repo,
		cache: cache,
	}
}

// Get возвращает значение настройки (с кэшированием)
func (r *SettingRepository) Get(ctx context.Context, key domain.SettingKey) (string, error) {
	cacheKey := settingCachePrefix + string(key)

	// 1. Проверяем кэш
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		if cached == settingCacheMissMarker {
			return "", domain.ErrSettingNotFound
		}
		return cached, nil
	}

	if err != redisv9.Nil {
		// Ошибка кэша не критична - продолжаем работу с БД
		return r.repo.Get(ctx, key)
	}

	// 2. Cache miss - идем в БД
	value, err := r.repo.Get(ctx, key)
	if err != nil {
		if err == domain.ErrSettingNotFound {
			_ = r.cache.Set(ctx, cacheKey, settingCacheMissMarker, settingCacheTTL)
		}
		return "", err
	}

	// 3. Сохраняем результат в кэш (ошибку записи игнорируем)
	_ = r.cache.Set(ctx, cacheKey, value, settingCacheTTL)

	return value, nil
}

// Set сохраняет значение и инвалидирует кэш
func (r *SettingRepository) Set(ctx context.Context, key domain.SettingKey, value string) error {
	if err := r.repo.Set(ctx, key, value); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, settingCachePrefix+string(key))

	return nil
}

// Delete удаляет настройку и инвалидирует кэш
func (r *SettingRepository) Delete(ctx context.Context, key domain.SettingKey) error {
	if err := r.repo.Delete(ctx, key); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, settingCachePrefix+string(key))

	return nil
}
