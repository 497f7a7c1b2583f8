package database

import (
	"context"
	"fmt"

	"github.com/frontandrew/vmaster/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration - один шаг эволюции схемы
// Шаги применяются строго по возрастанию версии, каждый в своей транзакции
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations - упорядоченный список всех миграций
// Новые шаги добавляются только в конец; уже примененные версии не меняются.
// ADD COLUMN IF NOT EXISTS сохраняет устойчивость к повторному применению
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				full_name TEXT NOT NULL,
				role TEXT NOT NULL DEFAULT 'user',
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				last_login_at TIMESTAMPTZ
			)`,
	},
	{
		Version: 2,
		Name:    "create_refresh_tokens",
		SQL: `
			CREATE TABLE IF NOT EXISTS refresh_tokens (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				token_hash TEXT NOT NULL UNIQUE,
				expires_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				revoked_at TIMESTAMPTZ
			)`,
	},
	{
		Version: 3,
		Name:    "create_vehicles",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicles (
				id BIGSERIAL PRIMARY KEY,
				owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				make TEXT NOT NULL,
				model TEXT NOT NULL,
				year INT NOT NULL DEFAULT 0,
				photo_url TEXT NOT NULL DEFAULT '',
				start_km BIGINT NOT NULL DEFAULT 0,
				current_km BIGINT NOT NULL DEFAULT 0,
				fuel_type TEXT NOT NULL DEFAULT 'gasoline',
				avg_consumption_l_100km DOUBLE PRECISION NOT NULL DEFAULT 0,
				maintenance_interval_km BIGINT NOT NULL DEFAULT 10000,
				maintenance_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
				yearly_insurance DOUBLE PRECISION NOT NULL DEFAULT 0,
				yearly_road_tax DOUBLE PRECISION NOT NULL DEFAULT 0,
				yearly_average_km BIGINT NOT NULL DEFAULT 15000,
				current_price DOUBLE PRECISION NOT NULL DEFAULT 0,
				future_price DOUBLE PRECISION NOT NULL DEFAULT 0,
				future_km BIGINT NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		Version: 4,
		Name:    "create_consumables",
		SQL: `
			CREATE TABLE IF NOT EXISTS consumables (
				id BIGSERIAL PRIMARY KEY,
				vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
				name TEXT NOT NULL,
				cost DOUBLE PRECISION NOT NULL DEFAULT 0,
				lifetime_km BIGINT NOT NULL DEFAULT 0,
				last_replaced_km BIGINT NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		Version: 5,
		Name:    "create_settings",
		SQL: `
			CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		Version: 6,
		Name:    "add_vehicle_service_tracking",
		SQL: `
			ALTER TABLE vehicles
				ADD COLUMN IF NOT EXISTS last_service_km BIGINT NOT NULL DEFAULT 0,
				ADD COLUMN IF NOT EXISTS service_interval_km BIGINT NOT NULL DEFAULT 10000`,
	},
	{
		Version: 7,
		Name:    "create_service_logs",
		SQL: `
			CREATE TABLE IF NOT EXISTS service_logs (
				id BIGSERIAL PRIMARY KEY,
				vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
				date TEXT NOT NULL DEFAULT '',
				km BIGINT NOT NULL DEFAULT 0,
				description TEXT NOT NULL DEFAULT '',
				cost DOUBLE PRECISION NOT NULL DEFAULT 0,
				parts_replaced TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
}

// Migrate применяет все недостающие миграции
// Повторный запуск на актуальной схеме ничего не делает
func Migrate(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var current int
	err = pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		// Каждый шаг применяется атомарно вместе с записью о версии
		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin migration tx: %w", err)
		}

		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.Version, m.Name,
		); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		log.Info("Applied migration", map[string]interface{}{
			"version": m.Version,
			"name":    m.Name,
		})
	}

	return nil
}
