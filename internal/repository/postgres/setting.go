package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type settingRepository struct {
	db *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) repository.SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key domain.SettingKey) (string, error) {
	query := `SELECT value FROM settings WHERE key = $1`

	var value string
	err := r.db.QueryRow(ctx, query, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrSettingNotFound
		}
		return "", err
	}

	return value, nil
}

func (r *settingRepository) Set(ctx context.Context, key domain.SettingKey, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, string(key), value)
	return err
}

func (r *settingRepository) Delete(ctx context.Context, key domain.SettingKey) error {
	query := `DELETE FROM settings WHERE key = $1`

	result, err := r.db.Exec(ctx, query, string(key))
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSettingNotFound
	}

	return nil
}
