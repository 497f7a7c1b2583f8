package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type consumableRepository struct {
	db *pgxpool.Pool
}

func NewConsumableRepository(db *pgxpool.Pool) repository.ConsumableRepository {
	return &consumableRepository{db: db}
}

func (r *consumableRepository) Create(ctx context.Context, consumable *domain.Consumable) error {
	query := `
		INSERT INTO consumables (vehicle_id, name, cost, lifetime_km, last_replaced_km, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	consumable.CreatedAt = time.Now()
	consumable.UpdatedAt = time.Now()

	err := r.db.QueryRow(ctx, query,
		consumable.VehicleID,
		consumable.Name,
		consumable.Cost,
		consumable.LifetimeKm,
		consumable.LastReplacedKm,
		consumable.CreatedAt,
		consumable.UpdatedAt,
	).Scan(&consumable.ID)

	return err
}

func (r *consumableRepository) GetByID(ctx context.Context, id int64) (*domain.Consumable, error) {
	query := `
		SELECT id, vehicle_id, name, cost, lifetime_km, last_replaced_km, created_at, updated_at
		FROM consumables
		WHERE id = $1
	`

	c := &domain.Consumable{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.VehicleID,
		&c.Name,
		&c.Cost,
		&c.LifetimeKm,
		&c.LastReplacedKm,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConsumableNotFound
		}
		return nil, err
	}

	return c, nil
}

func (r *consumableRepository) GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.Consumable, error) {
	// Порядок чтения фиксирован: предупреждения сохраняют этот же порядок
	query := `
		SELECT id, vehicle_id, name, cost, lifetime_km, last_replaced_km, created_at, updated_at
		FROM consumables
		WHERE vehicle_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consumables []*domain.Consumable
	for rows.Next() {
		c := &domain.Consumable{}
		err := rows.Scan(
			&c.ID,
			&c.VehicleID,
			&c.Name,
			&c.Cost,
			&c.LifetimeKm,
			&c.LastReplacedKm,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		consumables = append(consumables, c)
	}

	return consumables, rows.Err()
}

func (r *consumableRepository) Update(ctx context.Context, consumable *domain.Consumable) error {
	query := `
		UPDATE consumables
		SET name = $2, cost = $3, lifetime_km = $4, last_replaced_km = $5, updated_at = $6
		WHERE id = $1
	`

	consumable.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		consumable.ID,
		consumable.Name,
		consumable.Cost,
		consumable.LifetimeKm,
		consumable.LastReplacedKm,
		consumable.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrConsumableNotFound
	}

	return nil
}

func (r *consumableRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM consumables WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrConsumableNotFound
	}

	return nil
}
