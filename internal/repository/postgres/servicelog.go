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

type serviceLogRepository struct {
	db *pgxpool.Pool
}

func NewServiceLogRepository(db *pgxpool.Pool) repository.ServiceLogRepository {
	return &serviceLogRepository{db: db}
}

// Create записывает обслуживание и продвигает last_service_km автомобиля.
// Обе записи выполняются в одной транзакции: либо история пополняется и
// базовая точка обслуживания сдвигается вместе, либо не происходит ничего
func (r *serviceLogRepository) Create(ctx context.Context, log *domain.ServiceLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	log.CreatedAt = time.Now()

	err = tx.QueryRow(ctx, `
		INSERT INTO service_logs (vehicle_id, date, km, description, cost, parts_replaced, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		log.VehicleID,
		log.Date,
		log.Km,
		log.Description,
		log.Cost,
		log.PartsReplaced,
		log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET last_service_km = $2, updated_at = NOW()
		WHERE id = $1
	`, log.VehicleID, log.Km)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return tx.Commit(ctx)
}

func (r *serviceLogRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceLog, error) {
	query := `
		SELECT id, vehicle_id, date, km, description, cost, parts_replaced, created_at
		FROM service_logs
		WHERE id = $1
	`

	sl := &domain.ServiceLog{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sl.ID,
		&sl.VehicleID,
		&sl.Date,
		&sl.Km,
		&sl.Description,
		&sl.Cost,
		&sl.PartsReplaced,
		&sl.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceLogNotFound
		}
		return nil, err
	}

	return sl, nil
}

func (r *serviceLogRepository) GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.ServiceLog, error) {
	query := `
		SELECT id, vehicle_id, date, km, description, cost, parts_replaced, created_at
		FROM service_logs
		WHERE vehicle_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.ServiceLog
	for rows.Next() {
		sl := &domain.ServiceLog{}
		err := rows.Scan(
			&sl.ID,
			&sl.VehicleID,
			&sl.Date,
			&sl.Km,
			&sl.Description,
			&sl.Cost,
			&sl.PartsReplaced,
			&sl.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, sl)
	}

	return logs, rows.Err()
}

// Delete удаляет запись обслуживания.
// last_service_km автомобиля сознательно не откатывается: история
// append-only, а базовая точка обслуживания движется только вперед
func (r *serviceLogRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM service_logs WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrServiceLogNotFound
	}

	return nil
}
