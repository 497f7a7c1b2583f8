package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/vmaster/internal/domain"
	"github.com/frontandrew/vmaster/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vehicleColumns = `
	id, owner_id, make, model, year, photo_url,
	start_km, current_km, fuel_type, avg_consumption_l_100km,
	maintenance_interval_km, maintenance_cost, last_service_km, service_interval_km,
	yearly_insurance, yearly_road_tax, yearly_average_km,
	current_price, future_price, future_km,
	created_at, updated_at
`

type vehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.PhotoURL,
		&v.StartKm,
		&v.CurrentKm,
		&v.FuelType,
		&v.AvgConsumptionL100Km,
		&v.MaintenanceIntervalKm,
		&v.MaintenanceCost,
		&v.LastServiceKm,
		&v.ServiceIntervalKm,
		&v.YearlyInsurance,
		&v.YearlyRoadTax,
		&v.YearlyAverageKm,
		&v.CurrentPrice,
		&v.FuturePrice,
		&v.FutureKm,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			owner_id, make, model, year, photo_url,
			start_km, current_km, fuel_type, avg_consumption_l_100km,
			maintenance_interval_km, maintenance_cost, last_service_km, service_interval_km,
			yearly_insurance, yearly_road_tax, yearly_average_km,
			current_price, future_price, future_km,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`

	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	err := r.db.QueryRow(ctx, query,
		vehicle.OwnerID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.PhotoURL,
		vehicle.StartKm,
		vehicle.CurrentKm,
		vehicle.FuelType,
		vehicle.AvgConsumptionL100Km,
		vehicle.MaintenanceIntervalKm,
		vehicle.MaintenanceCost,
		vehicle.LastServiceKm,
		vehicle.ServiceIntervalKm,
		vehicle.YearlyInsurance,
		vehicle.YearlyRoadTax,
		vehicle.YearlyAverageKm,
		vehicle.CurrentPrice,
		vehicle.FuturePrice,
		vehicle.FutureKm,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	).Scan(&vehicle.ID)

	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $2, model = $3, year = $4, photo_url = $5,
			start_km = $6, current_km = $7, fuel_type = $8, avg_consumption_l_100km = $9,
			maintenance_interval_km = $10, maintenance_cost = $11,
			last_service_km = $12, service_interval_km = $13,
			yearly_insurance = $14, yearly_road_tax = $15, yearly_average_km = $16,
			current_price = $17, future_price = $18, future_km = $19,
			updated_at = $20
		WHERE id = $1
	`

	vehicle.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.PhotoURL,
		vehicle.StartKm,
		vehicle.CurrentKm,
		vehicle.FuelType,
		vehicle.AvgConsumptionL100Km,
		vehicle.MaintenanceIntervalKm,
		vehicle.MaintenanceCost,
		vehicle.LastServiceKm,
		vehicle.ServiceIntervalKm,
		vehicle.YearlyInsurance,
		vehicle.YearlyRoadTax,
		vehicle.YearlyAverageKm,
		vehicle.CurrentPrice,
		vehicle.FuturePrice,
		vehicle.FutureKm,
		vehicle.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	// Детали и история обслуживания удаляются каскадно (FK ON DELETE CASCADE)
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}
