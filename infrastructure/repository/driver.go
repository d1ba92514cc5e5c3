package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/overtime-counters-api/infrastructure/database/sqldb"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

const (
	driversTable = "drivers"
	// Limite de motoristas por INSERT para ficar abaixo do máximo de parâmetros do sqlite
	driverUpsertChunk = 200
)

type DriverRepository interface {
	UpsertDrivers(ctx context.Context, drivers []domain.DriverUpsert) (map[string]int64, error)
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)
}

type driverRepository struct {
	conn *sqldb.Connection
}

func NewDriverRepository(conn *sqldb.Connection) DriverRepository {
	return &driverRepository{
		conn: conn,
	}
}

// UpsertDrivers cria ou atualiza motoristas pelo identificador e retorna o id de cada um
func (r *driverRepository) UpsertDrivers(ctx context.Context, drivers []domain.DriverUpsert) (map[string]int64, error) {
	ids := make(map[string]int64, len(drivers))
	if len(drivers) == 0 {
		return ids, nil
	}

	// Um mesmo identificador não pode aparecer duas vezes no mesmo ON CONFLICT
	unique := make([]domain.DriverUpsert, 0, len(drivers))
	positions := make(map[string]int, len(drivers))
	for _, d := range drivers {
		if pos, ok := positions[d.Identifier]; ok {
			unique[pos] = d
			continue
		}
		positions[d.Identifier] = len(unique)
		unique = append(unique, d)
	}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		q := sqldb.TxQueryer{Tx: tx}
		for start := 0; start < len(unique); start += driverUpsertChunk {
			end := min(start+driverUpsertChunk, len(unique))
			if err := r.upsertChunk(ctx, q, unique[start:end], ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *driverRepository) upsertChunk(ctx context.Context, q sqldb.Queryer, drivers []domain.DriverUpsert, ids map[string]int64) error {
	now := time.Now().UTC()

	query := squirrel.
		Insert(driversTable).
		Columns("identifier", "identifier_is_name_fallback", "vehicle_type", "updated_at")

	for _, d := range drivers {
		query = query.Values(d.Identifier, d.IdentifierIsNameFallback, string(d.VehicleType), now)
	}

	// Define o comportamento em caso de conflito (atualiza os campos)
	sqlQuery, args, err := query.Suffix(`
			ON CONFLICT (identifier) DO UPDATE SET
				identifier_is_name_fallback = EXCLUDED.identifier_is_name_fallback,
				vehicle_type = EXCLUDED.vehicle_type,
				updated_at = EXCLUDED.updated_at
			RETURNING id, identifier
		`).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return wrapDBError("salvar motoristas", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			identifier string
		)
		if err := rows.Scan(&id, &identifier); err != nil {
			return fmt.Errorf("erro ao escanear motorista: %w", err)
		}
		ids[identifier] = id
	}

	if err := rows.Err(); err != nil {
		return wrapDBError("salvar motoristas", err)
	}

	return nil
}

func (r *driverRepository) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	query, args, err := squirrel.
		Select("id, identifier, identifier_is_name_fallback, vehicle_type").
		From(driversTable).
		OrderBy("identifier ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("listar motoristas", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		var (
			driver      domain.Driver
			vehicleType string
		)
		if err := rows.Scan(&driver.ID, &driver.Identifier, &driver.IdentifierIsNameFallback, &vehicleType); err != nil {
			return nil, fmt.Errorf("erro ao escanear motorista: %w", err)
		}
		driver.VehicleType = domain.VehicleType(vehicleType)
		drivers = append(drivers, &driver)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return drivers, nil
}
