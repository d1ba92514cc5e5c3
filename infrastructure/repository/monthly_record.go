package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/overtime-counters-api/infrastructure/database/sqldb"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

const (
	monthlyRecordsTable = "monthly_records"
	// Valor padrão de linhas por INSERT; 9 parâmetros por linha
	defaultInsertBatchSize = 100
	maxInsertBatchSize     = 3000
)

type MonthlyRecordRepository interface {
	ReplaceMonthlyRecords(ctx context.Context, periodID int64, records []domain.MonthlyRecord) error
	FetchPeriodSummariesPage(ctx context.Context, filter domain.RecordFilter, limit, offset int) ([]domain.DriverPeriodSummary, error)
	FetchMonthlyRecordsPage(ctx context.Context, filter domain.RecordFilter, limit, offset int) ([]domain.MonthlyRecordRow, error)
}

type monthlyRecordRepository struct {
	conn      *sqldb.Connection
	batchSize int
}

func NewMonthlyRecordRepository(conn *sqldb.Connection, batchSize int) MonthlyRecordRepository {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}
	return &monthlyRecordRepository{
		conn:      conn,
		batchSize: min(batchSize, maxInsertBatchSize),
	}
}

// ReplaceMonthlyRecords apaga os registros do período e insere os novos na mesma transação
func (r *monthlyRecordRepository) ReplaceMonthlyRecords(ctx context.Context, periodID int64, records []domain.MonthlyRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		q := sqldb.TxQueryer{Tx: tx}

		deleteSQL, deleteArgs, err := squirrel.
			Delete(monthlyRecordsTable).
			Where(squirrel.Eq{"period_id": periodID}).
			PlaceholderFormat(r.conn.Placeholder()).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := q.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
			return wrapDBError("apagar registros mensais do período", err)
		}

		for start := 0; start < len(records); start += r.batchSize {
			end := min(start+r.batchSize, len(records))
			if err := r.insertBatch(ctx, q, periodID, records[start:end]); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *monthlyRecordRepository) insertBatch(ctx context.Context, q sqldb.Queryer, periodID int64, records []domain.MonthlyRecord) error {
	query := squirrel.
		Insert(monthlyRecordsTable).
		Columns(
			"driver_id",
			"period_id",
			"month",
			"year",
			"positive_hours",
			"missing_hours",
			"overtime_pay",
			"counter_end",
			"buffer_hours",
		)

	for _, rec := range records {
		query = query.Values(
			rec.DriverID,
			periodID,
			rec.Month,
			rec.Year,
			rec.PositiveHours,
			rec.MissingHours,
			rec.OvertimePay,
			rec.CounterEnd,
			rec.BufferHours,
		)
	}

	sqlQuery, args, err := query.PlaceholderFormat(r.conn.Placeholder()).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.Exec(ctx, sqlQuery, args...); err != nil {
		return wrapDBError("inserir registros mensais", err)
	}

	return nil
}

// FetchPeriodSummariesPage agrega os registros mensais por (motorista, período). O contador
// mais recente é o do último mês gravado do motorista no período.
func (r *monthlyRecordRepository) FetchPeriodSummariesPage(ctx context.Context, filter domain.RecordFilter, limit, offset int) ([]domain.DriverPeriodSummary, error) {
	builder := squirrel.
		Select(
			"mr.driver_id",
			"d.identifier",
			"d.vehicle_type",
			"mr.period_id",
			"p.year",
			"p.period_number",
			"SUM(mr.positive_hours)",
			"SUM(mr.missing_hours)",
			"SUM(mr.overtime_pay)",
			`(SELECT l.counter_end FROM monthly_records l
				WHERE l.driver_id = mr.driver_id AND l.period_id = mr.period_id
				ORDER BY l.year DESC, l.month DESC LIMIT 1)`,
			"MAX(mr.buffer_hours)",
			"COUNT(*)",
		).
		From(monthlyRecordsTable + " mr").
		Join(driversTable + " d ON d.id = mr.driver_id").
		Join(periodsTable + " p ON p.id = mr.period_id").
		GroupBy("mr.driver_id", "d.identifier", "d.vehicle_type", "mr.period_id", "p.year", "p.period_number").
		OrderBy("p.year ASC", "p.period_number ASC", "mr.driver_id ASC")

	builder = applyRecordFilter(builder, filter)

	query, args, err := builder.
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("buscar resumos por período", err)
	}
	defer rows.Close()

	summaries := make([]domain.DriverPeriodSummary, 0)
	for rows.Next() {
		var (
			s           domain.DriverPeriodSummary
			vehicleType string
		)
		if err := rows.Scan(
			&s.DriverID,
			&s.Identifier,
			&vehicleType,
			&s.PeriodID,
			&s.Year,
			&s.PeriodNumber,
			&s.TotalPositiveHours,
			&s.TotalMissingHours,
			&s.TotalOvertimePay,
			&s.LatestCounter,
			&s.BufferHours,
			&s.MonthsRecorded,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo: %w", err)
		}
		s.VehicleType = domain.VehicleType(vehicleType)
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return summaries, nil
}

func (r *monthlyRecordRepository) FetchMonthlyRecordsPage(ctx context.Context, filter domain.RecordFilter, limit, offset int) ([]domain.MonthlyRecordRow, error) {
	builder := squirrel.
		Select(
			"mr.driver_id",
			"d.identifier",
			"d.vehicle_type",
			"mr.period_id",
			"p.year",
			"p.period_number",
			"mr.month",
			"mr.year",
			"mr.positive_hours",
			"mr.missing_hours",
			"mr.overtime_pay",
			"mr.counter_end",
			"mr.buffer_hours",
		).
		From(monthlyRecordsTable + " mr").
		Join(driversTable + " d ON d.id = mr.driver_id").
		Join(periodsTable + " p ON p.id = mr.period_id").
		OrderBy("mr.year ASC", "mr.month ASC", "mr.driver_id ASC", "mr.period_id ASC")

	builder = applyRecordFilter(builder, filter)

	query, args, err := builder.
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("buscar registros mensais", err)
	}
	defer rows.Close()

	records := make([]domain.MonthlyRecordRow, 0)
	for rows.Next() {
		var (
			rec         domain.MonthlyRecordRow
			vehicleType string
		)
		if err := rows.Scan(
			&rec.DriverID,
			&rec.Identifier,
			&vehicleType,
			&rec.PeriodID,
			&rec.PeriodYear,
			&rec.PeriodNumber,
			&rec.Month,
			&rec.Year,
			&rec.PositiveHours,
			&rec.MissingHours,
			&rec.OvertimePay,
			&rec.CounterEnd,
			&rec.BufferHours,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear registro mensal: %w", err)
		}
		rec.VehicleType = domain.VehicleType(vehicleType)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// applyRecordFilter restringe a consulta aos períodos e ao tipo de veículo; sem períodos, lê todos
func applyRecordFilter(builder squirrel.SelectBuilder, filter domain.RecordFilter) squirrel.SelectBuilder {
	if len(filter.PeriodIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"mr.period_id": filter.PeriodIDs})
	}
	if filter.VehicleType != nil {
		builder = builder.Where(squirrel.Eq{"d.vehicle_type": string(*filter.VehicleType)})
	}
	return builder
}
