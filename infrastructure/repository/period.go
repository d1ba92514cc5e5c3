package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/overtime-counters-api/infrastructure/database/sqldb"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

const (
	periodsTable   = "reference_periods"
	periodsColumns = "id, year, period_number, label, start_month, end_month"
)

type PeriodRepository interface {
	Upsert(ctx context.Context, year, periodNumber int) (*domain.ReferencePeriod, error)
	List(ctx context.Context) ([]*domain.ReferencePeriod, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.ReferencePeriod, error)
}

type periodRepository struct {
	conn *sqldb.Connection
}

func NewPeriodRepository(conn *sqldb.Connection) PeriodRepository {
	return &periodRepository{
		conn: conn,
	}
}

// Upsert cria o período ou retorna o existente para (ano, número)
func (r *periodRepository) Upsert(ctx context.Context, year, periodNumber int) (*domain.ReferencePeriod, error) {
	if !domain.ValidPeriodNumber(periodNumber) {
		return nil, fmt.Errorf("número de período inválido: %d", periodNumber)
	}

	period := domain.NewReferencePeriod(year, periodNumber)

	query, args, err := squirrel.
		Insert(periodsTable).
		Columns("year", "period_number", "label", "start_month", "end_month").
		Values(period.Year, period.PeriodNumber, period.Label, period.StartMonth, period.EndMonth).
		Suffix(`
			ON CONFLICT (year, period_number) DO UPDATE SET
				label = EXCLUDED.label
			RETURNING id
		`).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryerFrom(ctx).QueryRow(ctx, query, args...).Scan(&period.ID); err != nil {
		return nil, wrapDBError("salvar período de referência", err)
	}

	return &period, nil
}

func (r *periodRepository) List(ctx context.Context) ([]*domain.ReferencePeriod, error) {
	return r.selectPeriods(ctx, squirrel.
		Select(periodsColumns).
		From(periodsTable).
		OrderBy("year ASC", "period_number ASC"))
}

func (r *periodRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.ReferencePeriod, error) {
	if len(ids) == 0 {
		return []*domain.ReferencePeriod{}, nil
	}

	return r.selectPeriods(ctx, squirrel.
		Select(periodsColumns).
		From(periodsTable).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("year ASC", "period_number ASC"))
}

func (r *periodRepository) selectPeriods(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.ReferencePeriod, error) {
	query, args, err := builder.PlaceholderFormat(r.conn.Placeholder()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("listar períodos", err)
	}
	defer rows.Close()

	periods := make([]*domain.ReferencePeriod, 0)
	for rows.Next() {
		period := &domain.ReferencePeriod{}
		if err := rows.Scan(
			&period.ID,
			&period.Year,
			&period.PeriodNumber,
			&period.Label,
			&period.StartMonth,
			&period.EndMonth,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}
