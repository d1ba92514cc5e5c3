package analyzing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/overtime-counters-api/infrastructure/repository"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
)

const defaultPageSize = 500

type Analyzer interface {
	Analyze(ctx context.Context, query domain.AnalyticsQuery) (*domain.AnalyticsResult, error)
	ListPeriods(ctx context.Context) ([]*domain.ReferencePeriod, error)
	ListDrivers(ctx context.Context) ([]*domain.Driver, error)
}

type Service struct {
	periodRepository repository.PeriodRepository
	driverRepository repository.DriverRepository
	recordRepository repository.MonthlyRecordRepository
	pageSize         int
	bufferHours      float64
}

func NewService(
	periodRepository repository.PeriodRepository,
	driverRepository repository.DriverRepository,
	recordRepository repository.MonthlyRecordRepository,
	pageSize int,
	bufferHours float64,
) Analyzer {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		periodRepository: periodRepository,
		driverRepository: driverRepository,
		recordRepository: recordRepository,
		pageSize:         pageSize,
		bufferHours:      bufferHours,
	}
}

func (s *Service) Analyze(ctx context.Context, query domain.AnalyticsQuery) (*domain.AnalyticsResult, error) {
	var selected []*domain.ReferencePeriod
	if len(query.PeriodIDs) > 0 {
		periods, err := s.periodRepository.GetByIDs(ctx, query.PeriodIDs)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar períodos selecionados")
			return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar períodos")
		}
		if missing := missingPeriodIDs(query.PeriodIDs, periods); len(missing) > 0 {
			return nil, NewAnalyticsError(ErrPeriodNotFound, apiErrors.ErrInvalidRequest, fmt.Sprintf("ids %v", missing))
		}
		selected = periods
	}

	filter := domain.RecordFilter{PeriodIDs: query.PeriodIDs, VehicleType: query.VehicleType}

	summaries, err := fetchAll(ctx, s.pageSize, func(ctx context.Context, limit, offset int) ([]domain.DriverPeriodSummary, error) {
		return s.recordRepository.FetchPeriodSummariesPage(ctx, filter, limit, offset)
	})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar resumos por período")
		return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar resumos por período")
	}

	var monthly []domain.MonthlyRecordRow
	if query.IncludeMonthly {
		monthly, err = fetchAll(ctx, s.pageSize, func(ctx context.Context, limit, offset int) ([]domain.MonthlyRecordRow, error) {
			return s.recordRepository.FetchMonthlyRecordsPage(ctx, filter, limit, offset)
		})
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar registros mensais")
			return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar registros mensais")
		}
	}

	opts := Options{
		VehicleType: query.VehicleType,
		Mode:        query.Mode,
		BufferHours: s.bufferHours,
	}

	if query.IncludeMonthly {
		// Sem filtro de período a série cobre todos os períodos cadastrados
		if len(query.PeriodIDs) == 0 {
			selected, err = s.periodRepository.List(ctx)
			if err != nil {
				logrus.WithError(err).Error("Erro ao listar períodos")
				return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar períodos")
			}
		}

		opts.Periods = make([]domain.PeriodKey, 0, len(selected))
		for _, p := range selected {
			opts.Periods = append(opts.Periods, domain.PeriodKey{PeriodNumber: p.PeriodNumber, Year: p.Year})
		}
	}

	result := Aggregate(summaries, monthly, opts)

	logrus.WithFields(logrus.Fields{
		"drivers": result.DriverCount,
		"periods": result.PeriodCount,
		"mode":    query.Mode,
	}).Debug("Analytics calculado")

	return result, nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]*domain.ReferencePeriod, error) {
	periods, err := s.periodRepository.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar períodos")
		return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar períodos")
	}
	return periods, nil
}

func (s *Service) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	drivers, err := s.driverRepository.ListDrivers(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar motoristas")
		return nil, NewAnalyticsError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar motoristas")
	}
	return drivers, nil
}

// fetchAll lê páginas de tamanho fixo até receber uma página incompleta
func fetchAll[T any](ctx context.Context, pageSize int, fetch func(ctx context.Context, limit, offset int) ([]T, error)) ([]T, error) {
	all := make([]T, 0, pageSize)
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if len(page) < pageSize {
			return all, nil
		}
	}
}

func missingPeriodIDs(requested []int64, found []*domain.ReferencePeriod) []int64 {
	known := make(map[int64]bool, len(found))
	for _, p := range found {
		known[p.ID] = true
	}

	missing := make([]int64, 0)
	for _, id := range requested {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
