package analyzing

import (
	"github.com/samber/lo"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// Options são os parâmetros de uma agregação
type Options struct {
	VehicleType *domain.VehicleType
	Mode        domain.AggregationMode
	// Limite usado nos alertas quando o resumo não traz o buffer do motorista
	BufferHours float64
	// Períodos selecionados; definem os meses da série mensal mesmo quando o filtro de veículo
	// não deixa linhas em algum deles. Nil usa os períodos presentes nos dados.
	Periods []domain.PeriodKey
}

// driverTotals consolida os resumos de um motorista em todos os períodos selecionados
type driverTotals struct {
	driverID     int64
	identifier   string
	vehicleType  domain.VehicleType
	counter      float64 // média dos contadores finais dos períodos
	missingTotal float64 // soma de min(contador, 0)
	excessTotal  float64 // soma de max(contador, 0) + horas pagas
	latest       domain.DriverPeriodSummary
}

// Aggregate calcula todas as estatísticas do painel. É uma função pura: não faz I/O, não altera a
// entrada e nunca falha; entradas vazias produzem coleções vazias.
func Aggregate(summaries []domain.DriverPeriodSummary, monthly []domain.MonthlyRecordRow, opts Options) *domain.AnalyticsResult {
	if opts.VehicleType != nil {
		vehicle := *opts.VehicleType
		summaries = lo.Filter(summaries, func(s domain.DriverPeriodSummary, _ int) bool {
			return s.VehicleType == vehicle
		})
		monthly = lo.Filter(monthly, func(r domain.MonthlyRecordRow, _ int) bool {
			return r.VehicleType == vehicle
		})
	}

	drivers := collectDrivers(summaries)
	critical, classifications := ClassifyCritical(drivers)

	result := &domain.AnalyticsResult{
		DriverCount:      len(drivers),
		PeriodCount:      len(lo.UniqBy(summaries, func(s domain.DriverPeriodSummary) int64 { return s.PeriodID })),
		Distribution:     Distribution(lo.Map(drivers, func(d driverTotals, _ int) float64 { return d.counter })),
		Critical:         critical,
		Drivers:          classifications,
		PeriodComparison: ComparePeriods(summaries, opts.Mode),
		BufferAlerts:     bufferAlerts(drivers, opts.BufferHours),
	}

	if monthly != nil || opts.Periods != nil {
		keys := opts.Periods
		if keys == nil {
			keys = periodKeys(summaries, monthly)
		}
		result.MonthlySeries = MonthlySeries(keys, monthly)
	}

	return result
}

// collectDrivers agrupa os resumos por motorista na ordem da primeira ocorrência
func collectDrivers(summaries []domain.DriverPeriodSummary) []driverTotals {
	groups := lo.GroupBy(summaries, func(s domain.DriverPeriodSummary) int64 { return s.DriverID })
	order := lo.Uniq(lo.Map(summaries, func(s domain.DriverPeriodSummary, _ int) int64 { return s.DriverID }))

	drivers := make([]driverTotals, 0, len(order))
	for _, id := range order {
		group := groups[id]

		latest := lo.MaxBy(group, func(a, b domain.DriverPeriodSummary) bool {
			return a.Year > b.Year || (a.Year == b.Year && a.PeriodNumber > b.PeriodNumber)
		})

		drivers = append(drivers, driverTotals{
			driverID:    id,
			identifier:  latest.Identifier,
			vehicleType: latest.VehicleType,
			counter: lo.SumBy(group, func(s domain.DriverPeriodSummary) float64 {
				return s.LatestCounter
			}) / float64(len(group)),
			missingTotal: lo.SumBy(group, func(s domain.DriverPeriodSummary) float64 {
				return min(s.LatestCounter, 0)
			}),
			excessTotal: lo.SumBy(group, func(s domain.DriverPeriodSummary) float64 {
				return max(s.LatestCounter, 0) + s.TotalOvertimePay
			}),
			latest: latest,
		})
	}

	return drivers
}

// periodKeys lista os períodos presentes nos resumos e nos registros mensais
func periodKeys(summaries []domain.DriverPeriodSummary, monthly []domain.MonthlyRecordRow) []domain.PeriodKey {
	keys := lo.Map(summaries, func(s domain.DriverPeriodSummary, _ int) domain.PeriodKey {
		return domain.PeriodKey{PeriodNumber: s.PeriodNumber, Year: s.Year}
	})
	keys = append(keys, lo.Map(monthly, func(r domain.MonthlyRecordRow, _ int) domain.PeriodKey {
		return domain.PeriodKey{PeriodNumber: r.PeriodNumber, Year: r.PeriodYear}
	})...)
	return lo.Uniq(keys)
}

func bufferAlerts(drivers []driverTotals, defaultBuffer float64) []domain.BufferAlert {
	alerts := make([]domain.BufferAlert, 0)
	for _, d := range drivers {
		buffer := d.latest.BufferHours
		if buffer <= 0 {
			buffer = defaultBuffer
		}
		if buffer <= 0 || d.latest.LatestCounter <= buffer {
			continue
		}
		alerts = append(alerts, domain.BufferAlert{
			DriverID:    d.driverID,
			Identifier:  d.identifier,
			Counter:     d.latest.LatestCounter,
			BufferHours: buffer,
		})
	}
	return alerts
}
