package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

func engineSummaries() []domain.DriverPeriodSummary {
	return []domain.DriverPeriodSummary{
		{DriverID: 1, Identifier: "E001", VehicleType: domain.VehicleTypeBus, PeriodID: 10, Year: 2024, PeriodNumber: 1, LatestCounter: 5, TotalOvertimePay: 2, BufferHours: 17},
		{DriverID: 1, Identifier: "E001", VehicleType: domain.VehicleTypeBus, PeriodID: 11, Year: 2024, PeriodNumber: 2, LatestCounter: 20, BufferHours: 17},
		{DriverID: 2, Identifier: "E002", VehicleType: domain.VehicleTypeVan, PeriodID: 10, Year: 2024, PeriodNumber: 1, LatestCounter: -4},
		{DriverID: 3, Identifier: "E003", VehicleType: domain.VehicleTypeBus, PeriodID: 10, Year: 2024, PeriodNumber: 1, LatestCounter: 0, TotalOvertimePay: 1},
	}
}

func TestAggregate(t *testing.T) {
	input := engineSummaries()

	result := Aggregate(input, nil, Options{Mode: domain.AggregationSum, BufferHours: 17})

	assert.Equal(t, 3, result.DriverCount)
	assert.Equal(t, 2, result.PeriodCount)
	assert.Equal(t, []domain.DistributionBucket{
		{Label: "-10h a 0h", Count: 2},
		{Label: "10h a 15h", Count: 1},
	}, result.Distribution)

	assert.Equal(t, []int64{2}, result.Critical.DeficitIDs)
	assert.Equal(t, []int64{1}, result.Critical.ExcessIDs)
	assert.Equal(t, []int64{2, 1}, result.Critical.CriticalIDs)
	assert.Equal(t, 1, result.Critical.NormalCount)

	require.Len(t, result.Drivers, 3)
	assert.Equal(t, 12.5, result.Drivers[0].Counter)
	assert.Equal(t, 27.0, result.Drivers[0].ExcessTotal)
	assert.Equal(t, -4.0, result.Drivers[1].MissingTotal)

	require.Len(t, result.PeriodComparison, 2)
	assert.Equal(t, int64(10), result.PeriodComparison[0].PeriodID)

	assert.Equal(t, []domain.BufferAlert{
		{DriverID: 1, Identifier: "E001", Counter: 20, BufferHours: 17},
	}, result.BufferAlerts)

	assert.Nil(t, result.MonthlySeries)
	assert.Equal(t, engineSummaries(), input)
}

func TestAggregate_FiltroDeVeiculo(t *testing.T) {
	van := domain.VehicleTypeVan

	result := Aggregate(engineSummaries(), []domain.MonthlyRecordRow{
		{DriverID: 1, VehicleType: domain.VehicleTypeBus, PeriodYear: 2024, PeriodNumber: 1, Month: 1, Year: 2024, PositiveHours: 3},
		{DriverID: 2, VehicleType: domain.VehicleTypeVan, PeriodYear: 2024, PeriodNumber: 1, Month: 1, Year: 2024, MissingHours: 2},
	}, Options{VehicleType: &van, BufferHours: 17})

	assert.Equal(t, 1, result.DriverCount)
	assert.Equal(t, 1, result.PeriodCount)
	assert.Equal(t, []int64{2}, result.Critical.CriticalIDs)
	assert.Empty(t, result.BufferAlerts)

	require.Len(t, result.MonthlySeries, 4)
	assert.Equal(t, 0.0, result.MonthlySeries[0].PositiveHours)
	assert.Equal(t, 2.0, result.MonthlySeries[0].MissingHours)
}

func TestAggregate_PeriodosSelecionadosDefinemASerie(t *testing.T) {
	van := domain.VehicleTypeVan

	summaries := []domain.DriverPeriodSummary{
		{DriverID: 1, VehicleType: domain.VehicleTypeBus, PeriodID: 1, Year: 2024, PeriodNumber: 1, LatestCounter: 4},
		{DriverID: 2, VehicleType: domain.VehicleTypeVan, PeriodID: 2, Year: 2024, PeriodNumber: 2, LatestCounter: -1},
	}
	monthly := []domain.MonthlyRecordRow{
		{DriverID: 1, VehicleType: domain.VehicleTypeBus, PeriodYear: 2024, PeriodNumber: 1, Month: 2, Year: 2024, PositiveHours: 4},
		{DriverID: 2, VehicleType: domain.VehicleTypeVan, PeriodYear: 2024, PeriodNumber: 2, Month: 6, Year: 2024, MissingHours: 1},
	}

	result := Aggregate(summaries, monthly, Options{
		VehicleType: &van,
		Periods: []domain.PeriodKey{
			{PeriodNumber: 2, Year: 2024},
			{PeriodNumber: 1, Year: 2024},
		},
	})

	// P1 não tem linhas de VAN, mas seus quatro meses continuam na série
	require.Len(t, result.MonthlySeries, 8)
	assert.Equal(t, 2024, result.MonthlySeries[0].Year)
	assert.Equal(t, 1, result.MonthlySeries[0].Month)
	assert.Equal(t, 0, result.MonthlySeries[1].DriversReporting)
	assert.Equal(t, 0.0, result.MonthlySeries[1].PositiveHours)
	assert.Equal(t, 6, result.MonthlySeries[5].Month)
	assert.Equal(t, 1.0, result.MonthlySeries[5].MissingHours)
}

func TestAggregate_PeriodosSemRegistrosMensais(t *testing.T) {
	result := Aggregate(nil, nil, Options{Periods: []domain.PeriodKey{{PeriodNumber: 3, Year: 2023}}})

	require.Len(t, result.MonthlySeries, 4)
	assert.Equal(t, 9, result.MonthlySeries[0].Month)
	assert.Equal(t, 12, result.MonthlySeries[3].Month)
}

func TestAggregate_SemDados(t *testing.T) {
	result := Aggregate(nil, []domain.MonthlyRecordRow{}, Options{})

	assert.Equal(t, 0, result.DriverCount)
	assert.Equal(t, 0, result.PeriodCount)
	assert.Empty(t, result.Distribution)
	assert.Empty(t, result.Drivers)
	assert.Empty(t, result.Critical.CriticalIDs)
	assert.Empty(t, result.PeriodComparison)
	assert.Empty(t, result.BufferAlerts)
	assert.NotNil(t, result.MonthlySeries)
	assert.Empty(t, result.MonthlySeries)
}

func TestAggregate_BufferPadrao(t *testing.T) {
	summaries := []domain.DriverPeriodSummary{
		{DriverID: 1, Identifier: "E001", PeriodID: 1, Year: 2024, PeriodNumber: 1, LatestCounter: 12},
	}

	assert.Len(t, Aggregate(summaries, nil, Options{BufferHours: 10}).BufferAlerts, 1)
	assert.Empty(t, Aggregate(summaries, nil, Options{BufferHours: 15}).BufferAlerts)
}
