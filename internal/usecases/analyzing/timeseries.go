package analyzing

import (
	"sort"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/pkg/utils"
)

type monthSlot struct {
	year  int
	month int
}

type slotTotals struct {
	positive, missing, pay float64
	counterSum             float64
	reporting              int
	settlementPaid         float64
	settlementMissing      float64
}

// MonthlySeries monta um ponto para cada mês dos períodos selecionados, inclusive meses sem dados.
// No último mês de cada período, contadores positivos somam em horas pagas e os negativos (em
// módulo) em horas faltantes, além dos valores mensais.
func MonthlySeries(periods []domain.PeriodKey, monthly []domain.MonthlyRecordRow) []domain.MonthlyPoint {
	keys := make([]domain.PeriodKey, len(periods))
	copy(keys, periods)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].PeriodNumber < keys[j].PeriodNumber
	})

	totals := make(map[monthSlot]*slotTotals)
	slots := make([]monthSlot, 0, len(keys)*domain.PeriodLength)
	for _, key := range keys {
		start, end := domain.PeriodMonths(key.PeriodNumber)
		for m := start; m <= end; m++ {
			slot := monthSlot{year: key.Year, month: m}
			if _, exists := totals[slot]; exists {
				continue
			}
			totals[slot] = &slotTotals{}
			slots = append(slots, slot)
		}
	}

	for _, rec := range monthly {
		t, ok := totals[monthSlot{year: rec.Year, month: rec.Month}]
		if !ok {
			continue
		}
		t.positive += rec.PositiveHours
		t.missing += rec.MissingHours
		t.pay += rec.OvertimePay
		t.counterSum += rec.CounterEnd
		t.reporting++

		if domain.IsPeriodEndMonth(rec.Month) {
			switch {
			case rec.CounterEnd > 0:
				t.settlementPaid += rec.CounterEnd
			case rec.CounterEnd < 0:
				t.settlementMissing += -rec.CounterEnd
			}
		}
	}

	points := make([]domain.MonthlyPoint, 0, len(slots))
	for _, slot := range slots {
		t := totals[slot]
		point := domain.MonthlyPoint{
			Year:              slot.year,
			Month:             slot.month,
			PeriodNumber:      domain.PeriodForMonth(slot.month),
			PositiveHours:     utils.RoundWithTwoDecimalPlace(t.positive),
			MissingHours:      utils.RoundWithTwoDecimalPlace(t.missing),
			OvertimePay:       utils.RoundWithTwoDecimalPlace(t.pay),
			DriversReporting:  t.reporting,
			PeriodEnd:         domain.IsPeriodEndMonth(slot.month),
			SettlementPaid:    utils.RoundWithTwoDecimalPlace(t.settlementPaid),
			SettlementMissing: utils.RoundWithTwoDecimalPlace(t.settlementMissing),
			HoursPaid:         utils.RoundWithTwoDecimalPlace(t.pay + t.settlementPaid),
			HoursMissing:      utils.RoundWithTwoDecimalPlace(t.missing + t.settlementMissing),
		}
		if t.reporting > 0 {
			point.AverageCounter = utils.RoundWithTwoDecimalPlace(t.counterSum / float64(t.reporting))
		}
		points = append(points, point)
	}

	return points
}
