package analyzing

import (
	"sort"

	"github.com/samber/lo"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/pkg/utils"
)

// ComparePeriods soma, por período, horas pagas e contadores finais positivos e negativos.
// No modo avg cada total é dividido pelo número de motoristas do período; as contagens não mudam.
func ComparePeriods(summaries []domain.DriverPeriodSummary, mode domain.AggregationMode) []domain.PeriodComparison {
	groups := lo.GroupBy(summaries, func(s domain.DriverPeriodSummary) int64 { return s.PeriodID })

	out := make([]domain.PeriodComparison, 0, len(groups))
	for periodID, group := range groups {
		row := domain.PeriodComparison{
			PeriodID:     periodID,
			Year:         group[0].Year,
			PeriodNumber: group[0].PeriodNumber,
			Label:        domain.PeriodLabel(group[0].Year, group[0].PeriodNumber),
			DriverCount:  len(group),
		}

		for _, s := range group {
			row.OvertimePay += s.TotalOvertimePay
			switch {
			case s.LatestCounter > 0:
				row.PositiveCounterHours += s.LatestCounter
				row.PositiveCounterDrivers++
			case s.LatestCounter < 0:
				row.MissingCounterHours += -s.LatestCounter
				row.MissingCounterDrivers++
			}
		}

		if mode == domain.AggregationAvg {
			n := float64(row.DriverCount)
			row.OvertimePay /= n
			row.PositiveCounterHours /= n
			row.MissingCounterHours /= n
		}

		row.OvertimePay = utils.RoundWithTwoDecimalPlace(row.OvertimePay)
		row.PositiveCounterHours = utils.RoundWithTwoDecimalPlace(row.PositiveCounterHours)
		row.MissingCounterHours = utils.RoundWithTwoDecimalPlace(row.MissingCounterHours)

		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].PeriodNumber != out[j].PeriodNumber {
			return out[i].PeriodNumber < out[j].PeriodNumber
		}
		return out[i].PeriodID < out[j].PeriodID
	})

	return out
}
