package analyzing

import (
	"sort"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// percentileSize é max(1, ceil(n/10)); zero para população vazia
func percentileSize(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + 9) / 10
}

// ClassifyCritical seleciona os 10% com maior déficit e os 10% com maior excesso. Empates na
// fronteira são resolvidos pela ordem de entrada (ordenação estável).
func ClassifyCritical(drivers []driverTotals) (domain.CriticalDrivers, []domain.DriverClassification) {
	k := percentileSize(len(drivers))

	deficit := topK(drivers, k, func(a, b driverTotals) bool { return a.missingTotal < b.missingTotal })
	excess := topK(drivers, k, func(a, b driverTotals) bool { return a.excessTotal > b.excessTotal })

	inDeficit := make(map[int64]bool, len(deficit))
	inExcess := make(map[int64]bool, len(excess))

	critical := domain.CriticalDrivers{
		DeficitIDs:  make([]int64, 0, len(deficit)),
		ExcessIDs:   make([]int64, 0, len(excess)),
		CriticalIDs: make([]int64, 0, len(deficit)+len(excess)),
	}
	for _, d := range deficit {
		inDeficit[d.driverID] = true
		critical.DeficitIDs = append(critical.DeficitIDs, d.driverID)
		critical.CriticalIDs = append(critical.CriticalIDs, d.driverID)
	}
	for _, d := range excess {
		inExcess[d.driverID] = true
		critical.ExcessIDs = append(critical.ExcessIDs, d.driverID)
		if !inDeficit[d.driverID] {
			critical.CriticalIDs = append(critical.CriticalIDs, d.driverID)
		}
	}
	critical.NormalCount = len(drivers) - len(critical.CriticalIDs)

	classifications := make([]domain.DriverClassification, 0, len(drivers))
	for _, d := range drivers {
		classifications = append(classifications, domain.DriverClassification{
			DriverID:     d.driverID,
			Identifier:   d.identifier,
			VehicleType:  d.vehicleType,
			Counter:      d.counter,
			MissingTotal: d.missingTotal,
			ExcessTotal:  d.excessTotal,
			Deficit:      inDeficit[d.driverID],
			Excess:       inExcess[d.driverID],
			Critical:     inDeficit[d.driverID] || inExcess[d.driverID],
		})
	}

	return critical, classifications
}

// topK ordena uma cópia de forma estável e devolve os k primeiros
func topK(drivers []driverTotals, k int, less func(a, b driverTotals) bool) []driverTotals {
	sorted := make([]driverTotals, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted[:min(k, len(sorted))]
}
