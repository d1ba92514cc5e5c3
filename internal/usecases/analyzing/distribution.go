package analyzing

import (
	"math"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// bucket é uma faixa semiaberta (lower, upper] do contador
type bucket struct {
	label string
	upper float64
}

// Faixas fixas em ordem; a última é aberta à direita
var counterBuckets = []bucket{
	{label: "≤ -10h", upper: -10},
	{label: "-10h a 0h", upper: 0},
	{label: "0h a 5h", upper: 5},
	{label: "5h a 10h", upper: 10},
	{label: "10h a 15h", upper: 15},
	{label: "> 15h", upper: math.Inf(1)},
}

// bucketIndex retorna a faixa do valor; valores fora de todas as faixas finitas caem na última
func bucketIndex(value float64) int {
	for i, b := range counterBuckets[:len(counterBuckets)-1] {
		if value <= b.upper {
			return i
		}
	}
	return len(counterBuckets) - 1
}

// Distribution conta os contadores por faixa, omitindo faixas vazias e mantendo a ordem
func Distribution(counters []float64) []domain.DistributionBucket {
	counts := make([]int, len(counterBuckets))
	for _, c := range counters {
		counts[bucketIndex(c)]++
	}

	out := make([]domain.DistributionBucket, 0, len(counterBuckets))
	for i, b := range counterBuckets {
		if counts[i] == 0 {
			continue
		}
		out = append(out, domain.DistributionBucket{Label: b.label, Count: counts[i]})
	}
	return out
}
