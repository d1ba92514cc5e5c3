package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

func TestDistribution(t *testing.T) {
	tests := []struct {
		name     string
		counters []float64
		expected []domain.DistributionBucket
	}{
		{
			name:     "sem motoristas",
			counters: nil,
			expected: []domain.DistributionBucket{},
		},
		{
			name:     "limites superiores pertencem à faixa",
			counters: []float64{-10, 0, 5, 10, 15},
			expected: []domain.DistributionBucket{
				{Label: "≤ -10h", Count: 1},
				{Label: "-10h a 0h", Count: 1},
				{Label: "0h a 5h", Count: 1},
				{Label: "5h a 10h", Count: 1},
				{Label: "10h a 15h", Count: 1},
			},
		},
		{
			name:     "faixas vazias são omitidas",
			counters: []float64{-25, -9.99, 0.01, 15.01, 300},
			expected: []domain.DistributionBucket{
				{Label: "≤ -10h", Count: 1},
				{Label: "-10h a 0h", Count: 1},
				{Label: "0h a 5h", Count: 1},
				{Label: "> 15h", Count: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distribution(tt.counters))
		})
	}
}

func TestDistribution_SomaIgualAoTotal(t *testing.T) {
	counters := make([]float64, 0, 200)
	for i := -100; i < 100; i++ {
		counters = append(counters, float64(i)*0.37)
	}

	total := 0
	for _, b := range Distribution(counters) {
		assert.Positive(t, b.Count)
		total += b.Count
	}
	assert.Equal(t, len(counters), total)
}
