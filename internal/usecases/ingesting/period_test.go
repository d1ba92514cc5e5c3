package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

func TestDetectPeriod(t *testing.T) {
	tests := []struct {
		name        string
		sheetName   string
		months      []int
		defaultYear int
		expected    *domain.DetectedPeriod
	}{
		{
			name:        "nome e meses concordam",
			sheetName:   "P2 2024",
			months:      []int{5, 6, 7, 8},
			defaultYear: 2025,
			expected:    &domain.DetectedPeriod{PeriodNumber: 2, Year: 2024},
		},
		{
			name:        "meses vencem o número do nome",
			sheetName:   "P1 2024",
			months:      []int{6, 5},
			defaultYear: 2025,
			expected:    &domain.DetectedPeriod{PeriodNumber: 2, Year: 2024},
		},
		{
			name:        "somente meses usa o ano padrão",
			sheetName:   "Feuil1",
			months:      []int{9, 10},
			defaultYear: 2025,
			expected:    &domain.DetectedPeriod{PeriodNumber: 3, Year: 2025},
		},
		{
			name:        "période por extenso e ano com dois dígitos",
			sheetName:   "Période 3 - 23",
			defaultYear: 2025,
			expected:    &domain.DetectedPeriod{PeriodNumber: 3, Year: 2023},
		},
		{
			name:        "nome com hífen",
			sheetName:   "p-1_2026",
			defaultYear: 2025,
			expected:    &domain.DetectedPeriod{PeriodNumber: 1, Year: 2026},
		},
		{
			name:        "sem nenhum sinal",
			sheetName:   "Feuil1",
			defaultYear: 2025,
			expected:    nil,
		},
		{
			name:        "número de período fora de 1..3",
			sheetName:   "P4 2024",
			defaultYear: 2025,
			expected:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPeriod(tt.sheetName, tt.months, tt.defaultYear))
		})
	}
}
