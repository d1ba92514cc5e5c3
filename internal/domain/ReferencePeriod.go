package domain

import "fmt"

// Número de meses em cada período de referência (P1: jan-abr, P2: mai-ago, P3: set-dez)
const PeriodLength = 4

// ReferencePeriod representa um dos três blocos fixos de quatro meses de um ano
type ReferencePeriod struct {
	ID           int64  `json:"id"`
	Year         int    `json:"year"`
	PeriodNumber int    `json:"period_number"`
	Label        string `json:"label"`
	StartMonth   int    `json:"start_month"`
	EndMonth     int    `json:"end_month"`
}

// NewReferencePeriod monta o período com seus meses de início e fim calculados
func NewReferencePeriod(year, periodNumber int) ReferencePeriod {
	start, end := PeriodMonths(periodNumber)
	return ReferencePeriod{
		Year:         year,
		PeriodNumber: periodNumber,
		Label:        PeriodLabel(year, periodNumber),
		StartMonth:   start,
		EndMonth:     end,
	}
}

// ValidPeriodNumber indica se o número está entre 1 e 3
func ValidPeriodNumber(periodNumber int) bool {
	return periodNumber >= 1 && periodNumber <= 3
}

// PeriodMonths retorna o primeiro e o último mês do período
func PeriodMonths(periodNumber int) (int, int) {
	start := (periodNumber-1)*PeriodLength + 1
	return start, start + PeriodLength - 1
}

// PeriodForMonth retorna o período que contém o mês (1-4 -> 1, 5-8 -> 2, 9-12 -> 3)
func PeriodForMonth(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return (month-1)/PeriodLength + 1
}

// IsPeriodEndMonth indica se o mês é o último mês de algum período
func IsPeriodEndMonth(month int) bool {
	return month >= 1 && month <= 12 && month%PeriodLength == 0
}

func PeriodLabel(year, periodNumber int) string {
	return fmt.Sprintf("P%d %d", periodNumber, year)
}

// PeriodKey identifica um período pelo par (número, ano)
type PeriodKey struct {
	PeriodNumber int `json:"period_number"`
	Year         int `json:"year"`
}

func (k PeriodKey) String() string {
	return PeriodLabel(k.Year, k.PeriodNumber)
}
