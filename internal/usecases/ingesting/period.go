package ingesting

import (
	"regexp"
	"strconv"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

var (
	// "P1", "p 2", "P-3", "Période 2", "periode_1"
	sheetPeriodPattern = regexp.MustCompile(`(?:^|[^a-z])(?:periode|p)\s*[-_.]?\s*([1-3])(?:[^0-9]|$)`)
	digitRuns          = regexp.MustCompile(`\d+`)
)

// periodFromSheetName procura o número do período e o ano no nome da aba.
// O ano só é procurado quando há marcador de período; retorna year 0 quando ausente.
func periodFromSheetName(name string) (periodNumber, year int, ok bool) {
	m := sheetPeriodPattern.FindStringSubmatch(NormalizeText(name))
	if m == nil {
		return 0, 0, false
	}
	periodNumber, _ = strconv.Atoi(m[1])
	return periodNumber, yearFromText(name), true
}

// yearFromText procura primeiro um ano 20xx com quatro dígitos e depois um token de dois dígitos entre 20 e 99
func yearFromText(raw string) int {
	runs := digitRuns.FindAllString(raw, -1)

	for _, run := range runs {
		if len(run) == 4 && run[:2] == "20" {
			year, _ := strconv.Atoi(run)
			return year
		}
	}

	for _, run := range runs {
		if len(run) != 2 {
			continue
		}
		n, _ := strconv.Atoi(run)
		if n >= 20 && n <= 99 {
			return 2000 + n
		}
	}

	return 0
}

// DetectPeriod concilia os dois sinais: o número do período vem preferencialmente dos meses
// presentes e o ano vem preferencialmente do nome da aba. Retorna nil quando nenhum sinal existe.
func DetectPeriod(sheetName string, months []int, defaultYear int) *domain.DetectedPeriod {
	namePeriod, nameYear, fromName := periodFromSheetName(sheetName)

	monthPeriod := 0
	if len(months) > 0 {
		minMonth := months[0]
		for _, m := range months[1:] {
			if m < minMonth {
				minMonth = m
			}
		}
		monthPeriod = domain.PeriodForMonth(minMonth)
	}

	if !fromName && monthPeriod == 0 {
		return nil
	}

	period := &domain.DetectedPeriod{PeriodNumber: namePeriod, Year: defaultYear}
	if monthPeriod != 0 {
		period.PeriodNumber = monthPeriod
	}
	if nameYear != 0 {
		period.Year = nameYear
	}

	return period
}
