package ingesting

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

var (
	// "17:30", "-2:15", "17:30:00", "17h30", "17h"
	clockPattern      = regexp.MustCompile(`^(-?)(\d+)\s*[:hH]\s*(\d+)?(?::(\d+))?$`)
	nonNumericPattern = regexp.MustCompile(`[^0-9.\-]`)
)

// ParseHours converte o valor bruto de uma célula em horas (com sinal). Nunca falha:
// qualquer valor ilegível vira 0.
func ParseHours(cell domain.Cell) float64 {
	switch cell.Kind {
	case domain.CellNumber:
		return parseNumericHours(cell.Number)
	case domain.CellText:
		return ParseHoursText(cell.Text)
	}
	return 0
}

// parseNumericHours trata valores menores que 1 como fração de dia do Excel
func parseNumericHours(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if math.Abs(v) < 1 {
		return v * 24
	}
	return v
}

// ParseHoursText interpreta textos no formato HH:MM ou números com vírgula decimal
func ParseHoursText(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		seconds, _ := strconv.Atoi(m[4])
		value := float64(hours) + float64(minutes)/60 + float64(seconds)/3600
		if m[1] == "-" {
			return -value
		}
		return value
	}

	// Com ponto e vírgula juntos ("1.234,5") o ponto é separador de milhar
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = nonNumericPattern.ReplaceAllString(s, "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
