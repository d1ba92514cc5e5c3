package ingesting

import (
	"fmt"
	"time"

	"github.com/vfg2006/overtime-counters-api/internal/config"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// DefaultBufferHours é o limite contratual usado quando a aba não traz a coluna de buffer
const DefaultBufferHours = 17.0

// Options são os parâmetros da ingestão, injetados a partir da configuração
type Options struct {
	DefaultBufferHours       float64
	DefaultYear              int
	HeaderScanRows           int
	FuzzyMonths              bool
	FlagInconsistentCounters bool
}

// DefaultOptions retorna as opções padrão com o ano corrente
func DefaultOptions() Options {
	return Options{
		DefaultBufferHours: DefaultBufferHours,
		DefaultYear:        time.Now().Year(),
		HeaderScanRows:     DefaultHeaderScanRows,
		FuzzyMonths:        true,
	}
}

// OptionsFromConfig monta as opções a partir da seção de ingestão da configuração
func OptionsFromConfig(cfg config.Ingestion) Options {
	opts := Options{
		DefaultBufferHours:       cfg.DefaultBufferHours,
		DefaultYear:              cfg.DefaultYear,
		HeaderScanRows:           cfg.HeaderScanRows,
		FuzzyMonths:              cfg.FuzzyMonths,
		FlagInconsistentCounters: cfg.FlagInconsistentCounters,
	}
	return opts.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.DefaultBufferHours <= 0 {
		o.DefaultBufferHours = DefaultBufferHours
	}
	if o.DefaultYear <= 0 {
		o.DefaultYear = time.Now().Year()
	}
	if o.HeaderScanRows <= 0 {
		o.HeaderScanRows = DefaultHeaderScanRows
	}
	return o
}

// Overrides são as decisões do usuário sobre a planilha antes da importação
type Overrides struct {
	// Período informado por nome de aba; substitui o período detectado
	Periods map[string]domain.DetectedPeriod `json:"periods"`
	// Abas que não devem ser importadas
	ExcludedSheets []string `json:"exclude"`
}

func (o Overrides) excluded(sheetName string) bool {
	for _, name := range o.ExcludedSheets {
		if name == sheetName {
			return true
		}
	}
	return false
}

// Validate verifica os períodos informados pelo usuário
func (o Overrides) Validate() error {
	for sheet, period := range o.Periods {
		if !domain.ValidPeriodNumber(period.PeriodNumber) {
			return fmt.Errorf("aba %q: número de período %d fora de 1..3", sheet, period.PeriodNumber)
		}
		if period.Year < 2000 || period.Year > 2100 {
			return fmt.Errorf("aba %q: ano %d inválido", sheet, period.Year)
		}
	}
	return nil
}
