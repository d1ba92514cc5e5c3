package ingesting

import (
	"fmt"
	"math"
	"strings"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

type sheetState int

const (
	stateHeaderSearch sheetState = iota
	stateColumnMapping
	stateRowParsing
	stateDone
	stateRejected
)

// Tolerância da verificação opcional de coerência dos contadores (horas)
const counterTolerance = 0.01

var totalRowPrefixes = []string{"total", "totaux", "sous total", "sous-total"}

// sheetIngestor percorre os estados de uma aba e acumula o resultado
type sheetIngestor struct {
	sheet  domain.Sheet
	opts   Options
	state  sheetState
	result domain.SheetResult

	mapping    ColumnMapping
	headerText string
	year       int
}

// IngestSheet transforma uma aba em linhas normalizadas de motoristas, com erros e avisos estruturados.
// Nunca falha: problemas fatais para a aba são registrados em Errors.
func IngestSheet(sheet domain.Sheet, opts Options) domain.SheetResult {
	ing := &sheetIngestor{
		sheet: sheet,
		opts:  opts.withDefaults(),
		state: stateHeaderSearch,
		result: domain.SheetResult{
			SheetName:      sheet.Name,
			Rows:           []domain.ParsedDriverRow{},
			Errors:         []domain.Issue{},
			Warnings:       []domain.Issue{},
			DetectedMonths: []int{},
		},
	}

	for ing.state != stateDone && ing.state != stateRejected {
		switch ing.state {
		case stateHeaderSearch:
			ing.searchHeader()
		case stateColumnMapping:
			ing.mapColumns()
		case stateRowParsing:
			ing.parseRows()
		}
	}

	ing.result.Enabled = ing.result.Usable()
	if ing.result.DetectedPeriod != nil {
		period := *ing.result.DetectedPeriod
		ing.result.Period = &period
	}

	return ing.result
}

func (s *sheetIngestor) searchHeader() {
	s.result.HeaderRow = DetectHeaderRow(s.sheet.Rows, s.opts.HeaderScanRows)
	s.state = stateColumnMapping
}

func (s *sheetIngestor) mapColumns() {
	var headers []string
	if s.result.HeaderRow < len(s.sheet.Rows) {
		headers = headerTexts(s.sheet.Rows[s.result.HeaderRow])
	}

	mapping, err := MapColumns(headers, s.opts.FuzzyMonths)
	if err != nil {
		s.addError(domain.IssueNoIdentifierColumn, "nenhuma coluna de identificador (code salarié ou nom/prénom) encontrada")
		s.state = stateRejected
		return
	}
	s.mapping = mapping
	s.headerText = NormalizeText(headers[mapping.IdentifierCol])

	if mapping.IdentifierIsNameFallback {
		s.addWarning(domain.IssueIdentifierNameFallback,
			fmt.Sprintf("identificador lido da coluna de nome %q", headers[mapping.IdentifierCol]))
	}

	switch {
	case mapping.VehicleFromFallback:
		s.addWarning(domain.IssueVehicleColumnFallback,
			fmt.Sprintf("tipo de veículo lido da coluna %d por posição", mapping.VehicleCol+1))
	case mapping.VehicleCol == -1:
		s.addWarning(domain.IssueVehicleColumnFallback,
			fmt.Sprintf("coluna de tipo de veículo não encontrada, usando %s", domain.VehicleTypeBus))
	}

	s.result.DetectedMonths = mapping.MonthNumbers()
	if len(s.result.DetectedMonths) == 0 {
		s.addWarning(domain.IssueNoMonthColumns, "nenhuma coluna de mês encontrada")
	}

	s.result.DetectedPeriod = DetectPeriod(s.sheet.Name, s.result.DetectedMonths, s.opts.DefaultYear)
	s.year = s.opts.DefaultYear
	if s.result.DetectedPeriod != nil {
		s.year = s.result.DetectedPeriod.Year
	} else {
		s.addWarning(domain.IssuePeriodUndetermined, "período não identificado pelo nome da aba nem pelos meses")
	}

	s.state = stateRowParsing
}

func (s *sheetIngestor) parseRows() {
	positions := make(map[string]int)

	for i := s.result.HeaderRow + 1; i < len(s.sheet.Rows); i++ {
		row := s.sheet.Rows[i]

		identifier := cellText(cellAt(row, s.mapping.IdentifierCol))
		if identifier == "" || s.skipRow(identifier) {
			continue
		}

		parsed := s.parseRow(identifier, row)

		if pos, exists := positions[identifier]; exists {
			s.addWarning(domain.IssueDuplicateIdentifier,
				fmt.Sprintf("identificador %q repetido na linha %d, mantida a última ocorrência", identifier, i+1))
			s.result.Rows[pos] = parsed
			continue
		}
		positions[identifier] = len(s.result.Rows)
		s.result.Rows = append(s.result.Rows, parsed)
	}

	if len(s.result.Rows) == 0 {
		s.addError(domain.IssueNoDataRows, "nenhuma linha de motorista encontrada abaixo do cabeçalho")
		s.state = stateRejected
		return
	}

	if s.opts.FlagInconsistentCounters {
		s.checkCounters()
	}

	s.state = stateDone
}

// skipRow descarta cabeçalhos repetidos e linhas de total
func (s *sheetIngestor) skipRow(identifier string) bool {
	normalized := NormalizeText(identifier)
	if normalized == s.headerText {
		return true
	}
	for _, prefix := range totalRowPrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}
	return false
}

func (s *sheetIngestor) parseRow(identifier string, row []domain.Cell) domain.ParsedDriverRow {
	parsed := domain.ParsedDriverRow{
		Identifier:               identifier,
		IdentifierIsNameFallback: s.mapping.IdentifierIsNameFallback,
		VehicleType:              domain.VehicleTypeBus,
		BufferHours:              s.opts.DefaultBufferHours,
		Months:                   make([]domain.ParsedMonthRecord, 0, len(s.result.DetectedMonths)),
	}

	if s.mapping.VehicleCol >= 0 {
		parsed.VehicleType = vehicleFromCell(cellAt(row, s.mapping.VehicleCol))
	}

	if s.mapping.BufferCol >= 0 {
		if buffer := ParseHours(cellAt(row, s.mapping.BufferCol)); buffer > 0 {
			parsed.BufferHours = buffer
		}
	}

	for _, month := range s.result.DetectedMonths {
		columns := s.mapping.Months[month]
		parsed.Months = append(parsed.Months, domain.ParsedMonthRecord{
			Month:         month,
			Year:          s.year,
			PositiveHours: math.Abs(hoursAt(row, columns.Positive)),
			MissingHours:  math.Abs(hoursAt(row, columns.Missing)),
			OvertimePay:   math.Abs(hoursAt(row, columns.OvertimePay)),
			CounterEnd:    hoursAt(row, columns.CounterEnd),
		})
	}

	return parsed
}

// checkCounters sinaliza, sem corrigir, motoristas cujo contador não segue
// contador anterior + positivas - faltantes - pagas
func (s *sheetIngestor) checkCounters() {
	inconsistent := 0
	for _, row := range s.result.Rows {
		if !countersConsistent(row.Months) {
			inconsistent++
		}
	}
	if inconsistent > 0 {
		s.addWarning(domain.IssueInconsistentCounter,
			fmt.Sprintf("%d motorista(s) com contador incoerente com as horas do mês", inconsistent))
	}
}

func countersConsistent(months []domain.ParsedMonthRecord) bool {
	for i := 1; i < len(months); i++ {
		prev, cur := months[i-1], months[i]
		if cur.Month != prev.Month+1 {
			continue
		}
		expected := prev.CounterEnd + cur.PositiveHours - cur.MissingHours - cur.OvertimePay
		if math.Abs(expected-cur.CounterEnd) > counterTolerance {
			return false
		}
	}
	return true
}

func (s *sheetIngestor) addError(code, message string) {
	s.result.Errors = append(s.result.Errors, domain.Issue{Code: code, Message: message})
}

func (s *sheetIngestor) addWarning(code, message string) {
	s.result.Warnings = append(s.result.Warnings, domain.Issue{Code: code, Message: message})
}

func hoursAt(row []domain.Cell, col int) float64 {
	if col < 0 {
		return 0
	}
	return ParseHours(cellAt(row, col))
}

// Termos de van comparados como palavra inteira: a coluna posicional pode cair em nomes como "Camille"
var vanWords = wordPattern(
	"van", "vans",
	"cam", "camion", "camions", "camionnette", "camionnettes",
	"vl", "utilitaire", "utilitaires",
)

// vehicleFromCell classifica o texto livre da coluna de veículo; qualquer valor não reconhecido é BUS
func vehicleFromCell(cell domain.Cell) domain.VehicleType {
	if vanWords.MatchString(NormalizeText(cellText(cell))) {
		return domain.VehicleTypeVan
	}
	return domain.VehicleTypeBus
}
