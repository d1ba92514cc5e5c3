package domain

import (
	"strings"
	"time"
	"unicode"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell é o valor bruto de uma célula: número, texto ou vazio
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// IsBlank indica se a célula está vazia ou contém apenas espaços
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimFunc(c.Text, unicode.IsSpace) == ""
	}
	return false
}

// Sheet é uma aba da planilha: nome e grade de células
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Workbook é a planilha inteira já carregada em memória
type Workbook struct {
	Sheets []Sheet
}

// Códigos dos problemas de ingestão
const (
	IssueWorkbookUnreadable     = "WORKBOOK_UNREADABLE"
	IssueNoUsableSheet          = "NO_USABLE_SHEET"
	IssueNoIdentifierColumn     = "NO_IDENTIFIER_COLUMN"
	IssueNoDataRows             = "NO_DATA_ROWS"
	IssueIdentifierNameFallback = "IDENTIFIER_NAME_FALLBACK"
	IssueNoMonthColumns         = "NO_MONTH_COLUMNS"
	IssueDuplicatePeriod        = "DUPLICATE_PERIOD"
	IssueVehicleColumnFallback  = "VEHICLE_COLUMN_FALLBACK"
	IssueDuplicateIdentifier    = "DUPLICATE_IDENTIFIER"
	IssuePeriodUndetermined     = "PERIOD_UNDETERMINED"
	IssueInconsistentCounter    = "INCONSISTENT_COUNTER"
	IssueSheetExcluded          = "SHEET_EXCLUDED"
)

// Issue é um erro ou aviso estruturado de ingestão
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DetectedPeriod é o período inferido para uma aba
type DetectedPeriod struct {
	PeriodNumber int `json:"period_number"`
	Year         int `json:"year"`
}

func (p DetectedPeriod) Key() PeriodKey {
	return PeriodKey{PeriodNumber: p.PeriodNumber, Year: p.Year}
}

// SheetResult é o resultado da ingestão de uma aba
type SheetResult struct {
	SheetName      string            `json:"sheet_name"`
	Rows           []ParsedDriverRow `json:"rows"`
	Errors         []Issue           `json:"errors"`
	Warnings       []Issue           `json:"warnings"`
	DetectedPeriod *DetectedPeriod   `json:"detected_period,omitempty"`
	DetectedMonths []int             `json:"detected_months"`
	HeaderRow      int               `json:"header_row"`
	// Período efetivo (detectado ou informado pelo usuário) usado na importação
	Period  *DetectedPeriod `json:"period,omitempty"`
	Enabled bool            `json:"enabled"`
}

// Usable indica se a aba tem linhas e nenhum erro
func (r SheetResult) Usable() bool {
	return len(r.Rows) > 0 && len(r.Errors) == 0
}

// IngestResult é o resultado da ingestão de uma planilha inteira
type IngestResult struct {
	Sheets       []SheetResult `json:"sheets"`
	GlobalErrors []string      `json:"global_errors"`
}

// SheetImportSummary resume o que foi gravado para uma aba
type SheetImportSummary struct {
	SheetName     string `json:"sheet_name"`
	PeriodID      int64  `json:"period_id,omitempty"`
	PeriodLabel   string `json:"period_label,omitempty"`
	Imported      bool   `json:"imported"`
	DriversCount  int    `json:"drivers_count"`
	RecordsCount  int    `json:"records_count"`
	SkippedReason string `json:"skipped_reason,omitempty"`
}

// ImportReport é o retorno de uma importação persistida
type ImportReport struct {
	BatchID        string               `json:"batch_id"`
	FileName       string               `json:"file_name"`
	Sheets         []SheetImportSummary `json:"sheets"`
	ImportedSheets int                  `json:"imported_sheets"`
	SkippedSheets  int                  `json:"skipped_sheets"`
	ImportedRows   int                  `json:"imported_rows"`
	Ingestion      *IngestResult        `json:"ingestion"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ImportLogEntry é o registro histórico de uma importação
type ImportLogEntry struct {
	ID             int64                `json:"id"`
	BatchID        string               `json:"batch_id"`
	FileName       string               `json:"file_name"`
	ImportedSheets int                  `json:"imported_sheets"`
	SkippedSheets  int                  `json:"skipped_sheets"`
	ImportedRows   int                  `json:"imported_rows"`
	Sheets         []SheetImportSummary `json:"sheets"`
	CreatedAt      time.Time            `json:"created_at"`
}
