package ingesting

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/overtime-counters-api/infrastructure/repository"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
	"github.com/vfg2006/overtime-counters-api/pkg/utils"
)

const (
	defaultImportListLimit = 20
	maxImportListLimit     = 100
)

// WorkbookReader converte o conteúdo bruto de um arquivo em abas de células tipadas
type WorkbookReader interface {
	Read(ctx context.Context, content []byte) (*domain.Workbook, error)
}

// Transactor executa fn em uma transação propagada pelo contexto aos repositórios
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Ingestor interface {
	// Ingest analisa a planilha sem gravar nada
	Ingest(ctx context.Context, content []byte, overrides Overrides) *domain.IngestResult
	// Import analisa a planilha e grava as abas habilitadas, substituindo os dados de cada período
	Import(ctx context.Context, fileName string, content []byte, overrides Overrides) (*domain.ImportReport, error)
	ListImports(ctx context.Context, limit int) ([]*domain.ImportLogEntry, error)
}

type Service struct {
	reader              WorkbookReader
	transactor          Transactor
	periodRepository    repository.PeriodRepository
	driverRepository    repository.DriverRepository
	recordRepository    repository.MonthlyRecordRepository
	importLogRepository repository.ImportLogRepository
	opts                Options
}

func NewService(
	reader WorkbookReader,
	transactor Transactor,
	periodRepository repository.PeriodRepository,
	driverRepository repository.DriverRepository,
	recordRepository repository.MonthlyRecordRepository,
	importLogRepository repository.ImportLogRepository,
	opts Options,
) Ingestor {
	return &Service{
		reader:              reader,
		transactor:          transactor,
		periodRepository:    periodRepository,
		driverRepository:    driverRepository,
		recordRepository:    recordRepository,
		importLogRepository: importLogRepository,
		opts:                opts.withDefaults(),
	}
}

func (s *Service) Ingest(ctx context.Context, content []byte, overrides Overrides) *domain.IngestResult {
	result := &domain.IngestResult{
		Sheets:       []domain.SheetResult{},
		GlobalErrors: []string{},
	}

	wb, err := s.reader.Read(ctx, content)
	if err != nil {
		logrus.WithError(err).Warn("Planilha ilegível")
		result.GlobalErrors = append(result.GlobalErrors, fmt.Sprintf("%s: %v", domain.IssueWorkbookUnreadable, err))
		return result
	}

	sheets := IngestWorkbook(wb, s.opts)
	sheets = applyOverrides(sheets, overrides)
	result.Sheets = ResolveDuplicatePeriods(sheets)

	if !anyUsable(result.Sheets) {
		result.GlobalErrors = append(result.GlobalErrors,
			fmt.Sprintf("%s: nenhuma das %d abas tem linhas válidas", domain.IssueNoUsableSheet, len(result.Sheets)))
	}

	logrus.WithFields(logrus.Fields{
		"sheets":        len(result.Sheets),
		"global_errors": len(result.GlobalErrors),
	}).Debug("Planilha analisada")

	return result
}

// IngestWorkbook processa as abas em paralelo; não há estado compartilhado entre elas
func IngestWorkbook(wb *domain.Workbook, opts Options) []domain.SheetResult {
	results := make([]domain.SheetResult, len(wb.Sheets))

	var wg sync.WaitGroup
	for i, sheet := range wb.Sheets {
		wg.Add(1)
		go func(i int, sheet domain.Sheet) {
			defer wg.Done()
			results[i] = IngestSheet(sheet, opts)
		}(i, sheet)
	}
	wg.Wait()

	return results
}

// applyOverrides aplica as exclusões e os períodos informados antes da resolução de duplicados
func applyOverrides(sheets []domain.SheetResult, overrides Overrides) []domain.SheetResult {
	out := make([]domain.SheetResult, len(sheets))
	for i, sheet := range sheets {
		if period, ok := overrides.Periods[sheet.SheetName]; ok &&
			domain.ValidPeriodNumber(period.PeriodNumber) && period.Year > 0 {
			sheet.Period = &domain.DetectedPeriod{PeriodNumber: period.PeriodNumber, Year: period.Year}
		}

		if overrides.excluded(sheet.SheetName) && sheet.Enabled {
			sheet.Enabled = false
			sheet.Warnings = append(append([]domain.Issue{}, sheet.Warnings...), domain.Issue{
				Code:    domain.IssueSheetExcluded,
				Message: "aba excluída da importação pelo usuário",
			})
		}
		out[i] = sheet
	}
	return out
}

func anyUsable(sheets []domain.SheetResult) bool {
	for _, sheet := range sheets {
		if sheet.Usable() {
			return true
		}
	}
	return false
}

func (s *Service) Import(ctx context.Context, fileName string, content []byte, overrides Overrides) (*domain.ImportReport, error) {
	if err := overrides.Validate(); err != nil {
		return nil, NewImportError(ErrInvalidOverride, apiErrors.ErrInvalidFormat, err.Error())
	}

	ingestion := s.Ingest(ctx, content, overrides)
	if len(ingestion.GlobalErrors) > 0 {
		if strings.HasPrefix(ingestion.GlobalErrors[0], domain.IssueWorkbookUnreadable) {
			return nil, NewImportError(ErrWorkbookUnreadable, apiErrors.ErrWorkbookUnreadable, ingestion.GlobalErrors[0])
		}
		return nil, NewImportError(ErrNoUsableSheet, apiErrors.ErrNoUsableSheet, ingestion.GlobalErrors[0])
	}

	batchID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar identificador da importação")
		return nil, NewImportError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador da importação")
	}

	report := &domain.ImportReport{
		BatchID:   batchID,
		FileName:  fileName,
		Sheets:    make([]domain.SheetImportSummary, 0, len(ingestion.Sheets)),
		Ingestion: ingestion,
		CreatedAt: time.Now().UTC(),
	}

	// Todas as abas são gravadas na mesma transação: uma falha desfaz a importação inteira
	var failedSheet string
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		report.Sheets = report.Sheets[:0]
		report.ImportedSheets, report.SkippedSheets, report.ImportedRows = 0, 0, 0

		for _, sheet := range ingestion.Sheets {
			summary := domain.SheetImportSummary{SheetName: sheet.SheetName}

			if reason := skipReason(sheet); reason != "" {
				summary.SkippedReason = reason
				report.SkippedSheets++
				report.Sheets = append(report.Sheets, summary)
				continue
			}

			if err := s.importSheet(ctx, sheet, &summary); err != nil {
				failedSheet = sheet.SheetName
				return err
			}

			report.ImportedSheets++
			report.ImportedRows += summary.DriversCount
			report.Sheets = append(report.Sheets, summary)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"batch_id": batchID,
			"sheet":    failedSheet,
		}).WithError(err).Error("Erro ao gravar aba; importação desfeita")
		details := "Falha ao confirmar a importação; nenhuma aba da planilha foi gravada"
		if failedSheet != "" {
			details = fmt.Sprintf("Falha ao gravar a aba %q; nenhuma aba da planilha foi gravada", failedSheet)
		}
		return nil, NewImportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, details)
	}

	entry := &domain.ImportLogEntry{
		BatchID:        report.BatchID,
		FileName:       report.FileName,
		ImportedSheets: report.ImportedSheets,
		SkippedSheets:  report.SkippedSheets,
		ImportedRows:   report.ImportedRows,
		Sheets:         report.Sheets,
		CreatedAt:      report.CreatedAt,
	}
	if err := s.importLogRepository.Create(ctx, entry); err != nil {
		// Os dados já foram gravados; a falha no histórico não desfaz a importação
		logrus.WithField("batch_id", batchID).WithError(err).Error("Erro ao registrar importação")
	}

	logrus.WithFields(logrus.Fields{
		"batch_id":        batchID,
		"file_name":       fileName,
		"imported_sheets": report.ImportedSheets,
		"skipped_sheets":  report.SkippedSheets,
		"imported_rows":   report.ImportedRows,
	}).Info("Importação concluída")

	return report, nil
}

// skipReason explica por que a aba não será gravada; vazio quando ela deve ser importada
func skipReason(sheet domain.SheetResult) string {
	switch {
	case len(sheet.Errors) > 0:
		return sheet.Errors[0].Message
	case len(sheet.Rows) == 0:
		return "aba sem linhas de motoristas"
	case !sheet.Enabled:
		for i := len(sheet.Warnings) - 1; i >= 0; i-- {
			code := sheet.Warnings[i].Code
			if code == domain.IssueDuplicatePeriod || code == domain.IssueSheetExcluded {
				return sheet.Warnings[i].Message
			}
		}
		return "aba desabilitada"
	case sheet.Period == nil:
		return "período não determinado; informe período e ano para importar esta aba"
	}
	return ""
}

func (s *Service) importSheet(ctx context.Context, sheet domain.SheetResult, summary *domain.SheetImportSummary) error {
	period, err := s.periodRepository.Upsert(ctx, sheet.Period.Year, sheet.Period.PeriodNumber)
	if err != nil {
		return err
	}

	upserts := make([]domain.DriverUpsert, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		upserts = append(upserts, domain.DriverUpsert{
			Identifier:               row.Identifier,
			IdentifierIsNameFallback: row.IdentifierIsNameFallback,
			VehicleType:              row.VehicleType,
		})
	}

	driverIDs, err := s.driverRepository.UpsertDrivers(ctx, upserts)
	if err != nil {
		return err
	}

	records := BuildMonthlyRecords(sheet.Rows, period, driverIDs)
	if err := s.recordRepository.ReplaceMonthlyRecords(ctx, period.ID, records); err != nil {
		return err
	}

	summary.PeriodID = period.ID
	summary.PeriodLabel = period.Label
	summary.Imported = true
	summary.DriversCount = len(sheet.Rows)
	summary.RecordsCount = len(records)

	return nil
}

// BuildMonthlyRecords converte as linhas da aba em registros do período. O ano de cada mês é o
// ano do período efetivo, que pode ter sido informado pelo usuário.
func BuildMonthlyRecords(rows []domain.ParsedDriverRow, period *domain.ReferencePeriod, driverIDs map[string]int64) []domain.MonthlyRecord {
	records := make([]domain.MonthlyRecord, 0, len(rows)*domain.PeriodLength)
	for _, row := range rows {
		driverID, ok := driverIDs[row.Identifier]
		if !ok {
			logrus.WithField("identifier", row.Identifier).Warn("Motorista sem id após gravação")
			continue
		}

		for _, month := range row.Months {
			records = append(records, domain.MonthlyRecord{
				DriverID:      driverID,
				PeriodID:      period.ID,
				Month:         month.Month,
				Year:          period.Year,
				PositiveHours: month.PositiveHours,
				MissingHours:  month.MissingHours,
				OvertimePay:   month.OvertimePay,
				CounterEnd:    month.CounterEnd,
				BufferHours:   row.BufferHours,
			})
		}
	}
	return records
}

func (s *Service) ListImports(ctx context.Context, limit int) ([]*domain.ImportLogEntry, error) {
	if limit <= 0 {
		limit = defaultImportListLimit
	}
	limit = min(limit, maxImportListLimit)

	entries, err := s.importLogRepository.ListRecent(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar importações")
		return nil, NewImportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar importações")
	}

	return entries, nil
}
