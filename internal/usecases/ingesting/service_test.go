package ingesting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/overtime-counters-api/infrastructure/repository/mocks"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting"
	ingestingmocks "github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting/mocks"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func text(values ...string) []domain.Cell {
	cells := make([]domain.Cell, len(values))
	for i, v := range values {
		cells[i] = domain.TextCell(v)
	}
	return cells
}

func periodSheet(name string, identifiers ...string) domain.Sheet {
	rows := [][]domain.Cell{
		text("Code salarié", "Bus/Cam", "10%", "Mai Pos", "Mai Manq", "Mai Montant", "Mai Compteur", "Juin Pos", "Juin Compteur"),
	}
	for _, id := range identifiers {
		rows = append(rows, text(id, "BUS", "17", "5:30", "0", "0", "12.5", "1", "13.5"))
	}
	return domain.Sheet{Name: name, Rows: rows}
}

// fakeTransactor executa fn diretamente e registra o resultado da transação
type fakeTransactor struct {
	calls      int
	rolledBack bool
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	err := fn(ctx)
	f.rolledBack = err != nil
	return err
}

type serviceMocks struct {
	tx        *fakeTransactor
	reader    *ingestingmocks.MockWorkbookReader
	periods   *mocks.MockPeriodRepository
	drivers   *mocks.MockDriverRepository
	records   *mocks.MockMonthlyRecordRepository
	importLog *mocks.MockImportLogRepository
}

func newTestService(t *testing.T) (ingesting.Ingestor, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		tx:        &fakeTransactor{},
		reader:    ingestingmocks.NewMockWorkbookReader(ctrl),
		periods:   mocks.NewMockPeriodRepository(ctrl),
		drivers:   mocks.NewMockDriverRepository(ctrl),
		records:   mocks.NewMockMonthlyRecordRepository(ctrl),
		importLog: mocks.NewMockImportLogRepository(ctrl),
	}

	opts := ingesting.DefaultOptions()
	opts.DefaultYear = 2025

	service := ingesting.NewService(m.reader, m.tx, m.periods, m.drivers, m.records, m.importLog, opts)
	return service, m
}

func TestService_Ingest(t *testing.T) {
	t.Run("planilha ilegível gera erro global", func(t *testing.T) {
		service, m := newTestService(t)
		m.reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(nil, errors.New("zip: not a valid zip file"))

		result := service.Ingest(context.Background(), []byte("lixo"), ingesting.Overrides{})

		require.Len(t, result.GlobalErrors, 1)
		assert.Contains(t, result.GlobalErrors[0], domain.IssueWorkbookUnreadable)
		assert.Empty(t, result.Sheets)
	})

	t.Run("abas sem dados geram NO_USABLE_SHEET", func(t *testing.T) {
		service, m := newTestService(t)
		m.reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(&domain.Workbook{
			Sheets: []domain.Sheet{{Name: "Feuil1"}, {Name: "Feuil2"}},
		}, nil)

		result := service.Ingest(context.Background(), []byte("xlsx"), ingesting.Overrides{})

		require.Len(t, result.GlobalErrors, 1)
		assert.Contains(t, result.GlobalErrors[0], domain.IssueNoUsableSheet)
		assert.Len(t, result.Sheets, 2)
	})

	t.Run("período informado substitui o detectado antes da resolução de duplicados", func(t *testing.T) {
		service, m := newTestService(t)
		m.reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(&domain.Workbook{
			Sheets: []domain.Sheet{
				periodSheet("P2 2024", "E001", "E002"),
				periodSheet("P2 2024 bis", "E001"),
			},
		}, nil)

		overrides := ingesting.Overrides{
			Periods: map[string]domain.DetectedPeriod{
				"P2 2024 bis": {PeriodNumber: 2, Year: 2023},
			},
		}
		result := service.Ingest(context.Background(), []byte("xlsx"), overrides)

		assert.Empty(t, result.GlobalErrors)
		require.Len(t, result.Sheets, 2)
		assert.True(t, result.Sheets[0].Enabled)
		assert.True(t, result.Sheets[1].Enabled)
		assert.Equal(t, &domain.DetectedPeriod{PeriodNumber: 2, Year: 2023}, result.Sheets[1].Period)
		assert.Equal(t, &domain.DetectedPeriod{PeriodNumber: 2, Year: 2024}, result.Sheets[1].DetectedPeriod)
	})
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		workbook  *domain.Workbook
		overrides ingesting.Overrides
		setup     func(m serviceMocks)
		validate  func(t *testing.T, report *domain.ImportReport, err error)
	}{
		{
			name: "importa a aba e substitui os registros do período",
			workbook: &domain.Workbook{Sheets: []domain.Sheet{
				periodSheet("P2 2024", "E001", "E002"),
			}},
			setup: func(m serviceMocks) {
				period := domain.NewReferencePeriod(2024, 2)
				period.ID = 7

				m.periods.EXPECT().Upsert(gomock.Any(), 2024, 2).Return(&period, nil)
				m.drivers.EXPECT().
					UpsertDrivers(gomock.Any(), gomock.Len(2)).
					Return(map[string]int64{"E001": 1, "E002": 2}, nil)
				m.records.EXPECT().
					ReplaceMonthlyRecords(gomock.Any(), int64(7), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, records []domain.MonthlyRecord) error {
						// Dois motoristas com dois meses cada
						assert.Len(t, records, 4)
						for _, record := range records {
							assert.Equal(t, 2024, record.Year)
							assert.Equal(t, int64(7), record.PeriodID)
							assert.Equal(t, 17.0, record.BufferHours)
						}
						return nil
					})
				m.importLog.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *domain.ImportLogEntry) error {
						assert.Equal(t, "compteurs.xlsx", entry.FileName)
						assert.Equal(t, 1, entry.ImportedSheets)
						return nil
					})
			},
			validate: func(t *testing.T, report *domain.ImportReport, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, report.BatchID)
				assert.Equal(t, 1, report.ImportedSheets)
				assert.Equal(t, 0, report.SkippedSheets)
				assert.Equal(t, 2, report.ImportedRows)
				require.Len(t, report.Sheets, 1)
				assert.True(t, report.Sheets[0].Imported)
				assert.Equal(t, int64(7), report.Sheets[0].PeriodID)
				assert.Equal(t, 4, report.Sheets[0].RecordsCount)
			},
		},
		{
			name: "aba excluída pelo usuário é pulada",
			workbook: &domain.Workbook{Sheets: []domain.Sheet{
				periodSheet("P2 2024", "E001"),
				periodSheet("P3 2024", "E001"),
			}},
			overrides: ingesting.Overrides{ExcludedSheets: []string{"P3 2024"}},
			setup: func(m serviceMocks) {
				period := domain.NewReferencePeriod(2024, 2)
				period.ID = 3

				m.periods.EXPECT().Upsert(gomock.Any(), 2024, 2).Return(&period, nil)
				m.drivers.EXPECT().UpsertDrivers(gomock.Any(), gomock.Any()).Return(map[string]int64{"E001": 1}, nil)
				m.records.EXPECT().ReplaceMonthlyRecords(gomock.Any(), int64(3), gomock.Any()).Return(nil)
				m.importLog.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, report *domain.ImportReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, report.ImportedSheets)
				assert.Equal(t, 1, report.SkippedSheets)
				assert.False(t, report.Sheets[1].Imported)
				assert.Contains(t, report.Sheets[1].SkippedReason, "excluída")
			},
		},
		{
			name: "falha no histórico não desfaz a importação",
			workbook: &domain.Workbook{Sheets: []domain.Sheet{
				periodSheet("P2 2024", "E001"),
			}},
			setup: func(m serviceMocks) {
				period := domain.NewReferencePeriod(2024, 2)
				period.ID = 1

				m.periods.EXPECT().Upsert(gomock.Any(), 2024, 2).Return(&period, nil)
				m.drivers.EXPECT().UpsertDrivers(gomock.Any(), gomock.Any()).Return(map[string]int64{"E001": 1}, nil)
				m.records.EXPECT().ReplaceMonthlyRecords(gomock.Any(), int64(1), gomock.Any()).Return(nil)
				m.importLog.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			validate: func(t *testing.T, report *domain.ImportReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, report.ImportedSheets)
			},
		},
		{
			name: "erro de banco interrompe a importação",
			workbook: &domain.Workbook{Sheets: []domain.Sheet{
				periodSheet("P2 2024", "E001"),
			}},
			setup: func(m serviceMocks) {
				m.periods.EXPECT().Upsert(gomock.Any(), 2024, 2).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, report *domain.ImportReport, err error) {
				require.Error(t, err)
				assert.Nil(t, report)
				assert.ErrorIs(t, err, ingesting.ErrDatabaseOperation)

				var importErr *ingesting.ImportError
				require.ErrorAs(t, err, &importErr)
				assert.Equal(t, apiErrors.ErrDatabaseOperation, importErr.Code)
			},
		},
		{
			name:     "planilha sem abas utilizáveis",
			workbook: &domain.Workbook{Sheets: []domain.Sheet{{Name: "Feuil1"}}},
			validate: func(t *testing.T, report *domain.ImportReport, err error) {
				assert.Nil(t, report)
				assert.ErrorIs(t, err, ingesting.ErrNoUsableSheet)
				assert.True(t, ingesting.IsInputError(err))
			},
		},
		{
			name: "período informado inválido",
			overrides: ingesting.Overrides{
				Periods: map[string]domain.DetectedPeriod{"P2 2024": {PeriodNumber: 4, Year: 2024}},
			},
			validate: func(t *testing.T, report *domain.ImportReport, err error) {
				assert.Nil(t, report)
				assert.ErrorIs(t, err, ingesting.ErrInvalidOverride)

				var importErr *ingesting.ImportError
				require.ErrorAs(t, err, &importErr)
				assert.Equal(t, apiErrors.ErrInvalidFormat, importErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)
			if tt.workbook != nil {
				m.reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(tt.workbook, nil)
			}
			if tt.setup != nil {
				tt.setup(m)
			}

			report, err := service.Import(ctx, "compteurs.xlsx", []byte("xlsx"), tt.overrides)
			tt.validate(t, report, err)
		})
	}
}

func TestService_Import_FalhaEmUmaAbaDesfazAImportacao(t *testing.T) {
	service, m := newTestService(t)
	m.reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(&domain.Workbook{Sheets: []domain.Sheet{
		periodSheet("P2 2024", "E001"),
		periodSheet("P3 2024", "E002"),
	}}, nil)

	p2 := domain.NewReferencePeriod(2024, 2)
	p2.ID = 2
	p3 := domain.NewReferencePeriod(2024, 3)
	p3.ID = 3

	gomock.InOrder(
		m.periods.EXPECT().Upsert(gomock.Any(), 2024, 2).Return(&p2, nil),
		m.drivers.EXPECT().UpsertDrivers(gomock.Any(), gomock.Any()).Return(map[string]int64{"E001": 1}, nil),
		m.records.EXPECT().ReplaceMonthlyRecords(gomock.Any(), int64(2), gomock.Any()).Return(nil),
		m.periods.EXPECT().Upsert(gomock.Any(), 2024, 3).Return(&p3, nil),
		m.drivers.EXPECT().UpsertDrivers(gomock.Any(), gomock.Any()).Return(map[string]int64{"E002": 2}, nil),
		m.records.EXPECT().ReplaceMonthlyRecords(gomock.Any(), int64(3), gomock.Any()).Return(errors.New("deadlock detected")),
	)
	// Nenhuma entrada de histórico para uma importação desfeita
	m.importLog.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	overrides := ingesting.Overrides{
		Periods: map[string]domain.DetectedPeriod{"P3 2024": {PeriodNumber: 3, Year: 2024}},
	}
	report, err := service.Import(context.Background(), "compteurs.xlsx", []byte("xlsx"), overrides)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ingesting.ErrDatabaseOperation)

	var importErr *ingesting.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Contains(t, importErr.Details, "P3 2024")

	assert.Equal(t, 1, m.tx.calls)
	assert.True(t, m.tx.rolledBack)
}

func TestService_Import_PlanilhaIlegivel(t *testing.T) {
	service, m := newTestService(t)
	m.reader.EXPECT().Read(gomock.Any(), gomock.Any()).Return(nil, errors.New("zip: not a valid zip file"))

	report, err := service.Import(context.Background(), "x.xlsx", []byte("x"), ingesting.Overrides{})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ingesting.ErrWorkbookUnreadable)
}

func TestService_ListImports(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "sem limite usa o padrão", limit: 0, expectedLimit: 20},
		{name: "limite acima do máximo", limit: 500, expectedLimit: 100},
		{name: "limite informado", limit: 5, expectedLimit: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)
			m.importLog.EXPECT().
				ListRecent(gomock.Any(), tt.expectedLimit).
				Return([]*domain.ImportLogEntry{{BatchID: "abc"}}, nil)

			entries, err := service.ListImports(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}

	t.Run("erro de banco", func(t *testing.T) {
		service, m := newTestService(t)
		m.importLog.EXPECT().ListRecent(gomock.Any(), 20).Return(nil, errors.New("timeout"))

		entries, err := service.ListImports(context.Background(), 0)

		assert.Nil(t, entries)
		assert.ErrorIs(t, err, ingesting.ErrDatabaseOperation)
	})
}
