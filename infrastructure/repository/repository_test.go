package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/overtime-counters-api/infrastructure/database/sqldb"
	"github.com/vfg2006/overtime-counters-api/infrastructure/repository"
	"github.com/vfg2006/overtime-counters-api/internal/config"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// newTestConnection abre um sqlite em memória já migrado; cada teste recebe um banco próprio
func newTestConnection(t *testing.T) *sqldb.Connection {
	t.Helper()

	conn, err := sqldb.NewConnection(context.Background(), config.Database{
		Driver: config.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, sqldb.Migrate(conn))
	return conn
}

func TestPeriodRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPeriodRepository(newTestConnection(t))

	first, err := repo.Upsert(ctx, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "P2 2024", first.Label)
	assert.Equal(t, 5, first.StartMonth)
	assert.Equal(t, 8, first.EndMonth)

	again, err := repo.Upsert(ctx, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	older, err := repo.Upsert(ctx, 2023, 3)
	require.NoError(t, err)

	periods, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, older.ID, periods[0].ID)
	assert.Equal(t, first.ID, periods[1].ID)

	found, err := repo.GetByIDs(ctx, []int64{first.ID, 999})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, first.ID, found[0].ID)

	_, err = repo.Upsert(ctx, 2024, 4)
	assert.Error(t, err)
}

func TestDriverRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDriverRepository(newTestConnection(t))

	ids, err := repo.UpsertDrivers(ctx, []domain.DriverUpsert{
		{Identifier: "E002", VehicleType: domain.VehicleTypeBus},
		{Identifier: "E001", VehicleType: domain.VehicleTypeBus},
		{Identifier: "E001", VehicleType: domain.VehicleTypeVan},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	// Uma nova importação atualiza o tipo de veículo e mantém o id
	again, err := repo.UpsertDrivers(ctx, []domain.DriverUpsert{
		{Identifier: "E002", VehicleType: domain.VehicleTypeVan, IdentifierIsNameFallback: true},
	})
	require.NoError(t, err)
	assert.Equal(t, ids["E002"], again["E002"])

	drivers, err := repo.ListDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, drivers, 2)
	assert.Equal(t, &domain.Driver{ID: ids["E001"], Identifier: "E001", VehicleType: domain.VehicleTypeVan}, drivers[0])
	assert.Equal(t, &domain.Driver{ID: ids["E002"], Identifier: "E002", IdentifierIsNameFallback: true, VehicleType: domain.VehicleTypeVan}, drivers[1])

	empty, err := repo.UpsertDrivers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMonthlyRecordRepository(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)

	periods := repository.NewPeriodRepository(conn)
	drivers := repository.NewDriverRepository(conn)
	// Lotes pequenos para exercitar a divisão dos INSERTs
	records := repository.NewMonthlyRecordRepository(conn, 2)

	period, err := periods.Upsert(ctx, 2024, 2)
	require.NoError(t, err)
	other, err := periods.Upsert(ctx, 2024, 3)
	require.NoError(t, err)

	ids, err := drivers.UpsertDrivers(ctx, []domain.DriverUpsert{
		{Identifier: "E001", VehicleType: domain.VehicleTypeBus},
		{Identifier: "E002", VehicleType: domain.VehicleTypeVan},
	})
	require.NoError(t, err)

	input := []domain.MonthlyRecord{
		{DriverID: ids["E001"], Month: 5, Year: 2024, PositiveHours: 2, OvertimePay: 1, CounterEnd: 3, BufferHours: 17},
		{DriverID: ids["E001"], Month: 6, Year: 2024, PositiveHours: 1, MissingHours: 0.5, CounterEnd: 3.5, BufferHours: 17},
		{DriverID: ids["E002"], Month: 5, Year: 2024, MissingHours: 2, CounterEnd: -2, BufferHours: 15},
	}

	require.NoError(t, records.ReplaceMonthlyRecords(ctx, period.ID, input))
	require.NoError(t, records.ReplaceMonthlyRecords(ctx, other.ID, []domain.MonthlyRecord{
		{DriverID: ids["E001"], Month: 9, Year: 2024, CounterEnd: 8, BufferHours: 17},
	}))

	first, err := records.FetchPeriodSummariesPage(ctx, domain.RecordFilter{PeriodIDs: []int64{period.ID}}, 10, 0)
	require.NoError(t, err)

	// Reimportar o mesmo período produz exatamente o mesmo estado
	require.NoError(t, records.ReplaceMonthlyRecords(ctx, period.ID, input))
	second, err := records.FetchPeriodSummariesPage(ctx, domain.RecordFilter{PeriodIDs: []int64{period.ID}}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, second, 2)
	assert.Equal(t, domain.DriverPeriodSummary{
		DriverID:           ids["E001"],
		Identifier:         "E001",
		VehicleType:        domain.VehicleTypeBus,
		PeriodID:           period.ID,
		Year:               2024,
		PeriodNumber:       2,
		TotalPositiveHours: 3,
		TotalMissingHours:  0.5,
		TotalOvertimePay:   1,
		LatestCounter:      3.5,
		BufferHours:        17,
		MonthsRecorded:     2,
	}, second[0])
	assert.Equal(t, -2.0, second[1].LatestCounter)

	t.Run("sem filtro lê todos os períodos", func(t *testing.T) {
		all, err := records.FetchPeriodSummariesPage(ctx, domain.RecordFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("filtro por tipo de veículo", func(t *testing.T) {
		van := domain.VehicleTypeVan
		rows, err := records.FetchMonthlyRecordsPage(ctx, domain.RecordFilter{VehicleType: &van}, 10, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "E002", rows[0].Identifier)
		assert.Equal(t, 2024, rows[0].PeriodYear)
		assert.Equal(t, 2, rows[0].PeriodNumber)
		assert.Equal(t, 15.0, rows[0].BufferHours)
	})

	t.Run("paginação", func(t *testing.T) {
		page, err := records.FetchMonthlyRecordsPage(ctx, domain.RecordFilter{}, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, 6, page[0].Month)
		assert.Equal(t, 9, page[1].Month)

		last, err := records.FetchMonthlyRecordsPage(ctx, domain.RecordFilter{}, 2, 4)
		require.NoError(t, err)
		assert.Empty(t, last)
	})

	t.Run("substituir por lista vazia limpa o período", func(t *testing.T) {
		require.NoError(t, records.ReplaceMonthlyRecords(ctx, other.ID, nil))
		rows, err := records.FetchMonthlyRecordsPage(ctx, domain.RecordFilter{PeriodIDs: []int64{other.ID}}, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestWithinTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("erro desfaz todas as gravações dos repositórios", func(t *testing.T) {
		conn := newTestConnection(t)
		periods := repository.NewPeriodRepository(conn)
		drivers := repository.NewDriverRepository(conn)
		records := repository.NewMonthlyRecordRepository(conn, 2)

		err := conn.WithinTransaction(ctx, func(ctx context.Context) error {
			period, err := periods.Upsert(ctx, 2024, 2)
			require.NoError(t, err)

			ids, err := drivers.UpsertDrivers(ctx, []domain.DriverUpsert{
				{Identifier: "E001", VehicleType: domain.VehicleTypeBus},
			})
			require.NoError(t, err)

			require.NoError(t, records.ReplaceMonthlyRecords(ctx, period.ID, []domain.MonthlyRecord{
				{DriverID: ids["E001"], Month: 5, Year: 2024, CounterEnd: 1, BufferHours: 17},
			}))

			// Leitura dentro da transação enxerga as gravações ainda não confirmadas
			listed, err := periods.List(ctx)
			require.NoError(t, err)
			require.Len(t, listed, 1)

			return errors.New("falha na segunda aba")
		})
		require.EqualError(t, err, "falha na segunda aba")

		listed, err := periods.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed)

		known, err := drivers.ListDrivers(ctx)
		require.NoError(t, err)
		assert.Empty(t, known)

		summaries, err := records.FetchPeriodSummariesPage(ctx, domain.RecordFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("sucesso confirma as gravações", func(t *testing.T) {
		conn := newTestConnection(t)
		periods := repository.NewPeriodRepository(conn)

		err := conn.WithinTransaction(ctx, func(ctx context.Context) error {
			if _, err := periods.Upsert(ctx, 2024, 1); err != nil {
				return err
			}
			// Transação aninhada reaproveita a externa
			return conn.WithinTransaction(ctx, func(ctx context.Context) error {
				_, err := periods.Upsert(ctx, 2024, 2)
				return err
			})
		})
		require.NoError(t, err)

		listed, err := periods.List(ctx)
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})
}

func TestImportLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewImportLogRepository(newTestConnection(t))

	now := time.Now().UTC()
	older := &domain.ImportLogEntry{
		BatchID:   "batch-1",
		FileName:  "p1.xlsx",
		Sheets:    []domain.SheetImportSummary{{SheetName: "P1 2024", Imported: true, DriversCount: 3}},
		CreatedAt: now.Add(-time.Hour),
	}
	newer := &domain.ImportLogEntry{
		BatchID:        "batch-2",
		FileName:       "p2.xlsx",
		ImportedSheets: 1,
		SkippedSheets:  1,
		ImportedRows:   40,
		Sheets: []domain.SheetImportSummary{
			{SheetName: "P2 2024", Imported: true, DriversCount: 40},
			{SheetName: "Feuil2", SkippedReason: "aba sem linhas de motoristas"},
		},
		CreatedAt: now,
	}

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	assert.NotZero(t, older.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "batch-2", entries[0].BatchID)
	assert.Equal(t, 40, entries[0].ImportedRows)
	assert.Equal(t, newer.Sheets, entries[0].Sheets)
	assert.Equal(t, "batch-1", entries[1].BatchID)

	limited, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	// batch_id é único
	err = repo.Create(ctx, &domain.ImportLogEntry{BatchID: "batch-1", FileName: "x.xlsx"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}
