package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/overtime-counters-api/infrastructure/database/sqldb"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

const importsTable = "imports"

type ImportLogRepository interface {
	Create(ctx context.Context, entry *domain.ImportLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.ImportLogEntry, error)
}

type importLogRepository struct {
	conn *sqldb.Connection
}

func NewImportLogRepository(conn *sqldb.Connection) ImportLogRepository {
	return &importLogRepository{
		conn: conn,
	}
}

func (r *importLogRepository) Create(ctx context.Context, entry *domain.ImportLogEntry) error {
	sheetsJSON, err := jsoniter.Marshal(entry.Sheets)
	if err != nil {
		return fmt.Errorf("erro ao serializar abas da importação: %w", err)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert(importsTable).
		Columns("batch_id", "file_name", "imported_sheets", "skipped_sheets", "imported_rows", "sheets", "created_at").
		Values(
			entry.BatchID,
			entry.FileName,
			entry.ImportedSheets,
			entry.SkippedSheets,
			entry.ImportedRows,
			string(sheetsJSON),
			entry.CreatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryerFrom(ctx).QueryRow(ctx, query, args...).Scan(&entry.ID); err != nil {
		return wrapDBError("registrar importação", err)
	}

	return nil
}

func (r *importLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.ImportLogEntry, error) {
	query, args, err := squirrel.
		Select("id, batch_id, file_name, imported_sheets, skipped_sheets, imported_rows, sheets, created_at").
		From(importsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryerFrom(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError("listar importações", err)
	}
	defer rows.Close()

	entries := make([]*domain.ImportLogEntry, 0)
	for rows.Next() {
		var (
			entry      domain.ImportLogEntry
			sheetsJSON string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.BatchID,
			&entry.FileName,
			&entry.ImportedSheets,
			&entry.SkippedSheets,
			&entry.ImportedRows,
			&sheetsJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear importação: %w", err)
		}

		if err := jsoniter.UnmarshalFromString(sheetsJSON, &entry.Sheets); err != nil {
			return nil, fmt.Errorf("erro ao ler abas da importação %s: %w", entry.BatchID, err)
		}

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}
