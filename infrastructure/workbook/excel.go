package workbook

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ExcelReader carrega arquivos .xlsx em memória preservando o tipo de cada célula
type ExcelReader struct{}

func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// Read abre o conteúdo e converte todas as abas. Valores são lidos sem a formatação de exibição,
// para que horas formatadas como "17:00" cheguem como fração de dia.
func (r *ExcelReader) Read(ctx context.Context, content []byte) (*domain.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir planilha")
	}
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar planilha")
		}
	}()

	wb := &domain.Workbook{}
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheet, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

func readSheet(f *excelize.File, name string) (domain.Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Sheet{}, errors.Wrapf(err, "erro ao ler aba %q", name)
	}

	sheet := domain.Sheet{Name: name, Rows: make([][]domain.Cell, len(rows))}
	for i, row := range rows {
		cells := make([]domain.Cell, len(row))
		for j, raw := range row {
			cells[j] = typedCell(f, name, i, j, raw)
		}
		sheet.Rows[i] = cells
	}

	return sheet, nil
}

// typedCell decide entre número e texto pelo tipo gravado na célula; strings compartilhadas
// continuam texto mesmo quando parecem números ("12,5", "17:00")
func typedCell(f *excelize.File, sheet string, row, col int, raw string) domain.Cell {
	if raw == "" {
		return domain.EmptyCell()
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return domain.TextCell(raw)
	}

	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return domain.TextCell(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return domain.TextCell(raw)
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return domain.NumberCell(v)
	}
	return domain.TextCell(raw)
}
