package ingesting

import (
	"strconv"
	"strings"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// DefaultHeaderScanRows é o número de linhas iniciais examinadas na busca do cabeçalho
const DefaultHeaderScanRows = 10

// DetectHeaderRow retorna a primeira linha (entre as maxScan primeiras) que contém um rótulo de
// identificador: "code", ou "nom" e "prenom" juntos. Sem nenhuma, retorna a linha 0.
func DetectHeaderRow(rows [][]domain.Cell, maxScan int) int {
	if maxScan <= 0 {
		maxScan = DefaultHeaderScanRows
	}

	for i := 0; i < len(rows) && i < maxScan; i++ {
		for _, cell := range rows[i] {
			text := NormalizeText(cellText(cell))
			if text == "" {
				continue
			}
			if strings.Contains(text, "code") || containsAll(text, "nom", "prenom") {
				return i
			}
		}
	}

	return 0
}

// headerTexts extrai o texto de cada célula da linha de cabeçalho
func headerTexts(row []domain.Cell) []string {
	texts := make([]string, len(row))
	for i, cell := range row {
		texts[i] = cellText(cell)
	}
	return texts
}

// cellText devolve o texto da célula; números são formatados sem casas decimais supérfluas
func cellText(cell domain.Cell) string {
	switch cell.Kind {
	case domain.CellText:
		return strings.TrimSpace(cell.Text)
	case domain.CellNumber:
		return strconv.FormatFloat(cell.Number, 'f', -1, 64)
	}
	return ""
}

// cellAt devolve a célula da coluna ou uma célula vazia quando a linha é mais curta
func cellAt(row []domain.Cell, col int) domain.Cell {
	if col < 0 || col >= len(row) {
		return domain.EmptyCell()
	}
	return row[col]
}
