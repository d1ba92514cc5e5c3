package ingesting

import (
	"sort"
	"strings"
)

type columnKind int

const (
	columnUnknown columnKind = iota
	columnIdentifier
	columnVehicle
	columnBuffer
	columnMonth
)

type monthField int

const (
	fieldNone monthField = iota
	fieldPositive
	fieldMissing
	fieldOvertimePay
	fieldCounterEnd
)

// columnRule associa um predicado sobre o cabeçalho normalizado a uma classificação.
// As regras são avaliadas em ordem e a primeira que casa vence.
type columnRule struct {
	name  string
	kind  columnKind
	match func(header string) bool
}

var columnRules = []columnRule{
	{
		name: "identifier",
		kind: columnIdentifier,
		match: func(h string) bool {
			return containsAll(h, "code", "salarie")
		},
	},
	{
		name: "vehicle_type",
		kind: columnVehicle,
		match: func(h string) bool {
			return containsAll(h, "bus", "cam") || strings.Contains(h, "fonction")
		},
	},
	{
		name: "buffer",
		kind: columnBuffer,
		match: func(h string) bool {
			switch h {
			case "10%", "10 %", "0.1":
				return true
			}
			return containsAny(h, "buffer", "10%")
		},
	},
}

// monthFieldRule classifica uma coluna de mês pelas palavras-chave. Quando o campo já está
// ocupado e overflow está definido, a coluna vai para overflow (caso de cabeçalho "pos"
// duplicado por erro de digitação no lugar de "manq").
type monthFieldRule struct {
	field    monthField
	keywords []string
	overflow monthField
}

var monthFieldRules = []monthFieldRule{
	{field: fieldPositive, keywords: []string{"pos", "excedent", "supp"}, overflow: fieldMissing},
	{field: fieldMissing, keywords: []string{"manq", "deficit", "neg"}},
	{field: fieldOvertimePay, keywords: []string{"montant", "payer"}},
	{field: fieldCounterEnd, keywords: []string{"compteur", "cumul"}},
}

// MonthColumns guarda o índice de coluna de cada campo do mês (-1 quando ausente)
type MonthColumns struct {
	Positive    int
	Missing     int
	OvertimePay int
	CounterEnd  int
}

func emptyMonthColumns() MonthColumns {
	return MonthColumns{Positive: -1, Missing: -1, OvertimePay: -1, CounterEnd: -1}
}

func (m *MonthColumns) slot(field monthField) *int {
	switch field {
	case fieldPositive:
		return &m.Positive
	case fieldMissing:
		return &m.Missing
	case fieldOvertimePay:
		return &m.OvertimePay
	case fieldCounterEnd:
		return &m.CounterEnd
	}
	return nil
}

// ColumnMapping é o mapeamento de colunas de uma aba, válido apenas durante a ingestão dela
type ColumnMapping struct {
	IdentifierCol            int
	IdentifierIsNameFallback bool
	VehicleCol               int
	VehicleFromFallback      bool
	BufferCol                int
	Months                   map[int]MonthColumns
}

// MonthNumbers retorna os meses mapeados em ordem crescente
func (m ColumnMapping) MonthNumbers() []int {
	months := make([]int, 0, len(m.Months))
	for month := range m.Months {
		months = append(months, month)
	}
	sort.Ints(months)
	return months
}

// columnMappingBuilder acumula as classificações durante a varredura e gera o mapeamento final
type columnMappingBuilder struct {
	identifierCol int
	nameCol       int
	vehicleCol    int
	bufferCol     int
	classified    map[int]columnKind
	months        map[int]MonthColumns
}

func newColumnMappingBuilder() *columnMappingBuilder {
	return &columnMappingBuilder{
		identifierCol: -1,
		nameCol:       -1,
		vehicleCol:    -1,
		bufferCol:     -1,
		classified:    make(map[int]columnKind),
		months:        make(map[int]MonthColumns),
	}
}

func (b *columnMappingBuilder) add(col int, kind columnKind) {
	switch kind {
	case columnIdentifier:
		if b.identifierCol == -1 {
			b.identifierCol = col
		}
	case columnVehicle:
		if b.vehicleCol == -1 {
			b.vehicleCol = col
		}
	case columnBuffer:
		// Só a primeira coluna de buffer vale; as repetidas nos blocos de meses são ignoradas
		if b.bufferCol != -1 {
			return
		}
		b.bufferCol = col
	}
	b.classified[col] = kind
}

func (b *columnMappingBuilder) addMonthField(col, month int, header string) {
	columns, ok := b.months[month]
	if !ok {
		columns = emptyMonthColumns()
	}

	for _, rule := range monthFieldRules {
		if !containsAny(header, rule.keywords...) {
			continue
		}
		target := columns.slot(rule.field)
		if *target == -1 {
			*target = col
		} else if rule.overflow != fieldNone {
			if overflow := columns.slot(rule.overflow); *overflow == -1 {
				*overflow = col
			}
		}
		break
	}

	if columns == emptyMonthColumns() {
		return
	}
	b.months[month] = columns
	b.classified[col] = columnMonth
}

func (b *columnMappingBuilder) build(columnCount int) (ColumnMapping, error) {
	mapping := ColumnMapping{
		IdentifierCol: b.identifierCol,
		VehicleCol:    b.vehicleCol,
		BufferCol:     b.bufferCol,
		Months:        make(map[int]MonthColumns, len(b.months)),
	}
	for month, columns := range b.months {
		mapping.Months[month] = columns
	}

	if mapping.IdentifierCol == -1 {
		if b.nameCol == -1 {
			return ColumnMapping{}, ErrNoIdentifierColumn
		}
		mapping.IdentifierCol = b.nameCol
		mapping.IdentifierIsNameFallback = true
	}

	if mapping.VehicleCol == -1 {
		fallback := 2
		if mapping.IdentifierIsNameFallback {
			fallback = mapping.IdentifierCol + 1
		}
		if fallback < columnCount && fallback != mapping.IdentifierCol {
			if kind, taken := b.classified[fallback]; !taken || kind == columnUnknown {
				mapping.VehicleCol = fallback
				mapping.VehicleFromFallback = true
			}
		}
	}

	return mapping, nil
}

// MapColumns classifica cada coluna do cabeçalho. Falha somente quando não há coluna de
// identificador nem coluna de nome e prénom.
func MapColumns(headers []string, fuzzyMonths bool) (ColumnMapping, error) {
	builder := newColumnMappingBuilder()

	for col, raw := range headers {
		header := NormalizeText(raw)
		if header == "" {
			continue
		}

		if kind := classifyHeader(header); kind != columnUnknown {
			builder.add(col, kind)
			continue
		}

		if month, ok := DetectMonth(header, fuzzyMonths); ok {
			builder.addMonthField(col, month, header)
			continue
		}

		if builder.nameCol == -1 && containsAll(header, "nom", "prenom") {
			builder.nameCol = col
		}
	}

	return builder.build(len(headers))
}

func classifyHeader(header string) columnKind {
	for _, rule := range columnRules {
		if rule.match(header) {
			return rule.kind
		}
	}
	return columnUnknown
}
