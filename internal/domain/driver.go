package domain

import "strings"

type VehicleType string

const (
	VehicleTypeBus VehicleType = "BUS"
	VehicleTypeVan VehicleType = "VAN"
)

// ParseVehicleType converte o texto de um filtro (bus/van) em VehicleType
func ParseVehicleType(value string) (VehicleType, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(VehicleTypeBus):
		return VehicleTypeBus, true
	case string(VehicleTypeVan):
		return VehicleTypeVan, true
	}
	return "", false
}

// ParsedMonthRecord representa os quatro valores de um mês lidos da planilha.
// Os campos são lidos de forma independente; nenhuma relação aritmética é imposta entre eles.
type ParsedMonthRecord struct {
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	PositiveHours float64 `json:"positive_hours"`
	MissingHours  float64 `json:"missing_hours"`
	OvertimePay   float64 `json:"overtime_pay"`
	CounterEnd    float64 `json:"counter_end"`
}

// ParsedDriverRow representa um motorista normalizado de uma aba
type ParsedDriverRow struct {
	Identifier               string              `json:"identifier"`
	IdentifierIsNameFallback bool                `json:"identifier_is_name_fallback"`
	VehicleType              VehicleType         `json:"vehicle_type"`
	BufferHours              float64             `json:"buffer_hours"`
	Months                   []ParsedMonthRecord `json:"months"`
}

// Driver é o motorista persistido, identificado pelo seu identificador natural
type Driver struct {
	ID                       int64       `json:"id"`
	Identifier               string      `json:"identifier"`
	IdentifierIsNameFallback bool        `json:"identifier_is_name_fallback"`
	VehicleType              VehicleType `json:"vehicle_type"`
}

// DriverUpsert são os dados enviados ao repositório para criar/atualizar motoristas
type DriverUpsert struct {
	Identifier               string
	IdentifierIsNameFallback bool
	VehicleType              VehicleType
}
