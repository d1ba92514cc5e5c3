package domain

// AggregationMode define se a comparação entre períodos mostra somas ou médias por motorista
type AggregationMode string

const (
	AggregationSum AggregationMode = "sum"
	AggregationAvg AggregationMode = "avg"
)

// DistributionBucket é uma faixa de valores do contador
type DistributionBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DriverClassification é a visão de um motorista usada na classificação de críticos
type DriverClassification struct {
	DriverID     int64       `json:"driver_id"`
	Identifier   string      `json:"identifier"`
	VehicleType  VehicleType `json:"vehicle_type"`
	Counter      float64     `json:"counter"`
	MissingTotal float64     `json:"missing_total"`
	ExcessTotal  float64     `json:"excess_total"`
	Deficit      bool        `json:"deficit"`
	Excess       bool        `json:"excess"`
	Critical     bool        `json:"critical"`
}

// CriticalDrivers reúne os dois conjuntos de percentil e sua união
type CriticalDrivers struct {
	DeficitIDs  []int64 `json:"deficit_ids"`
	ExcessIDs   []int64 `json:"excess_ids"`
	CriticalIDs []int64 `json:"critical_ids"`
	NormalCount int     `json:"normal_count"`
}

// PeriodComparison são os totais (ou médias) de um período
type PeriodComparison struct {
	PeriodID               int64   `json:"period_id"`
	Year                   int     `json:"year"`
	PeriodNumber           int     `json:"period_number"`
	Label                  string  `json:"label"`
	DriverCount            int     `json:"driver_count"`
	OvertimePay            float64 `json:"overtime_pay"`
	PositiveCounterHours   float64 `json:"positive_counter_hours"`
	PositiveCounterDrivers int     `json:"positive_counter_drivers"`
	MissingCounterHours    float64 `json:"missing_counter_hours"`
	MissingCounterDrivers  int     `json:"missing_counter_drivers"`
}

// MonthlyPoint é um ponto da série mensal
type MonthlyPoint struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	PeriodNumber     int     `json:"period_number"`
	PositiveHours    float64 `json:"positive_hours"`
	MissingHours     float64 `json:"missing_hours"`
	OvertimePay      float64 `json:"overtime_pay"`
	AverageCounter   float64 `json:"average_counter"`
	DriversReporting int     `json:"drivers_reporting"`
	PeriodEnd        bool    `json:"period_end"`
	// Acerto de fim de período: contadores positivos pagos e negativos em falta
	SettlementPaid    float64 `json:"settlement_paid"`
	SettlementMissing float64 `json:"settlement_missing"`
	HoursPaid         float64 `json:"hours_paid"`
	HoursMissing      float64 `json:"hours_missing"`
}

// BufferAlert é um motorista cujo contador ultrapassou o limite de alerta
type BufferAlert struct {
	DriverID    int64   `json:"driver_id"`
	Identifier  string  `json:"identifier"`
	Counter     float64 `json:"counter"`
	BufferHours float64 `json:"buffer_hours"`
}

// AnalyticsResult é recalculado a cada consulta e não possui identidade persistida
type AnalyticsResult struct {
	DriverCount      int                    `json:"driver_count"`
	PeriodCount      int                    `json:"period_count"`
	Distribution     []DistributionBucket   `json:"distribution"`
	Critical         CriticalDrivers        `json:"critical"`
	Drivers          []DriverClassification `json:"drivers"`
	PeriodComparison []PeriodComparison     `json:"period_comparison"`
	MonthlySeries    []MonthlyPoint         `json:"monthly_series,omitempty"`
	BufferAlerts     []BufferAlert          `json:"buffer_alerts"`
}

// AnalyticsQuery são os filtros de uma consulta de analytics; sem períodos, considera todos
type AnalyticsQuery struct {
	PeriodIDs      []int64
	VehicleType    *VehicleType
	Mode           AggregationMode
	IncludeMonthly bool
}

// ParseAggregationMode aceita "sum" e "avg"; vazio equivale a "sum"
func ParseAggregationMode(value string) (AggregationMode, bool) {
	switch AggregationMode(value) {
	case "", AggregationSum:
		return AggregationSum, true
	case AggregationAvg:
		return AggregationAvg, true
	}
	return "", false
}
