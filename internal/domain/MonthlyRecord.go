package domain

// MonthlyRecord é a linha normalizada gravada por (motorista, período, mês, ano)
type MonthlyRecord struct {
	DriverID      int64   `json:"driver_id"`
	PeriodID      int64   `json:"period_id"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	PositiveHours float64 `json:"positive_hours"`
	MissingHours  float64 `json:"missing_hours"`
	OvertimePay   float64 `json:"overtime_pay"`
	CounterEnd    float64 `json:"counter_end"`
	BufferHours   float64 `json:"buffer_hours"`
}

// MonthlyRecordRow é a leitura de um registro mensal já com os dados do motorista e do período
type MonthlyRecordRow struct {
	DriverID      int64       `json:"driver_id"`
	Identifier    string      `json:"identifier"`
	VehicleType   VehicleType `json:"vehicle_type"`
	PeriodID      int64       `json:"period_id"`
	PeriodYear    int         `json:"period_year"`
	PeriodNumber  int         `json:"period_number"`
	Month         int         `json:"month"`
	Year          int         `json:"year"`
	PositiveHours float64     `json:"positive_hours"`
	MissingHours  float64     `json:"missing_hours"`
	OvertimePay   float64     `json:"overtime_pay"`
	CounterEnd    float64     `json:"counter_end"`
	BufferHours   float64     `json:"buffer_hours"`
}

// DriverPeriodSummary é o modelo de leitura de um motorista em um período
type DriverPeriodSummary struct {
	DriverID           int64       `json:"driver_id"`
	Identifier         string      `json:"identifier"`
	VehicleType        VehicleType `json:"vehicle_type"`
	PeriodID           int64       `json:"period_id"`
	Year               int         `json:"year"`
	PeriodNumber       int         `json:"period_number"`
	TotalPositiveHours float64     `json:"total_positive_hours"`
	TotalMissingHours  float64     `json:"total_missing_hours"`
	TotalOvertimePay   float64     `json:"total_overtime_pay"`
	LatestCounter      float64     `json:"latest_counter"`
	BufferHours        float64     `json:"buffer_hours"`
	MonthsRecorded     int         `json:"months_recorded"`
}

// RecordFilter restringe as leituras a períodos e, opcionalmente, a um tipo de veículo
type RecordFilter struct {
	PeriodIDs   []int64
	VehicleType *VehicleType
}
