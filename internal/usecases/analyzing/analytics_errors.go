package analyzing

import (
	"errors"
	"fmt"
)

var (
	ErrPeriodNotFound    = errors.New("período não encontrado")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AnalyticsError é um erro com contexto adicional para consultas de analytics
type AnalyticsError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AnalyticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func NewAnalyticsError(err error, code string, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
