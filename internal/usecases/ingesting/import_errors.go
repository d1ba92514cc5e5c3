package ingesting

import (
	"errors"
	"fmt"
)

var (
	// Erros de mapeamento
	ErrNoIdentifierColumn = errors.New("nenhuma coluna de identificador encontrada")

	// Erros de importação
	ErrWorkbookUnreadable = errors.New("planilha ilegível")
	ErrNoUsableSheet      = errors.New("nenhuma aba utilizável na planilha")
	ErrInvalidOverride    = errors.New("período informado inválido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar identificador da importação")
)

// ImportError é um erro com contexto adicional para importações
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError cria um novo ImportError
func NewImportError(err error, code string, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// IsInputError indica se o erro foi causado pelo conteúdo enviado e não pelo servidor
func IsInputError(err error) bool {
	return errors.Is(err, ErrWorkbookUnreadable) ||
		errors.Is(err, ErrNoUsableSheet) ||
		errors.Is(err, ErrInvalidOverride)
}
