package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrConflict indica violação de unicidade
var ErrConflict = errors.New("registro duplicado")

// wrapDBError anexa o código do erro do driver à mensagem
func wrapDBError(action string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return fmt.Errorf("erro ao %s: %w (code: %s): %w", action, ErrConflict, pqErr.Code, pqErr)
		}
		return fmt.Errorf("erro ao %s: %w (code: %s)", action, pqErr, pqErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("erro ao %s: %w: %w", action, ErrConflict, liteErr)
		}
		return fmt.Errorf("erro ao %s: %w (code: %d)", action, liteErr, liteErr.Code)
	}

	return fmt.Errorf("erro ao %s: %w", action, err)
}
