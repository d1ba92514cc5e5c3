package ingesting

import (
	"fmt"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
)

// periodClaims acumula, por período, a aba que está ocupando aquele período
type periodClaims struct {
	owners   map[domain.PeriodKey]int
	disabled map[int]bool
}

func newPeriodClaims() *periodClaims {
	return &periodClaims{
		owners:   make(map[domain.PeriodKey]int),
		disabled: make(map[int]bool),
	}
}

func (c *periodClaims) claim(key domain.PeriodKey, index int, sheets []domain.SheetResult) {
	owner, taken := c.owners[key]
	if !taken {
		c.owners[key] = index
		return
	}

	// Empate desativa a aba encontrada depois
	if len(sheets[index].Rows) > len(sheets[owner].Rows) {
		c.owners[key] = index
		c.disabled[owner] = true
		return
	}
	c.disabled[index] = true
}

// ResolveDuplicatePeriods garante no máximo uma aba habilitada por (período, ano). Entre abas
// habilitadas que disputam o mesmo período, fica a que tem mais linhas. A entrada não é alterada.
func ResolveDuplicatePeriods(sheets []domain.SheetResult) []domain.SheetResult {
	resolved := make([]domain.SheetResult, len(sheets))
	copy(resolved, sheets)

	claims := newPeriodClaims()
	for i, sheet := range resolved {
		if !sheet.Enabled || sheet.Period == nil {
			continue
		}
		claims.claim(sheet.Period.Key(), i, resolved)
	}

	for index := range claims.disabled {
		sheet := resolved[index]
		winner := claims.owners[sheet.Period.Key()]
		sheet.Enabled = false
		sheet.Warnings = append(append([]domain.Issue{}, sheet.Warnings...), domain.Issue{
			Code: domain.IssueDuplicatePeriod,
			Message: fmt.Sprintf("período %s mantido na aba %q (%d linhas contra %d)",
				sheet.Period.Key(), resolved[winner].SheetName, len(resolved[winner].Rows), len(sheet.Rows)),
		})
		resolved[index] = sheet
	}

	return resolved
}
