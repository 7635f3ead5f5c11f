package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// balanceEpsilon tolerancia de cuadre (0.01 de la unidad monetaria).
var balanceEpsilon = decimal.NewFromFloat(0.01)

// Totals suma débitos y créditos de las líneas.
func Totals(lines []entity.JournalEntryLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit, totalCredit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.DebitAmount)
		totalCredit = totalCredit.Add(l.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateLines verifica las precondiciones de un asiento:
//   - al menos una línea
//   - cada línea con montos no negativos
//   - cada línea con exactamente uno de débito/crédito distinto de cero
//   - suma(débito) == suma(crédito) dentro del epsilon
//
// Retorna ErrInvalidInput para líneas malformadas y ErrUnbalancedEntry si no
// cuadra. Un asiento que no cuadra jamás debe persistirse.
func ValidateLines(lines []entity.JournalEntryLine) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
			return domain.ErrInvalidInput
		}
		debitSet := !l.DebitAmount.IsZero()
		creditSet := !l.CreditAmount.IsZero()
		if debitSet == creditSet { // ambos o ninguno
			return domain.ErrInvalidInput
		}
		if l.AccountCode == "" && l.AccountID == "" {
			return domain.ErrInvalidInput
		}
	}
	totalDebit, totalCredit := Totals(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceEpsilon) {
		return domain.ErrUnbalancedEntry
	}
	return nil
}
