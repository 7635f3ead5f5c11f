package accounting

import (
	"context"

	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios contables atados a esa tx. Resolver cuentas, asignar número,
// insertar comprobante + líneas y aplicar los deltas de saldo es
// todo-o-nada.
type TxRunner interface {
	RunAccounting(ctx context.Context, fn func(
		accountRepo repository.LedgerAccountRepository,
		entryRepo repository.JournalEntryRepository,
	) error) error
}
