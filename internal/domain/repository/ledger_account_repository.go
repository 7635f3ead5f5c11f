package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// LedgerAccountRepository define el puerto de persistencia del plan de cuentas
// (DIP). La identidad de negocio es (companyID, code) con constraint único.
type LedgerAccountRepository interface {
	// CreateIfAbsent inserta la cuenta si no existe (ON CONFLICT DO NOTHING).
	// No es error que ya exista; el caller debe releer con GetByCode.
	CreateIfAbsent(account *entity.LedgerAccount) error
	GetByID(id string) (*entity.LedgerAccount, error)
	GetByCode(companyID, code string) (*entity.LedgerAccount, error)
	// ApplyPosting acumula débito/crédito y recalcula balance en un único
	// UPDATE; debe ejecutarse en la misma transacción que crea el asiento.
	ApplyPosting(accountID string, debit, credit decimal.Decimal) error
	// ListByCompany lista el plan de cuentas con saldos (balance de prueba).
	ListByCompany(companyID string, limit, offset int) ([]*entity.LedgerAccount, error)
}
