package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta contable.
const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeIncome    = "income"
	AccountTypeExpense   = "expense"
)

// LedgerAccount representa una cuenta del plan de cuentas (PUC) de una empresa.
// Identidad de negocio: (CompanyID, Code). Balance es siempre exactamente la
// suma acumulada de todos los asientos contra la cuenta; solo el motor de
// asientos la muta, dentro de la misma transacción que crea el JournalEntry.
// Las cuentas se crean de forma perezosa al primer uso y nunca se eliminan.
type LedgerAccount struct {
	ID          string
	CompanyID   string
	Code        string // ej. 110505, 130505 (PUC)
	Name        string
	AccountType string // asset, liability, income, expense
	Currency    string // ISO 4217, ej. COP
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal // TotalDebit - TotalCredit
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
