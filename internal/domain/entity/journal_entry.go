package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento contable.
const (
	EntryTypeManual      = "manual"
	EntryTypeAutoInvoice = "auto_invoice"
	EntryTypeAutoPayment = "auto_payment"
	EntryTypeAutoExpense = "auto_expense"
)

// JournalEntry representa un comprobante de diario (partida doble).
// EntryNumber es secuencial por empresa con formato YF-######, estrictamente
// creciente y sin duplicados. Invariante: TotalDebit == TotalCredit (epsilon
// 0.01); un asiento desbalanceado jamás se persiste. Inmutable tras crearse.
type JournalEntry struct {
	ID          string
	CompanyID   string
	EntryNumber string // YF-000001, YF-000002, ...
	EntryDate   time.Time
	EntryType   string // manual, auto_invoice, auto_payment, auto_expense
	Description string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Reference   string // ej. INV-<número>, PAY-<id>
	ReferenceID string // id de factura/pago/gasto origen
	CreatedBy   string // UserID, opcional
	CreatedAt   time.Time
	Lines       []JournalEntryLine
}

// JournalEntryLine es una línea de asiento: referencia una cuenta con un débito
// XOR un crédito no negativo (nunca ambos distintos de cero).
type JournalEntryLine struct {
	ID           string
	EntryID      string
	AccountID    string
	AccountCode  string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
	Description  string
	CustomerID   string // opcional
	SupplierID   string // opcional
}
