package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryLineRequest línea de asiento manual: débito XOR crédito.
type EntryLineRequest struct {
	AccountCode string          `json:"account_code" validate:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	CustomerID  string          `json:"customer_id"`
	SupplierID  string          `json:"supplier_id"`
}

// CreateEntryRequest asiento manual completo.
type CreateEntryRequest struct {
	EntryDate   *time.Time         `json:"entry_date"`
	Description string             `json:"description" validate:"required"`
	Lines       []EntryLineRequest `json:"lines" validate:"required,min=2"`
	Reference   string             `json:"reference"`
}

// InvoiceEntryRequest asiento automático de factura.
type InvoiceEntryRequest struct {
	InvoiceID     string          `json:"invoice_id" validate:"required"`
	CustomerID    string          `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"required"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	InvoiceNumber string          `json:"invoice_number" validate:"required"`
}

// PaymentEntryRequest asiento automático de pago.
type PaymentEntryRequest struct {
	PaymentID     string          `json:"payment_id" validate:"required"`
	InvoiceID     string          `json:"invoice_id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	InvoiceNumber string          `json:"invoice_number"`
}

// ExpenseEntryRequest asiento automático de gasto.
type ExpenseEntryRequest struct {
	ExpenseID   string          `json:"expense_id" validate:"required"`
	SupplierID  string          `json:"supplier_id"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	Description string          `json:"description" validate:"required"`
}

// EntryLineResponse línea persistida de un comprobante.
type EntryLineResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse comprobante de diario persistido.
type EntryResponse struct {
	ID          string              `json:"id"`
	EntryNumber string              `json:"entry_number"`
	EntryDate   time.Time           `json:"entry_date"`
	EntryType   string              `json:"entry_type"`
	Description string              `json:"description"`
	TotalDebit  decimal.Decimal     `json:"total_debit"`
	TotalCredit decimal.Decimal     `json:"total_credit"`
	Reference   string              `json:"reference,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

// AccountResponse cuenta del plan con saldos acumulados.
type AccountResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"account_type"`
	Currency    string          `json:"currency"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}
