package accounting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domacc "github.com/tu-usuario/rental-pro/internal/domain/accounting"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// Asientos automáticos: derivaciones puras de los flujos de factura, pago y
// gasto hacia el formato genérico de líneas de Post. No agregan invariantes
// propios más allá del cuadre.

// InvoiceEntryInput datos de una factura ya calculada (el núcleo no computa
// impuestos: neto, IVA y total llegan listos del flujo de facturación).
type InvoiceEntryInput struct {
	InvoiceID     string
	CompanyID     string
	CustomerID    string
	TotalAmount   decimal.Decimal // total bruto (neto + IVA)
	VATAmount     decimal.Decimal
	InvoiceNumber string
	CreatedBy     string
}

// PostInvoiceEntry registra el asiento de una factura de alquiler:
// debe Clientes por el bruto, haber Ingresos por el neto y haber IVA generado
// por el impuesto.
func (uc *PostEntryUseCase) PostInvoiceEntry(ctx context.Context, input InvoiceEntryInput) (*entity.JournalEntry, error) {
	net := input.TotalAmount.Sub(input.VATAmount)
	lines := []LineInput{
		{
			// Debe: Clientes (el cliente queda debiendo el bruto)
			AccountCode: domacc.CodeReceivables,
			Debit:       input.TotalAmount,
			Description: fmt.Sprintf("Factura de alquiler %s", input.InvoiceNumber),
			CustomerID:  input.CustomerID,
		},
		{
			// Haber: Ingresos por alquiler (neto)
			AccountCode: domacc.CodeRentalRevenue,
			Credit:      net,
			Description: fmt.Sprintf("Ingreso por alquiler %s", input.InvoiceNumber),
		},
	}
	if !input.VATAmount.IsZero() {
		lines = append(lines, LineInput{
			// Haber: IVA generado
			AccountCode: domacc.CodeVATPayable,
			Credit:      input.VATAmount,
			Description: fmt.Sprintf("IVA factura %s", input.InvoiceNumber),
		})
	}
	return uc.Post(ctx, EntryInput{
		CompanyID:   input.CompanyID,
		EntryType:   entity.EntryTypeAutoInvoice,
		Description: fmt.Sprintf("Factura de alquiler - %s", input.InvoiceNumber),
		Reference:   fmt.Sprintf("INV-%s", input.InvoiceNumber),
		ReferenceID: input.InvoiceID,
		CreatedBy:   input.CreatedBy,
		Lines:       lines,
	})
}

// Métodos de pago reconocidos por el asiento automático.
const (
	PaymentMethodCash = "cash"
	PaymentMethodBank = "bank" // transferencia, tarjeta, PSE: todo entra por Bancos
)

// PaymentEntryInput datos de un pago recibido contra una factura.
type PaymentEntryInput struct {
	PaymentID     string
	InvoiceID     string
	CompanyID     string
	CustomerID    string
	Amount        decimal.Decimal
	PaymentMethod string // cash → Caja; cualquier otro → Bancos
	InvoiceNumber string
	CreatedBy     string
}

// PostPaymentEntry registra el asiento de un pago: debe Caja o Bancos según el
// método y haber Clientes (el saldo del cliente baja).
func (uc *PostEntryUseCase) PostPaymentEntry(ctx context.Context, input PaymentEntryInput) (*entity.JournalEntry, error) {
	cashCode := domacc.CodeBank
	cashDesc := "Pago recibido por banco"
	if input.PaymentMethod == PaymentMethodCash {
		cashCode = domacc.CodeCash
		cashDesc = "Pago recibido en caja"
	}
	return uc.Post(ctx, EntryInput{
		CompanyID:   input.CompanyID,
		EntryType:   entity.EntryTypeAutoPayment,
		Description: fmt.Sprintf("Pago recibido - Factura %s", input.InvoiceNumber),
		Reference:   fmt.Sprintf("PAY-%s", input.PaymentID),
		ReferenceID: input.PaymentID,
		CreatedBy:   input.CreatedBy,
		Lines: []LineInput{
			{
				AccountCode: cashCode,
				Debit:       input.Amount,
				Description: cashDesc,
			},
			{
				AccountCode: domacc.CodeReceivables,
				Credit:      input.Amount,
				Description: fmt.Sprintf("Pago del cliente - Factura %s", input.InvoiceNumber),
				CustomerID:  input.CustomerID,
			},
		},
	})
}

// ExpenseEntryInput datos de un gasto. SupplierID vacío significa pago de
// contado (haber Caja); con proveedor queda como cuenta por pagar.
type ExpenseEntryInput struct {
	ExpenseID   string
	CompanyID   string
	SupplierID  string
	Amount      decimal.Decimal // total bruto (neto + IVA)
	VATAmount   decimal.Decimal
	Description string
	CreatedBy   string
}

// PostExpenseEntry registra el asiento de un gasto: debe Gastos por el neto,
// debe IVA descontable por el impuesto, y haber Proveedores o Caja por el
// bruto según haya o no proveedor.
func (uc *PostEntryUseCase) PostExpenseEntry(ctx context.Context, input ExpenseEntryInput) (*entity.JournalEntry, error) {
	net := input.Amount.Sub(input.VATAmount)
	creditCode := domacc.CodeCash
	creditDesc := "Pago de contado"
	if input.SupplierID != "" {
		creditCode = domacc.CodePayables
		creditDesc = "Cuenta por pagar a proveedor"
	}
	lines := []LineInput{
		{
			AccountCode: domacc.CodeExpenses,
			Debit:       net,
			Description: fmt.Sprintf("Gasto - %s", input.Description),
		},
	}
	if !input.VATAmount.IsZero() {
		lines = append(lines, LineInput{
			AccountCode: domacc.CodeVATReceivable,
			Debit:       input.VATAmount,
			Description: fmt.Sprintf("IVA descontable - %s", input.Description),
		})
	}
	lines = append(lines, LineInput{
		AccountCode: creditCode,
		Credit:      input.Amount,
		Description: creditDesc,
		SupplierID:  input.SupplierID,
	})
	return uc.Post(ctx, EntryInput{
		CompanyID:   input.CompanyID,
		EntryType:   entity.EntryTypeAutoExpense,
		Description: fmt.Sprintf("Registro de gasto - %s", input.Description),
		Reference:   fmt.Sprintf("EXP-%s", input.ExpenseID),
		ReferenceID: input.ExpenseID,
		CreatedBy:   input.CreatedBy,
		Lines:       lines,
	})
}
