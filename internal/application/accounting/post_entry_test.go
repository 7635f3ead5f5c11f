package accounting_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appacc "github.com/tu-usuario/rental-pro/internal/application/accounting"
	"github.com/tu-usuario/rental-pro/internal/domain"
	domacc "github.com/tu-usuario/rental-pro/internal/domain/accounting"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

const companyID = "company-1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con la semántica del adaptador de PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

type fakeAccountRepo struct {
	byID map[string]*entity.LedgerAccount
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: map[string]*entity.LedgerAccount{}}
}

func (r *fakeAccountRepo) CreateIfAbsent(account *entity.LedgerAccount) error {
	for _, a := range r.byID {
		if a.CompanyID == account.CompanyID && a.Code == account.Code {
			return nil // ON CONFLICT DO NOTHING
		}
	}
	cp := *account
	r.byID[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.LedgerAccount, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByCode(companyID, code string) (*entity.LedgerAccount, error) {
	for _, a := range r.byID {
		if a.CompanyID == companyID && a.Code == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) ApplyPosting(accountID string, debit, credit decimal.Decimal) error {
	a, ok := r.byID[accountID]
	if !ok {
		return domain.ErrNotFound
	}
	a.TotalDebit = a.TotalDebit.Add(debit)
	a.TotalCredit = a.TotalCredit.Add(credit)
	a.Balance = a.TotalDebit.Sub(a.TotalCredit)
	return nil
}

func (r *fakeAccountRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.LedgerAccount, error) {
	var out []*entity.LedgerAccount
	for _, a := range r.byID {
		if a.CompanyID == companyID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type fakeEntryRepo struct {
	entries []*entity.JournalEntry
	// failCreates hace fallar los próximos N Create con ErrDuplicate,
	// simulando la carrera sobre (company_id, entry_number)
	failCreates int
}

func (r *fakeEntryRepo) LockCompanyJournal(companyID string) error { return nil }

func (r *fakeEntryRepo) GetLastEntryNumber(companyID string) (string, error) {
	last := ""
	for _, e := range r.entries {
		if e.CompanyID != companyID {
			continue
		}
		if len(e.EntryNumber) > len(last) ||
			(len(e.EntryNumber) == len(last) && e.EntryNumber > last) {
			last = e.EntryNumber
		}
	}
	return last, nil
}

func (r *fakeEntryRepo) Create(entry *entity.JournalEntry) error {
	if r.failCreates > 0 {
		r.failCreates--
		return domain.ErrDuplicate
	}
	for _, e := range r.entries {
		if e.CompanyID == entry.CompanyID && e.EntryNumber == entry.EntryNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) GetByID(id string) (*entity.JournalEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) ListByCompany(companyID string, filter repository.EntryFilter) ([]*entity.JournalEntry, error) {
	var out []*entity.JournalEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.CompanyID != companyID {
			continue
		}
		if filter.EntryType != "" && e.EntryType != filter.EntryType {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTxRunner struct {
	accounts *fakeAccountRepo
	entries  *fakeEntryRepo
}

func (f *fakeTxRunner) RunAccounting(ctx context.Context, fn func(
	accountRepo repository.LedgerAccountRepository,
	entryRepo repository.JournalEntryRepository,
) error) error {
	return fn(f.accounts, f.entries)
}

// serialTxRunner emula el pg_advisory_xact_lock del adaptador real: el
// candado se toma al inicio de la transacción y se suelta al confirmar,
// serializando la numeración entre goroutines concurrentes.
type serialTxRunner struct {
	mu       sync.Mutex
	accounts *fakeAccountRepo
	entries  *fakeEntryRepo
}

func (f *serialTxRunner) RunAccounting(ctx context.Context, fn func(
	accountRepo repository.LedgerAccountRepository,
	entryRepo repository.JournalEntryRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.accounts, f.entries)
}

func newEngine() (*appacc.PostEntryUseCase, *fakeAccountRepo, *fakeEntryRepo) {
	accounts := newFakeAccountRepo()
	entries := &fakeEntryRepo{}
	uc := appacc.NewPostEntryUseCase(&fakeTxRunner{accounts: accounts, entries: entries}, accounts, entries, "COP", nil)
	return uc, accounts, entries
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func invoiceLines(total, vat float64) []appacc.LineInput {
	lines := []appacc.LineInput{
		{AccountCode: domacc.CodeReceivables, Debit: dec(total)},
		{AccountCode: domacc.CodeRentalRevenue, Credit: dec(total - vat)},
	}
	if vat != 0 {
		lines = append(lines, appacc.LineInput{AccountCode: domacc.CodeVATPayable, Credit: dec(vat)})
	}
	return lines
}

// ──────────────────────────────────────────────────────────────────────────────
// Post
// ──────────────────────────────────────────────────────────────────────────────

func TestPost_AsientoBalanceado(t *testing.T) {
	uc, accounts, entries := newEngine()

	entry, err := uc.Post(context.Background(), appacc.EntryInput{
		CompanyID:   companyID,
		EntryType:   entity.EntryTypeManual,
		Description: "Factura de alquiler 001",
		Lines:       invoiceLines(119, 19),
	})
	require.NoError(t, err)

	assert.Equal(t, "YF-000001", entry.EntryNumber)
	assert.True(t, entry.TotalDebit.Equal(dec(119)))
	assert.True(t, entry.TotalCredit.Equal(dec(119)))
	require.Len(t, entry.Lines, 3)
	assert.Len(t, entries.entries, 1)

	// cuentas creadas perezosamente con metadatos del plan
	receivables, _ := accounts.GetByCode(companyID, domacc.CodeReceivables)
	require.NotNil(t, receivables)
	assert.Equal(t, "Clientes", receivables.Name)
	assert.Equal(t, entity.AccountTypeAsset, receivables.AccountType)
	assert.Equal(t, "COP", receivables.Currency)
	assert.True(t, receivables.Balance.Equal(dec(119)))

	revenue, _ := accounts.GetByCode(companyID, domacc.CodeRentalRevenue)
	require.NotNil(t, revenue)
	assert.True(t, revenue.Balance.Equal(dec(-100)))
}

func TestPost_DescuadradoNoPersiste(t *testing.T) {
	uc, accounts, entries := newEngine()

	_, err := uc.Post(context.Background(), appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines: []appacc.LineInput{
			{AccountCode: domacc.CodeReceivables, Debit: dec(100)},
			{AccountCode: domacc.CodeRentalRevenue, Credit: dec(90)},
		},
	})
	require.ErrorIs(t, err, domain.ErrUnbalancedEntry)

	assert.Empty(t, entries.entries)
	assert.Empty(t, accounts.byID)
}

func TestPost_EpsilonDeCuadre(t *testing.T) {
	uc, _, _ := newEngine()
	ctx := context.Background()

	// desvío de 0.01 por redondeo es aceptable
	_, err := uc.Post(ctx, appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines: []appacc.LineInput{
			{AccountCode: domacc.CodeReceivables, Debit: dec(100.01)},
			{AccountCode: domacc.CodeRentalRevenue, Credit: dec(100)},
		},
	})
	assert.NoError(t, err)

	// 0.02 ya no
	_, err = uc.Post(ctx, appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines: []appacc.LineInput{
			{AccountCode: domacc.CodeReceivables, Debit: dec(100.02)},
			{AccountCode: domacc.CodeRentalRevenue, Credit: dec(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
}

func TestPost_LineasMalformadas(t *testing.T) {
	uc, _, _ := newEngine()
	ctx := context.Background()

	cases := [][]appacc.LineInput{
		nil, // sin líneas
		{{AccountCode: domacc.CodeReceivables, Debit: dec(50), Credit: dec(50)}},         // ambos lados
		{{AccountCode: domacc.CodeReceivables}, {AccountCode: domacc.CodeRentalRevenue}}, // ninguno
		{{AccountCode: domacc.CodeReceivables, Debit: dec(-10)}, {AccountCode: domacc.CodeRentalRevenue, Credit: dec(-10)}},
		{{Debit: dec(10)}, {AccountCode: domacc.CodeRentalRevenue, Credit: dec(10)}}, // sin cuenta
	}
	for i, lines := range cases {
		_, err := uc.Post(ctx, appacc.EntryInput{
			CompanyID: companyID,
			EntryType: entity.EntryTypeManual,
			Lines:     lines,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestPost_TipoDesconocido(t *testing.T) {
	uc, _, _ := newEngine()
	_, err := uc.Post(context.Background(), appacc.EntryInput{
		CompanyID: companyID,
		EntryType: "auto_magic",
		Lines:     invoiceLines(100, 0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPost_NumeracionSecuencialPorEmpresa(t *testing.T) {
	uc, _, _ := newEngine()
	ctx := context.Background()

	for i, want := range []string{"YF-000001", "YF-000002", "YF-000003"} {
		entry, err := uc.Post(ctx, appacc.EntryInput{
			CompanyID: companyID,
			EntryType: entity.EntryTypeManual,
			Lines:     invoiceLines(100, 0),
		})
		require.NoError(t, err, "asiento %d", i)
		assert.Equal(t, want, entry.EntryNumber)
	}

	// otra empresa arranca su propia secuencia
	entry, err := uc.Post(ctx, appacc.EntryInput{
		CompanyID: "company-2",
		EntryType: entity.EntryTypeManual,
		Lines:     invoiceLines(100, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "YF-000001", entry.EntryNumber)
}

func TestPost_ReintentaAnteNumeroDuplicado(t *testing.T) {
	uc, _, entries := newEngine()
	entries.failCreates = 1

	entry, err := uc.Post(context.Background(), appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines:     invoiceLines(100, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, "YF-000001", entry.EntryNumber)
	assert.Len(t, entries.entries, 1)
}

func TestPost_AgotaReintentos(t *testing.T) {
	uc, _, entries := newEngine()
	entries.failCreates = 10

	_, err := uc.Post(context.Background(), appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines:     invoiceLines(100, 0),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPost_NumeracionConcurrente(t *testing.T) {
	// N goroutines contabilizando a la vez contra el mismo diario: el
	// candado por empresa más el único (company_id, entry_number) deben
	// producir N números distintos y consecutivos, sin huecos
	accounts := newFakeAccountRepo()
	entries := &fakeEntryRepo{}
	runner := &serialTxRunner{accounts: accounts, entries: entries}
	uc := appacc.NewPostEntryUseCase(runner, accounts, entries, "COP", nil)

	const n = 16
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := uc.Post(context.Background(), appacc.EntryInput{
				CompanyID: companyID,
				EntryType: entity.EntryTypeManual,
				Lines:     invoiceLines(100, 0),
			})
			if assert.NoError(t, err) {
				numbers <- entry.EntryNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	var got []string
	for num := range numbers {
		got = append(got, num)
	}
	require.Len(t, got, n)
	sort.Strings(got)
	for i, num := range got {
		assert.Equal(t, fmt.Sprintf("YF-%06d", i+1), num)
	}
}

func TestPost_SaldosAcumulan(t *testing.T) {
	uc, accounts, _ := newEngine()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.Post(ctx, appacc.EntryInput{
			CompanyID: companyID,
			EntryType: entity.EntryTypeManual,
			Lines:     invoiceLines(119, 19),
		})
		require.NoError(t, err)
	}

	receivables, _ := accounts.GetByCode(companyID, domacc.CodeReceivables)
	assert.True(t, receivables.Balance.Equal(dec(238)))
	vat, _ := accounts.GetByCode(companyID, domacc.CodeVATPayable)
	assert.True(t, vat.TotalCredit.Equal(dec(38)))
	// la cuenta se reutiliza, no se duplica
	assert.Len(t, accounts.byID, 3)
}

func TestPost_CodigoFueraDelPlan(t *testing.T) {
	uc, accounts, _ := newEngine()

	_, err := uc.Post(context.Background(), appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines: []appacc.LineInput{
			{AccountCode: "999999", Debit: dec(10)},
			{AccountCode: domacc.CodeRentalRevenue, Credit: dec(10)},
		},
	})
	require.NoError(t, err)

	exotic, _ := accounts.GetByCode(companyID, "999999")
	require.NotNil(t, exotic)
	assert.Equal(t, "Cuenta 999999", exotic.Name)
	assert.Equal(t, entity.AccountTypeAsset, exotic.AccountType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asientos automáticos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostInvoiceEntry(t *testing.T) {
	uc, accounts, _ := newEngine()

	entry, err := uc.PostInvoiceEntry(context.Background(), appacc.InvoiceEntryInput{
		InvoiceID:     "inv-1",
		CompanyID:     companyID,
		CustomerID:    "cust-1",
		TotalAmount:   dec(118),
		VATAmount:     dec(18),
		InvoiceNumber: "F-0001",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EntryTypeAutoInvoice, entry.EntryType)
	assert.Equal(t, "INV-F-0001", entry.Reference)
	assert.Equal(t, "inv-1", entry.ReferenceID)
	require.Len(t, entry.Lines, 3)
	assert.True(t, entry.TotalDebit.Equal(entry.TotalCredit))

	receivables, _ := accounts.GetByCode(companyID, domacc.CodeReceivables)
	assert.True(t, receivables.TotalDebit.Equal(dec(118))) // bruto
	revenue, _ := accounts.GetByCode(companyID, domacc.CodeRentalRevenue)
	assert.True(t, revenue.TotalCredit.Equal(dec(100))) // neto sin IVA
	vat, _ := accounts.GetByCode(companyID, domacc.CodeVATPayable)
	assert.True(t, vat.TotalCredit.Equal(dec(18)))
}

func TestPostInvoiceEntry_SinIVA(t *testing.T) {
	uc, _, _ := newEngine()

	entry, err := uc.PostInvoiceEntry(context.Background(), appacc.InvoiceEntryInput{
		InvoiceID:     "inv-2",
		CompanyID:     companyID,
		TotalAmount:   dec(80),
		InvoiceNumber: "F-0002",
	})
	require.NoError(t, err)
	assert.Len(t, entry.Lines, 2) // sin línea de IVA
}

func TestPostPaymentEntry_PorMetodo(t *testing.T) {
	cases := []struct {
		method   string
		wantCode string
	}{
		{appacc.PaymentMethodCash, domacc.CodeCash},
		{appacc.PaymentMethodBank, domacc.CodeBank},
		{"pse", domacc.CodeBank}, // cualquier método no-efectivo entra por bancos
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			uc, accounts, _ := newEngine()

			entry, err := uc.PostPaymentEntry(context.Background(), appacc.PaymentEntryInput{
				PaymentID:     "pay-1",
				CompanyID:     companyID,
				CustomerID:    "cust-1",
				Amount:        dec(50),
				PaymentMethod: tc.method,
				InvoiceNumber: "F-0001",
			})
			require.NoError(t, err)
			assert.Equal(t, entity.EntryTypeAutoPayment, entry.EntryType)

			cash, _ := accounts.GetByCode(companyID, tc.wantCode)
			require.NotNil(t, cash)
			assert.True(t, cash.TotalDebit.Equal(dec(50)))
			receivables, _ := accounts.GetByCode(companyID, domacc.CodeReceivables)
			assert.True(t, receivables.TotalCredit.Equal(dec(50)))
		})
	}
}

func TestPostExpenseEntry_ConProveedor(t *testing.T) {
	uc, accounts, _ := newEngine()

	entry, err := uc.PostExpenseEntry(context.Background(), appacc.ExpenseEntryInput{
		ExpenseID:   "exp-1",
		CompanyID:   companyID,
		SupplierID:  "sup-1",
		Amount:      dec(119),
		VATAmount:   dec(19),
		Description: "Mantenimiento de andamios",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EntryTypeAutoExpense, entry.EntryType)
	require.Len(t, entry.Lines, 3)

	expenses, _ := accounts.GetByCode(companyID, domacc.CodeExpenses)
	assert.True(t, expenses.TotalDebit.Equal(dec(100)))
	vat, _ := accounts.GetByCode(companyID, domacc.CodeVATReceivable)
	assert.True(t, vat.TotalDebit.Equal(dec(19)))
	payables, _ := accounts.GetByCode(companyID, domacc.CodePayables)
	assert.True(t, payables.TotalCredit.Equal(dec(119)))
}

func TestPostExpenseEntry_DeContado(t *testing.T) {
	uc, accounts, _ := newEngine()

	_, err := uc.PostExpenseEntry(context.Background(), appacc.ExpenseEntryInput{
		ExpenseID:   "exp-2",
		CompanyID:   companyID,
		Amount:      dec(40),
		Description: "Combustible",
	})
	require.NoError(t, err)

	// sin proveedor el haber va contra Caja
	cash, _ := accounts.GetByCode(companyID, domacc.CodeCash)
	require.NotNil(t, cash)
	assert.True(t, cash.TotalCredit.Equal(dec(40)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetEntry(t *testing.T) {
	uc, _, _ := newEngine()
	ctx := context.Background()

	entry, err := uc.Post(ctx, appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines:     invoiceLines(100, 0),
	})
	require.NoError(t, err)

	got, err := uc.GetEntry(ctx, companyID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.EntryNumber, got.EntryNumber)

	_, err = uc.GetEntry(ctx, "company-2", entry.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetEntry(ctx, companyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListEntries_FiltroPorTipo(t *testing.T) {
	uc, _, _ := newEngine()
	ctx := context.Background()

	_, err := uc.Post(ctx, appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines:     invoiceLines(100, 0),
	})
	require.NoError(t, err)
	_, err = uc.PostInvoiceEntry(ctx, appacc.InvoiceEntryInput{
		InvoiceID: "inv-1", CompanyID: companyID, TotalAmount: dec(50), InvoiceNumber: "F-0001",
	})
	require.NoError(t, err)

	auto, err := uc.ListEntries(ctx, companyID, repository.EntryFilter{EntryType: entity.EntryTypeAutoInvoice})
	require.NoError(t, err)
	require.Len(t, auto, 1)
	assert.Equal(t, entity.EntryTypeAutoInvoice, auto[0].EntryType)
}

func TestListAccounts_BalanceDePrueba(t *testing.T) {
	uc, _, _ := newEngine()
	ctx := context.Background()

	_, err := uc.Post(ctx, appacc.EntryInput{
		CompanyID: companyID,
		EntryType: entity.EntryTypeManual,
		Lines:     invoiceLines(119, 19),
	})
	require.NoError(t, err)

	accounts, err := uc.ListAccounts(ctx, companyID, 0, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	// el balance de prueba cierra: suma de saldos en cero
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	assert.True(t, total.IsZero())
	// ordenado por código
	assert.Equal(t, domacc.CodeReceivables, accounts[0].Code)
}
