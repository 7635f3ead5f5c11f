package accounting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/rental-pro/internal/domain"
	domacc "github.com/tu-usuario/rental-pro/internal/domain/accounting"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
	"github.com/tu-usuario/rental-pro/pkg/logger"
)

// PostEntryUseCase es el motor de asientos de partida doble. Toda mutación
// contable pasa por Post: valida el cuadre, asigna número secuencial por
// empresa (YF-######), resuelve o crea las cuentas referenciadas y aplica los
// deltas de saldo — todo en una transacción.
type PostEntryUseCase struct {
	txRunner    TxRunner
	accountRepo repository.LedgerAccountRepository // lecturas fuera de tx
	entryRepo   repository.JournalEntryRepository  // lecturas fuera de tx
	currency    string
	log         *logger.Logger
}

// NewPostEntryUseCase construye el motor de asientos. currency es la moneda
// por defecto para cuentas creadas perezosamente (ej. COP).
func NewPostEntryUseCase(
	txRunner TxRunner,
	accountRepo repository.LedgerAccountRepository,
	entryRepo repository.JournalEntryRepository,
	currency string,
	log *logger.Logger,
) *PostEntryUseCase {
	if currency == "" {
		currency = "COP"
	}
	return &PostEntryUseCase{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		currency:    currency,
		log:         log,
	}
}

// LineInput línea de asiento: cuenta por código y débito XOR crédito.
type LineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
	CustomerID  string
	SupplierID  string
}

// EntryInput entrada para registrar un comprobante.
type EntryInput struct {
	CompanyID   string
	EntryDate   time.Time
	EntryType   string // manual, auto_invoice, auto_payment, auto_expense
	Description string
	Lines       []LineInput
	Reference   string
	ReferenceID string
	CreatedBy   string
}

// postRetries reintentos ante carreras transitorias (número de comprobante
// duplicado o conflicto creando una cuenta).
const postRetries = 2

// Post valida y persiste un asiento balanceado. Un asiento descuadrado se
// rechaza con ErrUnbalancedEntry sin persistir nada; el caller debe tratarlo
// como fatal para su sub-paso, sin revertir efectos ya confirmados de otros
// pasos.
func (uc *PostEntryUseCase) Post(ctx context.Context, input EntryInput) (*entity.JournalEntry, error) {
	switch input.EntryType {
	case entity.EntryTypeManual, entity.EntryTypeAutoInvoice, entity.EntryTypeAutoPayment, entity.EntryTypeAutoExpense:
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]entity.JournalEntryLine, len(input.Lines))
	for i, l := range input.Lines {
		desc := l.Description
		if desc == "" {
			desc = input.Description
		}
		lines[i] = entity.JournalEntryLine{
			AccountCode:  l.AccountCode,
			DebitAmount:  l.Debit,
			CreditAmount: l.Credit,
			Description:  desc,
			CustomerID:   l.CustomerID,
			SupplierID:   l.SupplierID,
		}
	}
	if err := domacc.ValidateLines(lines); err != nil {
		return nil, err
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	totalDebit, totalCredit := domacc.Totals(lines)

	var entry *entity.JournalEntry
	var err error
	for attempt := 0; attempt <= postRetries; attempt++ {
		entry, err = uc.postOnce(ctx, input, lines, entryDate, totalDebit, totalCredit)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) && !errors.Is(err, domain.ErrAccountConflict) {
			return nil, err
		}
		if uc.log != nil {
			uc.log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("company_id", input.CompanyID).
				Msg("conflicto transitorio registrando asiento, reintentando")
		}
	}
	if err != nil {
		return nil, err
	}

	if uc.log != nil {
		uc.log.Info().
			Str("entry_number", entry.EntryNumber).
			Str("entry_type", entry.EntryType).
			Str("total_debit", totalDebit.String()).
			Msg("asiento registrado")
	}
	return entry, nil
}

// postOnce ejecuta un intento completo dentro de una transacción.
func (uc *PostEntryUseCase) postOnce(
	ctx context.Context,
	input EntryInput,
	lines []entity.JournalEntryLine,
	entryDate time.Time,
	totalDebit, totalCredit decimal.Decimal,
) (*entity.JournalEntry, error) {
	var entry *entity.JournalEntry
	err := uc.txRunner.RunAccounting(ctx, func(
		accountRepo repository.LedgerAccountRepository,
		entryRepo repository.JournalEntryRepository,
	) error {
		// Serializa la asignación de números por empresa; el constraint único
		// (company_id, entry_number) respalda el lock ante cualquier carrera.
		if err := entryRepo.LockCompanyJournal(input.CompanyID); err != nil {
			return err
		}
		last, err := entryRepo.GetLastEntryNumber(input.CompanyID)
		if err != nil {
			return err
		}

		entryLines := make([]entity.JournalEntryLine, len(lines))
		copy(entryLines, lines)
		for i := range entryLines {
			account, err := ResolveOrCreateAccount(accountRepo, input.CompanyID, entryLines[i].AccountCode, uc.currency)
			if err != nil {
				return err
			}
			entryLines[i].ID = uuid.New().String()
			entryLines[i].AccountID = account.ID
		}

		entry = &entity.JournalEntry{
			ID:          uuid.New().String(),
			CompanyID:   input.CompanyID,
			EntryNumber: domacc.NextEntryNumber(last),
			EntryDate:   entryDate,
			EntryType:   input.EntryType,
			Description: input.Description,
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
			Reference:   input.Reference,
			ReferenceID: input.ReferenceID,
			CreatedBy:   input.CreatedBy,
			CreatedAt:   time.Now(),
			Lines:       entryLines,
		}
		if err := entryRepo.Create(entry); err != nil {
			return err
		}

		for _, l := range entryLines {
			if err := accountRepo.ApplyPosting(l.AccountID, l.DebitAmount, l.CreditAmount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ── Proyecciones de lectura ───────────────────────────────────────────────────

// GetEntry devuelve un comprobante con sus líneas.
func (uc *PostEntryUseCase) GetEntry(ctx context.Context, companyID, entryID string) (*entity.JournalEntry, error) {
	entry, err := uc.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if entry.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

// ListEntries lista comprobantes de la empresa con filtros opcionales.
func (uc *PostEntryUseCase) ListEntries(ctx context.Context, companyID string, filter repository.EntryFilter) ([]*entity.JournalEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.entryRepo.ListByCompany(companyID, filter)
}

// ListAccounts devuelve el plan de cuentas con saldos (balance de prueba).
func (uc *PostEntryUseCase) ListAccounts(ctx context.Context, companyID string, limit, offset int) ([]*entity.LedgerAccount, error) {
	if limit <= 0 {
		limit = 200
	}
	return uc.accountRepo.ListByCompany(companyID, limit, offset)
}
