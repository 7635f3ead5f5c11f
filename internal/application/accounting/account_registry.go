package accounting

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/rental-pro/internal/domain"
	domacc "github.com/tu-usuario/rental-pro/internal/domain/accounting"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// ResolveOrCreateAccount busca la cuenta (companyID, code) y la crea en cero
// si no existe, con nombre/tipo sintetizados del plan de cuentas. Es seguro
// ante carreras: la inserción usa ON CONFLICT DO NOTHING sobre el constraint
// único (company_id, code) y se relee después; si aun así no aparece, se
// reporta ErrAccountConflict (transitorio, reintentable).
//
// Debe invocarse con un repositorio atado a la transacción del asiento.
func ResolveOrCreateAccount(accountRepo repository.LedgerAccountRepository, companyID, code, currency string) (*entity.LedgerAccount, error) {
	account, err := accountRepo.GetByCode(companyID, code)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	info := domacc.AccountInfoForCode(code)
	now := time.Now()
	if err := accountRepo.CreateIfAbsent(&entity.LedgerAccount{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        code,
		Name:        info.Name,
		AccountType: info.Type,
		Currency:    currency,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}

	account, err = accountRepo.GetByCode(companyID, code)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountConflict
	}
	return account, nil
}
