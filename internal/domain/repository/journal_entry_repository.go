package repository

import (
	"time"

	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// EntryFilter filtros para listar comprobantes.
type EntryFilter struct {
	EntryType string
	From, To  *time.Time
	Limit     int
	Offset    int
}

// JournalEntryRepository define el puerto de persistencia de comprobantes de
// diario (DIP). Los asientos son inmutables: solo Create y lecturas.
type JournalEntryRepository interface {
	// LockCompanyJournal serializa la asignación de números de comprobante de
	// la empresa dentro de la transacción actual (advisory lock por empresa).
	LockCompanyJournal(companyID string) error
	// GetLastEntryNumber devuelve el mayor entry_number de la empresa
	// ("" si aún no hay asientos).
	GetLastEntryNumber(companyID string) (string, error)
	// Create persiste cabecera y líneas del comprobante.
	Create(entry *entity.JournalEntry) error
	GetByID(id string) (*entity.JournalEntry, error)
	ListByCompany(companyID string, filter EntryFilter) ([]*entity.JournalEntry, error)
}
