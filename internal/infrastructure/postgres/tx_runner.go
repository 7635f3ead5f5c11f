package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appacc "github.com/tu-usuario/rental-pro/internal/application/accounting"
	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// Ensure TxRunner implements the application-level runners.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ appacc.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	equipmentRepo := NewEquipmentRepository(tx)

	if err := fn(movRepo, equipmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransfer inicia una transacción con repos de movimientos, equipos y traslados.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	equipmentRepo repository.EquipmentRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	equipmentRepo := NewEquipmentRepository(tx)
	transferRepo := NewStockTransferRepository(tx)

	if err := fn(movRepo, equipmentRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccounting inicia una transacción con repos contables (asientos y cuentas).
func (r *TxRunner) RunAccounting(ctx context.Context, fn func(
	accountRepo repository.LedgerAccountRepository,
	entryRepo repository.JournalEntryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accountRepo := NewLedgerAccountRepository(tx)
	entryRepo := NewJournalEntryRepository(tx)

	if err := fn(accountRepo, entryRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
