package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

func newTransferUC(eq *fakeEquipmentRepo) (*inventory.TransferUseCase, *fakeMovementRepo, *fakeTransferRepo) {
	mov := &fakeMovementRepo{}
	tr := newFakeTransferRepo()
	uc := inventory.NewTransferUseCase(&fakeTxRunner{mov: mov, eq: eq, tr: tr}, eq, tr, nil, nil)
	return uc, mov, tr
}

func validTransferInput(quantity int) inventory.TransferInput {
	return inventory.TransferInput{
		CompanyID:    companyID,
		EquipmentID:  taladroID,
		Quantity:     quantity,
		FromLocation: "Bodega Norte",
		ToLocation:   "Bodega Sur",
		RequestedBy:  bodegueroID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// InitiateTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestInitiateTransfer_RegistraSalida(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, mov, _ := newTransferUC(eq)

	transfer, err := uc.InitiateTransfer(context.Background(), validTransferInput(4))
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusPending, transfer.Status)
	assert.True(t, strings.HasPrefix(transfer.TransferNumber, "TRF-"))

	// la pata de salida descuenta el origen en la misma transacción
	current, _ := eq.GetByID(taladroID)
	assert.Equal(t, 6, current.Quantity)

	require.Len(t, mov.movements, 1)
	leg := mov.movements[0]
	assert.Equal(t, entity.MovementTypeTransfer, leg.MovementType)
	assert.Equal(t, -4, leg.Quantity)
	assert.Equal(t, transfer.TransferNumber, leg.Reference)
	assert.Equal(t, "Bodega Norte", leg.FromLocation)
	assert.Equal(t, "Bodega Sur", leg.ToLocation)
}

func TestInitiateTransfer_StockInsuficiente(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(3))
	uc, mov, _ := newTransferUC(eq)

	_, err := uc.InitiateTransfer(context.Background(), validTransferInput(5))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	current, _ := eq.GetByID(taladroID)
	assert.Equal(t, 3, current.Quantity)
	assert.Empty(t, mov.movements)
}

func TestInitiateTransfer_Validacion(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)
	ctx := context.Background()

	same := validTransferInput(2)
	same.ToLocation = same.FromLocation
	_, err := uc.InitiateTransfer(ctx, same)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero := validTransferInput(0)
	_, err = uc.InitiateTransfer(ctx, zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := validTransferInput(2)
	empty.FromLocation = ""
	_, err = uc.InitiateTransfer(ctx, empty)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInitiateTransfer_EquipoDeOtraEmpresa(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)

	input := validTransferInput(2)
	input.CompanyID = otherCoID
	_, err := uc.InitiateTransfer(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// StartTransit
// ──────────────────────────────────────────────────────────────────────────────

func TestStartTransit(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)
	ctx := context.Background()

	transfer, err := uc.InitiateTransfer(ctx, validTransferInput(4))
	require.NoError(t, err)

	moved, err := uc.StartTransit(ctx, companyID, transfer.ID, "Transportes XYZ", "GUIA-123")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusInTransit, moved.Status)
	assert.Equal(t, "Transportes XYZ", moved.Carrier)
	assert.Equal(t, "GUIA-123", moved.TrackingNumber)

	// transportista y guía quedan persistidos, no solo en la copia devuelta
	stored, err := uc.GetTransfer(ctx, companyID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Transportes XYZ", stored.Carrier)
	assert.Equal(t, "GUIA-123", stored.TrackingNumber)
	assert.Equal(t, entity.TransferStatusInTransit, stored.Status)

	// in_transit → in_transit no es una transición válida
	_, err = uc.StartTransit(ctx, companyID, transfer.ID, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransferState)
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteTransfer_RegistraEntrada(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, mov, _ := newTransferUC(eq)
	ctx := context.Background()

	transfer, err := uc.InitiateTransfer(ctx, validTransferInput(4))
	require.NoError(t, err)

	done, err := uc.CompleteTransfer(ctx, companyID, transfer.ID, "user-receptor")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCompleted, done.Status)
	assert.Equal(t, "user-receptor", done.ReceivedBy)
	require.NotNil(t, done.ReceivedDate)

	// la pata de entrada repone la cantidad total
	current, _ := eq.GetByID(taladroID)
	assert.Equal(t, 10, current.Quantity)

	require.Len(t, mov.movements, 2)
	in := mov.movements[1]
	assert.Equal(t, 4, in.Quantity)
	assert.Equal(t, transfer.TransferNumber, in.Reference)
}

func TestCompleteTransfer_DesdeInTransit(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)
	ctx := context.Background()

	transfer, err := uc.InitiateTransfer(ctx, validTransferInput(2))
	require.NoError(t, err)
	_, err = uc.StartTransit(ctx, companyID, transfer.ID, "", "")
	require.NoError(t, err)

	done, err := uc.CompleteTransfer(ctx, companyID, transfer.ID, "user-receptor")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, done.Status)
}

func TestCompleteTransfer_DobleRecepcion(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, mov, _ := newTransferUC(eq)
	ctx := context.Background()

	transfer, err := uc.InitiateTransfer(ctx, validTransferInput(4))
	require.NoError(t, err)
	_, err = uc.CompleteTransfer(ctx, companyID, transfer.ID, "user-receptor")
	require.NoError(t, err)

	// recibir dos veces no duplica la entrada
	_, err = uc.CompleteTransfer(ctx, companyID, transfer.ID, "otro-usuario")
	require.ErrorIs(t, err, domain.ErrInvalidTransferState)

	current, _ := eq.GetByID(taladroID)
	assert.Equal(t, 10, current.Quantity)
	assert.Len(t, mov.movements, 2)
}

func TestCompleteTransfer_OtraEmpresa(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)
	ctx := context.Background()

	transfer, err := uc.InitiateTransfer(ctx, validTransferInput(1))
	require.NoError(t, err)

	_, err = uc.CompleteTransfer(ctx, otherCoID, transfer.ID, "user-receptor")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListTransfers_PorEstado(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)
	ctx := context.Background()

	first, err := uc.InitiateTransfer(ctx, validTransferInput(2))
	require.NoError(t, err)
	_, err = uc.InitiateTransfer(ctx, validTransferInput(3))
	require.NoError(t, err)
	_, err = uc.CompleteTransfer(ctx, companyID, first.ID, "user-receptor")
	require.NoError(t, err)

	pending, err := uc.ListTransfers(ctx, companyID, entity.TransferStatusPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := uc.ListTransfers(ctx, companyID, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetTransfer(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(10))
	uc, _, _ := newTransferUC(eq)
	ctx := context.Background()

	transfer, err := uc.InitiateTransfer(ctx, validTransferInput(2))
	require.NoError(t, err)

	got, err := uc.GetTransfer(ctx, companyID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.ID, got.ID)

	_, err = uc.GetTransfer(ctx, companyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetTransfer(ctx, otherCoID, transfer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
