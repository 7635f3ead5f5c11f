package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rental-pro/internal/application/inventory"
	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

func newMonitor(eq *fakeEquipmentRepo) (*inventory.AlertMonitorUseCase, *fakeAlertRepo) {
	alerts := newFakeAlertRepo()
	uc := inventory.NewAlertMonitorUseCase(eq, alerts, 5, 2, nil)
	return uc, alerts
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de decisión
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckStockLevels_TablaDeDecision(t *testing.T) {
	cases := []struct {
		name         string
		quantity     int
		wantType     string
		wantSeverity string
	}{
		{"agotado", 0, entity.AlertTypeOutOfStock, entity.AlertSeverityCritical},
		{"critico", 2, entity.AlertTypeLowStock, entity.AlertSeverityCritical},
		{"bajo", 5, entity.AlertTypeLowStock, entity.AlertSeverityHigh},
		{"sano", 6, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq := newFakeEquipmentRepo(taladro(tc.quantity))
			uc, alerts := newMonitor(eq)

			require.NoError(t, uc.CheckStockLevels(context.Background(), taladroID, companyID))

			active, _ := alerts.GetActiveByEquipment(taladroID)
			if tc.wantType == "" {
				assert.Nil(t, active)
				return
			}
			require.NotNil(t, active)
			assert.Equal(t, tc.wantType, active.AlertType)
			assert.Equal(t, tc.wantSeverity, active.Severity)
			assert.Equal(t, tc.quantity, active.CurrentStock)
		})
	}
}

func TestCheckStockLevels_UmbralesPorEquipo(t *testing.T) {
	// MinStock/CriticalStock del equipo prevalecen sobre los globales
	item := taladro(8)
	item.MinStock = 10
	item.CriticalStock = 4
	eq := newFakeEquipmentRepo(item)
	uc, alerts := newMonitor(eq)

	require.NoError(t, uc.CheckStockLevels(context.Background(), taladroID, companyID))

	active, _ := alerts.GetActiveByEquipment(taladroID)
	require.NotNil(t, active)
	assert.Equal(t, entity.AlertTypeLowStock, active.AlertType)
	assert.Equal(t, entity.AlertSeverityHigh, active.Severity)
	assert.Equal(t, 10, active.ThresholdValue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación con la alerta activa
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckStockLevels_Idempotente(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(1))
	uc, alerts := newMonitor(eq)
	ctx := context.Background()

	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))

	assert.Len(t, alerts.alerts, 1)
}

func TestCheckStockLevels_NoEscalaEnElSitio(t *testing.T) {
	// Una alerta activa high no se reemplaza al degradarse el stock a
	// crítico; sigue siendo la misma alerta hasta resolverse o reconocerse.
	eq := newFakeEquipmentRepo(taladro(5))
	uc, alerts := newMonitor(eq)
	ctx := context.Background()

	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	require.NoError(t, eq.UpdateQuantity(taladroID, 1))
	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))

	active, _ := alerts.GetActiveByEquipment(taladroID)
	require.NotNil(t, active)
	assert.Equal(t, entity.AlertSeverityHigh, active.Severity)
	assert.Len(t, alerts.alerts, 1)
}

func TestCheckStockLevels_ResuelveAlRecuperar(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(0))
	uc, alerts := newMonitor(eq)
	ctx := context.Background()

	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	active, _ := alerts.GetActiveByEquipment(taladroID)
	require.NotNil(t, active)

	require.NoError(t, eq.UpdateQuantity(taladroID, 20))
	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))

	resolved, _ := alerts.GetByID(active.ID)
	assert.Equal(t, entity.AlertStatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)
	stillActive, _ := alerts.GetActiveByEquipment(taladroID)
	assert.Nil(t, stillActive)
}

func TestCheckStockLevels_EquipoDesaparecido(t *testing.T) {
	uc, _ := newMonitor(newFakeEquipmentRepo())
	// best-effort: no es error del caller
	assert.NoError(t, uc.CheckStockLevels(context.Background(), "no-existe", companyID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Acknowledge
// ──────────────────────────────────────────────────────────────────────────────

func TestAcknowledgeAlert(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(0))
	uc, alerts := newMonitor(eq)
	ctx := context.Background()

	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	active, _ := alerts.GetActiveByEquipment(taladroID)
	require.NotNil(t, active)

	acked, err := uc.AcknowledgeAlert(ctx, companyID, active.ID, bodegueroID)
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusAcknowledged, acked.Status)
	assert.Equal(t, bodegueroID, acked.AcknowledgedBy)
	assert.NotNil(t, acked.AcknowledgedAt)

	// una alerta reconocida ya no cuenta como active: si el stock sigue
	// degradado, la siguiente verificación abre una nueva
	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	fresh, _ := alerts.GetActiveByEquipment(taladroID)
	require.NotNil(t, fresh)
	assert.NotEqual(t, active.ID, fresh.ID)
}

func TestAcknowledgeAlert_SoloActivas(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(0))
	uc, alerts := newMonitor(eq)
	ctx := context.Background()

	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	active, _ := alerts.GetActiveByEquipment(taladroID)
	require.NoError(t, alerts.Resolve(active.ID))

	_, err := uc.AcknowledgeAlert(ctx, companyID, active.ID, bodegueroID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAcknowledgeAlert_OtraEmpresa(t *testing.T) {
	eq := newFakeEquipmentRepo(taladro(0))
	uc, alerts := newMonitor(eq)
	ctx := context.Background()

	require.NoError(t, uc.CheckStockLevels(ctx, taladroID, companyID))
	active, _ := alerts.GetActiveByEquipment(taladroID)

	_, err := uc.AcknowledgeAlert(ctx, otherCoID, active.ID, bodegueroID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcknowledgeAlert_NoExiste(t *testing.T) {
	uc, _ := newMonitor(newFakeEquipmentRepo())
	_, err := uc.AcknowledgeAlert(context.Background(), companyID, "no-existe", bodegueroID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido y listado
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateAlerts_Barrido(t *testing.T) {
	andamio := &entity.Equipment{
		ID: andamioID, CompanyID: companyID, Code: "AND-001",
		Name: "Andamio certificado", Quantity: 0,
	}
	sano := &entity.Equipment{
		ID: "eq-sano", CompanyID: companyID, Code: "SAN-001",
		Name: "Equipo sano", Quantity: 50,
	}
	eq := newFakeEquipmentRepo(taladro(4), andamio, sano)
	uc, _ := newMonitor(eq)

	active, err := uc.GenerateAlerts(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// severidad descendente: el agotado (critical) primero
	assert.Equal(t, andamioID, active[0].EquipmentID)
	assert.Equal(t, taladroID, active[1].EquipmentID)
}

func TestGenerateAlerts_ListadoSinPaginar(t *testing.T) {
	// el barrido pide el inventario completo (limit 0): nada de la empresa
	// puede quedar fuera, ni siquiera con un solo equipo agotado
	andamio := &entity.Equipment{
		ID: andamioID, CompanyID: companyID, Code: "AND-001",
		Name: "Andamio certificado", Quantity: 0,
	}
	eq := newFakeEquipmentRepo(taladro(4), andamio)

	// contrato de paginación del repositorio: limit <= 0 lista todo
	all, err := eq.ListByCompany(companyID, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	page, err := eq.ListByCompany(companyID, 1, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)

	uc, _ := newMonitor(eq)
	active, err := uc.GenerateAlerts(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, entity.AlertTypeOutOfStock, active[0].AlertType)
	assert.Equal(t, andamioID, active[0].EquipmentID)
}

func TestGetActiveAlerts_Filtros(t *testing.T) {
	andamio := &entity.Equipment{
		ID: andamioID, CompanyID: companyID, Code: "AND-001",
		Name: "Andamio certificado", Quantity: 0,
	}
	eq := newFakeEquipmentRepo(taladro(4), andamio)
	uc, _ := newMonitor(eq)
	ctx := context.Background()

	_, err := uc.GenerateAlerts(ctx, companyID)
	require.NoError(t, err)

	critical, err := uc.GetActiveAlerts(ctx, companyID, repository.AlertFilter{Severity: entity.AlertSeverityCritical})
	require.NoError(t, err)
	require.Len(t, critical, 1)
	assert.Equal(t, entity.AlertTypeOutOfStock, critical[0].AlertType)
}
