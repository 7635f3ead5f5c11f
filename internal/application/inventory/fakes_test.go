package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/rental-pro/internal/domain"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
	"github.com/tu-usuario/rental-pro/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Imitan la semántica del
// adaptador de PostgreSQL: nil sin error cuando no hay filas, ErrDuplicate
// cuando un constraint único lo rechazaría.

type fakeEquipmentRepo struct {
	items map[string]*entity.Equipment
}

func newFakeEquipmentRepo(items ...*entity.Equipment) *fakeEquipmentRepo {
	repo := &fakeEquipmentRepo{items: map[string]*entity.Equipment{}}
	for _, eq := range items {
		repo.items[eq.ID] = eq
	}
	return repo
}

func (r *fakeEquipmentRepo) Create(equipment *entity.Equipment) error {
	r.items[equipment.ID] = equipment
	return nil
}

func (r *fakeEquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	eq, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *eq
	return &cp, nil
}

func (r *fakeEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return r.GetByID(id)
}

func (r *fakeEquipmentRepo) UpdateQuantity(id string, quantity int) error {
	eq, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	eq.Quantity = quantity
	eq.UpdatedAt = time.Now()
	return nil
}

func (r *fakeEquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, eq := range r.items {
		if eq.CompanyID == companyID {
			cp := *eq
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	// misma paginación que el adaptador real: limit <= 0 lista todo
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEquipmentRepo) ListForSummary(companyID, category string, lowStockOnly bool, lowThreshold int) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	for _, eq := range r.items {
		if eq.CompanyID != companyID {
			continue
		}
		if category != "" && eq.Category != category {
			continue
		}
		if lowStockOnly && eq.Quantity > eq.LowThreshold(lowThreshold) {
			continue
		}
		cp := *eq
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) matches(m *entity.StockMovement, equipmentID string, filter repository.MovementFilter) bool {
	if m.EquipmentID != equipmentID {
		return false
	}
	if filter.MovementType != "" && m.MovementType != filter.MovementType {
		return false
	}
	if filter.From != nil && m.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && m.CreatedAt.After(*filter.To) {
		return false
	}
	return true
}

func (r *fakeMovementRepo) ListByEquipment(equipmentID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	// más recientes primero, como el adaptador real
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.matches(r.movements[i], equipmentID, filter) {
			cp := *r.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByEquipment(equipmentID string, filter repository.MovementFilter) (int, error) {
	count := 0
	for _, m := range r.movements {
		if r.matches(m, equipmentID, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakeMovementRepo) GetLastByEquipment(equipmentID string) (*entity.StockMovement, error) {
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].EquipmentID == equipmentID {
			cp := *r.movements[i]
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTransferRepo struct {
	transfers map[string]*entity.StockTransfer
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{transfers: map[string]*entity.StockTransfer{}}
}

func (r *fakeTransferRepo) Create(transfer *entity.StockTransfer) error {
	cp := *transfer
	r.transfers[transfer.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	tr, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *tr
	return &cp, nil
}

func (r *fakeTransferRepo) GetForUpdate(id string) (*entity.StockTransfer, error) {
	return r.GetByID(id)
}

func (r *fakeTransferRepo) UpdateStatus(transfer *entity.StockTransfer) error {
	stored, ok := r.transfers[transfer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// mismas columnas que el UPDATE del adaptador real
	stored.Status = transfer.Status
	stored.Carrier = transfer.Carrier
	stored.TrackingNumber = transfer.TrackingNumber
	stored.ReceivedBy = transfer.ReceivedBy
	stored.ReceivedDate = transfer.ReceivedDate
	stored.Notes = transfer.Notes
	stored.UpdatedAt = transfer.UpdatedAt
	return nil
}

func (r *fakeTransferRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.StockTransfer, error) {
	var out []*entity.StockTransfer
	for _, tr := range r.transfers {
		if tr.CompanyID != companyID {
			continue
		}
		if status != "" && tr.Status != status {
			continue
		}
		cp := *tr
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeAlertRepo struct {
	alerts map[string]*entity.StockAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[string]*entity.StockAlert{}}
}

func (r *fakeAlertRepo) Create(alert *entity.StockAlert) error {
	// índice único parcial: una sola alerta active por equipo
	for _, a := range r.alerts {
		if a.EquipmentID == alert.EquipmentID && a.Status == entity.AlertStatusActive {
			return domain.ErrDuplicate
		}
	}
	cp := *alert
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.alerts[alert.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAlertRepo) GetActiveByEquipment(equipmentID string) (*entity.StockAlert, error) {
	for _, a := range r.alerts {
		if a.EquipmentID == equipmentID && a.Status == entity.AlertStatusActive {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) Resolve(alertID string) error {
	a, ok := r.alerts[alertID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	a.Status = entity.AlertStatusResolved
	a.ResolvedAt = &now
	return nil
}

func (r *fakeAlertRepo) Acknowledge(alertID, userID string) error {
	a, ok := r.alerts[alertID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	a.Status = entity.AlertStatusAcknowledged
	a.AcknowledgedBy = userID
	a.AcknowledgedAt = &now
	return nil
}

func (r *fakeAlertRepo) ListActive(companyID string, filter repository.AlertFilter) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if a.CompanyID != companyID || a.Status != entity.AlertStatusActive {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.AlertType != "" && a.AlertType != filter.AlertType {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeverityRank() != out[j].SeverityRank() {
			return out[i].SeverityRank() > out[j].SeverityRank()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// fakeTxRunner pasa los fakes tal cual: sin rollback real, pero los casos de
// uso validan antes de escribir, así que los tests de error no dejan residuo.
type fakeTxRunner struct {
	mov *fakeMovementRepo
	eq  *fakeEquipmentRepo
	tr  *fakeTransferRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return fn(f.mov, f.eq)
}

func (f *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	equipmentRepo repository.EquipmentRepository,
	transferRepo repository.StockTransferRepository,
) error) error {
	return fn(f.mov, f.eq, f.tr)
}

// fakeChecker registra las invocaciones post-commit del monitor de alertas.
type fakeChecker struct {
	calls []string
	err   error
}

func (f *fakeChecker) CheckStockLevels(ctx context.Context, equipmentID, companyID string) error {
	f.calls = append(f.calls, equipmentID)
	return f.err
}
