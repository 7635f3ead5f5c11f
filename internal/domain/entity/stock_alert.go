package entity

import "time"

// Tipos y severidades de alerta de stock.
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"

	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
)

// Estados de una alerta. Como máximo existe una alerta active por equipo;
// acknowledged no bloquea la creación de una alerta nueva si el stock sigue
// degradándose (es un registro distinto de "active").
const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

// StockAlert representa una alerta derivada del nivel de stock de un equipo.
type StockAlert struct {
	ID             string
	CompanyID      string
	EquipmentID    string
	AlertType      string // low_stock, out_of_stock
	Severity       string // high, critical
	Message        string
	CurrentStock   int // snapshot al momento de crear la alerta
	ThresholdValue int
	Status         string // active, acknowledged, resolved
	AcknowledgedBy string
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time
	CreatedAt      time.Time
}

// SeverityRank permite ordenar por severidad (critical > high).
func (a *StockAlert) SeverityRank() int {
	if a.Severity == AlertSeverityCritical {
		return 2
	}
	return 1
}
