package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Equipment.
const (
	EquipmentStatusAvailable   = "available"
	EquipmentStatusRented      = "rented"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusRetired     = "retired"
)

// Equipment representa un equipo del catálogo de alquiler.
// Quantity es el total global de unidades en mano; el único mutador autorizado
// es el libro de inventario (StockLedger), nunca un handler ni otro caso de uso.
// MinStock/CriticalStock son umbrales de alerta por equipo; 0 = usar los
// valores por defecto de la configuración.
type Equipment struct {
	ID            string
	CompanyID     string
	Code          string // código único por empresa
	Name          string
	Category      string
	Quantity      int
	MinStock      int
	CriticalStock int
	DailyRate     decimal.Decimal // tarifa de alquiler por día
	Status        string          // ver constantes EquipmentStatus*
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowThreshold devuelve el umbral de stock bajo, con fallback al valor por defecto.
func (e *Equipment) LowThreshold(def int) int {
	if e.MinStock > 0 {
		return e.MinStock
	}
	return def
}

// CriticalThreshold devuelve el umbral crítico, con fallback al valor por defecto.
func (e *Equipment) CriticalThreshold(def int) int {
	if e.CriticalStock > 0 {
		return e.CriticalStock
	}
	return def
}
