package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada (devolución, compra)
	MovementTypeOut        = "out"        // salida (venta, alquiler)
	MovementTypeAdjustment = "adjustment" // ajuste manual (corrección)
	MovementTypeTransfer   = "transfer"   // traslado entre ubicaciones (dos patas)
)

// Razones de movimiento más comunes (MovementReason es texto libre).
const (
	ReasonSale       = "sale"
	ReasonReturn     = "return"
	ReasonTransfer   = "transfer"
	ReasonAdjustment = "adjustment"
)

// StockMovement representa un movimiento inmutable del inventario de un equipo.
// Quantity es el delta firmado aplicado (para adjustment se guarda la diferencia
// nuevo-anterior aunque el caller haya enviado el total absoluto). Invariante:
// StockAfter == StockBefore + Quantity, y StockAfter coincide con
// Equipment.Quantity en el instante del commit. Las correcciones se hacen con
// nuevos movimientos de ajuste, nunca editando el historial.
type StockMovement struct {
	ID             string
	CompanyID      string
	EquipmentID    string
	MovementType   string // ver constantes MovementType*
	MovementReason string
	Quantity       int // delta firmado
	StockBefore    int
	StockAfter     int
	InvoiceID      string // opcional
	OrderID        string // opcional
	DeliveryNoteID string // opcional
	FromLocation   string // opcional (transfer)
	ToLocation     string // opcional (transfer)
	Reference      string // ej. número de traslado TRF-...
	Notes          string
	PerformedBy    string // UserID, opcional
	CreatedAt      time.Time
}
