package dto

import "time"

// RecordMovementRequest movimiento genérico de stock. La semántica de
// quantity depende del tipo (in/out: unidades; adjustment: total absoluto;
// transfer: delta firmado).
type RecordMovementRequest struct {
	EquipmentID    string `json:"equipment_id" validate:"required,uuid4"`
	MovementType   string `json:"movement_type" validate:"required,oneof=in out adjustment transfer"`
	MovementReason string `json:"movement_reason"`
	Quantity       int    `json:"quantity"`
	InvoiceID      string `json:"invoice_id"`
	OrderID        string `json:"order_id"`
	DeliveryNoteID string `json:"delivery_note_id"`
	FromLocation   string `json:"from_location"`
	ToLocation     string `json:"to_location"`
	Reference      string `json:"reference"`
	Notes          string `json:"notes"`
}

// RecordSaleRequest salida por venta/entrega de alquiler.
type RecordSaleRequest struct {
	EquipmentID    string `json:"equipment_id" validate:"required,uuid4"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	InvoiceID      string `json:"invoice_id"`
	OrderID        string `json:"order_id"`
	DeliveryNoteID string `json:"delivery_note_id"`
	Notes          string `json:"notes"`
}

// RecordReturnRequest entrada por devolución.
type RecordReturnRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid4"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	InvoiceID   string `json:"invoice_id"`
	OrderID     string `json:"order_id"`
	Reason      string `json:"reason"`
	Notes       string `json:"notes"`
}

// AdjustStockRequest corrección manual: new_quantity es el total absoluto.
type AdjustStockRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid4"`
	NewQuantity int    `json:"new_quantity" validate:"min=0"`
	Reason      string `json:"reason" validate:"required"`
	Notes       string `json:"notes"`
}

// MovementResponse movimiento persistido con snapshot antes/después.
type MovementResponse struct {
	ID             string    `json:"id"`
	EquipmentID    string    `json:"equipment_id"`
	MovementType   string    `json:"movement_type"`
	MovementReason string    `json:"movement_reason"`
	Quantity       int       `json:"quantity"`
	StockBefore    int       `json:"stock_before"`
	StockAfter     int       `json:"stock_after"`
	FromLocation   string    `json:"from_location,omitempty"`
	ToLocation     string    `json:"to_location,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	PerformedBy    string    `json:"performed_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementHistoryResponse página del historial de un equipo.
type MovementHistoryResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// StockSummaryResponse agregado de inventario de la empresa.
type StockSummaryResponse struct {
	TotalItems      int                `json:"total_items"`
	TotalQuantity   int                `json:"total_quantity"`
	LowStockItems   int                `json:"low_stock_items"`
	OutOfStockItems int                `json:"out_of_stock_items"`
	Categories      []string           `json:"categories"`
	Equipment       []EquipmentSummary `json:"equipment"`
}

// EquipmentSummary línea del resumen de stock.
type EquipmentSummary struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}
