package entity

import "time"

// Estados del ciclo de vida de un traslado: pending → in_transit (opcional) → completed.
// No existe estado cancelled; una reversión se modela con movimientos compensatorios.
const (
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in_transit"
	TransferStatusCompleted = "completed"
)

// StockTransfer representa un traslado de stock entre dos ubicaciones en dos fases.
// Al crearse (pending) ya se registró la pata de salida (delta negativo), de modo
// que la cantidad nunca se cuenta disponible en ambas ubicaciones a la vez;
// mientras viaja está "en tránsito" y no pertenece a ninguna.
type StockTransfer struct {
	ID             string
	CompanyID      string
	TransferNumber string // TRF-<timestamp>
	EquipmentID    string
	Quantity       int
	FromLocation   string
	ToLocation     string
	Status         string // ver constantes TransferStatus*
	RequestedBy    string // UserID
	ReceivedBy     string // UserID, vacío hasta completar
	Carrier        string // opcional
	TrackingNumber string // opcional
	ExpectedDate   *time.Time
	ReceivedDate   *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanComplete indica si el traslado admite la fase de recepción.
func (t *StockTransfer) CanComplete() bool {
	return t.Status == TransferStatusPending || t.Status == TransferStatusInTransit
}
