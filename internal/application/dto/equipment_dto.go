package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEquipmentRequest alta de equipo en el catálogo (glue del subsistema de
// catálogo; la cantidad inicial entra como movimiento, no por acá).
type CreateEquipmentRequest struct {
	Code          string          `json:"code" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Category      string          `json:"category"`
	MinStock      int             `json:"min_stock" validate:"min=0"`
	CriticalStock int             `json:"critical_stock" validate:"min=0"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
}

// EquipmentResponse equipo del catálogo con su cantidad en mano.
type EquipmentResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	CriticalStock int             `json:"critical_stock"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
