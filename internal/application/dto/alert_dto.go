package dto

import "time"

// AlertResponse alerta de stock.
type AlertResponse struct {
	ID             string     `json:"id"`
	EquipmentID    string     `json:"equipment_id"`
	AlertType      string     `json:"alert_type"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	CurrentStock   int        `json:"current_stock"`
	ThresholdValue int        `json:"threshold_value"`
	Status         string     `json:"status"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
