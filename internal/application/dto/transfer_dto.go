package dto

import "time"

// InitiateTransferRequest creación de un traslado entre ubicaciones.
type InitiateTransferRequest struct {
	EquipmentID    string     `json:"equipment_id" validate:"required,uuid4"`
	Quantity       int        `json:"quantity" validate:"required,min=1"`
	FromLocation   string     `json:"from_location" validate:"required"`
	ToLocation     string     `json:"to_location" validate:"required"`
	Carrier        string     `json:"carrier"`
	TrackingNumber string     `json:"tracking_number"`
	ExpectedDate   *time.Time `json:"expected_date"`
	Notes          string     `json:"notes"`
}

// StartTransitRequest datos opcionales al despachar el traslado.
type StartTransitRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

// TransferResponse traslado persistido.
type TransferResponse struct {
	ID             string     `json:"id"`
	TransferNumber string     `json:"transfer_number"`
	EquipmentID    string     `json:"equipment_id"`
	Quantity       int        `json:"quantity"`
	FromLocation   string     `json:"from_location"`
	ToLocation     string     `json:"to_location"`
	Status         string     `json:"status"`
	RequestedBy    string     `json:"requested_by"`
	ReceivedBy     string     `json:"received_by,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	TrackingNumber string     `json:"tracking_number,omitempty"`
	ExpectedDate   *time.Time `json:"expected_date,omitempty"`
	ReceivedDate   *time.Time `json:"received_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
