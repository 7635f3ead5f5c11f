package entity

import "time"

// Company representa una empresa/tenant de la plataforma de alquiler (multi-tenant).
// El plan de cuentas y la numeración de asientos son por empresa.
type Company struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Currency  string // ISO 4217 por defecto para sus cuentas, ej. COP
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
