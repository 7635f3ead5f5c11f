package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleContador  = "contador"  // contabilidad: asientos manuales, plan de cuentas
	RoleBodeguero = "bodeguero" // inventario: movimientos, ajustes, traslados
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, contador, bodeguero
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
