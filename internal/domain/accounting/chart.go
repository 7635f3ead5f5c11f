// Package accounting contiene los servicios de dominio del motor contable de
// partida doble: plan de cuentas (PUC), numeración de comprobantes y
// verificación de cuadre débito/crédito.
package accounting

import (
	"fmt"

	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// Códigos de cuenta del Plan Único de Cuentas (PUC colombiano) usados por los
// asientos automáticos. El plan es extensible: un código fuera de esta tabla
// se crea igual, con nombre genérico y tipo asset.
const (
	CodeCash          = "110505" // Caja general
	CodeBank          = "111005" // Bancos - moneda nacional
	CodeReceivables   = "130505" // Clientes nacionales
	CodePayables      = "220505" // Proveedores nacionales
	CodeRentalRevenue = "413501" // Ingresos por alquiler de equipos
	CodeOtherIncome   = "429505" // Otros ingresos - diversos
	CodeExpenses      = "519595" // Gastos generales
	CodeVATPayable    = "240801" // IVA generado
	CodeVATReceivable = "240802" // IVA descontable
)

// AccountInfo metadatos mínimos para crear una cuenta perezosamente.
type AccountInfo struct {
	Name string
	Type string // ver constantes entity.AccountType*
}

var chart = map[string]AccountInfo{
	CodeCash:          {Name: "Caja general", Type: entity.AccountTypeAsset},
	CodeBank:          {Name: "Bancos", Type: entity.AccountTypeAsset},
	CodeReceivables:   {Name: "Clientes", Type: entity.AccountTypeAsset},
	CodePayables:      {Name: "Proveedores", Type: entity.AccountTypeLiability},
	CodeRentalRevenue: {Name: "Ingresos por alquiler", Type: entity.AccountTypeIncome},
	CodeOtherIncome:   {Name: "Otros ingresos", Type: entity.AccountTypeIncome},
	CodeExpenses:      {Name: "Gastos generales", Type: entity.AccountTypeExpense},
	CodeVATPayable:    {Name: "IVA generado", Type: entity.AccountTypeLiability},
	CodeVATReceivable: {Name: "IVA descontable", Type: entity.AccountTypeAsset},
}

// AccountInfoForCode devuelve nombre y tipo para un código del plan.
// Un código desconocido recibe nombre genérico y tipo asset (igual que el
// comportamiento de creación automática del sistema de referencia).
func AccountInfoForCode(code string) AccountInfo {
	if info, ok := chart[code]; ok {
		return info
	}
	return AccountInfo{Name: fmt.Sprintf("Cuenta %s", code), Type: entity.AccountTypeAsset}
}
