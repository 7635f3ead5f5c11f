package accounting

import (
	"fmt"
	"strconv"
	"strings"
)

// EntryNumberPrefix prefijo de los comprobantes de diario.
const EntryNumberPrefix = "YF-"

// FirstEntryNumber primer número de la secuencia por empresa.
const FirstEntryNumber = "YF-000001"

// NextEntryNumber calcula el siguiente número de comprobante a partir del
// último persistido (YF-###### con sufijo numérico de 6 dígitos, monotónico
// por empresa). Con last vacío arranca la secuencia.
func NextEntryNumber(last string) string {
	if last == "" {
		return FirstEntryNumber
	}
	suffix := strings.TrimPrefix(last, EntryNumberPrefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return FirstEntryNumber
	}
	return fmt.Sprintf("%s%06d", EntryNumberPrefix, n+1)
}
