// seed_accounts genera el script SQL para poblar el catálogo PUC de referencia
// (plan único de cuentas, decreto 2650) a partir del CSV oficial puc.csv.
// El CSV viene en ISO-8859-1 con columnas: codigo;nombre.
//
// Uso: go run ./cmd/seed_accounts [ruta/puc.csv]
// Por defecto busca puc.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/0004_seed_puc.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type pucAccount struct {
	code string
	name string
}

func main() {
	csvPath := "puc.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var accounts []pucAccount
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		code := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if code == "" || name == "" || !isDigits(code) {
			continue
		}
		accounts = append(accounts, pucAccount{code: code, name: name})
	}
	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene cuentas válidas")
		os.Exit(1)
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].code < accounts[j].code })

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "0004_seed_puc.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo PUC (decreto 2650)\n")
	out.WriteString("-- Generado desde puc.csv (Superintendencia de Sociedades)\n\n")

	out.WriteString("INSERT INTO puc_catalog (code, name, account_type) VALUES\n")
	for i, a := range accounts {
		sep := ","
		if i == len(accounts)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s')%s\n",
			a.code, escapeSQL(a.name), accountTypeForCode(a.code), sep)
	}
	out.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, account_type = EXCLUDED.account_type;\n")

	fmt.Printf("Generado %s: %d cuentas\n", outPath, len(accounts))
}

// accountTypeForCode clasifica según la clase PUC (primer dígito):
// 1 activo, 2 pasivo, 3 patrimonio (se trata como pasivo en el libro),
// 4 ingresos, 5-7 gastos y costos.
func accountTypeForCode(code string) string {
	switch code[0] {
	case '1':
		return "asset"
	case '2', '3':
		return "liability"
	case '4':
		return "income"
	default:
		return "expense"
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
