// Package pdf implementa la generación del kardex de equipo en PDF con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT  │  KARDEX DE EQUIPO + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EQUIPO: Código / Nombre / Categoría / Stock actual          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Motivo | Cant | Antes | Después | Ref │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/rental-pro/internal/application/reports"
	"github.com/tu-usuario/rental-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoKardexGenerator implementa reports.KardexPDFGenerator usando Maroto v2.
type MarotoKardexGenerator struct{}

var _ reports.KardexPDFGenerator = (*MarotoKardexGenerator)(nil)

// NewMarotoKardexGenerator construye el generador.
func NewMarotoKardexGenerator() *MarotoKardexGenerator { return &MarotoKardexGenerator{} }

// GenerateKardexPDF genera el PDF del kardex y devuelve sus bytes.
func (g *MarotoKardexGenerator) GenerateKardexPDF(
	_ context.Context,
	company *entity.Company,
	equipment *entity.Equipment,
	movements []*entity.StockMovement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de equipo", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(equipmentRow(equipment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	if len(movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el período consultado.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + NIT (izq) y título + fecha de generación (der).
func headerRow(company *entity.Company) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// equipmentRow: identificación del equipo y stock actual.
func equipmentRow(equipment *entity.Equipment) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s  %s", equipment.Code, equipment.Name), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Categoría: %s   |   Stock actual: %d unidades",
				nonEmpty(equipment.Category, "—"), equipment.Quantity,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Motivo", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Antes", 1, align.Right),
		h("Después", 1, align.Right),
		h("Referencia", 3, align.Left),
	)
}

// tableMovementRows: una fila por movimiento, de viejo a nuevo.
func tableMovementRows(movements []*entity.StockMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mov := range movements {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		result = append(result, row.New(6).Add(
			cell(mov.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
			cell(movementTypeLabel(mov.MovementType), 2, align.Left),
			cell(mov.MovementReason, 2, align.Left),
			cell(fmt.Sprintf("%+d", mov.Quantity), 1, align.Right),
			cell(fmt.Sprintf("%d", mov.StockBefore), 1, align.Right),
			cell(fmt.Sprintf("%d", mov.StockAfter), 1, align.Right),
			cell(nonEmpty(mov.Reference, "—"), 3, align.Left),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func movementTypeLabel(movementType string) string {
	switch movementType {
	case entity.MovementTypeIn:
		return "Entrada"
	case entity.MovementTypeOut:
		return "Salida"
	case entity.MovementTypeAdjustment:
		return "Ajuste"
	case entity.MovementTypeTransfer:
		return "Traslado"
	default:
		return movementType
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
