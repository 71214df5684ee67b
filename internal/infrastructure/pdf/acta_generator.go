// Package pdf implementa la generación del Acta de Entrega de Activos: el
// comprobante imprimible de que el item aprobado fue entregado al empleado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° Solicitud + Fecha de aprobación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre + Email                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | N° Serie | Condición | Ubicación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HISTORIAL: decisiones (rol, resultado, fecha)               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Entrega / Recibe                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/activos-api/internal/application/workflow"
	"github.com/jhoicas/activos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ workflow.ActaGenerator = (*MarotoActaGenerator)(nil)

// MarotoActaGenerator implementa workflow.ActaGenerator usando Maroto v2.
type MarotoActaGenerator struct{}

// NewMarotoActaGenerator construye el generador.
func NewMarotoActaGenerator() *MarotoActaGenerator { return &MarotoActaGenerator{} }

// GenerateActa genera el PDF del acta y devuelve sus bytes.
func (g *MarotoActaGenerator) GenerateActa(_ context.Context, data workflow.ActaData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Entrega de Activos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Request))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(data.Employee))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Item entregado
	m.AddRows(itemHeaderRow())
	m.AddRows(itemDetailRow(data.Product, data.Item))

	// Historial de decisiones
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range historyRows(data.Approvals) {
		m.AddRows(r)
	}

	// Firmas
	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de solicitud + fecha de aprobación (der).
func headerRow(req *entity.Request) core.Row {
	fecha := "—"
	if req.FinalApprovalDate != nil {
		fecha = req.FinalApprovalDate.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACTA DE ENTREGA DE ACTIVOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de asignación de inventario interno", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("SOLICITUD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(req.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Aprobada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// employeeRow: datos del empleado que recibe.
func employeeRow(employee *entity.User) core.Row {
	name, email := "—", "—"
	if employee != nil {
		name, email = employee.Name, employee.Email
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECIBE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Email: "+email, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itemHeaderRow: cabecera de la tabla del item entregado.
func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("N° Serie", 3, align.Left),
		h("Condición", 2, align.Center),
		h("Ubicación", 2, align.Left),
	)
}

// itemDetailRow: fila con el item asignado.
func itemDetailRow(product *entity.Product, item *entity.Item) core.Row {
	productName := "—"
	if product != nil {
		productName = product.Name
	}
	serial, condition, location := "—", "—", "—"
	if item != nil {
		serial = item.SerialNumber
		condition = item.Condition
		location = nonEmpty(item.Location, "—")
	}
	return row.New(7).Add(
		col.New(5).Add(text.New(productName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(serial, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(condition, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(location, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
	)
}

// historyRows: historial de decisiones de la solicitud.
func historyRows(approvals []*entity.RequestApproval) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("HISTORIAL DE APROBACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, a := range approvals {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  |  %s  |  %s", a.Role, a.Status, a.Timestamp.Format("02/01/2006 15:04")),
				props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// signatureRow: líneas de firma de quien entrega y quien recibe.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(5).Add(
			text.New("_______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 10,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 16, Color: colorGray,
			}),
		)
	}
	return row.New(24).Add(
		col.New(1),
		sig("Entrega (Oficial de Inventario)"),
		sig("Recibe (Empleado)"),
		col.New(1),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
