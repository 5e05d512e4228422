// Package pdf implementa la representación gráfica de una versión de
// documento usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tipo  │  Versión N + Fecha efectiva       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Razón social / NIT / Dirección / Responsables      │
//	│  MARCA y CUENTA BANCARIA (si aplican)                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Campo | Valor  (snapshot de la versión)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: identificadores del documento y la versión          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/docflow-api/internal/application/document"
	"github.com/tu-usuario/docflow-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles por tipo de documento.
var typeLabels = map[string]string{
	entity.DocTypeInvoice:  "FACTURA",
	entity.DocTypeContract: "CONTRATO",
	entity.DocTypeAct:      "ACTA",
	entity.DocTypeOther:    "DOCUMENTO",
}

// Asegura que MarotoGenerator implementa document.PDFGenerator.
var _ document.PDFGenerator = (*MarotoGenerator)(nil)

// MarotoGenerator construye el PDF de una proyección.
type MarotoGenerator struct {
	printer *message.Printer
}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator {
	return &MarotoGenerator{printer: message.NewPrinter(language.Spanish)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoGenerator) Generate(_ context.Context, p *document.Projection) ([]byte, error) {
	if p == nil || p.Document == nil || p.Version == nil {
		return nil, fmt.Errorf("pdf: proyección incompleta")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(p.Document.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if p.Company != nil {
		m.AddRows(companyRow(p.Company))
	}
	if p.Brand != nil || p.BankAccount != nil {
		m.AddRows(referenceRow(p.Brand, p.BankAccount))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(snapshotHeaderRow())
	for _, r := range g.snapshotRows(p.Version.Data) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + tipo (izq) y versión + fecha efectiva (der).
func (g *MarotoGenerator) headerRow(p *document.Projection) core.Row {
	label, ok := typeLabels[p.Document.Type]
	if !ok {
		label = typeLabels[entity.DocTypeOther]
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.Document.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+strings.ToUpper(p.Document.Status), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Versión %d", p.Version.VersionNumber), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha efectiva: "+p.EffectiveDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// companyRow: datos de la empresa titular.
func companyRow(company *entity.Company) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(company.Name+"   |   NIT: "+company.TaxID, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Director: %s   |   Contador: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Director, "—"),
				nonEmpty(company.Accountant, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// referenceRow: marca y cuenta bancaria asociadas.
func referenceRow(brand *entity.Brand, account *entity.BankAccount) core.Row {
	brandText := "—"
	if brand != nil {
		brandText = brand.Name
	}
	accountText := "—"
	if account != nil {
		accountText = fmt.Sprintf("%s · %s (BIC %s)",
			account.BankName, account.AccountNumber, account.RoutingCode)
	}
	return row.New(10).Add(
		col.New(6).Add(
			text.New("MARCA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(brandText, props.Text{Size: 9, Top: 6}),
		),
		col.New(6).Add(
			text.New("CUENTA BANCARIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(accountText, props.Text{Size: 9, Top: 6}),
		),
	)
}

// snapshotHeaderRow: cabecera de la tabla de campos del snapshot.
func snapshotHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Campo", 4, align.Left),
		h("Valor", 8, align.Left),
	)
}

// snapshotRows: una fila por campo del snapshot, en orden alfabético.
// El snapshot es JSON opaco para el dominio; aquí solo se presenta.
func (g *MarotoGenerator) snapshotRows(data json.RawMessage) []core.Row {
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("(sin contenido)", props.Text{
				Size: 8, Top: 1, Left: 1, Color: colorGray,
			}),
		))}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]core.Row, 0, len(keys))
	for _, k := range keys {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(k, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(8).Add(text.New(g.renderValue(fields[k]), props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
		))
	}
	return result
}

// footerRow: identificadores para rastrear el artefacto de vuelta a la versión.
func footerRow(p *document.Projection) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Documento: %s   |   Versión: %s", p.Document.ID, p.Version.ID),
				props.Text{Size: 6.5, Color: colorGray, Top: 1}),
			text.New("Creado por: "+p.Version.CreatedBy+"   |   "+
				p.Version.CreatedAt.UTC().Format("02/01/2006 15:04")+" UTC",
				props.Text{Size: 6.5, Color: colorGray, Top: 5}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// renderValue presenta un valor JSON: números con separador de miles,
// estructuras anidadas como JSON compacto.
func (g *MarotoGenerator) renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case string:
		return val
	case bool:
		if val {
			return "sí"
		}
		return "no"
	case float64:
		if val == float64(int64(val)) {
			return g.printer.Sprintf("%d", int64(val))
		}
		return g.printer.Sprintf("%.2f", val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}
