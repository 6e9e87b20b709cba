// Package pdf genera la ficha técnica de un producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + tagline   │  FICHA TÉCNICA + categoría    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: Nombre + rango de precio                          │
//	│  Descripción / descripción larga                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Característica | Valor                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al detalle web + contacto de la empresa          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/everest-site/internal/application/ports"
	"github.com/jhoicas/everest-site/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 51, Blue: 102}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 243, Blue: 247}
)

// caracteres aproximados por línea a tamaño 9 en el ancho útil de A4
const charsPerLine = 110

var _ ports.DatasheetGenerator = (*DatasheetGenerator)(nil)

// Datasheet datos de entrada de la ficha.
type Datasheet = ports.Datasheet

// ── Generator ─────────────────────────────────────────────────────────────────

// DatasheetGenerator arma la ficha técnica con Maroto v2.
type DatasheetGenerator struct{}

// NewDatasheetGenerator construye el generador.
func NewDatasheetGenerator() *DatasheetGenerator { return &DatasheetGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *DatasheetGenerator) Generate(_ context.Context, d Datasheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(d.Product.Name+" - Datasheet", true).
		WithAuthor(d.Settings.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.6}))
	m.AddRows(productRow(d.Product))
	m.AddRows(paragraphRows(d.Product.Description, fontstyle.Normal)...)
	m.AddRows(paragraphRows(d.Product.LongDescription, fontstyle.Normal)...)

	if specs := d.Product.Specifications.Entries(); len(specs) > 0 {
		m.AddRows(row.New(4))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(specHeaderRow())
		m.AddRows(specRows(specs)...)
	}

	m.AddRows(row.New(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(d))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + tagline (izq) y título + categoría (der).
func headerRow(d Datasheet) core.Row {
	s := d.Settings
	left := []core.Component{
		text.New(s.CompanyName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
	}
	if s.Tagline != "" {
		left = append(left, text.New(s.Tagline, props.Text{Size: 8, Top: 9, Color: colorGray}))
	}
	if s.GSTNumber != "" {
		left = append(left, text.New("GST: "+s.GSTNumber, props.Text{Size: 8, Top: 14, Color: colorGray}))
	}
	return row.New(20).Add(
		col.New(8).Add(left...),
		col.New(4).Add(
			text.New("PRODUCT DATASHEET", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(d.Category, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// productRow: nombre del producto y rango de precio.
func productRow(p entity.Product) core.Row {
	right := col.New(4)
	if p.PriceRange != "" {
		right = col.New(4).Add(text.New(p.PriceRange, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
		}))
	}
	return row.New(14).Add(
		col.New(8).Add(text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 14, Top: 3})),
		right,
	)
}

// paragraphRows: un bloque de texto por párrafo, con alto estimado según su largo.
func paragraphRows(s string, style fontstyle.Type) []core.Row {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var rows []core.Row
	for _, p := range strings.Split(s, "\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rows = append(rows, row.New(estimateHeight(p, charsPerLine, 4.5)+2).Add(
			col.New(12).Add(text.New(p, props.Text{Size: 9, Style: style, Top: 1})),
		))
	}
	return rows
}

func specHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(4).Add(text.New("Feature", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2, Left: 1})),
		col.New(8).Add(text.New("Value", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2, Left: 1})),
	)
}

// specRows: una fila por característica, filas alternas sombreadas.
func specRows(specs []entity.Spec) []core.Row {
	out := make([]core.Row, 0, len(specs))
	for i, s := range specs {
		h := estimateHeight(s.Value, charsPerLine*2/3, 4) + 3
		r := row.New(h).Add(
			col.New(4).Add(text.New(s.Key, props.Text{Style: fontstyle.Bold, Size: 8.5, Top: 1.5, Left: 1})),
			col.New(8).Add(text.New(s.Value, props.Text{Size: 8.5, Top: 1.5, Left: 1})),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

// footerRow: QR al detalle web + datos de contacto.
func footerRow(d Datasheet) core.Row {
	s := d.Settings
	contact := fmt.Sprintf("Phone: %s   |   Email: %s", nonEmpty(s.Phone, "-"), nonEmpty(s.Email, "-"))
	info := col.New(9).Add(
		text.New(contact, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
		text.New(nonEmpty(s.Address, ""), props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
		text.New(d.URL, props.Text{Size: 8, Top: 16, Left: 3, Color: colorPrimary}),
	)
	if d.URL == "" {
		return row.New(24).Add(col.New(3), info)
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(d.URL, props.Rect{Percent: 90, Center: true})),
		info,
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// estimateHeight alto en mm para s a perLine caracteres por línea.
func estimateHeight(s string, perLine int, lineHeight float64) float64 {
	n := utf8.RuneCountInString(s)
	lines := n / perLine
	if n%perLine != 0 || lines == 0 {
		lines++
	}
	return float64(lines) * lineHeight
}
