// Package pdf genera el reporte de inventario del Inventory Manager.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: RapidXcel + título     │  Fecha + responsable       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Nombre | Cant | Peso | P.Unit | Valor          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ítems / Unidades / Valor total                     │
//	│  FOOTER: ítems bajo el umbral de reposición                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator arma el PDF con Maroto v2.
type StockReportGenerator struct {
	lowStock int
}

// NewStockReportGenerator construye el generador. lowStock es el umbral de
// cantidad a partir del cual un ítem se lista como pendiente de reposición.
func NewStockReportGenerator(lowStock int) *StockReportGenerator {
	return &StockReportGenerator{lowStock: lowStock}
}

// LowStock umbral configurado.
func (g *StockReportGenerator) LowStock() int { return g.lowStock }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(
	_ context.Context,
	manager *entity.User,
	stocks []entity.Stock,
	at time.Time,
) ([]byte, error) {
	author := "RapidXcel"
	if manager != nil && manager.Name != "" {
		author = manager.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Stock Report", true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(author, at))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(stocks) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No stock items.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(tableDetailRows(stocks)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(stocks))

	m.AddRows(line.NewRow(3))
	m.AddRows(lowStockRows(stocks, g.lowStock)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de stock: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(author string, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RapidXcel Logistics", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("STOCK REPORT", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Date: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Inventory Manager: "+author, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Name", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Weight", 1, align.Right),
		h("Unit price", 2, align.Right),
		h("Value", 2, align.Right),
	)
}

func tableDetailRows(stocks []entity.Stock) []core.Row {
	result := make([]core.Row, 0, len(stocks))
	for _, s := range stocks {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(s.StockID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(s.StockName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(s.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(s.Weight.StringFixed(2)+" kg", props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New("$"+FormatMoney(s.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+FormatMoney(s.Value()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(stocks []entity.Stock) core.Row {
	units := 0
	total := decimal.Zero
	for _, s := range stocks {
		units += s.Quantity
		total = total.Add(s.Value())
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(label("Items:"), label("Units:"), label("TOTAL VALUE:")),
		col.New(3).Add(
			value(fmt.Sprint(len(stocks))),
			value(fmt.Sprint(units)),
			text.New("$"+FormatMoney(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

func lowStockRows(stocks []entity.Stock, threshold int) []core.Row {
	var low []string
	for _, s := range stocks {
		if s.Quantity <= threshold {
			low = append(low, fmt.Sprintf("%s (%d)", s.StockName, s.Quantity))
		}
	}
	if len(low) == 0 {
		return nil
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("PENDING REPLENISHMENT (quantity <= %d)", threshold), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(strings.Join(low, ", "), props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMoney dos decimales con coma de miles.
// Ej: 25000 → "25,000.00", 1234567.5 → "1,234,567.50"
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
