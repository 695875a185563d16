// Package pdf implementa la representación gráfica del comprobante
// electrónico AFIP (RG 4291, con el código QR de la RG 4892).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + CUIT  │  Letra + N° Cbte + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Domicilio / IIBB / Inicio de actividades            │
//	│  RECEPTOR: Razón social + Doc + Condición IVA                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Neto / IVA / TOTAL                                 │
//	│  CUOTAS: plan de pagos (si corresponde)                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER AFIP: CAE + Vto + QR                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera la representación gráfica del comprobante usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerarComprobantePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarComprobantePDF(
	_ context.Context,
	comprobante *entity.Comprobante,
	empresa *entity.Empresa,
	cliente *entity.Cliente,
	detalles []*entity.ComprobanteDetalle,
	cuotas []*entity.Cuota,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(nombreComprobante(comprobante.Tipo), true).
		WithAuthor(empresa.RazonSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(comprobante, empresa))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(empresa))
	m.AddRows(receptorRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de detalles
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(detalles) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(comprobante))

	// Plan de cuotas
	if len(cuotas) > 0 {
		for _, r := range cuotasRows(cuotas) {
			m.AddRows(r)
		}
	}

	// Footer AFIP
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range afipFooterRows(comprobante, empresa, cliente) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + CUIT (izq) y letra + número + fecha (der).
func headerRow(c *entity.Comprobante, empresa *entity.Empresa) core.Row {
	fecha := c.Fecha.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+empresa.CUIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(nombreComprobante(c.Tipo), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(c.NumeroCompleto(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos fiscales del emisor.
func emisorRow(empresa *entity.Empresa) core.Row {
	inicio := "—"
	if empresa.InicioActividades != nil {
		inicio = empresa.InicioActividades.Format("02/01/2006")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   IIBB: %s   |   Inicio de actividades: %s",
				nonEmpty(empresa.Domicilio, "—"),
				nonEmpty(empresa.CondicionIVA, "—"),
				nonEmpty(empresa.IngresosBrutos, "—"),
				inicio,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// receptorRow: datos del receptor del comprobante.
func receptorRow(cliente *entity.Cliente) core.Row {
	doc := cliente.DocNro
	if doc == "" {
		doc = "—"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s   |   %s   |   %s",
				nombreDocTipo(cliente.DocTipo), doc,
				nonEmpty(cliente.Domicilio, "—"),
				nonEmpty(cliente.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del comprobante.
func tableDetailRows(detalles []*entity.ComprobanteDetalle) []core.Row {
	result := make([]core.Row, 0, len(detalles))
	for _, d := range detalles {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				d.Cantidad.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				d.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$ "+formatImporte(d.PrecioUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				d.AlicuotaIVA.String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$ "+formatImporte(d.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(c *entity.Comprobante) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Neto gravado:"),
			label("IVA:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$ "+formatImporte(c.ImpNeto)),
			value("$ "+formatImporte(c.ImpIVA)),
			grandValue("$ "+formatImporte(c.ImpTotal)),
		),
		col.New(3),
	)
}

// cuotasRows: plan de pagos, una fila por cuota.
func cuotasRows(cuotas []*entity.Cuota) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PLAN DE PAGOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, c := range cuotas {
		estado := c.Estado
		if c.FechaPago != nil {
			estado = fmt.Sprintf("PAGADA el %s", c.FechaPago.Format("02/01/2006"))
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Cuota %d   |   $ %s   |   Vence: %s   |   %s",
				c.Numero, formatImporte(c.Importe),
				c.Vencimiento.Format("02/01/2006"), estado,
			), props.Text{Size: 8, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// afipFooterRows: CAE + vencimiento + código QR de la RG 4892.
func afipFooterRows(c *entity.Comprobante, empresa *entity.Empresa, cliente *entity.Cliente) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("COMPROBANTE AUTORIZADO POR AFIP", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if c.CAE != "" {
		vto := "—"
		if c.CAEVencimiento != nil {
			vto = c.CAEVencimiento.Format("02/01/2006")
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("CAE: %s   |   Vencimiento CAE: %s", c.CAE, vto), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)))

		if qr := qrURL(c, empresa, cliente); qr != "" {
			rows = append(rows, row.New(50).Add(
				col.New(4).Add(code.NewQr(qr, props.Rect{
					Percent: 95,
					Center:  true,
				})),
				col.New(8).Add(
					text.New("Escaneá el código QR para validar\neste comprobante en el sitio de AFIP.", props.Text{
						Size: 8, Top: 4, Left: 3, Color: colorGray,
					}),
					text.New("COMPROBANTE AUTORIZADO", props.Text{
						Style: fontstyle.Bold, Size: 10, Top: 26,
						Left: 3, Color: colorPrimary,
					}),
				),
			))
		}
	} else {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("DOCUMENTO NO VÁLIDO COMO FACTURA — PENDIENTE DE AUTORIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorGray, Top: 2,
			}),
		)))
	}

	return rows
}

// ── QR AFIP (RG 4892) ─────────────────────────────────────────────────────────

// qrPayload es el JSON que viaja dentro del QR según la especificación AFIP.
type qrPayload struct {
	Ver        int     `json:"ver"`
	Fecha      string  `json:"fecha"`
	Cuit       int64   `json:"cuit"`
	PtoVta     int     `json:"ptoVta"`
	TipoCmp    int     `json:"tipoCmp"`
	NroCmp     int64   `json:"nroCmp"`
	Importe    float64 `json:"importe"`
	Moneda     string  `json:"moneda"`
	Ctz        float64 `json:"ctz"`
	TipoDocRec int     `json:"tipoDocRec"`
	NroDocRec  int64   `json:"nroDocRec"`
	TipoCodAut string  `json:"tipoCodAut"`
	CodAut     int64   `json:"codAut"`
}

// qrURL arma la URL del QR: la especificación pide el payload JSON en
// base64 dentro del parámetro p.
func qrURL(c *entity.Comprobante, empresa *entity.Empresa, cliente *entity.Cliente) string {
	cuit, err := strconv.ParseInt(empresa.CUIT, 10, 64)
	if err != nil {
		return ""
	}
	codAut, err := strconv.ParseInt(c.CAE, 10, 64)
	if err != nil {
		return ""
	}
	nroDoc, _ := strconv.ParseInt(cliente.DocNro, 10, 64)

	importe, _ := c.ImpTotal.Round(2).Float64()
	ctz, _ := c.MonCotiz.Round(2).Float64()

	payload := qrPayload{
		Ver:        1,
		Fecha:      c.Fecha.Format("2006-01-02"),
		Cuit:       cuit,
		PtoVta:     c.PuntoVenta,
		TipoCmp:    c.Tipo,
		NroCmp:     c.Numero,
		Importe:    importe,
		Moneda:     c.MonId,
		Ctz:        ctz,
		TipoDocRec: cliente.DocTipo,
		NroDocRec:  nroDoc,
		TipoCodAut: "E",
		CodAut:     codAut,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return "https://www.afip.gob.ar/fe/qr/?p=" + base64.StdEncoding.EncodeToString(data)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// nombreComprobante devuelve el nombre impreso del tipo de comprobante.
func nombreComprobante(tipo int) string {
	switch tipo {
	case 1:
		return "FACTURA A"
	case 2:
		return "NOTA DE DÉBITO A"
	case 3:
		return "NOTA DE CRÉDITO A"
	case 6:
		return "FACTURA B"
	case 7:
		return "NOTA DE DÉBITO B"
	case 8:
		return "NOTA DE CRÉDITO B"
	case 11:
		return "FACTURA C"
	case 12:
		return "NOTA DE DÉBITO C"
	case 13:
		return "NOTA DE CRÉDITO C"
	}
	return fmt.Sprintf("COMPROBANTE %d", tipo)
}

func nombreDocTipo(docTipo int) string {
	switch docTipo {
	case 80:
		return "CUIT"
	case 86:
		return "CUIL"
	case 96:
		return "DNI"
	}
	return "Doc"
}

// formatImporte formatea un decimal con separador de miles "." y coma
// decimal, al uso argentino. Ej: 121000 → "121.000,00"
func formatImporte(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	entero, dec, _ := strings.Cut(s, ".")

	n := len(entero)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, entero[i])
	}
	out := string(buf) + "," + dec
	if neg {
		out = "-" + out
	}
	return out
}
