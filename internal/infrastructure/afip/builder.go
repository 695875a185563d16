package afip

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ── Entrada del builder ───────────────────────────────────────────────────────

// DetalleSolicitud es la entrada de dominio de un registro de detalle. Los
// importes llegan como decimal y el builder los formatea al texto del wire.
// Las fechas llegan ya formateadas AAAAMMDD por el llamador: el builder las
// valida pero jamás las reformatea. Campo string vacío, puntero nil o slice
// sin ítems significan "ausente".
type DetalleSolicitud struct {
	Concepto               int
	DocTipo                int
	DocNro                 string
	CbteDesde              int64
	CbteHasta              int64
	CbteFch                string
	ImpTotal               decimal.Decimal
	ImpTotConc             *decimal.Decimal
	ImpNeto                decimal.Decimal
	ImpOpEx                *decimal.Decimal
	ImpTrib                *decimal.Decimal
	ImpIVA                 *decimal.Decimal
	FchServDesde           string
	FchServHasta           string
	FchVtoPago             string
	MonId                  string
	MonCotiz               *decimal.Decimal
	CanMisMonExt           *decimal.Decimal
	CondicionIVAReceptorId int // 0 = ausente
	CbtesAsoc              []CbteAsoc
	Tributos               []Tributo
	Alicuotas              []AlicuotaIVA
	Opcionales             []Opcional
	Compradores            []Comprador
	PeriodoAsoc            *PeriodoAsoc
	Actividades            []int64
}

// Tributo es un tributo del comprobante con importes en decimal.
type Tributo struct {
	Id      int
	Desc    string
	BaseImp decimal.Decimal
	Alic    decimal.Decimal
	Importe decimal.Decimal
}

// AlicuotaIVA es una alícuota de IVA con importes en decimal.
type AlicuotaIVA struct {
	Id      int
	BaseImp decimal.Decimal
	Importe decimal.Decimal
}

// Comprador identifica a un comprador de un comprobante compartido.
type Comprador struct {
	DocTipo    int
	DocNro     string
	Porcentaje decimal.Decimal
}

// ── Builder ──────────────────────────────────────────────────────────────────

// NuevaSolicitudCAE arma el envelope de FECAESolicitar a partir de las
// credenciales, la cabecera del lote y los registros de detalle. Es un
// ensamblador estructural puro: valida y falla rápido con ErrValidacion, sin
// truncar ni completar nada en silencio.
func NuevaSolicitudCAE(auth Auth, cab FeCabReq, detalles []DetalleSolicitud) (*SolicitudEnvelope, error) {
	if auth.Token == "" || auth.Sign == "" || auth.Cuit == "" {
		return nil, fmt.Errorf("%w: Auth incompleto (Token, Sign y Cuit son obligatorios)", ErrValidacion)
	}
	if len(detalles) == 0 {
		return nil, fmt.Errorf("%w: la solicitud debe incluir al menos un detalle", ErrValidacion)
	}
	if cab.CantReg != len(detalles) {
		return nil, fmt.Errorf("%w: CantReg (%d) no coincide con la cantidad de detalles (%d)",
			ErrValidacion, cab.CantReg, len(detalles))
	}
	if cab.PtoVta <= 0 || cab.CbteTipo <= 0 {
		return nil, fmt.Errorf("%w: PtoVta y CbteTipo de la cabecera son obligatorios", ErrValidacion)
	}

	wire := make([]FECAEDetRequest, 0, len(detalles))
	for i := range detalles {
		det, err := construirDetalle(&detalles[i])
		if err != nil {
			return nil, fmt.Errorf("detalle %d: %w", i+1, err)
		}
		wire = append(wire, *det)
	}

	return &SolicitudEnvelope{
		XmlnsSoap: nsSoapEnv,
		XmlnsAr:   nsService,
		Body: SolicitudBody{
			FECAESolicitar: FECAESolicitar{
				Auth: auth,
				FeCAEReq: FeCAEReq{
					FeCabReq: cab,
					FeDetReq: FeDetReq{FECAEDetRequest: wire},
				},
			},
		},
	}, nil
}

// NuevaConsultaUltimoAutorizado arma el envelope de FECompUltimoAutorizado.
func NuevaConsultaUltimoAutorizado(auth Auth, ptoVta, cbteTipo int) (*ConsultaUltimoEnvelope, error) {
	if auth.Token == "" || auth.Sign == "" || auth.Cuit == "" {
		return nil, fmt.Errorf("%w: Auth incompleto (Token, Sign y Cuit son obligatorios)", ErrValidacion)
	}
	if ptoVta <= 0 || cbteTipo <= 0 {
		return nil, fmt.Errorf("%w: PtoVta y CbteTipo son obligatorios", ErrValidacion)
	}
	return &ConsultaUltimoEnvelope{
		XmlnsSoap: nsSoapEnv,
		XmlnsAr:   nsService,
		Body: ConsultaUltimoBody{
			FECompUltimoAutorizado: FECompUltimoAutorizado{
				Auth:     auth,
				PtoVta:   ptoVta,
				CbteTipo: cbteTipo,
			},
		},
	}, nil
}

func construirDetalle(in *DetalleSolicitud) (*FECAEDetRequest, error) {
	if in.Concepto == 0 || in.DocTipo == 0 {
		return nil, fmt.Errorf("%w: Concepto y DocTipo son obligatorios", ErrValidacion)
	}
	if in.DocNro == "" {
		return nil, fmt.Errorf("%w: DocNro es obligatorio (como texto)", ErrValidacion)
	}
	if in.CbteDesde <= 0 || in.CbteHasta < in.CbteDesde {
		return nil, fmt.Errorf("%w: rango CbteDesde/CbteHasta inválido (%d-%d)",
			ErrValidacion, in.CbteDesde, in.CbteHasta)
	}
	if err := validarFecha8(in.CbteFch, "CbteFch"); err != nil {
		return nil, err
	}
	for _, f := range []struct{ valor, campo string }{
		{in.FchServDesde, "FchServDesde"},
		{in.FchServHasta, "FchServHasta"},
		{in.FchVtoPago, "FchVtoPago"},
	} {
		if f.valor != "" {
			if err := validarFecha8(f.valor, f.campo); err != nil {
				return nil, err
			}
		}
	}
	if in.PeriodoAsoc != nil {
		if err := validarFecha8(in.PeriodoAsoc.FchDesde, "PeriodoAsoc.FchDesde"); err != nil {
			return nil, err
		}
		if err := validarFecha8(in.PeriodoAsoc.FchHasta, "PeriodoAsoc.FchHasta"); err != nil {
			return nil, err
		}
	}
	for _, asoc := range in.CbtesAsoc {
		if asoc.CbteFch != "" {
			if err := validarFecha8(asoc.CbteFch, "CbteAsoc.CbteFch"); err != nil {
				return nil, err
			}
		}
	}

	det := &FECAEDetRequest{
		Concepto:  in.Concepto,
		DocTipo:   in.DocTipo,
		DocNro:    in.DocNro,
		CbteDesde: in.CbteDesde,
		CbteHasta: in.CbteHasta,
		CbteFch:   in.CbteFch,
		ImpTotal:  formatImporte(in.ImpTotal),
		ImpNeto:   formatImporte(in.ImpNeto),
	}

	det.ImpTotConc = formatImporteOpcional(in.ImpTotConc)
	det.ImpOpEx = formatImporteOpcional(in.ImpOpEx)
	det.ImpTrib = formatImporteOpcional(in.ImpTrib)
	det.ImpIVA = formatImporteOpcional(in.ImpIVA)
	det.FchServDesde = textoOpcional(in.FchServDesde)
	det.FchServHasta = textoOpcional(in.FchServHasta)
	det.FchVtoPago = textoOpcional(in.FchVtoPago)
	det.MonId = textoOpcional(in.MonId)
	det.MonCotiz = formatImporteOpcional(in.MonCotiz)
	det.CanMisMonExt = formatImporteOpcional(in.CanMisMonExt)
	if in.CondicionIVAReceptorId != 0 {
		cond := in.CondicionIVAReceptorId
		det.CondicionIVAReceptorId = &cond
	}

	// Colecciones: el wrapper solo existe si hay al menos un ítem; sin ítems
	// el campo queda nil y el tag se omite por completo.
	if len(in.CbtesAsoc) > 0 {
		det.CbtesAsoc = &CbtesAsoc{CbteAsoc: in.CbtesAsoc}
	}
	if len(in.Tributos) > 0 {
		items := make([]TributoItem, 0, len(in.Tributos))
		for _, t := range in.Tributos {
			items = append(items, TributoItem{
				Id:      t.Id,
				Desc:    t.Desc,
				BaseImp: formatImporte(t.BaseImp),
				Alic:    formatImporte(t.Alic),
				Importe: formatImporte(t.Importe),
			})
		}
		det.Tributos = &Tributos{Tributo: items}
	}
	if len(in.Alicuotas) > 0 {
		items := make([]AlicIvaItem, 0, len(in.Alicuotas))
		for _, a := range in.Alicuotas {
			items = append(items, AlicIvaItem{
				Id:      a.Id,
				BaseImp: formatImporte(a.BaseImp),
				Importe: formatImporte(a.Importe),
			})
		}
		det.Iva = &Iva{AlicIva: items}
	}
	if len(in.Opcionales) > 0 {
		det.Opcionales = &Opcionales{Opcional: in.Opcionales}
	}
	if len(in.Compradores) > 0 {
		items := make([]CompradorItem, 0, len(in.Compradores))
		for _, c := range in.Compradores {
			items = append(items, CompradorItem{
				DocTipo:    c.DocTipo,
				DocNro:     c.DocNro,
				Porcentaje: formatImporte(c.Porcentaje),
			})
		}
		det.Compradores = &Compradores{Comprador: items}
	}
	if in.PeriodoAsoc != nil {
		periodo := *in.PeriodoAsoc
		det.PeriodoAsoc = &periodo
	}
	if len(in.Actividades) > 0 {
		items := make([]ActividadItem, 0, len(in.Actividades))
		for _, id := range in.Actividades {
			items = append(items, ActividadItem{Id: id})
		}
		det.Actividades = &Actividades{Actividad: items}
	}

	return det, nil
}

// validarFecha8 exige exactamente 8 dígitos ASCII (AAAAMMDD). El builder no
// reformatea fechas: una fecha en otro formato es un error del llamador.
func validarFecha8(s, campo string) error {
	if len(s) != 8 {
		return fmt.Errorf("%w: %s debe tener 8 dígitos AAAAMMDD, se recibió %q", ErrValidacion, campo, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w: %s debe tener 8 dígitos AAAAMMDD, se recibió %q", ErrValidacion, campo, s)
		}
	}
	return nil
}

// formatImporte serializa un decimal al formato del wire: punto decimal, dos
// decimales fijos, sin separador de miles. StringFixed es invariante respecto
// del locale, lo que elimina el riesgo de corromper el importe transmitido.
func formatImporte(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatImporteOpcional(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := formatImporte(*d)
	return &s
}

func textoOpcional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
