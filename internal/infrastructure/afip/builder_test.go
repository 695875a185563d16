package afip_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
	catalogos "github.com/tu-usuario/gestion-pyme/pkg/afip"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func buildAuth() afip.Auth {
	return afip.Auth{Token: "tok==", Sign: "sig==", Cuit: "20123456786"}
}

func buildDetalle() afip.DetalleSolicitud {
	iva := decimal.NewFromFloat(21_000)
	return afip.DetalleSolicitud{
		Concepto:  catalogos.ConceptoProductos,
		DocTipo:   catalogos.DocTipoCUIT,
		DocNro:    "20111111112",
		CbteDesde: 125,
		CbteHasta: 125,
		CbteFch:   "20250515",
		ImpTotal:  decimal.NewFromFloat(121_000),
		ImpNeto:   decimal.NewFromFloat(100_000),
		ImpIVA:    &iva,
		Alicuotas: []afip.AlicuotaIVA{{
			Id:      catalogos.AlicuotaIVA21,
			BaseImp: decimal.NewFromFloat(100_000),
			Importe: decimal.NewFromFloat(21_000),
		}},
	}
}

// ── construcción válida ───────────────────────────────────────────────────────

func TestNuevaSolicitudCAE_Valida(t *testing.T) {
	det := buildDetalle()
	env, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{det})

	require.NoError(t, err)
	require.Len(t, env.Body.FECAESolicitar.FeCAEReq.FeDetReq.FECAEDetRequest, 1)

	wire := env.Body.FECAESolicitar.FeCAEReq.FeDetReq.FECAEDetRequest[0]
	assert.Equal(t, "20111111112", wire.DocNro, "DocNro viaja como texto sin alterar")
	assert.Equal(t, "121000.00", wire.ImpTotal, "los importes se formatean con punto y dos decimales")
	assert.Equal(t, "100000.00", wire.ImpNeto)
	require.NotNil(t, wire.ImpIVA)
	assert.Equal(t, "21000.00", *wire.ImpIVA)
	assert.Equal(t, "20250515", wire.CbteFch, "la fecha se transporta tal cual, sin reformatear")
}

func TestNuevaSolicitudCAE_ColeccionesVaciasQuedanAusentes(t *testing.T) {
	det := buildDetalle()
	det.Alicuotas = nil
	det.CbtesAsoc = []afip.CbteAsoc{} // slice vacío: también debe quedar ausente

	env, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{det})

	require.NoError(t, err)
	wire := env.Body.FECAESolicitar.FeCAEReq.FeDetReq.FECAEDetRequest[0]
	assert.Nil(t, wire.CbtesAsoc, "sin comprobantes asociados no hay wrapper CbtesAsoc")
	assert.Nil(t, wire.Iva)
	assert.Nil(t, wire.Tributos)
	assert.Nil(t, wire.ImpTotConc, "los opcionales no seteados quedan nil")
}

func TestNuevaSolicitudCAE_NotaCreditoConAsociado(t *testing.T) {
	det := buildDetalle()
	det.CbtesAsoc = []afip.CbteAsoc{{
		Tipo:    catalogos.CbteFacturaB,
		PtoVta:  3,
		Nro:     117,
		CbteFch: "20250410",
	}}

	env, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteNotaCreditoB},
		[]afip.DetalleSolicitud{det})

	require.NoError(t, err)
	wire := env.Body.FECAESolicitar.FeCAEReq.FeDetReq.FECAEDetRequest[0]
	require.NotNil(t, wire.CbtesAsoc)
	require.Len(t, wire.CbtesAsoc.CbteAsoc, 1)
	assert.Equal(t, int64(117), wire.CbtesAsoc.CbteAsoc[0].Nro)
}

// ── errores de validación ─────────────────────────────────────────────────────

func TestNuevaSolicitudCAE_ErrorSiCantRegNoCoincide(t *testing.T) {
	_, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 2, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{buildDetalle()})

	require.Error(t, err)
	assert.ErrorIs(t, err, afip.ErrValidacion,
		"CantReg=2 con un solo detalle debe fallar con error de validación")
}

func TestNuevaSolicitudCAE_ErrorSiFechaMalFormada(t *testing.T) {
	casos := []string{"2025-05-15", "20250515 ", "2025051", "202505155", "2025051x", ""}
	for _, fecha := range casos {
		det := buildDetalle()
		det.CbteFch = fecha
		_, err := afip.NuevaSolicitudCAE(buildAuth(),
			afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
			[]afip.DetalleSolicitud{det})
		assert.ErrorIs(t, err, afip.ErrValidacion,
			"la fecha %q no tiene 8 dígitos y debe rechazarse, nunca reformatearse", fecha)
	}
}

func TestNuevaSolicitudCAE_ErrorSiFechaServicioMalFormada(t *testing.T) {
	det := buildDetalle()
	det.Concepto = catalogos.ConceptoServicios
	det.FchServDesde = "01/05/2025"
	_, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{det})
	assert.ErrorIs(t, err, afip.ErrValidacion)
}

func TestNuevaSolicitudCAE_ErrorSiSinDetalles(t *testing.T) {
	_, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 0, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB}, nil)
	assert.ErrorIs(t, err, afip.ErrValidacion)
}

func TestNuevaSolicitudCAE_ErrorSiAuthIncompleto(t *testing.T) {
	auth := buildAuth()
	auth.Sign = ""
	_, err := afip.NuevaSolicitudCAE(auth,
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{buildDetalle()})
	assert.ErrorIs(t, err, afip.ErrValidacion)
}

func TestNuevaSolicitudCAE_ErrorSiDocNroVacio(t *testing.T) {
	det := buildDetalle()
	det.DocNro = ""
	_, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{det})
	assert.ErrorIs(t, err, afip.ErrValidacion)
}

func TestNuevaSolicitudCAE_ErrorSiRangoInvalido(t *testing.T) {
	det := buildDetalle()
	det.CbteHasta = det.CbteDesde - 1
	_, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{det})
	assert.ErrorIs(t, err, afip.ErrValidacion)
}

func TestNuevaConsultaUltimoAutorizado(t *testing.T) {
	env, err := afip.NuevaConsultaUltimoAutorizado(buildAuth(), 3, catalogos.CbteFacturaB)
	require.NoError(t, err)
	assert.Equal(t, 3, env.Body.FECompUltimoAutorizado.PtoVta)

	_, err = afip.NuevaConsultaUltimoAutorizado(buildAuth(), 0, catalogos.CbteFacturaB)
	assert.ErrorIs(t, err, afip.ErrValidacion)
}
