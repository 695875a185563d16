package afip_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
)

func TestMapearResultadoCAE_Aprobado(t *testing.T) {
	resp := &afip.FECAERespuesta{
		FeCabResp: &afip.FeCabResp{Resultado: "A", CantReg: 1},
		FeDetResp: []afip.FECAEDetResponse{{
			CbteDesde: 125,
			CbteHasta: 125,
			Resultado: "A",
			CAE:       "67123456789012",
			CAEFchVto: "20250601",
		}},
	}

	res := afip.MapearResultadoCAE(resp)

	assert.True(t, res.Aprobado)
	assert.Equal(t, "67123456789012", res.CAE)
	assert.Equal(t, int64(125), res.NroComprobante)
	require.NotNil(t, res.CAEVencimiento)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *res.CAEVencimiento)
	assert.Empty(t, res.Errores)
}

func TestMapearResultadoCAE_RechazoEsDatoNoError(t *testing.T) {
	resp := &afip.FECAERespuesta{
		FeCabResp: &afip.FeCabResp{Resultado: "R", CantReg: 1},
		FeDetResp: []afip.FECAEDetResponse{{
			CbteDesde: 126,
			Resultado: "R",
		}},
		Errores: []string{"10015 - CUIT invalido"},
	}

	res := afip.MapearResultadoCAE(resp)

	assert.False(t, res.Aprobado)
	assert.Empty(t, res.CAE)
	assert.Nil(t, res.CAEVencimiento, "sin CAE no hay vencimiento")
	assert.Equal(t, []string{"10015 - CUIT invalido"}, res.Errores)
}

// Las observaciones son advertencias: no voltean la aprobación.
func TestMapearResultadoCAE_ObservacionesNoVoltean(t *testing.T) {
	resp := &afip.FECAERespuesta{
		FeDetResp: []afip.FECAEDetResponse{{
			CbteDesde:     127,
			Resultado:     "A",
			CAE:           "67123456789099",
			CAEFchVto:     "20250610",
			Observaciones: []string{"01 - Comprobante observado por fiscalizacion"},
		}},
	}

	res := afip.MapearResultadoCAE(resp)

	assert.True(t, res.Aprobado, "observaciones sin errores siguen siendo aprobación")
	assert.Len(t, res.Observaciones, 1)
}

func TestMapearResultadoCAE_ErroresConCAESiguenSiendoRechazo(t *testing.T) {
	resp := &afip.FECAERespuesta{
		FeDetResp: []afip.FECAEDetResponse{{
			CAE:       "67123456789012",
			CAEFchVto: "20250601",
		}},
		Errores: []string{"602 - Error interno de aplicacion"},
	}

	res := afip.MapearResultadoCAE(resp)
	assert.False(t, res.Aprobado, "con errores presentes nunca hay aprobación, aunque venga CAE")
}

func TestMapearResultadoCAE_RespuestaSinDetalles(t *testing.T) {
	resp := &afip.FECAERespuesta{
		Errores: []string{"600 - ValidacionDeToken: Error al verificar hash"},
	}

	res := afip.MapearResultadoCAE(resp)
	assert.False(t, res.Aprobado)
	assert.Empty(t, res.CAE)
	assert.Nil(t, res.CAEVencimiento)
	assert.Len(t, res.Errores, 1)
}

func TestMapearResultadoCAE_VencimientoIlegibleQuedaNil(t *testing.T) {
	resp := &afip.FECAERespuesta{
		FeDetResp: []afip.FECAEDetResponse{{
			CAE:       "67123456789012",
			CAEFchVto: "junio 2025",
		}},
	}

	res := afip.MapearResultadoCAE(resp)
	assert.True(t, res.Aprobado)
	assert.Nil(t, res.CAEVencimiento)
}
