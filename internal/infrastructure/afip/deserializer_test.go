package afip_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

const respuestaAprobada = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <FECAESolicitarResponse xmlns="http://ar.gov.afip.dif.FEV1/">
      <FECAESolicitarResult>
        <FeCabResp>
          <Cuit>20123456786</Cuit>
          <PtoVta>3</PtoVta>
          <CbteTipo>6</CbteTipo>
          <FchProceso>20250515180211</FchProceso>
          <CantReg>1</CantReg>
          <Resultado>A</Resultado>
        </FeCabResp>
        <FeDetResp>
          <FECAEDetResponse>
            <Concepto>1</Concepto>
            <DocTipo>80</DocTipo>
            <DocNro>20111111112</DocNro>
            <CbteDesde>125</CbteDesde>
            <CbteHasta>125</CbteHasta>
            <CbteFch>20250515</CbteFch>
            <Resultado>A</Resultado>
            <CAE>67123456789012</CAE>
            <CAEFchVto>20250601</CAEFchVto>
          </FECAEDetResponse>
        </FeDetResp>
      </FECAESolicitarResult>
    </FECAESolicitarResponse>
  </soap:Body>
</soap:Envelope>`

const respuestaRechazada = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <FECAESolicitarResponse xmlns="http://ar.gov.afip.dif.FEV1/">
      <FECAESolicitarResult>
        <FeCabResp>
          <Resultado>R</Resultado>
          <CantReg>1</CantReg>
        </FeCabResp>
        <FeDetResp>
          <FECAEDetResponse>
            <CbteDesde>126</CbteDesde>
            <CbteHasta>126</CbteHasta>
            <Resultado>R</Resultado>
            <Observaciones>
              <Obs>Obs primera</Obs>
              <Obs>Obs segunda</Obs>
            </Observaciones>
          </FECAEDetResponse>
        </FeDetResp>
        <Errores>
          <Err>10015 - CUIT invalido</Err>
          <Err>10040 - Punto de venta no habilitado</Err>
        </Errores>
      </FECAESolicitarResult>
    </FECAESolicitarResponse>
  </soap:Body>
</soap:Envelope>`

// ── parseo ────────────────────────────────────────────────────────────────────

func TestParsearRespuestaCAE_Aprobada(t *testing.T) {
	resp, err := afip.ParsearRespuestaCAE([]byte(respuestaAprobada))
	require.NoError(t, err)

	require.NotNil(t, resp.FeCabResp)
	assert.Equal(t, "A", resp.FeCabResp.Resultado)
	require.Len(t, resp.FeDetResp, 1)
	assert.Equal(t, "67123456789012", resp.FeDetResp[0].CAE)
	assert.Equal(t, "20250601", resp.FeDetResp[0].CAEFchVto)
	assert.Equal(t, "20111111112", resp.FeDetResp[0].DocNro)
	assert.Empty(t, resp.Errores)
}

func TestParsearRespuestaCAE_RechazadaConservaOrden(t *testing.T) {
	resp, err := afip.ParsearRespuestaCAE([]byte(respuestaRechazada))
	require.NoError(t, err, "un rechazo de negocio no es un error de parseo")

	assert.Equal(t, []string{
		"10015 - CUIT invalido",
		"10040 - Punto de venta no habilitado",
	}, resp.Errores, "los errores conservan el orden del documento")
	require.Len(t, resp.FeDetResp, 1)
	assert.Equal(t, []string{"Obs primera", "Obs segunda"}, resp.FeDetResp[0].Observaciones)
	assert.Empty(t, resp.FeDetResp[0].CAE)
}

func TestParsearRespuestaCAE_IgnoraElementosDesconocidos(t *testing.T) {
	conExtras := bytes.Replace([]byte(respuestaAprobada),
		[]byte("<CAEFchVto>20250601</CAEFchVto>"),
		[]byte("<CAEFchVto>20250601</CAEFchVto><CampoNuevo2026>x</CampoNuevo2026><Otro><Anidado>1</Anidado></Otro>"), 1)

	resp, err := afip.ParsearRespuestaCAE(conExtras)
	require.NoError(t, err, "elementos desconocidos deben ignorarse, no romper el parseo")
	assert.Equal(t, "67123456789012", resp.FeDetResp[0].CAE)
}

func TestParsearRespuestaCAE_Latin1(t *testing.T) {
	latinada := bytes.Replace([]byte(respuestaRechazada),
		[]byte(`encoding="utf-8"`), []byte(`encoding="ISO-8859-1"`), 1)
	latinada = bytes.Replace(latinada,
		[]byte("10015 - CUIT invalido"), []byte("10015 - CUIT inválido"), 1)

	// recodificar el fixture a Latin-1 real
	enc, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), latinada)
	require.NoError(t, err)

	resp, err := afip.ParsearRespuestaCAE(enc)
	require.NoError(t, err)
	assert.Equal(t, "10015 - CUIT inválido", resp.Errores[0],
		"el texto Latin-1 debe decodificarse a UTF-8")
}

// ── errores estructurales ─────────────────────────────────────────────────────

func TestParsearRespuestaCAE_Malformada(t *testing.T) {
	casos := map[string]string{
		"no es XML":      "esto no es xml",
		"XML truncado":   respuestaAprobada[:200],
		"sin body":       `<?xml version="1.0"?><Envelope></Envelope>`,
		"body sin payload": `<?xml version="1.0"?><Envelope><Body></Body></Envelope>`,
	}
	for nombre, texto := range casos {
		_, err := afip.ParsearRespuestaCAE([]byte(texto))
		assert.ErrorIs(t, err, afip.ErrRespuestaMalformada, "caso %q", nombre)
	}
}

func TestParsearRespuestaCAE_SoapFault(t *testing.T) {
	fault := `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Client</faultcode>
      <faultstring>Token expirado</faultstring>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`

	_, err := afip.ParsearRespuestaCAE([]byte(fault))
	require.ErrorIs(t, err, afip.ErrSoapFault)
	assert.Contains(t, err.Error(), "Token expirado")
}

// ── último autorizado ─────────────────────────────────────────────────────────

func TestParsearUltimoAutorizado(t *testing.T) {
	texto := `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <FECompUltimoAutorizadoResponse xmlns="http://ar.gov.afip.dif.FEV1/">
      <FECompUltimoAutorizadoResult>
        <PtoVta>3</PtoVta>
        <CbteTipo>6</CbteTipo>
        <CbteNro>124</CbteNro>
      </FECompUltimoAutorizadoResult>
    </FECompUltimoAutorizadoResponse>
  </soap:Body>
</soap:Envelope>`

	ultimo, err := afip.ParsearUltimoAutorizado([]byte(texto))
	require.NoError(t, err)
	assert.Equal(t, int64(124), ultimo.CbteNro)
	assert.Equal(t, 3, ultimo.PtoVta)

	_, err = afip.ParsearUltimoAutorizado([]byte(respuestaAprobada))
	assert.ErrorIs(t, err, afip.ErrRespuestaMalformada,
		"una respuesta de otra operación no tiene el payload esperado")
}
