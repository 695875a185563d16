package afip_test

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
	catalogos "github.com/tu-usuario/gestion-pyme/pkg/afip"
)

func serializarDetalle(t *testing.T, detalles ...afip.DetalleSolicitud) *etree.Document {
	t.Helper()
	env, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: len(detalles), PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		detalles)
	require.NoError(t, err)

	out, err := afip.SerializarSolicitudCAE(env)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "la salida del serializer debe ser XML bien formado")
	return doc
}

func TestSerializar_CantRegCoincideConDetallesEmitidos(t *testing.T) {
	doc := serializarDetalle(t, buildDetalle(), buildDetalle())

	cantReg := doc.FindElement("//ar:FeCabReq/ar:CantReg")
	require.NotNil(t, cantReg)
	assert.Equal(t, "2", cantReg.Text())
	assert.Len(t, doc.FindElements("//ar:FeDetReq/ar:FECAEDetRequest"), 2,
		"CantReg debe coincidir con los detalles realmente emitidos")
}

func TestSerializar_SinCbtesAsocNoHayWrapper(t *testing.T) {
	det := buildDetalle()
	det.CbtesAsoc = nil
	doc := serializarDetalle(t, det)

	assert.Nil(t, doc.FindElement("//ar:CbtesAsoc"),
		"sin comprobantes asociados no debe existir el elemento CbtesAsoc, ni siquiera vacío")
	assert.Nil(t, doc.FindElement("//ar:Tributos"))
	assert.Nil(t, doc.FindElement("//ar:Opcionales"))
}

func TestSerializar_OrdenDeElementosDelDetalle(t *testing.T) {
	impTrib := decimal.NewFromFloat(500)
	det := buildDetalle()
	det.ImpTrib = &impTrib
	det.Tributos = []afip.Tributo{{
		Id:      catalogos.TributoIIBB,
		BaseImp: decimal.NewFromFloat(100_000),
		Alic:    decimal.NewFromFloat(0.5),
		Importe: decimal.NewFromFloat(500),
	}}
	doc := serializarDetalle(t, det)

	wire := doc.FindElement("//ar:FECAEDetRequest")
	require.NotNil(t, wire)

	var tags []string
	for _, child := range wire.ChildElements() {
		tags = append(tags, strings.TrimPrefix(child.Tag, "ar:"))
	}

	// El schema WSFE es sensible al orden: los presentes deben respetar la
	// secuencia del manual.
	esperado := []string{
		"Concepto", "DocTipo", "DocNro", "CbteDesde", "CbteHasta", "CbteFch",
		"ImpTotal", "ImpNeto", "ImpTrib", "ImpIVA", "Tributos", "Iva",
	}
	assert.Equal(t, esperado, tags)
}

func TestSerializar_FechasSonOchoDigitosExactos(t *testing.T) {
	doc := serializarDetalle(t, buildDetalle())

	fch := doc.FindElement("//ar:FECAEDetRequest/ar:CbteFch")
	require.NotNil(t, fch)
	assert.Len(t, fch.Text(), 8)
	assert.Equal(t, "20250515", fch.Text())
}

func TestSerializar_ImportesConDosDecimalesYPunto(t *testing.T) {
	det := buildDetalle()
	det.ImpTotal = decimal.RequireFromString("1234567.895")
	det.ImpNeto = decimal.RequireFromString("1020304.1")
	doc := serializarDetalle(t, det)

	total := doc.FindElement("//ar:FECAEDetRequest/ar:ImpTotal")
	neto := doc.FindElement("//ar:FECAEDetRequest/ar:ImpNeto")
	require.NotNil(t, total)
	require.NotNil(t, neto)
	assert.Equal(t, "1234567.90", total.Text(), "dos decimales fijos, punto decimal, sin separador de miles")
	assert.Equal(t, "1020304.10", neto.Text())
}

func TestSerializar_Deterministico(t *testing.T) {
	env, err := afip.NuevaSolicitudCAE(buildAuth(),
		afip.FeCabReq{CantReg: 1, PtoVta: 3, CbteTipo: catalogos.CbteFacturaB},
		[]afip.DetalleSolicitud{buildDetalle()})
	require.NoError(t, err)

	a, err := afip.SerializarSolicitudCAE(env)
	require.NoError(t, err)
	b, err := afip.SerializarSolicitudCAE(env)
	require.NoError(t, err)
	assert.Equal(t, a, b, "el mismo envelope siempre produce los mismos bytes")
}

// Ida y vuelta: todo campo poblado se recupera idéntico del XML serializado y
// los opcionales ausentes siguen ausentes.
func TestSerializar_IdaYVuelta(t *testing.T) {
	mon := decimal.NewFromFloat(1)
	det := buildDetalle()
	det.MonId = catalogos.MonedaPesos
	det.MonCotiz = &mon
	det.CondicionIVAReceptorId = catalogos.CondIVAResponsableInscripto
	doc := serializarDetalle(t, det)

	casos := map[string]string{
		"//ar:Auth/ar:Token":                          "tok==",
		"//ar:Auth/ar:Cuit":                           "20123456786",
		"//ar:FECAEDetRequest/ar:DocNro":              "20111111112",
		"//ar:FECAEDetRequest/ar:CbteDesde":           "125",
		"//ar:FECAEDetRequest/ar:MonId":               "PES",
		"//ar:FECAEDetRequest/ar:MonCotiz":            "1.00",
		"//ar:FECAEDetRequest/ar:CondicionIVAReceptorId": "1",
		"//ar:Iva/ar:AlicIva/ar:Id":                   "5",
		"//ar:Iva/ar:AlicIva/ar:BaseImp":              "100000.00",
	}
	for path, valor := range casos {
		el := doc.FindElement(path)
		require.NotNil(t, el, "falta %s", path)
		assert.Equal(t, valor, el.Text(), "valor de %s", path)
	}

	for _, ausente := range []string{
		"//ar:FECAEDetRequest/ar:ImpTotConc",
		"//ar:FECAEDetRequest/ar:FchServDesde",
		"//ar:FECAEDetRequest/ar:CanMisMonExt",
		"//ar:PeriodoAsoc",
	} {
		assert.Nil(t, doc.FindElement(ausente), "%s debe seguir ausente tras la ida y vuelta", ausente)
	}
}

func TestSerializarConsultaUltimo(t *testing.T) {
	env, err := afip.NuevaConsultaUltimoAutorizado(buildAuth(), 3, catalogos.CbteFacturaB)
	require.NoError(t, err)

	out, err := afip.SerializarConsultaUltimo(env)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	pv := doc.FindElement("//ar:FECompUltimoAutorizado/ar:PtoVta")
	require.NotNil(t, pv)
	assert.Equal(t, "3", pv.Text())
}
