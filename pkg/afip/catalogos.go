// Package afip contiene catálogos y validaciones alineados a las tablas del
// web service de facturación electrónica AFIP (WSFEv1, manual v4.0).
package afip

// =============================================================================
// Tipos de comprobante (tabla FEParamGetTiposCbte)
// =============================================================================

const (
	CbteFacturaA     = 1  // Factura A
	CbteNotaDebitoA  = 2  // Nota de Débito A
	CbteNotaCreditoA = 3  // Nota de Crédito A
	CbteFacturaB     = 6  // Factura B
	CbteNotaDebitoB  = 7  // Nota de Débito B
	CbteNotaCreditoB = 8  // Nota de Crédito B
	CbteFacturaC     = 11 // Factura C
	CbteNotaDebitoC  = 12 // Nota de Débito C
	CbteNotaCreditoC = 13 // Nota de Crédito C
)

// ValidCbteTipos tipos de comprobante emitibles por la aplicación.
var ValidCbteTipos = map[int]bool{
	CbteFacturaA: true, CbteNotaDebitoA: true, CbteNotaCreditoA: true,
	CbteFacturaB: true, CbteNotaDebitoB: true, CbteNotaCreditoB: true,
	CbteFacturaC: true, CbteNotaDebitoC: true, CbteNotaCreditoC: true,
}

// EsNotaCredito informa si el tipo corresponde a una nota de crédito
// (requiere comprobantes asociados en la solicitud de CAE).
func EsNotaCredito(cbteTipo int) bool {
	return cbteTipo == CbteNotaCreditoA || cbteTipo == CbteNotaCreditoB || cbteTipo == CbteNotaCreditoC
}

// EsComprobanteC informa si el tipo es clase C (monotributo): no discrimina
// IVA, por lo que la solicitud viaja sin array de alícuotas y con ImpIVA 0.
func EsComprobanteC(cbteTipo int) bool {
	return cbteTipo == CbteFacturaC || cbteTipo == CbteNotaDebitoC || cbteTipo == CbteNotaCreditoC
}

// =============================================================================
// Conceptos (tabla FEParamGetTiposConcepto)
// =============================================================================

const (
	ConceptoProductos          = 1 // Productos
	ConceptoServicios          = 2 // Servicios (exige FchServDesde/Hasta y FchVtoPago)
	ConceptoProductosServicios = 3 // Productos y Servicios
)

// ConceptoExigeFechasServicio informa si el concepto exige período de servicio
// y fecha de vencimiento de pago en el detalle WSFE.
func ConceptoExigeFechasServicio(concepto int) bool {
	return concepto == ConceptoServicios || concepto == ConceptoProductosServicios
}

// =============================================================================
// Tipos de documento del receptor (tabla FEParamGetTiposDoc)
// =============================================================================

const (
	DocTipoCUIT          = 80 // CUIT
	DocTipoCUIL          = 86 // CUIL
	DocTipoDNI           = 96 // DNI
	DocTipoConsumidorFin = 99 // Consumidor Final (sin identificar)
)

// ValidDocTipos tipos de documento aceptados para el receptor.
var ValidDocTipos = map[int]bool{
	DocTipoCUIT: true, DocTipoCUIL: true, DocTipoDNI: true, DocTipoConsumidorFin: true,
}

// =============================================================================
// Alícuotas de IVA (tabla FEParamGetTiposIva)
// =============================================================================

const (
	AlicuotaIVA0    = 3 // 0%
	AlicuotaIVA105  = 4 // 10,5%
	AlicuotaIVA21   = 5 // 21%
	AlicuotaIVA27   = 6 // 27%
	AlicuotaIVA25   = 8 // 2,5%
	AlicuotaIVA5    = 9 // 5%
)

// AlicuotaIVAId devuelve el Id WSFE para un porcentaje de alícuota expresado
// como string ("21", "10.5", "27", "0", "5", "2.5"). Retorna 0 si no hay match.
func AlicuotaIVAId(porcentaje string) int {
	switch porcentaje {
	case "0", "0.00":
		return AlicuotaIVA0
	case "10.5", "10.50":
		return AlicuotaIVA105
	case "21", "21.00":
		return AlicuotaIVA21
	case "27", "27.00":
		return AlicuotaIVA27
	case "2.5", "2.50":
		return AlicuotaIVA25
	case "5", "5.00":
		return AlicuotaIVA5
	}
	return 0
}

// =============================================================================
// Monedas (tabla FEParamGetTiposMonedas) - códigos de uso frecuente
// =============================================================================

const (
	MonedaPesos   = "PES" // Peso argentino
	MonedaDolar   = "DOL" // Dólar estadounidense
	MonedaEuro    = "060" // Euro
	MonedaReal    = "012" // Real brasileño
)

// =============================================================================
// Condición frente al IVA del receptor (RG 5616, obligatoria desde 2025)
// =============================================================================

const (
	CondIVAResponsableInscripto = 1  // IVA Responsable Inscripto
	CondIVAExento               = 4  // IVA Sujeto Exento
	CondIVAConsumidorFinal      = 5  // Consumidor Final
	CondIVAMonotributo          = 6  // Responsable Monotributo
	CondIVANoCategorizado       = 7  // Sujeto No Categorizado
	CondIVAProveedorExterior    = 8  // Proveedor del Exterior
	CondIVAClienteExterior      = 9  // Cliente del Exterior
	CondIVALiberadoLey19640     = 10 // IVA Liberado – Ley N° 19.640
	CondIVAMonotributoSocial    = 13 // Monotributista Social
)

// ValidCondicionesIVA condiciones de IVA del receptor aceptadas por WSFE.
var ValidCondicionesIVA = map[int]bool{
	CondIVAResponsableInscripto: true, CondIVAExento: true, CondIVAConsumidorFinal: true,
	CondIVAMonotributo: true, CondIVANoCategorizado: true, CondIVAProveedorExterior: true,
	CondIVAClienteExterior: true, CondIVALiberadoLey19640: true, CondIVAMonotributoSocial: true,
}

// =============================================================================
// Tributos (tabla FEParamGetTiposTributos)
// =============================================================================

const (
	TributoNacional         = 1 // Impuestos nacionales
	TributoProvincial       = 2 // Impuestos provinciales
	TributoMunicipal        = 3 // Impuestos municipales
	TributoInterno          = 4 // Impuestos internos
	TributoIIBB             = 5 // Ingresos Brutos (uso habitual en provincia)
	TributoPercepcionIVA    = 6 // Percepción de IVA
	TributoPercepcionIIBB   = 7 // Percepción de Ingresos Brutos
	TributoOtro             = 99
)
