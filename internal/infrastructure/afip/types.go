// Package afip implementa el códec del web service de factura electrónica
// AFIP WSFEv1 (Argentina): armado de la solicitud de CAE, serialización al
// envelope SOAP, parseo de la respuesta y mapeo al resultado de dominio.
//
// El códec es puro y sin estado: cada llamada arma y consume su propio
// envelope, sin estado compartido entre llamadas. El transporte (cliente
// SOAP) y la obtención del ticket WSAA viven en archivos aparte de este
// paquete y son los únicos componentes con I/O.
package afip

import "encoding/xml"

// Namespaces del envelope SOAP y del servicio WSFEv1.
const (
	nsSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsService = "http://ar.gov.afip.dif.FEV1/"
)

// ── Solicitud (emisor → AFIP) ─────────────────────────────────────────────────
//
// El orden de los campos de cada struct reproduce el orden de elementos que
// exige el schema WSFEv1; el validador de AFIP es sensible al orden, por lo
// que el orden de declaración es parte del contrato y no debe reordenarse.
// Los importes viajan como texto ya formateado (punto decimal, dos decimales,
// sin separador de miles); el builder es el único que los formatea.
// Los campos opcionales son punteros: nil = ausente, y un elemento ausente se
// omite por completo del XML (nunca se emite un tag vacío).

// SolicitudEnvelope es el envelope SOAP de FECAESolicitar.
type SolicitudEnvelope struct {
	XMLName   xml.Name        `xml:"soapenv:Envelope"`
	XmlnsSoap string          `xml:"xmlns:soapenv,attr"`
	XmlnsAr   string          `xml:"xmlns:ar,attr"`
	Header    solicitudHeader `xml:"soapenv:Header"`
	Body      SolicitudBody   `xml:"soapenv:Body"`
}

// El header SOAP viaja siempre vacío.
type solicitudHeader struct{}

// SolicitudBody contiene exactamente un payload: la operación FECAESolicitar.
type SolicitudBody struct {
	FECAESolicitar FECAESolicitar `xml:"ar:FECAESolicitar"`
}

// FECAESolicitar es el payload de la solicitud de CAE.
type FECAESolicitar struct {
	Auth     Auth     `xml:"ar:Auth"`
	FeCAEReq FeCAEReq `xml:"ar:FeCAEReq"`
}

// Auth es la terna de credenciales emitida por WSAA; se transporta sin
// modificar. Los tres campos son obligatorios.
type Auth struct {
	Token string `xml:"ar:Token"`
	Sign  string `xml:"ar:Sign"`
	Cuit  string `xml:"ar:Cuit"`
}

// FeCAEReq agrupa la cabecera del lote y sus registros de detalle.
type FeCAEReq struct {
	FeCabReq FeCabReq `xml:"ar:FeCabReq"`
	FeDetReq FeDetReq `xml:"ar:FeDetReq"`
}

// FeCabReq es la cabecera del lote. CantReg debe coincidir con la cantidad
// de FECAEDetRequest incluidos (lo garantiza el builder).
type FeCabReq struct {
	CantReg  int `xml:"ar:CantReg"`
	PtoVta   int `xml:"ar:PtoVta"`
	CbteTipo int `xml:"ar:CbteTipo"`
}

// FeDetReq envuelve los registros de detalle del lote.
type FeDetReq struct {
	FECAEDetRequest []FECAEDetRequest `xml:"ar:FECAEDetRequest"`
}

// FECAEDetRequest es un comprobante dentro del lote. DocNro es siempre texto:
// algunos esquemas de identificación exceden los límites de precisión de los
// enteros y pueden llevar ceros a la izquierda significativos.
type FECAEDetRequest struct {
	Concepto               int          `xml:"ar:Concepto"`
	DocTipo                int          `xml:"ar:DocTipo"`
	DocNro                 string       `xml:"ar:DocNro"`
	CbteDesde              int64        `xml:"ar:CbteDesde"`
	CbteHasta              int64        `xml:"ar:CbteHasta"`
	CbteFch                string       `xml:"ar:CbteFch"` // AAAAMMDD, 8 dígitos
	ImpTotal               string       `xml:"ar:ImpTotal"`
	ImpTotConc             *string      `xml:"ar:ImpTotConc,omitempty"`
	ImpNeto                string       `xml:"ar:ImpNeto"`
	ImpOpEx                *string      `xml:"ar:ImpOpEx,omitempty"`
	ImpTrib                *string      `xml:"ar:ImpTrib,omitempty"`
	ImpIVA                 *string      `xml:"ar:ImpIVA,omitempty"`
	FchServDesde           *string      `xml:"ar:FchServDesde,omitempty"`
	FchServHasta           *string      `xml:"ar:FchServHasta,omitempty"`
	FchVtoPago             *string      `xml:"ar:FchVtoPago,omitempty"`
	MonId                  *string      `xml:"ar:MonId,omitempty"`
	MonCotiz               *string      `xml:"ar:MonCotiz,omitempty"`
	CanMisMonExt           *string      `xml:"ar:CanMisMonExt,omitempty"`
	CondicionIVAReceptorId *int         `xml:"ar:CondicionIVAReceptorId,omitempty"`
	CbtesAsoc              *CbtesAsoc   `xml:"ar:CbtesAsoc,omitempty"`
	Tributos               *Tributos    `xml:"ar:Tributos,omitempty"`
	Iva                    *Iva         `xml:"ar:Iva,omitempty"`
	Opcionales             *Opcionales  `xml:"ar:Opcionales,omitempty"`
	Compradores            *Compradores `xml:"ar:Compradores,omitempty"`
	PeriodoAsoc            *PeriodoAsoc `xml:"ar:PeriodoAsoc,omitempty"`
	Actividades            *Actividades `xml:"ar:Actividades,omitempty"`
}

// Las colecciones opcionales se modelan como puntero a un wrapper con al menos
// un ítem: nil = colección ausente (sin tag); un wrapper nunca se construye
// vacío, de modo que el tipo no puede representar la forma ilegal
// "colección presente sin ítems".

// CbtesAsoc envuelve las referencias a comprobantes asociados.
type CbtesAsoc struct {
	CbteAsoc []CbteAsoc `xml:"ar:CbteAsoc"`
}

// CbteAsoc referencia un comprobante original (notas de crédito/débito).
type CbteAsoc struct {
	Tipo    int    `xml:"ar:Tipo"`
	PtoVta  int    `xml:"ar:PtoVta"`
	Nro     int64  `xml:"ar:Nro"`
	Cuit    string `xml:"ar:Cuit,omitempty"`
	CbteFch string `xml:"ar:CbteFch,omitempty"`
}

// Tributos envuelve los tributos del comprobante.
type Tributos struct {
	Tributo []TributoItem `xml:"ar:Tributo"`
}

// TributoItem es un tributo sobre el comprobante (IIBB, percepciones, etc.).
type TributoItem struct {
	Id      int    `xml:"ar:Id"`
	Desc    string `xml:"ar:Desc,omitempty"`
	BaseImp string `xml:"ar:BaseImp"`
	Alic    string `xml:"ar:Alic"`
	Importe string `xml:"ar:Importe"`
}

// Iva envuelve las alícuotas de IVA del comprobante.
type Iva struct {
	AlicIva []AlicIvaItem `xml:"ar:AlicIva"`
}

// AlicIvaItem es una alícuota de IVA: a diferencia de los tributos, el schema
// no lleva el porcentaje, solo base imponible e importe.
type AlicIvaItem struct {
	Id      int    `xml:"ar:Id"`
	BaseImp string `xml:"ar:BaseImp"`
	Importe string `xml:"ar:Importe"`
}

// Opcionales envuelve los datos opcionales clave/valor.
type Opcionales struct {
	Opcional []Opcional `xml:"ar:Opcional"`
}

// Opcional es un par clave/valor de los regímenes opcionales de AFIP.
type Opcional struct {
	Id    string `xml:"ar:Id"`
	Valor string `xml:"ar:Valor"`
}

// Compradores envuelve los compradores de un comprobante compartido.
type Compradores struct {
	Comprador []CompradorItem `xml:"ar:Comprador"`
}

// CompradorItem identifica a un comprador y su porcentaje de titularidad.
type CompradorItem struct {
	DocTipo    int    `xml:"ar:DocTipo"`
	DocNro     string `xml:"ar:DocNro"`
	Porcentaje string `xml:"ar:Porcentaje"`
}

// PeriodoAsoc es el período asociado del comprobante (a lo sumo uno).
type PeriodoAsoc struct {
	FchDesde string `xml:"ar:FchDesde"`
	FchHasta string `xml:"ar:FchHasta"`
}

// Actividades envuelve los códigos de actividad del emisor.
type Actividades struct {
	Actividad []ActividadItem `xml:"ar:Actividad"`
}

// ActividadItem es un código de actividad económica (formulario 883).
type ActividadItem struct {
	Id int64 `xml:"ar:Id"`
}

// ── Consulta de último comprobante autorizado ────────────────────────────────

// ConsultaUltimoEnvelope es el envelope SOAP de FECompUltimoAutorizado,
// usado para numerar el próximo comprobante.
type ConsultaUltimoEnvelope struct {
	XMLName   xml.Name            `xml:"soapenv:Envelope"`
	XmlnsSoap string              `xml:"xmlns:soapenv,attr"`
	XmlnsAr   string              `xml:"xmlns:ar,attr"`
	Header    solicitudHeader     `xml:"soapenv:Header"`
	Body      ConsultaUltimoBody  `xml:"soapenv:Body"`
}

// ConsultaUltimoBody contiene la operación FECompUltimoAutorizado.
type ConsultaUltimoBody struct {
	FECompUltimoAutorizado FECompUltimoAutorizado `xml:"ar:FECompUltimoAutorizado"`
}

// FECompUltimoAutorizado es el payload de la consulta.
type FECompUltimoAutorizado struct {
	Auth     Auth `xml:"ar:Auth"`
	PtoVta   int  `xml:"ar:PtoVta"`
	CbteTipo int  `xml:"ar:CbteTipo"`
}

// ── Respuesta (AFIP → emisor) ────────────────────────────────────────────────
//
// El schema de respuesta es un tipo distinto al de solicitud: nunca se mezclan
// en un mismo envelope. Los tags no llevan prefijo: el parser matchea por
// nombre local e ignora elementos desconocidos, lo que tolera campos nuevos
// que AFIP agregue a futuro.

// RespuestaEnvelope es el envelope SOAP de una respuesta WSFEv1.
type RespuestaEnvelope struct {
	XMLName xml.Name       `xml:"Envelope"`
	Body    *RespuestaBody `xml:"Body"`
}

// RespuestaBody contiene exactamente un payload de respuesta o un Fault.
type RespuestaBody struct {
	FECAESolicitarResponse         *FECAESolicitarResponse         `xml:"FECAESolicitarResponse"`
	FECompUltimoAutorizadoResponse *FECompUltimoAutorizadoResponse `xml:"FECompUltimoAutorizadoResponse"`
	Fault                          *SoapFault                      `xml:"Fault"`
}

// FECAESolicitarResponse envuelve el resultado de FECAESolicitar.
type FECAESolicitarResponse struct {
	Result FECAERespuesta `xml:"FECAESolicitarResult"`
}

// FECAERespuesta es el resultado de una solicitud de CAE. Errores y Eventos
// preservan el orden del documento.
type FECAERespuesta struct {
	FeCabResp *FeCabResp         `xml:"FeCabResp"`
	FeDetResp []FECAEDetResponse `xml:"FeDetResp>FECAEDetResponse"`
	Eventos   []string           `xml:"Eventos>Evt"`
	Errores   []string           `xml:"Errores>Err"`
}

// FeCabResp es la cabecera de la respuesta. Resultado: "A" aprobado,
// "R" rechazado, "P" parcial.
type FeCabResp struct {
	Cuit       string `xml:"Cuit"`
	PtoVta     int    `xml:"PtoVta"`
	CbteTipo   int    `xml:"CbteTipo"`
	FchProceso string `xml:"FchProceso"`
	CantReg    int    `xml:"CantReg"`
	Resultado  string `xml:"Resultado"`
}

// FECAEDetResponse es el resultado por comprobante: CAE otorgado (o vacío si
// fue rechazado), su vencimiento y las observaciones en orden de documento.
type FECAEDetResponse struct {
	Concepto      int      `xml:"Concepto"`
	DocTipo       int      `xml:"DocTipo"`
	DocNro        string   `xml:"DocNro"`
	CbteDesde     int64    `xml:"CbteDesde"`
	CbteHasta     int64    `xml:"CbteHasta"`
	CbteFch       string   `xml:"CbteFch"`
	Resultado     string   `xml:"Resultado"`
	CAE           string   `xml:"CAE"`
	CAEFchVto     string   `xml:"CAEFchVto"`
	Observaciones []string `xml:"Observaciones>Obs"`
}

// FECompUltimoAutorizadoResponse envuelve el resultado de la consulta de
// último comprobante autorizado.
type FECompUltimoAutorizadoResponse struct {
	Result UltimoAutorizado `xml:"FECompUltimoAutorizadoResult"`
}

// UltimoAutorizado es el último número autorizado para un punto de venta y
// tipo de comprobante.
type UltimoAutorizado struct {
	PtoVta   int      `xml:"PtoVta"`
	CbteTipo int      `xml:"CbteTipo"`
	CbteNro  int64    `xml:"CbteNro"`
	Errores  []string `xml:"Errores>Err"`
}

// SoapFault es un fault a nivel protocolo (autenticación, schema, etc.).
type SoapFault struct {
	Code    string `xml:"faultcode"`
	Message string `xml:"faultstring"`
}
