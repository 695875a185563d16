package afip

import "errors"

// Errores del códec WSFE.
var (
	// ErrValidacion: entrada malformada o inconsistente al armar la solicitud
	// (ej. CantReg distinto de la cantidad de detalles). Local y fatal para la
	// solicitud en curso; nunca se reintenta automáticamente.
	ErrValidacion = errors.New("afip: solicitud inválida")

	// ErrRespuestaMalformada: la respuesta no parsea a la forma esperada del
	// schema (falta Envelope/Body o el payload de la operación). El llamador
	// decide si reintenta la llamada de red.
	ErrRespuestaMalformada = errors.New("afip: respuesta malformada")

	// ErrSoapFault: la autoridad devolvió un Fault a nivel protocolo
	// (credenciales, schema). Distinto de un rechazo de negocio, que nunca es
	// un error: un comprobante rechazado es un ResultadoCAE con Aprobado=false
	// y la lista de errores completa.
	ErrSoapFault = errors.New("afip: SOAP fault")
)
