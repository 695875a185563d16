package afip

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ── Constantes de entorno ─────────────────────────────────────────────────────

const (
	// AppEnvHomo es el identificador del ambiente de homologación (pruebas).
	AppEnvHomo = "homo"
	// AppEnvProd es el identificador del ambiente de producción.
	AppEnvProd = "prod"
	// AppEnvDev es el identificador local: no envía al WS de AFIP.
	AppEnvDev = "dev"

	wsfeURLHomo = "https://wswhomo.afip.gov.ar/wsfev1/service.asmx"
	wsfeURLProd = "https://servicios1.afip.gov.ar/wsfev1/service.asmx"

	soapActionSolicitar = "http://ar.gov.afip.dif.FEV1/FECAESolicitar"
	soapActionUltimo    = "http://ar.gov.afip.dif.FEV1/FECompUltimoAutorizado"
)

// ── Puerto (interfaz) ─────────────────────────────────────────────────────────

// ClienteWSFE define el puerto de salida hacia el WS de factura electrónica.
// La implementación concreta usa SOAP sobre HTTP; para tests se inyecta un
// doble que devuelve respuestas pregrabadas.
type ClienteWSFE interface {
	// SolicitarCAE envía la solicitud de CAE y devuelve el resultado mapeado.
	SolicitarCAE(ctx context.Context, env *SolicitudEnvelope) (*ResultadoCAE, error)
	// UltimoAutorizado consulta el último número autorizado para un punto de
	// venta y tipo de comprobante.
	UltimoAutorizado(ctx context.Context, env *ConsultaUltimoEnvelope) (*UltimoAutorizado, error)
}

// ── Implementación SOAP ───────────────────────────────────────────────────────

// SOAPClienteWSFE implementa ClienteWSFE contra el endpoint del entorno
// configurado. El cliente no guarda estado de las llamadas: es seguro
// compartirlo entre goroutines.
type SOAPClienteWSFE struct {
	url        string
	httpClient *http.Client
}

// NewSOAPClienteWSFE construye el cliente para el entorno dado ("homo" o
// "prod") con un timeout de red generoso: el WS de AFIP puede tardar varios
// segundos bajo carga.
func NewSOAPClienteWSFE(env string) (*SOAPClienteWSFE, error) {
	var url string
	switch env {
	case AppEnvHomo:
		url = wsfeURLHomo
	case AppEnvProd:
		url = wsfeURLProd
	default:
		return nil, fmt.Errorf("entorno desconocido %q (usar 'homo' o 'prod')", env)
	}
	return &SOAPClienteWSFE{
		url:        url,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// SolicitarCAE serializa el envelope, lo envía y mapea la respuesta. Un
// rechazo de AFIP vuelve como ResultadoCAE con Aprobado=false, no como error.
func (c *SOAPClienteWSFE) SolicitarCAE(ctx context.Context, env *SolicitudEnvelope) (*ResultadoCAE, error) {
	payload, err := SerializarSolicitudCAE(env)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, soapActionSolicitar, payload)
	if err != nil {
		return nil, err
	}
	resp, err := ParsearRespuestaCAE(raw)
	if err != nil {
		return nil, err
	}
	res := MapearResultadoCAE(resp)
	return &res, nil
}

// UltimoAutorizado consulta el último comprobante autorizado.
func (c *SOAPClienteWSFE) UltimoAutorizado(ctx context.Context, env *ConsultaUltimoEnvelope) (*UltimoAutorizado, error) {
	payload, err := SerializarConsultaUltimo(env)
	if err != nil {
		return nil, err
	}
	raw, err := c.post(ctx, soapActionUltimo, payload)
	if err != nil {
		return nil, err
	}
	return ParsearUltimoAutorizado(raw)
}

func (c *SOAPClienteWSFE) post(ctx context.Context, action string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("soap: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("soap: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("soap: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("soap: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// AFIP devuelve faults con 500; dejamos que el parser los traduzca.
		if resp.StatusCode != http.StatusInternalServerError {
			return nil, fmt.Errorf("soap: HTTP %d inesperado", resp.StatusCode)
		}
	}
	return raw, nil
}
