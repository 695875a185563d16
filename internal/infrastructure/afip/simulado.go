// Modo simulado para desarrollo local: emite CAE ficticios sin tocar los WS
// de AFIP. Se activa cuando AFIP_ENVIRONMENT es "dev" o no hay certificado
// configurado. Los comprobantes emitidos así NO son válidos fiscalmente.

package afip

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CredencialesSimuladas devuelve una terna fija sin pasar por WSAA.
type CredencialesSimuladas struct {
	cuit string
}

// NewCredencialesSimuladas construye el proveedor para el CUIT emisor dado.
func NewCredencialesSimuladas(cuit string) *CredencialesSimuladas {
	return &CredencialesSimuladas{cuit: cuit}
}

// Auth devuelve la terna simulada.
func (c *CredencialesSimuladas) Auth(_ context.Context) (Auth, error) {
	return Auth{Token: "token-simulado", Sign: "sign-simulado", Cuit: c.cuit}, nil
}

// Invalidar no hace nada: no hay ticket que renovar.
func (c *CredencialesSimuladas) Invalidar() {}

// WSFESimulado implementa ClienteWSFE aprobando todo lo que recibe. Lleva la
// numeración en memoria por (punto de venta, tipo), así el flujo de
// numeración consecutiva se comporta igual que contra AFIP real.
type WSFESimulado struct {
	mu      sync.Mutex
	ultimos map[string]int64
}

// NewWSFESimulado construye el cliente simulado con numeración desde cero.
func NewWSFESimulado() *WSFESimulado {
	return &WSFESimulado{ultimos: make(map[string]int64)}
}

// UltimoAutorizado devuelve el último número emitido en esta corrida.
func (s *WSFESimulado) UltimoAutorizado(_ context.Context, env *ConsultaUltimoEnvelope) (*UltimoAutorizado, error) {
	req := env.Body.FECompUltimoAutorizado

	s.mu.Lock()
	defer s.mu.Unlock()
	return &UltimoAutorizado{
		PtoVta:   req.PtoVta,
		CbteTipo: req.CbteTipo,
		CbteNro:  s.ultimos[claveNumeracion(req.PtoVta, req.CbteTipo)],
	}, nil
}

// SolicitarCAE aprueba la solicitud con un CAE fabricado y vencimiento a diez
// días, y avanza la numeración del (punto de venta, tipo).
func (s *WSFESimulado) SolicitarCAE(_ context.Context, env *SolicitudEnvelope) (*ResultadoCAE, error) {
	req := env.Body.FECAESolicitar.FeCAEReq
	if len(req.FeDetReq.FECAEDetRequest) == 0 {
		return nil, fmt.Errorf("%w: solicitud sin detalle", ErrRespuestaMalformada)
	}
	det := req.FeDetReq.FECAEDetRequest[0]

	s.mu.Lock()
	clave := claveNumeracion(req.FeCabReq.PtoVta, req.FeCabReq.CbteTipo)
	if det.CbteDesde > s.ultimos[clave] {
		s.ultimos[clave] = det.CbteDesde
	}
	s.mu.Unlock()

	vto := time.Now().AddDate(0, 0, 10)
	return &ResultadoCAE{
		Aprobado:       true,
		CAE:            fmt.Sprintf("9%013d", det.CbteDesde),
		CAEVencimiento: &vto,
		NroComprobante: det.CbteDesde,
	}, nil
}

func claveNumeracion(ptoVta, cbteTipo int) string {
	return fmt.Sprintf("%d-%d", ptoVta, cbteTipo)
}
