package comprobantes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	infraafip "github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
	"github.com/tu-usuario/gestion-pyme/pkg/afip"
)

const (
	maxIntentos      = 5
	backoffBase      = time.Minute
	backoffMax       = time.Hour
	formatoFechaWSFE = "20060102"
	docNroSinDocum   = "0" // consumidor final sin identificar
)

// Facturador solicita el CAE de un comprobante contra el WSFE: numera con
// FECompUltimoAutorizado + 1, arma la solicitud y persiste el resultado.
// El rechazo de AFIP es un resultado (RECHAZADO), no un error; las fallas de
// transporte dejan el comprobante en ERROR con reintento programado.
type Facturador struct {
	comprobanteRepo repository.ComprobanteRepository
	clienteRepo     repository.ClienteRepository
	empresaRepo     repository.EmpresaRepository
	credenciales    CredencialesAFIP
	wsfe            infraafip.ClienteWSFE
	log             zerolog.Logger
	ahora           func() time.Time
}

// NewFacturador construye el facturador.
func NewFacturador(
	comprobanteRepo repository.ComprobanteRepository,
	clienteRepo repository.ClienteRepository,
	empresaRepo repository.EmpresaRepository,
	credenciales CredencialesAFIP,
	wsfe infraafip.ClienteWSFE,
	log zerolog.Logger,
) *Facturador {
	return &Facturador{
		comprobanteRepo: comprobanteRepo,
		clienteRepo:     clienteRepo,
		empresaRepo:     empresaRepo,
		credenciales:    credenciales,
		wsfe:            wsfe,
		log:             log,
		ahora:           time.Now,
	}
}

// Facturar procesa un comprobante encolado. Devuelve error sólo ante fallas
// de infraestructura propias (DB); el resultado AFIP queda en el comprobante.
func (f *Facturador) Facturar(ctx context.Context, comprobanteID string) error {
	c, err := f.comprobanteRepo.GetByID(comprobanteID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.Estado != entity.EstadoPendiente && c.Estado != entity.EstadoError {
		// Mensaje duplicado en la cola o reintento de un comprobante ya resuelto.
		f.log.Warn().Str("comprobante_id", comprobanteID).Str("estado", c.Estado).
			Msg("comprobante no facturable, se descarta")
		return nil
	}

	c.Estado = entity.EstadoEnProceso
	if err := f.comprobanteRepo.UpdateAFIP(c); err != nil {
		return err
	}

	if err := f.solicitarCAE(ctx, c); err != nil {
		f.programarReintento(c, err)
	}
	return f.comprobanteRepo.UpdateAFIP(c)
}

// solicitarCAE ejecuta el ciclo completo contra AFIP y deja el resultado en c.
// Un error devuelto significa falla recuperable (transporte, WSAA, respuesta
// malformada); el rechazo de negocio NO es error.
func (f *Facturador) solicitarCAE(ctx context.Context, c *entity.Comprobante) error {
	empresa, err := f.empresaRepo.GetByID(c.EmpresaID)
	if err != nil {
		return err
	}
	if empresa == nil {
		return domain.ErrNotFound
	}
	cliente, err := f.clienteRepo.GetByID(c.ClienteID)
	if err != nil {
		return err
	}
	if cliente == nil {
		return domain.ErrNotFound
	}

	auth, err := f.credenciales.Auth(ctx)
	if err != nil {
		return fmt.Errorf("credenciales wsaa: %w", err)
	}

	consulta, err := infraafip.NuevaConsultaUltimoAutorizado(auth, c.PuntoVenta, c.Tipo)
	if err != nil {
		return err
	}
	ultimo, err := f.wsfe.UltimoAutorizado(ctx, consulta)
	if err != nil {
		f.invalidarSiTokenVencido(err)
		return fmt.Errorf("ultimo autorizado: %w", err)
	}
	if len(ultimo.Errores) > 0 {
		// Errores de la consulta (punto de venta inhabilitado, etc.): no
		// reintentables sin intervención, pero tampoco definitivos.
		return fmt.Errorf("ultimo autorizado: %s", strings.Join(ultimo.Errores, "; "))
	}
	numero := ultimo.CbteNro + 1

	detalle, err := f.armarDetalle(c, cliente, empresa, numero)
	if err != nil {
		return err
	}
	solicitud, err := infraafip.NuevaSolicitudCAE(auth,
		infraafip.FeCabReq{CantReg: 1, PtoVta: c.PuntoVenta, CbteTipo: c.Tipo},
		[]infraafip.DetalleSolicitud{*detalle})
	if err != nil {
		return err
	}

	resultado, err := f.wsfe.SolicitarCAE(ctx, solicitud)
	if err != nil {
		f.invalidarSiTokenVencido(err)
		return fmt.Errorf("solicitar cae: %w", err)
	}

	c.AfipObservaciones = strings.Join(resultado.Observaciones, "; ")
	if resultado.Aprobado {
		c.Estado = entity.EstadoEmitido
		c.Numero = resultado.NroComprobante
		c.CAE = resultado.CAE
		c.CAEVencimiento = resultado.CAEVencimiento
		c.AfipErrores = ""
		c.ProximoReintento = nil
		f.log.Info().Str("comprobante_id", c.ID).Int64("numero", c.Numero).
			Str("cae", c.CAE).Msg("CAE otorgado")
		return nil
	}

	// Rechazo de negocio: es un resultado final, no se reintenta solo.
	c.Estado = entity.EstadoRechazado
	c.AfipErrores = strings.Join(resultado.Errores, "; ")
	c.ProximoReintento = nil
	f.log.Warn().Str("comprobante_id", c.ID).Str("errores", c.AfipErrores).
		Msg("solicitud de CAE rechazada por AFIP")
	return nil
}

// armarDetalle traduce el comprobante de dominio al registro de detalle WSFE.
func (f *Facturador) armarDetalle(c *entity.Comprobante, cliente *entity.Cliente, empresa *entity.Empresa, numero int64) (*infraafip.DetalleSolicitud, error) {
	docNro := cliente.DocNro
	if cliente.DocTipo == afip.DocTipoConsumidorFin || docNro == "" {
		docNro = docNroSinDocum
	}

	det := &infraafip.DetalleSolicitud{
		Concepto:               c.Concepto,
		DocTipo:                cliente.DocTipo,
		DocNro:                 docNro,
		CbteDesde:              numero,
		CbteHasta:              numero,
		CbteFch:                c.Fecha.Format(formatoFechaWSFE),
		ImpTotal:               c.ImpTotal,
		ImpNeto:                c.ImpNeto,
		MonId:                  c.MonId,
		MonCotiz:               &c.MonCotiz,
		CondicionIVAReceptorId: cliente.CondicionIVA,
	}
	if afip.ConceptoExigeFechasServicio(c.Concepto) {
		det.FchServDesde = c.FchServDesde
		det.FchServHasta = c.FchServHasta
		det.FchVtoPago = c.FchVtoPago
	}

	if afip.EsComprobanteC(c.Tipo) {
		// Clase C: sin discriminación de IVA, el neto es el total.
		det.ImpNeto = c.ImpTotal
	} else {
		impIVA := c.ImpIVA
		det.ImpIVA = &impIVA
		alicuotas, err := f.agruparAlicuotas(c.ID)
		if err != nil {
			return nil, err
		}
		det.Alicuotas = alicuotas
	}

	if afip.EsNotaCredito(c.Tipo) && c.ComprobanteAsociadoID != "" {
		asociado, err := f.comprobanteRepo.GetByID(c.ComprobanteAsociadoID)
		if err != nil {
			return nil, err
		}
		if asociado == nil || asociado.Numero == 0 {
			return nil, fmt.Errorf("%w: comprobante asociado sin numerar", domain.ErrConflict)
		}
		det.CbtesAsoc = []infraafip.CbteAsoc{{
			Tipo:    asociado.Tipo,
			PtoVta:  asociado.PuntoVenta,
			Nro:     asociado.Numero,
			Cuit:    empresa.CUIT,
			CbteFch: asociado.Fecha.Format(formatoFechaWSFE),
		}}
	}
	return det, nil
}

// agruparAlicuotas consolida las líneas del comprobante por Id de alícuota
// WSFE, sumando base imponible e importe de IVA.
func (f *Facturador) agruparAlicuotas(comprobanteID string) ([]infraafip.AlicuotaIVA, error) {
	detalles, err := f.comprobanteRepo.GetDetallesByComprobanteID(comprobanteID)
	if err != nil {
		return nil, err
	}
	porID := make(map[int]*infraafip.AlicuotaIVA)
	orden := make([]int, 0, 4)
	for _, d := range detalles {
		id := afip.AlicuotaIVAId(d.AlicuotaIVA.String())
		if id == 0 {
			return nil, fmt.Errorf("%w: alicuota de IVA desconocida: %s",
				domain.ErrInvalidInput, d.AlicuotaIVA.String())
		}
		a, ok := porID[id]
		if !ok {
			a = &infraafip.AlicuotaIVA{Id: id}
			porID[id] = a
			orden = append(orden, id)
		}
		a.BaseImp = a.BaseImp.Add(d.Subtotal)
		a.Importe = a.Importe.Add(d.ImporteIVA)
	}
	out := make([]infraafip.AlicuotaIVA, 0, len(orden))
	for _, id := range orden {
		out = append(out, *porID[id])
	}
	return out, nil
}

// programarReintento deja el comprobante en ERROR con backoff exponencial.
// Agotados los intentos pasa a RECHAZADO para que alguien lo mire.
func (f *Facturador) programarReintento(c *entity.Comprobante, causa error) {
	c.Intentos++
	c.AfipErrores = causa.Error()
	if c.Intentos >= maxIntentos {
		c.Estado = entity.EstadoRechazado
		c.ProximoReintento = nil
		f.log.Error().Err(causa).Str("comprobante_id", c.ID).Int("intentos", c.Intentos).
			Msg("facturacion agotada, requiere intervencion")
		return
	}
	espera := backoffBase << (c.Intentos - 1)
	if espera > backoffMax {
		espera = backoffMax
	}
	proximo := f.ahora().Add(espera)
	c.Estado = entity.EstadoError
	c.ProximoReintento = &proximo
	f.log.Warn().Err(causa).Str("comprobante_id", c.ID).Int("intentos", c.Intentos).
		Time("proximo_reintento", proximo).Msg("facturacion fallida, reintento programado")
}

// invalidarSiTokenVencido fuerza un login WSAA nuevo cuando el fault delata
// credenciales vencidas.
func (f *Facturador) invalidarSiTokenVencido(err error) {
	if errors.Is(err, infraafip.ErrSoapFault) {
		f.credenciales.Invalidar()
	}
}
