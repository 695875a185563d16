// Casos de uso de comprobantes: alta de la venta (con plan de cuotas y
// descuento de stock en una transacción), consulta y cobro de cuotas.
// La numeración y el CAE no se asignan acá: llegan al facturar contra AFIP.

package comprobantes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	"github.com/tu-usuario/gestion-pyme/pkg/afip"
)

var cien = decimal.NewFromInt(100)

// UseCase casos de uso de comprobantes.
type UseCase struct {
	txRunner        TxRunner
	comprobanteRepo repository.ComprobanteRepository
	clienteRepo     repository.ClienteRepository
	articuloRepo    repository.ArticuloRepository
	empresaRepo     repository.EmpresaRepository
	cola            ColaFacturacion
	pdf             GeneradorPDF
	log             zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	comprobanteRepo repository.ComprobanteRepository,
	clienteRepo repository.ClienteRepository,
	articuloRepo repository.ArticuloRepository,
	empresaRepo repository.EmpresaRepository,
	cola ColaFacturacion,
	pdf GeneradorPDF,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		comprobanteRepo: comprobanteRepo,
		clienteRepo:     clienteRepo,
		articuloRepo:    articuloRepo,
		empresaRepo:     empresaRepo,
		cola:            cola,
		pdf:             pdf,
		log:             log,
	}
}

// Create crea la venta: valida cliente y artículos, calcula importes con
// decimal, descuenta stock y persiste cabecera, detalles y cuotas en una sola
// transacción. El comprobante queda en BORRADOR.
func (uc *UseCase) Create(ctx context.Context, empresaID string, in dto.CreateComprobanteRequest) (*dto.ComprobanteResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !afip.ValidCbteTipos[in.Tipo] {
		return nil, domain.ErrInvalidInput
	}
	if afip.EsNotaCredito(in.Tipo) && in.ComprobanteAsociadoID == "" {
		return nil, domain.ErrInvalidInput
	}
	if afip.ConceptoExigeFechasServicio(in.Concepto) &&
		(in.FchServDesde == "" || in.FchServHasta == "" || in.FchVtoPago == "") {
		return nil, domain.ErrInvalidInput
	}

	empresa, err := uc.empresaRepo.GetByID(empresaID)
	if err != nil || empresa == nil {
		return nil, domain.ErrNotFound
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil || cliente == nil {
		return nil, domain.ErrNotFound
	}
	if cliente.EmpresaID != empresaID {
		return nil, domain.ErrForbidden
	}
	if in.ComprobanteAsociadoID != "" {
		asociado, err := uc.comprobanteRepo.GetByID(in.ComprobanteAsociadoID)
		if err != nil || asociado == nil || asociado.EmpresaID != empresaID {
			return nil, domain.ErrNotFound
		}
		if asociado.Estado != entity.EstadoEmitido {
			return nil, domain.ErrConflict
		}
	}

	// Validar artículos y completar precios de lista (lectura, fuera de la tx).
	articulosByID := make(map[string]*entity.Articulo)
	for i := range in.Items {
		item := &in.Items[i]
		if !item.Cantidad.GreaterThan(decimal.Zero) || item.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		articulo, err := uc.articuloRepo.GetByID(item.ArticuloID)
		if err != nil || articulo == nil {
			return nil, domain.ErrNotFound
		}
		if articulo.EmpresaID != empresaID || !articulo.Activo {
			return nil, domain.ErrForbidden
		}
		articulosByID[item.ArticuloID] = articulo
		if item.PrecioUnitario.IsZero() {
			item.PrecioUnitario = articulo.PrecioUnitario
		}
	}

	now := time.Now()
	comprobanteID := uuid.New().String()

	// Importes: neto e IVA por línea, acumulados con decimal.
	var impNeto, impIVA decimal.Decimal
	detalles := make([]*entity.ComprobanteDetalle, 0, len(in.Items))
	for _, item := range in.Items {
		articulo := articulosByID[item.ArticuloID]
		subtotal := item.Cantidad.Mul(item.PrecioUnitario)
		importeIVA := subtotal.Mul(articulo.AlicuotaIVA).Div(cien)
		impNeto = impNeto.Add(subtotal)
		impIVA = impIVA.Add(importeIVA)
		detalles = append(detalles, &entity.ComprobanteDetalle{
			ID:             uuid.New().String(),
			ComprobanteID:  comprobanteID,
			ArticuloID:     item.ArticuloID,
			Descripcion:    articulo.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			AlicuotaIVA:    articulo.AlicuotaIVA,
			Subtotal:       subtotal,
			ImporteIVA:     importeIVA,
		})
	}
	impTotal := impNeto.Add(impIVA)

	monID := in.MonId
	monCotiz := in.MonCotiz
	if monID == "" {
		monID = afip.MonedaPesos
		monCotiz = decimal.NewFromInt(1)
	} else if monID != afip.MonedaPesos && !monCotiz.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	comprobante := &entity.Comprobante{
		ID:                    comprobanteID,
		EmpresaID:             empresaID,
		ClienteID:             in.ClienteID,
		Tipo:                  in.Tipo,
		PuntoVenta:            empresa.PuntoVenta,
		Concepto:              in.Concepto,
		Fecha:                 now,
		ImpNeto:               impNeto,
		ImpIVA:                impIVA,
		ImpTotal:              impTotal,
		MonId:                 monID,
		MonCotiz:              monCotiz,
		FchServDesde:          in.FchServDesde,
		FchServHasta:          in.FchServHasta,
		FchVtoPago:            in.FchVtoPago,
		Estado:                entity.EstadoBorrador,
		ComprobanteAsociadoID: in.ComprobanteAsociadoID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	cuotas, err := planDeCuotas(comprobante, in.Cuotas, in.PrimerVencimiento, now)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunVenta(ctx, func(
		comprobanteRepo repository.ComprobanteRepository,
		articuloRepo repository.ArticuloRepository,
	) error {
		// Las notas de crédito devuelven stock; el resto lo descuenta.
		signo := decimal.NewFromInt(-1)
		if afip.EsNotaCredito(in.Tipo) {
			signo = decimal.NewFromInt(1)
		}
		for _, d := range detalles {
			if err := articuloRepo.AjustarStock(d.ArticuloID, d.Cantidad.Mul(signo)); err != nil {
				return err
			}
		}
		if err := comprobanteRepo.Create(comprobante); err != nil {
			return err
		}
		for _, d := range detalles {
			if err := comprobanteRepo.CreateDetalle(d); err != nil {
				return err
			}
		}
		for _, c := range cuotas {
			if err := comprobanteRepo.CreateCuota(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("comprobante_id", comprobanteID).Int("tipo", in.Tipo).
		Str("imp_total", impTotal.StringFixed(2)).Msg("venta creada")

	resp := toComprobanteResponse(comprobante, cliente.RazonSocial, detalles, cuotas)
	return resp, nil
}

// Facturar encola el comprobante para solicitar el CAE. El pasaje a
// PENDIENTE reserva el comprobante: un comprobante ya emitido o en proceso
// no puede reencolarse.
func (uc *UseCase) Facturar(ctx context.Context, empresaID, id string) (*dto.ComprobanteResponse, error) {
	comprobante, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}
	switch comprobante.Estado {
	case entity.EstadoBorrador, entity.EstadoRechazado, entity.EstadoError:
		// facturable
	default:
		return nil, domain.ErrConflict
	}

	comprobante.Estado = entity.EstadoPendiente
	comprobante.ProximoReintento = nil
	if err := uc.comprobanteRepo.UpdateAFIP(comprobante); err != nil {
		return nil, err
	}
	if err := uc.cola.Encolar(ctx, comprobante.ID); err != nil {
		// Volver a BORRADOR: sin encolado nadie lo va a procesar.
		comprobante.Estado = entity.EstadoBorrador
		_ = uc.comprobanteRepo.UpdateAFIP(comprobante)
		return nil, err
	}
	uc.log.Info().Str("comprobante_id", id).Msg("comprobante encolado para CAE")
	return uc.Get(empresaID, id)
}

// Get devuelve el comprobante con detalles y cuotas.
func (uc *UseCase) Get(empresaID, id string) (*dto.ComprobanteResponse, error) {
	comprobante, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}
	detalles, err := uc.comprobanteRepo.GetDetallesByComprobanteID(id)
	if err != nil {
		return nil, err
	}
	cuotas, err := uc.comprobanteRepo.GetCuotasByComprobanteID(id)
	if err != nil {
		return nil, err
	}
	nombre := ""
	if cliente, _ := uc.clienteRepo.GetByID(comprobante.ClienteID); cliente != nil {
		nombre = cliente.RazonSocial
	}
	return toComprobanteResponse(comprobante, nombre, detalles, cuotas), nil
}

// List lista comprobantes de la empresa.
func (uc *UseCase) List(empresaID string, page dto.PageRequest) ([]*dto.ComprobanteResponse, error) {
	page.DefaultPage()
	comprobantes, err := uc.comprobanteRepo.ListByEmpresa(empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComprobanteResponse, 0, len(comprobantes))
	for _, c := range comprobantes {
		out = append(out, toComprobanteResponse(c, "", nil, nil))
	}
	return out, nil
}

// PDF genera la representación gráfica del comprobante.
func (uc *UseCase) PDF(ctx context.Context, empresaID, id string) ([]byte, error) {
	comprobante, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}
	empresa, err := uc.empresaRepo.GetByID(empresaID)
	if err != nil {
		return nil, err
	}
	cliente, err := uc.clienteRepo.GetByID(comprobante.ClienteID)
	if err != nil {
		return nil, err
	}
	if empresa == nil || cliente == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.comprobanteRepo.GetDetallesByComprobanteID(id)
	if err != nil {
		return nil, err
	}
	cuotas, err := uc.comprobanteRepo.GetCuotasByComprobanteID(id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerarComprobantePDF(ctx, comprobante, empresa, cliente, detalles, cuotas)
}

// PagarCuota registra el pago de una cuota pendiente o vencida.
func (uc *UseCase) PagarCuota(empresaID, cuotaID string, in dto.PagarCuotaRequest) (*dto.CuotaResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	cuota, err := uc.comprobanteRepo.GetCuotaByID(cuotaID)
	if err != nil {
		return nil, err
	}
	if cuota == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.buscar(empresaID, cuota.ComprobanteID); err != nil {
		return nil, err
	}
	if cuota.Estado == entity.CuotaPagada {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	cuota.Estado = entity.CuotaPagada
	cuota.FechaPago = &now
	cuota.MedioPago = in.MedioPago
	if err := uc.comprobanteRepo.UpdateCuota(cuota); err != nil {
		return nil, err
	}
	resp := toCuotaResponse(cuota)
	return &resp, nil
}

func (uc *UseCase) buscar(empresaID, id string) (*entity.Comprobante, error) {
	comprobante, err := uc.comprobanteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comprobante == nil || comprobante.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	return comprobante, nil
}

// planDeCuotas divide ImpTotal en n cuotas mensuales. El redondeo a centavos
// se absorbe en la última cuota para que la suma cierre exacta con el total.
func planDeCuotas(c *entity.Comprobante, n int, primerVto *time.Time, now time.Time) ([]*entity.Cuota, error) {
	if n <= 1 {
		return nil, nil
	}
	if primerVto == nil {
		return nil, domain.ErrInvalidInput
	}
	base := c.ImpTotal.Div(decimal.NewFromInt(int64(n))).Round(2)
	acumulado := decimal.Zero
	cuotas := make([]*entity.Cuota, 0, n)
	for i := 1; i <= n; i++ {
		importe := base
		if i == n {
			importe = c.ImpTotal.Sub(acumulado)
		}
		acumulado = acumulado.Add(importe)
		cuotas = append(cuotas, &entity.Cuota{
			ID:            uuid.New().String(),
			ComprobanteID: c.ID,
			Numero:        i,
			Importe:       importe,
			Vencimiento:   primerVto.AddDate(0, i-1, 0),
			Estado:        entity.CuotaPendiente,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return cuotas, nil
}

func toComprobanteResponse(c *entity.Comprobante, clienteNombre string, detalles []*entity.ComprobanteDetalle, cuotas []*entity.Cuota) *dto.ComprobanteResponse {
	resp := &dto.ComprobanteResponse{
		ID:                c.ID,
		EmpresaID:         c.EmpresaID,
		ClienteID:         c.ClienteID,
		ClienteNombre:     clienteNombre,
		Tipo:              c.Tipo,
		PuntoVenta:        c.PuntoVenta,
		Numero:            c.Numero,
		NumeroCompleto:    c.NumeroCompleto(),
		Concepto:          c.Concepto,
		Fecha:             c.Fecha,
		ImpNeto:           c.ImpNeto,
		ImpIVA:            c.ImpIVA,
		ImpTotal:          c.ImpTotal,
		MonId:             c.MonId,
		MonCotiz:          c.MonCotiz,
		Estado:            c.Estado,
		CAE:               c.CAE,
		CAEVencimiento:    c.CAEVencimiento,
		AfipErrores:       c.AfipErrores,
		AfipObservaciones: c.AfipObservaciones,
		CreatedAt:         c.CreatedAt,
	}
	for _, d := range detalles {
		resp.Detalles = append(resp.Detalles, dto.ComprobanteDetalleResponse{
			ID:             d.ID,
			ArticuloID:     d.ArticuloID,
			Descripcion:    d.Descripcion,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			AlicuotaIVA:    d.AlicuotaIVA,
			Subtotal:       d.Subtotal,
			ImporteIVA:     d.ImporteIVA,
		})
	}
	for _, cu := range cuotas {
		resp.Cuotas = append(resp.Cuotas, toCuotaResponse(cu))
	}
	return resp
}

func toCuotaResponse(c *entity.Cuota) dto.CuotaResponse {
	return dto.CuotaResponse{
		ID:          c.ID,
		Numero:      c.Numero,
		Importe:     c.Importe,
		Vencimiento: c.Vencimiento,
		Estado:      c.Estado,
		FechaPago:   c.FechaPago,
		MedioPago:   c.MedioPago,
	}
}
