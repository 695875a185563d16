package comprobantes

import (
	"context"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	infraafip "github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
)

// TxRunner ejecuta el alta de la venta (comprobante + stock) dentro de una
// transacción de base de datos.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		comprobanteRepo repository.ComprobanteRepository,
		articuloRepo repository.ArticuloRepository,
	) error) error
}

// ColaFacturacion encola comprobantes pendientes de CAE; los consume el
// worker de facturación.
type ColaFacturacion interface {
	Encolar(ctx context.Context, comprobanteID string) error
}

// CredencialesAFIP provee la terna Token/Sign/Cuit vigente para las llamadas
// al WSFE. La implementación real cachea el ticket WSAA.
type CredencialesAFIP interface {
	Auth(ctx context.Context) (infraafip.Auth, error)
	Invalidar()
}

// GeneradorPDF genera la representación gráfica del comprobante.
type GeneradorPDF interface {
	GenerarComprobantePDF(
		ctx context.Context,
		comprobante *entity.Comprobante,
		empresa *entity.Empresa,
		cliente *entity.Cliente,
		detalles []*entity.ComprobanteDetalle,
		cuotas []*entity.Cuota,
	) ([]byte, error)
}
