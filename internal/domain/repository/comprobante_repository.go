package repository

import (
	"time"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// ComprobanteRepository define el puerto de persistencia para Comprobante, detalles y cuotas.
type ComprobanteRepository interface {
	Create(comprobante *entity.Comprobante) error
	CreateDetalle(detalle *entity.ComprobanteDetalle) error
	CreateCuota(cuota *entity.Cuota) error
	// UpdateAFIP actualiza los campos del ciclo de facturación electrónica:
	// numero, estado, cae, cae_vencimiento, afip_errores, afip_observaciones,
	// intentos, proximo_reintento.
	UpdateAFIP(comprobante *entity.Comprobante) error
	GetByID(id string) (*entity.Comprobante, error)
	GetDetallesByComprobanteID(comprobanteID string) ([]*entity.ComprobanteDetalle, error)
	GetCuotasByComprobanteID(comprobanteID string) ([]*entity.Cuota, error)
	GetCuotaByID(id string) (*entity.Cuota, error)
	UpdateCuota(cuota *entity.Cuota) error
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Comprobante, error)
	// ListParaReintento devuelve comprobantes en estado ERROR con
	// proximo_reintento vencido (para el cron de reintentos).
	ListParaReintento(ahora time.Time, limit int) ([]*entity.Comprobante, error)
}
