package repository

import "github.com/tu-usuario/gestion-pyme/internal/domain/entity"

// EnvioRepository define el puerto de persistencia para Envio (remitos).
type EnvioRepository interface {
	Create(envio *entity.Envio) error
	GetByID(id string) (*entity.Envio, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Envio, error)
	ListByComprobante(comprobanteID string) ([]*entity.Envio, error)
	Update(envio *entity.Envio) error
}
