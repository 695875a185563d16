package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// ArticuloRepository define el puerto de persistencia para Articulo.
type ArticuloRepository interface {
	Create(articulo *entity.Articulo) error
	GetByID(id string) (*entity.Articulo, error)
	GetByEmpresaAndCodigo(empresaID, codigo string) (*entity.Articulo, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Articulo, error)
	Update(articulo *entity.Articulo) error
	// AjustarStock suma delta (puede ser negativo) al stock del artículo,
	// fallando si el resultado quedaría por debajo de cero.
	AjustarStock(id string, delta decimal.Decimal) error
}
