package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// ResumenGastoMes total de gastos por categoría dentro de un mes.
type ResumenGastoMes struct {
	Categoria string
	Total     decimal.Decimal
}

// GastoRepository define el puerto de persistencia para Gasto.
type GastoRepository interface {
	Create(gasto *entity.Gasto) error
	GetByID(id string) (*entity.Gasto, error)
	ListByEmpresa(empresaID string, desde, hasta time.Time, limit, offset int) ([]*entity.Gasto, error)
	ResumenPorCategoria(empresaID string, desde, hasta time.Time) ([]ResumenGastoMes, error)
	Delete(id string) error
}
