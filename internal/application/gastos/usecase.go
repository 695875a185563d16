// Casos de uso de gastos: registro de egresos y resumen mensual por categoría.
package gastos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// UseCase casos de uso de gastos.
type UseCase struct {
	gastoRepo repository.GastoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(gastoRepo repository.GastoRepository) *UseCase {
	return &UseCase{gastoRepo: gastoRepo}
}

// Create registra un gasto. Sin fecha explícita toma la actual.
func (uc *UseCase) Create(empresaID string, in dto.CreateGastoRequest) (*dto.GastoResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Importe.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	fecha := now
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	gasto := &entity.Gasto{
		ID:          uuid.New().String(),
		EmpresaID:   empresaID,
		Categoria:   in.Categoria,
		Descripcion: in.Descripcion,
		Proveedor:   in.Proveedor,
		Importe:     in.Importe,
		Fecha:       fecha,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.gastoRepo.Create(gasto); err != nil {
		return nil, err
	}
	return toGastoResponse(gasto), nil
}

// List lista gastos del período. Sin período toma el mes en curso.
func (uc *UseCase) List(empresaID string, desde, hasta *time.Time, page dto.PageRequest) ([]*dto.GastoResponse, error) {
	page.DefaultPage()
	d, h := periodo(desde, hasta)
	gastos, err := uc.gastoRepo.ListByEmpresa(empresaID, d, h, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GastoResponse, 0, len(gastos))
	for _, g := range gastos {
		out = append(out, toGastoResponse(g))
	}
	return out, nil
}

// Delete elimina un gasto de la empresa.
func (uc *UseCase) Delete(empresaID, id string) error {
	gasto, err := uc.gastoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if gasto == nil || gasto.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	return uc.gastoRepo.Delete(id)
}

// Resumen totaliza los gastos del período por categoría.
func (uc *UseCase) Resumen(empresaID string, desde, hasta *time.Time) (*dto.ResumenGastosResponse, error) {
	d, h := periodo(desde, hasta)
	filas, err := uc.gastoRepo.ResumenPorCategoria(empresaID, d, h)
	if err != nil {
		return nil, err
	}
	resp := &dto.ResumenGastosResponse{Desde: d, Hasta: h, Total: decimal.Zero}
	for _, fila := range filas {
		resp.Total = resp.Total.Add(fila.Total)
		resp.Categorias = append(resp.Categorias, dto.CategoriaGastoItem{
			Categoria: fila.Categoria,
			Total:     fila.Total,
		})
	}
	return resp, nil
}

// periodo normaliza el rango: sin fechas devuelve el mes en curso.
func periodo(desde, hasta *time.Time) (time.Time, time.Time) {
	now := time.Now()
	d := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	h := d.AddDate(0, 1, 0)
	if desde != nil {
		d = *desde
	}
	if hasta != nil {
		h = *hasta
	}
	return d, h
}

func toGastoResponse(g *entity.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID,
		EmpresaID:   g.EmpresaID,
		Categoria:   g.Categoria,
		Descripcion: g.Descripcion,
		Proveedor:   g.Proveedor,
		Importe:     g.Importe,
		Fecha:       g.Fecha,
		CreatedAt:   g.CreatedAt,
	}
}
