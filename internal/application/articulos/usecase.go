// Casos de uso de artículos: catálogo y control de stock.

package articulos

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	"github.com/tu-usuario/gestion-pyme/pkg/afip"
)

// UseCase casos de uso de artículos.
type UseCase struct {
	articuloRepo repository.ArticuloRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(articuloRepo repository.ArticuloRepository) *UseCase {
	return &UseCase{articuloRepo: articuloRepo}
}

// Create valida y persiste un artículo nuevo.
func (uc *UseCase) Create(empresaID string, in dto.CreateArticuloRequest) (*dto.ArticuloResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.PrecioUnitario.IsNegative() || in.StockInicial.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if afip.AlicuotaIVAId(in.AlicuotaIVA.String()) == 0 && !in.AlicuotaIVA.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if existente, _ := uc.articuloRepo.GetByEmpresaAndCodigo(empresaID, in.Codigo); existente != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	articulo := &entity.Articulo{
		ID:             uuid.New().String(),
		EmpresaID:      empresaID,
		Codigo:         in.Codigo,
		Descripcion:    in.Descripcion,
		PrecioUnitario: in.PrecioUnitario,
		AlicuotaIVA:    in.AlicuotaIVA,
		Stock:          in.StockInicial,
		StockMinimo:    in.StockMinimo,
		Activo:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.articuloRepo.Create(articulo); err != nil {
		return nil, err
	}
	return toResponse(articulo), nil
}

// Get obtiene un artículo de la empresa.
func (uc *UseCase) Get(empresaID, id string) (*dto.ArticuloResponse, error) {
	articulo, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}
	return toResponse(articulo), nil
}

// List lista artículos de la empresa con paginación.
func (uc *UseCase) List(empresaID string, page dto.PageRequest) ([]*dto.ArticuloResponse, error) {
	page.DefaultPage()
	articulos, err := uc.articuloRepo.ListByEmpresa(empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArticuloResponse, 0, len(articulos))
	for _, a := range articulos {
		out = append(out, toResponse(a))
	}
	return out, nil
}

// Update actualiza datos del artículo (el stock solo se mueve con AjustarStock).
func (uc *UseCase) Update(empresaID, id string, in dto.UpdateArticuloRequest) (*dto.ArticuloResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	articulo, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}

	articulo.Codigo = in.Codigo
	articulo.Descripcion = in.Descripcion
	articulo.PrecioUnitario = in.PrecioUnitario
	articulo.AlicuotaIVA = in.AlicuotaIVA
	articulo.StockMinimo = in.StockMinimo
	if in.Activo != nil {
		articulo.Activo = *in.Activo
	}
	articulo.UpdatedAt = time.Now()

	if err := uc.articuloRepo.Update(articulo); err != nil {
		return nil, err
	}
	return toResponse(articulo), nil
}

// AjustarStock aplica un ajuste manual (recepción, merma, conteo físico).
func (uc *UseCase) AjustarStock(empresaID, id string, in dto.AjusteStockRequest) (*dto.ArticuloResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.buscar(empresaID, id); err != nil {
		return nil, err
	}
	if err := uc.articuloRepo.AjustarStock(id, in.Delta); err != nil {
		return nil, err
	}
	articulo, err := uc.articuloRepo.GetByID(id)
	if err != nil || articulo == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(articulo), nil
}

// BajoMinimo informa los artículos activos con stock en o bajo el mínimo.
func (uc *UseCase) BajoMinimo(empresaID string) ([]*dto.ArticuloResponse, error) {
	articulos, err := uc.articuloRepo.ListByEmpresa(empresaID, 1000, 0)
	if err != nil {
		return nil, err
	}
	var out []*dto.ArticuloResponse
	for _, a := range articulos {
		if a.Activo && a.Stock.LessThanOrEqual(a.StockMinimo) {
			out = append(out, toResponse(a))
		}
	}
	return out, nil
}

func (uc *UseCase) buscar(empresaID, id string) (*entity.Articulo, error) {
	articulo, err := uc.articuloRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if articulo == nil || articulo.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	return articulo, nil
}

func toResponse(a *entity.Articulo) *dto.ArticuloResponse {
	return &dto.ArticuloResponse{
		ID:             a.ID,
		EmpresaID:      a.EmpresaID,
		Codigo:         a.Codigo,
		Descripcion:    a.Descripcion,
		PrecioUnitario: a.PrecioUnitario,
		AlicuotaIVA:    a.AlicuotaIVA,
		Stock:          a.Stock,
		StockMinimo:    a.StockMinimo,
		BajoMinimo:     a.Stock.LessThanOrEqual(a.StockMinimo),
		Activo:         a.Activo,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
