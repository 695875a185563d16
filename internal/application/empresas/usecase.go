// Casos de uso de empresas: alta y mantenimiento del emisor de comprobantes.
package empresas

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	"github.com/tu-usuario/gestion-pyme/pkg/afip"
)

// UseCase casos de uso de empresas.
type UseCase struct {
	empresaRepo repository.EmpresaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(empresaRepo repository.EmpresaRepository) *UseCase {
	return &UseCase{empresaRepo: empresaRepo}
}

// Create da de alta una empresa emisora. El CUIT pasa por el verificador
// módulo 11.
func (uc *UseCase) Create(in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := afip.ValidateCUIT(in.CUIT); err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	empresa := &entity.Empresa{
		ID:                uuid.New().String(),
		RazonSocial:       in.RazonSocial,
		CUIT:              in.CUIT,
		Domicilio:         in.Domicilio,
		CondicionIVA:      in.CondicionIVA,
		IngresosBrutos:    in.IngresosBrutos,
		InicioActividades: in.InicioActividades,
		PuntoVenta:        in.PuntoVenta,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.empresaRepo.Create(empresa); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

// Get devuelve una empresa por ID.
func (uc *UseCase) Get(id string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.empresaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	return toEmpresaResponse(empresa), nil
}

// Update actualiza los datos fiscales de la empresa. El CUIT no cambia.
func (uc *UseCase) Update(id string, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	empresa, err := uc.empresaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}

	empresa.RazonSocial = in.RazonSocial
	empresa.Domicilio = in.Domicilio
	empresa.CondicionIVA = in.CondicionIVA
	empresa.IngresosBrutos = in.IngresosBrutos
	empresa.InicioActividades = in.InicioActividades
	empresa.PuntoVenta = in.PuntoVenta
	empresa.UpdatedAt = time.Now()
	if err := uc.empresaRepo.Update(empresa); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

func toEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:                e.ID,
		RazonSocial:       e.RazonSocial,
		CUIT:              e.CUIT,
		Domicilio:         e.Domicilio,
		CondicionIVA:      e.CondicionIVA,
		IngresosBrutos:    e.IngresosBrutos,
		InicioActividades: e.InicioActividades,
		PuntoVenta:        e.PuntoVenta,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
