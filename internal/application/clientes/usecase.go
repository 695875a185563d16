// Casos de uso de clientes: alta, consulta y modificación de los receptores
// de comprobantes.

package clientes

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	"github.com/tu-usuario/gestion-pyme/pkg/afip"
)

// UseCase casos de uso de clientes.
type UseCase struct {
	clienteRepo repository.ClienteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(clienteRepo repository.ClienteRepository) *UseCase {
	return &UseCase{clienteRepo: clienteRepo}
}

// Create valida y persiste un cliente nuevo. Los documentos CUIT/CUIL pasan
// por el verificador módulo 11; el DNI solo exige dígitos.
func (uc *UseCase) Create(empresaID string, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := validarDocumento(in.DocTipo, in.DocNro); err != nil {
		return nil, err
	}
	if !afip.ValidCondicionesIVA[in.CondicionIVA] {
		return nil, domain.ErrInvalidInput
	}
	if existente, _ := uc.clienteRepo.GetByEmpresaAndDoc(empresaID, in.DocTipo, in.DocNro); existente != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	cliente := &entity.Cliente{
		ID:           uuid.New().String(),
		EmpresaID:    empresaID,
		RazonSocial:  in.RazonSocial,
		DocTipo:      in.DocTipo,
		DocNro:       in.DocNro,
		CondicionIVA: in.CondicionIVA,
		Domicilio:    in.Domicilio,
		Localidad:    in.Localidad,
		Email:        in.Email,
		Telefono:     in.Telefono,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.clienteRepo.Create(cliente); err != nil {
		return nil, err
	}
	return toResponse(cliente), nil
}

// Get obtiene un cliente de la empresa.
func (uc *UseCase) Get(empresaID, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil || cliente.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	return toResponse(cliente), nil
}

// List lista clientes de la empresa con paginación.
func (uc *UseCase) List(empresaID string, page dto.PageRequest) ([]*dto.ClienteResponse, error) {
	page.DefaultPage()
	clientes, err := uc.clienteRepo.ListByEmpresa(empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, toResponse(c))
	}
	return out, nil
}

// Update valida y actualiza un cliente de la empresa.
func (uc *UseCase) Update(empresaID, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := validarDocumento(in.DocTipo, in.DocNro); err != nil {
		return nil, err
	}
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil || cliente.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}

	cliente.RazonSocial = in.RazonSocial
	cliente.DocTipo = in.DocTipo
	cliente.DocNro = in.DocNro
	cliente.CondicionIVA = in.CondicionIVA
	cliente.Domicilio = in.Domicilio
	cliente.Localidad = in.Localidad
	cliente.Email = in.Email
	cliente.Telefono = in.Telefono
	cliente.UpdatedAt = time.Now()

	if err := uc.clienteRepo.Update(cliente); err != nil {
		return nil, err
	}
	return toResponse(cliente), nil
}

// Delete elimina un cliente de la empresa.
func (uc *UseCase) Delete(empresaID, id string) error {
	cliente, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cliente == nil || cliente.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	return uc.clienteRepo.Delete(id)
}

func validarDocumento(docTipo int, docNro string) error {
	switch docTipo {
	case afip.DocTipoCUIT, afip.DocTipoCUIL:
		if err := afip.ValidateCUIT(docNro); err != nil {
			return domain.ErrInvalidInput
		}
	case afip.DocTipoDNI:
		if len(docNro) < 6 || len(docNro) > 9 {
			return domain.ErrInvalidInput
		}
	case afip.DocTipoConsumidorFin:
		// sin documento: AFIP recibe DocNro "0"
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func toResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:           c.ID,
		EmpresaID:    c.EmpresaID,
		RazonSocial:  c.RazonSocial,
		DocTipo:      c.DocTipo,
		DocNro:       c.DocNro,
		CondicionIVA: c.CondicionIVA,
		Domicilio:    c.Domicilio,
		Localidad:    c.Localidad,
		Email:        c.Email,
		Telefono:     c.Telefono,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
