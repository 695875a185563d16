// Casos de uso de envíos: remitos asociados a un comprobante, con la máquina
// de estados PREPARACION → DESPACHADO → ENTREGADO.
package envios

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// UseCase casos de uso de envíos.
type UseCase struct {
	envioRepo       repository.EnvioRepository
	comprobanteRepo repository.ComprobanteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(envioRepo repository.EnvioRepository, comprobanteRepo repository.ComprobanteRepository) *UseCase {
	return &UseCase{envioRepo: envioRepo, comprobanteRepo: comprobanteRepo}
}

// Create crea el remito en PREPARACION para un comprobante de la empresa.
func (uc *UseCase) Create(empresaID string, in dto.CreateEnvioRequest) (*dto.EnvioResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	comprobante, err := uc.comprobanteRepo.GetByID(in.ComprobanteID)
	if err != nil {
		return nil, err
	}
	if comprobante == nil || comprobante.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	envio := &entity.Envio{
		ID:            uuid.New().String(),
		EmpresaID:     empresaID,
		ComprobanteID: in.ComprobanteID,
		Destinatario:  in.Destinatario,
		Domicilio:     in.Domicilio,
		Localidad:     in.Localidad,
		Provincia:     in.Provincia,
		CodigoPostal:  in.CodigoPostal,
		Transportista: in.Transportista,
		Estado:        entity.EnvioPreparacion,
		Observaciones: in.Observaciones,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.envioRepo.Create(envio); err != nil {
		return nil, err
	}
	return toEnvioResponse(envio), nil
}

// Get devuelve un envío de la empresa.
func (uc *UseCase) Get(empresaID, id string) (*dto.EnvioResponse, error) {
	envio, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}
	return toEnvioResponse(envio), nil
}

// List lista envíos de la empresa.
func (uc *UseCase) List(empresaID string, page dto.PageRequest) ([]*dto.EnvioResponse, error) {
	page.DefaultPage()
	envios, err := uc.envioRepo.ListByEmpresa(empresaID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EnvioResponse, 0, len(envios))
	for _, e := range envios {
		out = append(out, toEnvioResponse(e))
	}
	return out, nil
}

// ListByComprobante lista los envíos de un comprobante de la empresa.
func (uc *UseCase) ListByComprobante(empresaID, comprobanteID string) ([]*dto.EnvioResponse, error) {
	comprobante, err := uc.comprobanteRepo.GetByID(comprobanteID)
	if err != nil {
		return nil, err
	}
	if comprobante == nil || comprobante.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	envios, err := uc.envioRepo.ListByComprobante(comprobanteID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EnvioResponse, 0, len(envios))
	for _, e := range envios {
		out = append(out, toEnvioResponse(e))
	}
	return out, nil
}

// ActualizarEstado avanza la máquina de estados del envío. Sólo se permite
// PREPARACION → DESPACHADO → ENTREGADO; cada paso sella su fecha.
func (uc *UseCase) ActualizarEstado(empresaID, id string, in dto.ActualizarEnvioRequest) (*dto.EnvioResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	envio, err := uc.buscar(empresaID, id)
	if err != nil {
		return nil, err
	}
	if !transicionValida(envio.Estado, in.Estado) {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	envio.Estado = in.Estado
	switch in.Estado {
	case entity.EnvioDespachado:
		envio.DespachadoEn = &now
		if in.Seguimiento != "" {
			envio.Seguimiento = in.Seguimiento
		}
	case entity.EnvioEntregado:
		envio.EntregadoEn = &now
	}
	envio.UpdatedAt = now
	if err := uc.envioRepo.Update(envio); err != nil {
		return nil, err
	}
	return toEnvioResponse(envio), nil
}

func (uc *UseCase) buscar(empresaID, id string) (*entity.Envio, error) {
	envio, err := uc.envioRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if envio == nil || envio.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	return envio, nil
}

func transicionValida(actual, nuevo string) bool {
	switch actual {
	case entity.EnvioPreparacion:
		return nuevo == entity.EnvioDespachado
	case entity.EnvioDespachado:
		return nuevo == entity.EnvioEntregado
	}
	return false
}

func toEnvioResponse(e *entity.Envio) *dto.EnvioResponse {
	return &dto.EnvioResponse{
		ID:            e.ID,
		EmpresaID:     e.EmpresaID,
		ComprobanteID: e.ComprobanteID,
		Destinatario:  e.Destinatario,
		Domicilio:     e.Domicilio,
		Localidad:     e.Localidad,
		Provincia:     e.Provincia,
		CodigoPostal:  e.CodigoPostal,
		Transportista: e.Transportista,
		Seguimiento:   e.Seguimiento,
		Estado:        e.Estado,
		DespachadoEn:  e.DespachadoEn,
		EntregadoEn:   e.EntregadoEn,
		Observaciones: e.Observaciones,
		CreatedAt:     e.CreatedAt,
	}
}
