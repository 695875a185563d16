package empresas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/empresas"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

type empresaRepoFake struct {
	empresas map[string]*entity.Empresa
}

func newEmpresaRepoFake() *empresaRepoFake {
	return &empresaRepoFake{empresas: make(map[string]*entity.Empresa)}
}

func (f *empresaRepoFake) Create(e *entity.Empresa) error {
	f.empresas[e.ID] = e
	return nil
}

func (f *empresaRepoFake) GetByID(id string) (*entity.Empresa, error) {
	return f.empresas[id], nil
}

func (f *empresaRepoFake) List(limit, offset int) ([]*entity.Empresa, error) {
	var out []*entity.Empresa
	for _, e := range f.empresas {
		out = append(out, e)
	}
	return out, nil
}

func (f *empresaRepoFake) Update(e *entity.Empresa) error {
	f.empresas[e.ID] = e
	return nil
}

func buildEmpresaRequest() dto.CreateEmpresaRequest {
	return dto.CreateEmpresaRequest{
		RazonSocial:  "Mi Pyme SA",
		CUIT:         "20123456786",
		Domicilio:    "Av. Corrientes 1234, CABA",
		CondicionIVA: "Responsable Inscripto",
		PuntoVenta:   3,
	}
}

func TestCreateEmpresa_ValidaCUIT(t *testing.T) {
	uc := empresas.NewUseCase(newEmpresaRepoFake())

	resp, err := uc.Create(buildEmpresaRequest())
	require.NoError(t, err)
	assert.Equal(t, "20123456786", resp.CUIT)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateEmpresa_CUITConGuiones(t *testing.T) {
	uc := empresas.NewUseCase(newEmpresaRepoFake())

	req := buildEmpresaRequest()
	req.CUIT = "20-12345678-6"
	_, err := uc.Create(req)
	assert.NoError(t, err)
}

func TestCreateEmpresa_CUITInvalidoRechazado(t *testing.T) {
	repo := newEmpresaRepoFake()
	uc := empresas.NewUseCase(repo)

	req := buildEmpresaRequest()
	req.CUIT = "20123456780" // dígito verificador incorrecto

	_, err := uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.empresas, "no debe persistir una empresa con CUIT inválido")
}

func TestUpdateEmpresa_NoCambiaCUIT(t *testing.T) {
	repo := newEmpresaRepoFake()
	uc := empresas.NewUseCase(repo)

	creada, err := uc.Create(buildEmpresaRequest())
	require.NoError(t, err)

	req := buildEmpresaRequest()
	req.RazonSocial = "Mi Pyme Renombrada SA"
	req.CUIT = "20111111112"
	resp, err := uc.Update(creada.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Mi Pyme Renombrada SA", resp.RazonSocial)
	assert.Equal(t, "20123456786", resp.CUIT, "el CUIT del emisor es inmutable")
}

func TestGetEmpresa_NoExiste(t *testing.T) {
	uc := empresas.NewUseCase(newEmpresaRepoFake())

	_, err := uc.Get("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
