package comprobantes_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pyme/internal/application/comprobantes"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// ── Fakes adicionales ────────────────────────────────────────────────────────

type articuloRepoFake struct {
	articulos map[string]*entity.Articulo
}

func (f *articuloRepoFake) Create(*entity.Articulo) error { return nil }
func (f *articuloRepoFake) GetByID(id string) (*entity.Articulo, error) {
	return f.articulos[id], nil
}
func (f *articuloRepoFake) GetByEmpresaAndCodigo(string, string) (*entity.Articulo, error) {
	return nil, nil
}
func (f *articuloRepoFake) ListByEmpresa(string, int, int) ([]*entity.Articulo, error) {
	return nil, nil
}
func (f *articuloRepoFake) Update(*entity.Articulo) error { return nil }
func (f *articuloRepoFake) AjustarStock(id string, delta decimal.Decimal) error {
	a := f.articulos[id]
	if a == nil {
		return domain.ErrNotFound
	}
	nuevo := a.Stock.Add(delta)
	if nuevo.IsNegative() {
		return domain.ErrInsufficientStock
	}
	a.Stock = nuevo
	return nil
}

type txRunnerFake struct {
	comprobantes *comprobanteRepoFake
	articulos    *articuloRepoFake
}

func (f *txRunnerFake) RunVenta(_ context.Context, fn func(
	repository.ComprobanteRepository, repository.ArticuloRepository) error) error {
	return fn(f.comprobantes, f.articulos)
}

type pdfFake struct{}

func (pdfFake) GenerarComprobantePDF(
	_ context.Context,
	_ *entity.Comprobante, _ *entity.Empresa, _ *entity.Cliente,
	_ []*entity.ComprobanteDetalle, _ []*entity.Cuota,
) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

type colaFake struct {
	encolados []string
	err       error
}

func (f *colaFake) Encolar(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.encolados = append(f.encolados, id)
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

const (
	empresaID         = "5f9c0a3e-1111-4a2b-9c3d-000000000001"
	clienteID         = "5f9c0a3e-1111-4a2b-9c3d-000000000002"
	articuloID        = "5f9c0a3e-1111-4a2b-9c3d-000000000003"
	comprobanteOrigID = "5f9c0a3e-1111-4a2b-9c3d-000000000004"
)

type escenarioVenta struct {
	uc           *comprobantes.UseCase
	comprobantes *comprobanteRepoFake
	articulos    *articuloRepoFake
	cola         *colaFake
}

func buildEscenarioVenta() *escenarioVenta {
	repo := newComprobanteRepoFake()
	articulos := &articuloRepoFake{articulos: map[string]*entity.Articulo{
		articuloID: {
			ID: articuloID, EmpresaID: empresaID, Codigo: "NB-01", Descripcion: "Notebook",
			PrecioUnitario: decimal.RequireFromString("50000.00"),
			AlicuotaIVA:    decimal.RequireFromString("21"),
			Stock:          decimal.NewFromInt(10),
			Activo:         true,
		},
	}}
	clientes := &clienteRepoFake{clientes: map[string]*entity.Cliente{
		clienteID: {ID: clienteID, EmpresaID: empresaID, RazonSocial: "ACME SRL",
			DocTipo: 80, DocNro: "20111111112", CondicionIVA: 1},
	}}
	empresas := &empresaRepoFake{empresas: map[string]*entity.Empresa{
		empresaID: {ID: empresaID, RazonSocial: "Mi Pyme SA", CUIT: "20123456786", PuntoVenta: 3},
	}}
	cola := &colaFake{}
	tx := &txRunnerFake{comprobantes: repo, articulos: articulos}
	uc := comprobantes.NewUseCase(tx, repo, clientes, articulos, empresas, cola, pdfFake{}, zerolog.Nop())
	return &escenarioVenta{uc: uc, comprobantes: repo, articulos: articulos, cola: cola}
}

func buildVentaRequest() dto.CreateComprobanteRequest {
	return dto.CreateComprobanteRequest{
		ClienteID: clienteID,
		Tipo:      6, // Factura B
		Concepto:  1,
		Items: []dto.ItemComprobante{
			{ArticuloID: articuloID, Cantidad: decimal.NewFromInt(2)},
		},
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateVenta_CalculaImportesYDescuentaStock(t *testing.T) {
	esc := buildEscenarioVenta()

	resp, err := esc.uc.Create(context.Background(), empresaID, buildVentaRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoBorrador, resp.Estado)
	assert.Zero(t, resp.Numero, "la numeración llega recién al facturar")
	assert.True(t, resp.ImpNeto.Equal(decimal.RequireFromString("100000")), "neto: 2 x 50000")
	assert.True(t, resp.ImpIVA.Equal(decimal.RequireFromString("21000")), "IVA del 21 por ciento de 100000")
	assert.True(t, resp.ImpTotal.Equal(decimal.RequireFromString("121000")))
	assert.Equal(t, "PES", resp.MonId)

	stock := esc.articulos.articulos[articuloID].Stock
	assert.True(t, stock.Equal(decimal.NewFromInt(8)), "stock esperado 8, obtenido %s", stock)

	require.Len(t, esc.comprobantes.detalles[resp.ID], 1)
	assert.Empty(t, esc.comprobantes.cuotas[resp.ID], "venta de contado no genera cuotas")
	assert.Empty(t, esc.cola.encolados, "el alta no encola: facturar es explícito")
}

func TestCreateVenta_PlanDeCuotasCierraExacto(t *testing.T) {
	esc := buildEscenarioVenta()
	primerVto := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	req := buildVentaRequest()
	req.Cuotas = 3
	req.PrimerVencimiento = &primerVto

	resp, err := esc.uc.Create(context.Background(), empresaID, req)
	require.NoError(t, err)

	cuotas := esc.comprobantes.cuotas[resp.ID]
	require.Len(t, cuotas, 3)

	// 121000 / 3 = 40333.33; la última absorbe el centavo de redondeo.
	assert.True(t, cuotas[0].Importe.Equal(decimal.RequireFromString("40333.33")))
	assert.True(t, cuotas[1].Importe.Equal(decimal.RequireFromString("40333.33")))
	assert.True(t, cuotas[2].Importe.Equal(decimal.RequireFromString("40333.34")))

	suma := decimal.Zero
	for i, c := range cuotas {
		suma = suma.Add(c.Importe)
		assert.Equal(t, i+1, c.Numero)
		assert.Equal(t, entity.CuotaPendiente, c.Estado)
		assert.Equal(t, primerVto.AddDate(0, i, 0), c.Vencimiento, "vencimientos mensuales")
	}
	assert.True(t, suma.Equal(resp.ImpTotal), "la suma de cuotas debe igualar el total")
}

func TestCreateVenta_CuotasSinPrimerVencimiento(t *testing.T) {
	esc := buildEscenarioVenta()
	req := buildVentaRequest()
	req.Cuotas = 3

	_, err := esc.uc.Create(context.Background(), empresaID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateVenta_NotaCreditoExigeAsociado(t *testing.T) {
	esc := buildEscenarioVenta()
	req := buildVentaRequest()
	req.Tipo = 8 // Nota de Crédito B

	_, err := esc.uc.Create(context.Background(), empresaID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateVenta_NotaCreditoDevuelveStock(t *testing.T) {
	esc := buildEscenarioVenta()
	esc.comprobantes.comprobantes[comprobanteOrigID] = &entity.Comprobante{
		ID: comprobanteOrigID, EmpresaID: empresaID, ClienteID: clienteID,
		Tipo: 6, PuntoVenta: 3, Numero: 40, Estado: entity.EstadoEmitido,
	}
	req := buildVentaRequest()
	req.Tipo = 8
	req.ComprobanteAsociadoID = comprobanteOrigID

	_, err := esc.uc.Create(context.Background(), empresaID, req)
	require.NoError(t, err)

	stock := esc.articulos.articulos[articuloID].Stock
	assert.True(t, stock.Equal(decimal.NewFromInt(12)), "la nota de crédito repone el stock")
}

func TestCreateVenta_ServicioExigeFechas(t *testing.T) {
	esc := buildEscenarioVenta()
	req := buildVentaRequest()
	req.Concepto = 2

	_, err := esc.uc.Create(context.Background(), empresaID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req.FchServDesde = "20250501"
	req.FchServHasta = "20250531"
	req.FchVtoPago = "20250610"
	resp, err := esc.uc.Create(context.Background(), empresaID, req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Concepto)
}

func TestCreateVenta_ClienteDeOtraEmpresa(t *testing.T) {
	esc := buildEscenarioVenta()

	_, err := esc.uc.Create(context.Background(), "5f9c0a3e-1111-4a2b-9c3d-0000000000ff", buildVentaRequest())
	assert.Error(t, err)
}

func TestFacturarEncolaYMarcaPendiente(t *testing.T) {
	esc := buildEscenarioVenta()
	resp, err := esc.uc.Create(context.Background(), empresaID, buildVentaRequest())
	require.NoError(t, err)

	resp, err = esc.uc.Facturar(context.Background(), empresaID, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoPendiente, resp.Estado)
	assert.Equal(t, []string{resp.ID}, esc.cola.encolados)

	// Reencolar un comprobante ya pendiente es conflicto.
	_, err = esc.uc.Facturar(context.Background(), empresaID, resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFacturarConColaCaidaVuelveABorrador(t *testing.T) {
	esc := buildEscenarioVenta()
	resp, err := esc.uc.Create(context.Background(), empresaID, buildVentaRequest())
	require.NoError(t, err)

	esc.cola.err = assert.AnError
	_, err = esc.uc.Facturar(context.Background(), empresaID, resp.ID)
	require.Error(t, err)

	c := esc.comprobantes.comprobantes[resp.ID]
	assert.Equal(t, entity.EstadoBorrador, c.Estado, "sin encolar no debe quedar PENDIENTE")
}

func TestPagarCuota(t *testing.T) {
	esc := buildEscenarioVenta()
	primerVto := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	req := buildVentaRequest()
	req.Cuotas = 2
	req.PrimerVencimiento = &primerVto
	resp, err := esc.uc.Create(context.Background(), empresaID, req)
	require.NoError(t, err)

	cuotaID := esc.comprobantes.cuotas[resp.ID][0].ID
	pagada, err := esc.uc.PagarCuota(empresaID, cuotaID, dto.PagarCuotaRequest{MedioPago: "transferencia"})
	require.NoError(t, err)

	assert.Equal(t, entity.CuotaPagada, pagada.Estado)
	assert.Equal(t, "transferencia", pagada.MedioPago)
	require.NotNil(t, pagada.FechaPago)

	// La cuota ya pagada no puede pagarse de nuevo.
	_, err = esc.uc.PagarCuota(empresaID, cuotaID, dto.PagarCuotaRequest{MedioPago: "efectivo"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
