package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pyme/internal/application/articulos"
	"github.com/tu-usuario/gestion-pyme/internal/application/auth"
	"github.com/tu-usuario/gestion-pyme/internal/application/clientes"
	"github.com/tu-usuario/gestion-pyme/internal/application/comprobantes"
	"github.com/tu-usuario/gestion-pyme/internal/application/empresas"
	"github.com/tu-usuario/gestion-pyme/internal/application/envios"
	"github.com/tu-usuario/gestion-pyme/internal/application/gastos"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	EmpresaUC     *empresas.UseCase
	ClienteUC     *clientes.UseCase
	ArticuloUC    *articulos.UseCase
	ComprobanteUC *comprobantes.UseCase
	EnvioUC       *envios.UseCase
	GastoUC       *gastos.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Empresas: el alta es pública (bootstrap inicial de la cuenta)
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	api.Post("/empresas", empresaHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/empresas/me", empresaHandler.Me)
	protected.Put("/empresas/me", RequireRole("admin"), empresaHandler.Update)

	// Clientes
	clientesGroup := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientesGroup.Post("/", clienteHandler.Create)
	clientesGroup.Get("/", clienteHandler.List)
	clientesGroup.Get("/:id", clienteHandler.GetByID)
	clientesGroup.Put("/:id", clienteHandler.Update)
	clientesGroup.Delete("/:id", RequireRole("admin"), clienteHandler.Delete)

	// Artículos
	articulosGroup := protected.Group("/articulos")
	articuloHandler := NewArticuloHandler(deps.ArticuloUC)
	articulosGroup.Post("/", articuloHandler.Create)
	articulosGroup.Get("/", articuloHandler.List)
	articulosGroup.Get("/bajo-minimo", articuloHandler.BajoMinimo)
	articulosGroup.Get("/:id", articuloHandler.GetByID)
	articulosGroup.Put("/:id", articuloHandler.Update)
	articulosGroup.Post("/:id/ajuste-stock", RequireRole("admin"), articuloHandler.AjustarStock)

	// Comprobantes (ventas y facturación electrónica)
	comprobantesGroup := protected.Group("/comprobantes")
	comprobanteHandler := NewComprobanteHandler(deps.ComprobanteUC)
	comprobantesGroup.Post("/", comprobanteHandler.Create)
	comprobantesGroup.Get("/", comprobanteHandler.List)
	comprobantesGroup.Get("/:id", comprobanteHandler.GetByID)
	comprobantesGroup.Post("/:id/facturar", comprobanteHandler.Facturar)
	comprobantesGroup.Get("/:id/pdf", comprobanteHandler.PDF)

	// Cuotas
	protected.Post("/cuotas/:id/pagar", comprobanteHandler.PagarCuota)

	// Envíos
	enviosGroup := protected.Group("/envios")
	envioHandler := NewEnvioHandler(deps.EnvioUC)
	enviosGroup.Post("/", envioHandler.Create)
	enviosGroup.Get("/", envioHandler.List)
	enviosGroup.Get("/:id", envioHandler.GetByID)
	enviosGroup.Patch("/:id/estado", envioHandler.ActualizarEstado)

	// Gastos
	gastosGroup := protected.Group("/gastos")
	gastoHandler := NewGastoHandler(deps.GastoUC)
	gastosGroup.Post("/", gastoHandler.Create)
	gastosGroup.Get("/", gastoHandler.List)
	gastosGroup.Get("/resumen", gastoHandler.Resumen)
	gastosGroup.Delete("/:id", RequireRole("admin"), gastoHandler.Delete)
}
