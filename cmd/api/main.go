package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/gestion-pyme/internal/application/articulos"
	"github.com/tu-usuario/gestion-pyme/internal/application/auth"
	"github.com/tu-usuario/gestion-pyme/internal/application/clientes"
	"github.com/tu-usuario/gestion-pyme/internal/application/comprobantes"
	"github.com/tu-usuario/gestion-pyme/internal/application/empresas"
	"github.com/tu-usuario/gestion-pyme/internal/application/envios"
	"github.com/tu-usuario/gestion-pyme/internal/application/gastos"
	infraafip "github.com/tu-usuario/gestion-pyme/internal/infrastructure/afip"
	infrapdf "github.com/tu-usuario/gestion-pyme/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/postgres"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/queue"
	httpRouter "github.com/tu-usuario/gestion-pyme/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pyme/pkg/config"
	"github.com/tu-usuario/gestion-pyme/pkg/logger"
)

const workersFacturacion = 2

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	articuloRepo := postgres.NewArticuloRepository(pool)
	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	envioRepo := postgres.NewEnvioRepository(pool)
	gastoRepo := postgres.NewGastoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rdb, err := queue.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()
	cola := queue.NewColaRedis(rdb)

	// WSAA + WSFE — contra AFIP real solo con certificado y entorno homo/prod.
	// En modo "dev" (o sin certificado) se emiten CAE simulados.
	var (
		credenciales comprobantes.CredencialesAFIP
		wsfe         infraafip.ClienteWSFE
	)
	if cfg.AFIP.Environment == infraafip.AppEnvDev || cfg.AFIP.CertPath == "" {
		log.Warn().Msg("facturación AFIP en modo simulado: los CAE emitidos no son válidos")
		credenciales = infraafip.NewCredencialesSimuladas(cfg.AFIP.CUIT)
		wsfe = infraafip.NewWSFESimulado()
	} else {
		cert, err := infraafip.CargarCertificado(cfg.AFIP.CertPath, cfg.AFIP.CertKeyPath, cfg.AFIP.CertPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("certificado AFIP")
		}
		wsaa, err := infraafip.NewClienteWSAA(cfg.AFIP.Environment, cert)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente WSAA")
		}
		credenciales = infraafip.NewTicketProvider(wsaa, cfg.AFIP.CUIT)
		wsfe, err = infraafip.NewSOAPClienteWSFE(cfg.AFIP.Environment)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente WSFE")
		}
	}

	facturador := comprobantes.NewFacturador(
		comprobanteRepo, clienteRepo, empresaRepo,
		credenciales, wsfe, log.Zerolog(),
	)
	queue.NewWorker(rdb, facturador, log.Zerolog()).Start(ctx, workersFacturacion)
	queue.NewCronReintentos(comprobanteRepo, cola, time.Minute, log.Zerolog()).Start(ctx)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(usuarioRepo, empresaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	empresaUC := empresas.NewUseCase(empresaRepo)
	clienteUC := clientes.NewUseCase(clienteRepo)
	articuloUC := articulos.NewUseCase(articuloRepo)
	comprobanteUC := comprobantes.NewUseCase(
		txRunner, comprobanteRepo, clienteRepo, articuloRepo, empresaRepo,
		cola, pdfGenerator, log.Zerolog(),
	)
	envioUC := envios.NewUseCase(envioRepo, comprobanteRepo)
	gastoUC := gastos.NewUseCase(gastoRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión PyME API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		EmpresaUC:     empresaUC,
		ClienteUC:     clienteUC,
		ArticuloUC:    articuloUC,
		ComprobanteUC: comprobanteUC,
		EnvioUC:       envioUC,
		GastoUC:       gastoUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop() // detiene workers y cron

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
