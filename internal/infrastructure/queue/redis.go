// Package queue implementa la cola de facturación sobre listas de Redis:
// el API encola IDs de comprobante con LPUSH y los workers los consumen con
// BRPOP. Un cron aparte reencola los comprobantes en ERROR cuyo reintento
// venció.
package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/gestion-pyme/internal/application/comprobantes"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	"github.com/tu-usuario/gestion-pyme/pkg/config"
)

const (
	colaFacturacionKey = "jobs:facturacion"
	popTimeout         = 5 * time.Second
)

// NewRedis construye y valida el cliente go-redis.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

var _ comprobantes.ColaFacturacion = (*ColaRedis)(nil)

// ColaRedis encola comprobantes pendientes de CAE en una lista de Redis.
type ColaRedis struct {
	rdb *redis.Client
}

// NewColaRedis construye la cola.
func NewColaRedis(rdb *redis.Client) *ColaRedis {
	return &ColaRedis{rdb: rdb}
}

// Encolar agrega el ID del comprobante a la cola de facturación.
func (c *ColaRedis) Encolar(ctx context.Context, comprobanteID string) error {
	return c.rdb.LPush(ctx, colaFacturacionKey, comprobanteID).Err()
}

// Worker consume la cola de facturación y solicita el CAE de cada
// comprobante. Bloquea en BRPOP: cero CPU en reposo.
type Worker struct {
	rdb        *redis.Client
	facturador *comprobantes.Facturador
	log        zerolog.Logger
}

// NewWorker construye el worker de facturación.
func NewWorker(rdb *redis.Client, facturador *comprobantes.Facturador, log zerolog.Logger) *Worker {
	return &Worker{rdb: rdb, facturador: facturador, log: log}
}

// Start lanza n goroutines consumidoras. Se detienen al cancelar ctx.
func (w *Worker) Start(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go w.run(ctx, i)
	}
	w.log.Info().Int("workers", n).Msg("worker pool de facturacion iniciado")
}

func (w *Worker) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Int("worker", id).Msg("worker detenido")
			return
		default:
			// Pop bloqueante con timeout para volver a chequear ctx.
			result, err := w.rdb.BRPop(ctx, popTimeout, colaFacturacionKey).Result()
			if err != nil {
				continue // timeout o ctx cancelado
			}
			if len(result) < 2 {
				continue
			}
			comprobanteID := result[1]
			if err := w.facturador.Facturar(ctx, comprobanteID); err != nil {
				w.log.Error().Err(err).Str("comprobante_id", comprobanteID).
					Msg("fallo procesando comprobante")
			}
		}
	}
}

// CronReintentos reencola periódicamente los comprobantes en ERROR cuyo
// próximo reintento venció.
type CronReintentos struct {
	comprobanteRepo repository.ComprobanteRepository
	cola            comprobantes.ColaFacturacion
	intervalo       time.Duration
	log             zerolog.Logger
}

// NewCronReintentos construye el cron. intervalo 0 usa un minuto.
func NewCronReintentos(repo repository.ComprobanteRepository, cola comprobantes.ColaFacturacion, intervalo time.Duration, log zerolog.Logger) *CronReintentos {
	if intervalo <= 0 {
		intervalo = time.Minute
	}
	return &CronReintentos{comprobanteRepo: repo, cola: cola, intervalo: intervalo, log: log}
}

// Start corre el cron hasta que se cancele ctx.
func (c *CronReintentos) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.intervalo)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.reencolar(ctx)
			}
		}
	}()
}

func (c *CronReintentos) reencolar(ctx context.Context) {
	pendientes, err := c.comprobanteRepo.ListParaReintento(time.Now(), 100)
	if err != nil {
		c.log.Error().Err(err).Msg("listando comprobantes para reintento")
		return
	}
	for _, cbte := range pendientes {
		if err := c.cola.Encolar(ctx, cbte.ID); err != nil {
			c.log.Error().Err(err).Str("comprobante_id", cbte.ID).Msg("reencolando comprobante")
			continue
		}
		c.log.Info().Str("comprobante_id", cbte.ID).Int("intentos", cbte.Intentos).
			Msg("comprobante reencolado para reintento")
	}
}
