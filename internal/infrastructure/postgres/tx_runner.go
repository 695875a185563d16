package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/gestion-pyme/internal/application/comprobantes"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ comprobantes.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenta inicia una transacción con los repos de la venta (comprobante +
// stock) atados a la tx, y hace Commit o Rollback según el resultado de fn.
// El alta del comprobante, sus detalles, las cuotas y el descuento de stock
// quedan en una unidad atómica.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	comprobanteRepo repository.ComprobanteRepository,
	articuloRepo repository.ArticuloRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	comprobanteRepo := NewComprobanteRepository(tx)
	articuloRepo := NewArticuloRepository(tx)

	if err := fn(comprobanteRepo, articuloRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
