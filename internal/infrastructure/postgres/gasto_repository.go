package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.GastoRepository = (*GastoRepo)(nil)

// GastoRepo implementación de GastoRepository (usable con pool o tx).
type GastoRepo struct {
	q Querier
}

// NewGastoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGastoRepository(q Querier) *GastoRepo {
	return &GastoRepo{q: q}
}

const gastoCols = `id, empresa_id, categoria, descripcion, proveedor, importe, fecha,
	created_at, updated_at`

// Create persiste un nuevo gasto.
func (r *GastoRepo) Create(g *entity.Gasto) error {
	query := `
		INSERT INTO gastos (` + gastoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		g.ID, g.EmpresaID, g.Categoria, g.Descripcion, g.Proveedor, g.Importe, g.Fecha,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert gasto: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *GastoRepo) GetByID(id string) (*entity.Gasto, error) {
	query := `SELECT ` + gastoCols + ` FROM gastos WHERE id = $1`
	var g entity.Gasto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&g.ID, &g.EmpresaID, &g.Categoria, &g.Descripcion, &g.Proveedor, &g.Importe, &g.Fecha,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gasto: %w", err)
	}
	return &g, nil
}

// ListByEmpresa lista gastos de la empresa dentro del período, más recientes primero.
func (r *GastoRepo) ListByEmpresa(empresaID string, desde, hasta time.Time, limit, offset int) ([]*entity.Gasto, error) {
	query := `SELECT ` + gastoCols + `
		FROM gastos WHERE empresa_id = $1 AND fecha >= $2 AND fecha < $3
		ORDER BY fecha DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, empresaID, desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Gasto
	for rows.Next() {
		var g entity.Gasto
		if err := rows.Scan(&g.ID, &g.EmpresaID, &g.Categoria, &g.Descripcion, &g.Proveedor,
			&g.Importe, &g.Fecha, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan gasto: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// ResumenPorCategoria agrega los gastos del período por categoría.
func (r *GastoRepo) ResumenPorCategoria(empresaID string, desde, hasta time.Time) ([]repository.ResumenGastoMes, error) {
	query := `
		SELECT categoria, COALESCE(SUM(importe), 0)
		FROM gastos WHERE empresa_id = $1 AND fecha >= $2 AND fecha < $3
		GROUP BY categoria ORDER BY 2 DESC`
	rows, err := r.q.Query(context.Background(), query, empresaID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("resumen gastos: %w", err)
	}
	defer rows.Close()
	var list []repository.ResumenGastoMes
	for rows.Next() {
		var res repository.ResumenGastoMes
		if err := rows.Scan(&res.Categoria, &res.Total); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// Delete elimina un gasto por ID.
func (r *GastoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gasto: %w", err)
	}
	return nil
}
