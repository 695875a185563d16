package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

// ArticuloRepo implementación de ArticuloRepository (usable con pool o tx).
type ArticuloRepo struct {
	q Querier
}

// NewArticuloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticuloRepository(q Querier) *ArticuloRepo {
	return &ArticuloRepo{q: q}
}

const articuloCols = `id, empresa_id, codigo, descripcion, precio_unitario, alicuota_iva,
	stock, stock_minimo, activo, created_at, updated_at`

// Create persiste un nuevo artículo.
func (r *ArticuloRepo) Create(articulo *entity.Articulo) error {
	query := `
		INSERT INTO articulos (` + articuloCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		articulo.ID, articulo.EmpresaID, articulo.Codigo, articulo.Descripcion,
		articulo.PrecioUnitario, articulo.AlicuotaIVA, articulo.Stock, articulo.StockMinimo,
		articulo.Activo, articulo.CreatedAt, articulo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert articulo: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticuloRepo) GetByID(id string) (*entity.Articulo, error) {
	query := `SELECT ` + articuloCols + ` FROM articulos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmpresaAndCodigo obtiene un artículo por empresa y código (SKU).
func (r *ArticuloRepo) GetByEmpresaAndCodigo(empresaID, codigo string) (*entity.Articulo, error) {
	query := `SELECT ` + articuloCols + ` FROM articulos WHERE empresa_id = $1 AND codigo = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, empresaID, codigo))
}

// ListByEmpresa lista artículos de la empresa con paginación.
func (r *ArticuloRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Articulo, error) {
	query := `SELECT ` + articuloCols + `
		FROM articulos WHERE empresa_id = $1 ORDER BY codigo LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articulos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Articulo
	for rows.Next() {
		var a entity.Articulo
		if err := scanArticulo(rows, &a); err != nil {
			return nil, fmt.Errorf("scan articulo: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza un artículo (sin tocar el stock: usar AjustarStock).
func (r *ArticuloRepo) Update(articulo *entity.Articulo) error {
	query := `
		UPDATE articulos SET codigo = $2, descripcion = $3, precio_unitario = $4,
			alicuota_iva = $5, stock_minimo = $6, activo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		articulo.ID, articulo.Codigo, articulo.Descripcion, articulo.PrecioUnitario,
		articulo.AlicuotaIVA, articulo.StockMinimo, articulo.Activo, articulo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update articulo: %w", err)
	}
	return nil
}

// AjustarStock suma delta (positivo o negativo) al stock, en una sola
// sentencia atómica. Si el resultado quedaría negativo no se modifica nada y
// devuelve ErrInsufficientStock.
func (r *ArticuloRepo) AjustarStock(id string, delta decimal.Decimal) error {
	query := `
		UPDATE articulos SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0`
	tag, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("ajustar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existe, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if existe == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *ArticuloRepo) scanOne(row pgx.Row) (*entity.Articulo, error) {
	var a entity.Articulo
	if err := scanArticulo(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo: %w", err)
	}
	return &a, nil
}

func scanArticulo(row pgx.Row, a *entity.Articulo) error {
	return row.Scan(
		&a.ID, &a.EmpresaID, &a.Codigo, &a.Descripcion, &a.PrecioUnitario, &a.AlicuotaIVA,
		&a.Stock, &a.StockMinimo, &a.Activo, &a.CreatedAt, &a.UpdatedAt,
	)
}
