package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteCols = `id, empresa_id, razon_social, doc_tipo, doc_nro, condicion_iva,
	domicilio, localidad, email, telefono, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.EmpresaID, cliente.RazonSocial, cliente.DocTipo, cliente.DocNro,
		cliente.CondicionIVA, cliente.Domicilio, cliente.Localidad, cliente.Email, cliente.Telefono,
		cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + ` FROM clientes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmpresaAndDoc obtiene un cliente por empresa, tipo y número de documento.
func (r *ClienteRepo) GetByEmpresaAndDoc(empresaID string, docTipo int, docNro string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + `
		FROM clientes WHERE empresa_id = $1 AND doc_tipo = $2 AND doc_nro = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, empresaID, docTipo, docNro))
}

// ListByEmpresa lista clientes de la empresa con paginación.
func (r *ClienteRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteCols + `
		FROM clientes WHERE empresa_id = $1 ORDER BY razon_social LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := scanCliente(rows, &c); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET razon_social = $2, doc_tipo = $3, doc_nro = $4, condicion_iva = $5,
			domicilio = $6, localidad = $7, email = $8, telefono = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.RazonSocial, cliente.DocTipo, cliente.DocNro, cliente.CondicionIVA,
		cliente.Domicilio, cliente.Localidad, cliente.Email, cliente.Telefono, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClienteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepo) scanOne(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	if err := scanCliente(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

func scanCliente(row pgx.Row, c *entity.Cliente) error {
	return row.Scan(
		&c.ID, &c.EmpresaID, &c.RazonSocial, &c.DocTipo, &c.DocNro, &c.CondicionIVA,
		&c.Domicilio, &c.Localidad, &c.Email, &c.Telefono, &c.CreatedAt, &c.UpdatedAt,
	)
}
