package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.EnvioRepository = (*EnvioRepo)(nil)

// EnvioRepo implementación de EnvioRepository (usable con pool o tx).
type EnvioRepo struct {
	q Querier
}

// NewEnvioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEnvioRepository(q Querier) *EnvioRepo {
	return &EnvioRepo{q: q}
}

const envioCols = `id, empresa_id, comprobante_id, destinatario, domicilio, localidad,
	provincia, codigo_postal, transportista, seguimiento, estado,
	despachado_en, entregado_en, observaciones, created_at, updated_at`

// Create persiste un nuevo envío.
func (r *EnvioRepo) Create(e *entity.Envio) error {
	query := `
		INSERT INTO envios (` + envioCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.EmpresaID, e.ComprobanteID, e.Destinatario, e.Domicilio, e.Localidad,
		e.Provincia, e.CodigoPostal, e.Transportista, e.Seguimiento, e.Estado,
		e.DespachadoEn, e.EntregadoEn, e.Observaciones, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert envio: %w", err)
	}
	return nil
}

// GetByID obtiene un envío por ID.
func (r *EnvioRepo) GetByID(id string) (*entity.Envio, error) {
	query := `SELECT ` + envioCols + ` FROM envios WHERE id = $1`
	var e entity.Envio
	if err := scanEnvio(r.q.QueryRow(context.Background(), query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get envio: %w", err)
	}
	return &e, nil
}

// ListByEmpresa lista envíos de la empresa, más recientes primero.
func (r *EnvioRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Envio, error) {
	query := `SELECT ` + envioCols + `
		FROM envios WHERE empresa_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, empresaID, limit, offset)
}

// ListByComprobante lista los envíos asociados a un comprobante.
func (r *EnvioRepo) ListByComprobante(comprobanteID string) ([]*entity.Envio, error) {
	query := `SELECT ` + envioCols + ` FROM envios WHERE comprobante_id = $1 ORDER BY created_at`
	return r.list(query, comprobanteID)
}

// Update actualiza estado y datos de seguimiento de un envío.
func (r *EnvioRepo) Update(e *entity.Envio) error {
	query := `
		UPDATE envios SET destinatario = $2, domicilio = $3, localidad = $4, provincia = $5,
			codigo_postal = $6, transportista = $7, seguimiento = $8, estado = $9,
			despachado_en = $10, entregado_en = $11, observaciones = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		e.ID, e.Destinatario, e.Domicilio, e.Localidad, e.Provincia, e.CodigoPostal,
		e.Transportista, e.Seguimiento, e.Estado, e.DespachadoEn, e.EntregadoEn,
		e.Observaciones, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update envio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EnvioRepo) list(query string, args ...any) ([]*entity.Envio, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list envios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Envio
	for rows.Next() {
		var e entity.Envio
		if err := scanEnvio(rows, &e); err != nil {
			return nil, fmt.Errorf("scan envio: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func scanEnvio(row pgx.Row, e *entity.Envio) error {
	return row.Scan(
		&e.ID, &e.EmpresaID, &e.ComprobanteID, &e.Destinatario, &e.Domicilio, &e.Localidad,
		&e.Provincia, &e.CodigoPostal, &e.Transportista, &e.Seguimiento, &e.Estado,
		&e.DespachadoEn, &e.EntregadoEn, &e.Observaciones, &e.CreatedAt, &e.UpdatedAt,
	)
}
