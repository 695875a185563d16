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

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación de ComprobanteRepository (usable con pool o tx).
type ComprobanteRepo struct {
	q Querier
}

// NewComprobanteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComprobanteRepository(q Querier) *ComprobanteRepo {
	return &ComprobanteRepo{q: q}
}

const comprobanteCols = `id, empresa_id, cliente_id, tipo, punto_venta, numero, concepto, fecha,
	imp_neto, imp_iva, imp_total, mon_id, mon_cotiz, fch_serv_desde, fch_serv_hasta,
	fch_vto_pago, estado, cae, cae_vencimiento, comprobante_asociado_id, afip_errores,
	afip_observaciones, intentos, proximo_reintento, created_at, updated_at`

// Create persiste la cabecera del comprobante.
func (r *ComprobanteRepo) Create(c *entity.Comprobante) error {
	query := `
		INSERT INTO comprobantes (` + comprobanteCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.EmpresaID, c.ClienteID, c.Tipo, c.PuntoVenta, c.Numero, c.Concepto, c.Fecha,
		c.ImpNeto, c.ImpIVA, c.ImpTotal, c.MonId, c.MonCotiz,
		c.FchServDesde, c.FchServHasta, c.FchVtoPago,
		c.Estado, c.CAE, c.CAEVencimiento,
		nullStr(c.ComprobanteAsociadoID), c.AfipErrores, c.AfipObservaciones,
		c.Intentos, c.ProximoReintento, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea del comprobante.
func (r *ComprobanteRepo) CreateDetalle(d *entity.ComprobanteDetalle) error {
	query := `
		INSERT INTO comprobante_detalles
			(id, comprobante_id, articulo_id, descripcion, cantidad, precio_unitario,
			 alicuota_iva, subtotal, importe_iva)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.ComprobanteID, nullStr(d.ArticuloID), d.Descripcion, d.Cantidad,
		d.PrecioUnitario, d.AlicuotaIVA, d.Subtotal, d.ImporteIVA,
	)
	if err != nil {
		return fmt.Errorf("insert detalle: %w", err)
	}
	return nil
}

// CreateCuota persiste una cuota del plan de pagos.
func (r *ComprobanteRepo) CreateCuota(c *entity.Cuota) error {
	query := `
		INSERT INTO cuotas (id, comprobante_id, numero, importe, vencimiento, estado,
			fecha_pago, medio_pago, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ComprobanteID, c.Numero, c.Importe, c.Vencimiento, c.Estado,
		c.FechaPago, c.MedioPago, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cuota: %w", err)
	}
	return nil
}

// UpdateAFIP actualiza los campos del ciclo de facturación electrónica.
func (r *ComprobanteRepo) UpdateAFIP(c *entity.Comprobante) error {
	query := `
		UPDATE comprobantes SET numero = $2, estado = $3, cae = $4, cae_vencimiento = $5,
			afip_errores = $6, afip_observaciones = $7, intentos = $8,
			proximo_reintento = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Numero, c.Estado, c.CAE, c.CAEVencimiento,
		c.AfipErrores, c.AfipObservaciones, c.Intentos, c.ProximoReintento, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update afip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera de un comprobante por ID.
func (r *ComprobanteRepo) GetByID(id string) (*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteCols + ` FROM comprobantes WHERE id = $1`
	var c entity.Comprobante
	if err := scanComprobante(r.q.QueryRow(context.Background(), query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}
	return &c, nil
}

// GetDetallesByComprobanteID devuelve las líneas del comprobante en orden de inserción.
func (r *ComprobanteRepo) GetDetallesByComprobanteID(comprobanteID string) ([]*entity.ComprobanteDetalle, error) {
	query := `
		SELECT id, comprobante_id, COALESCE(articulo_id, ''), descripcion, cantidad,
			precio_unitario, alicuota_iva, subtotal, importe_iva
		FROM comprobante_detalles WHERE comprobante_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, comprobanteID)
	if err != nil {
		return nil, fmt.Errorf("list detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComprobanteDetalle
	for rows.Next() {
		var d entity.ComprobanteDetalle
		if err := rows.Scan(&d.ID, &d.ComprobanteID, &d.ArticuloID, &d.Descripcion, &d.Cantidad,
			&d.PrecioUnitario, &d.AlicuotaIVA, &d.Subtotal, &d.ImporteIVA); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetCuotasByComprobanteID devuelve las cuotas ordenadas por número.
func (r *ComprobanteRepo) GetCuotasByComprobanteID(comprobanteID string) ([]*entity.Cuota, error) {
	query := `
		SELECT id, comprobante_id, numero, importe, vencimiento, estado, fecha_pago,
			medio_pago, created_at, updated_at
		FROM cuotas WHERE comprobante_id = $1 ORDER BY numero`
	rows, err := r.q.Query(context.Background(), query, comprobanteID)
	if err != nil {
		return nil, fmt.Errorf("list cuotas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cuota
	for rows.Next() {
		var c entity.Cuota
		if err := scanCuota(rows, &c); err != nil {
			return nil, fmt.Errorf("scan cuota: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetCuotaByID obtiene una cuota por ID.
func (r *ComprobanteRepo) GetCuotaByID(id string) (*entity.Cuota, error) {
	query := `
		SELECT id, comprobante_id, numero, importe, vencimiento, estado, fecha_pago,
			medio_pago, created_at, updated_at
		FROM cuotas WHERE id = $1`
	var c entity.Cuota
	if err := scanCuota(r.q.QueryRow(context.Background(), query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cuota: %w", err)
	}
	return &c, nil
}

// UpdateCuota actualiza estado y datos de pago de una cuota.
func (r *ComprobanteRepo) UpdateCuota(c *entity.Cuota) error {
	query := `
		UPDATE cuotas SET estado = $2, fecha_pago = $3, medio_pago = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Estado, c.FechaPago, c.MedioPago, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update cuota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEmpresa lista comprobantes de la empresa, más recientes primero.
func (r *ComprobanteRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteCols + `
		FROM comprobantes WHERE empresa_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, empresaID, limit, offset)
}

// ListParaReintento devuelve comprobantes en estado ERROR con el próximo
// reintento vencido; los consume el cron de refacturación.
func (r *ComprobanteRepo) ListParaReintento(ahora time.Time, limit int) ([]*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteCols + `
		FROM comprobantes
		WHERE estado = $1 AND proximo_reintento IS NOT NULL AND proximo_reintento <= $2
		ORDER BY proximo_reintento LIMIT $3`
	return r.list(query, entity.EstadoError, ahora, limit)
}

func (r *ComprobanteRepo) list(query string, args ...any) ([]*entity.Comprobante, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comprobante
	for rows.Next() {
		var c entity.Comprobante
		if err := scanComprobante(rows, &c); err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func scanComprobante(row pgx.Row, c *entity.Comprobante) error {
	var asociado *string
	err := row.Scan(
		&c.ID, &c.EmpresaID, &c.ClienteID, &c.Tipo, &c.PuntoVenta, &c.Numero, &c.Concepto, &c.Fecha,
		&c.ImpNeto, &c.ImpIVA, &c.ImpTotal, &c.MonId, &c.MonCotiz,
		&c.FchServDesde, &c.FchServHasta, &c.FchVtoPago,
		&c.Estado, &c.CAE, &c.CAEVencimiento,
		&asociado, &c.AfipErrores, &c.AfipObservaciones, &c.Intentos, &c.ProximoReintento,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if asociado != nil {
		c.ComprobanteAsociadoID = *asociado
	}
	return err
}

func scanCuota(row pgx.Row, c *entity.Cuota) error {
	return row.Scan(
		&c.ID, &c.ComprobanteID, &c.Numero, &c.Importe, &c.Vencimiento, &c.Estado,
		&c.FechaPago, &c.MedioPago, &c.CreatedAt, &c.UpdatedAt,
	)
}

// nullStr mapea string vacío a NULL (columnas con FK opcional).
func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
