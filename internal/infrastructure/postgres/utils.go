package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE que los repos traducen a errores de dominio.
const codigoUniqueViolation = "23505"

// isUniqueViolation informa si el error proviene de un índice único: CUIT de
// empresa, email de usuario, o punto de venta + tipo + número de comprobante.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codigoUniqueViolation
}
