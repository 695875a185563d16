package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "empresas_cuit_key"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("crear empresa: %w", unique)))

	fk := &pgconn.PgError{Code: "23503"}
	assert.False(t, isUniqueViolation(fk))
	// Solo cuenta el SQLSTATE estructurado, no el texto del mensaje.
	assert.False(t, isUniqueViolation(errors.New("error 23505 en texto plano")))
}
