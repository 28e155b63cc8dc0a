// Package postgres registers the PostgreSQL backend using the pgx
// database/sql driver.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"ofods/internal/db"
)

func init() {
	db.Register("postgres", db.Driver{
		SQLDriver: "pgx",
		Code:      errorCode,
	})
}

// errorCode extracts the SQLSTATE of a server error.
func errorCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "pg-" + pgErr.Code, true
	}
	return "", false
}
