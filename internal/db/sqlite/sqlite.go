// Package sqlite registers the SQLite backend (modernc.org/sqlite, pure Go).
// It serves local copies of the schema and the test suite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"

	"ofods/internal/db"
)

func init() {
	db.Register("sqlite", db.Driver{
		SQLDriver: "sqlite",
		Code:      errorCode,
		Setup:     setup,
	})
}

// setup pins the pool to one connection: every connection to ":memory:"
// would otherwise see its own empty database.
func setup(conn *sql.DB) {
	conn.SetMaxOpenConns(1)
}

// errorCode extracts the SQLite result code.
func errorCode(err error) (string, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return fmt.Sprintf("sqlite-%d", se.Code()), true
	}
	return "", false
}
