// Package mysql registers the MySQL/MariaDB backend (go-sql-driver/mysql).
package mysql

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"ofods/internal/db"
)

func init() {
	db.Register("mysql", db.Driver{
		SQLDriver: "mysql",
		DSN:       BuildDSN,
		Code:      errorCode,
	})
}

// BuildDSN validates cfg.DSN with the driver's own parser.
func BuildDSN(cfg db.Config) (string, error) {
	if cfg.DSN == "" {
		return "", fmt.Errorf("mysql: dsn is required")
	}
	if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
		return "", fmt.Errorf("mysql dsn: %w", err)
	}
	return cfg.DSN, nil
}

// errorCode extracts the MySQL server error number.
func errorCode(err error) (string, bool) {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return fmt.Sprintf("mysql-%d", me.Number), true
	}
	return "", false
}
