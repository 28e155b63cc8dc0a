// Package mssql registers the Microsoft SQL Server backend (go-mssqldb).
//
// Without an explicit DSN the connection string is built from the server
// and database names only, so the driver authenticates with the ambient
// operating-system identity (integrated security) rather than embedded
// credentials.
package mssql

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"ofods/internal/db"
)

func init() {
	db.Register("sqlserver", db.Driver{
		SQLDriver: "sqlserver",
		DSN:       BuildDSN,
		Code:      errorCode,
	})
}

// BuildDSN returns cfg.DSN, or a sqlserver:// URL for cfg.Server and
// cfg.Database. A named instance ("HOST\INSTANCE") becomes the URL path.
// The result is checked with msdsn.Parse to fail fast on obvious mistakes.
func BuildDSN(cfg db.Config) (string, error) {
	dsn := cfg.DSN
	if dsn == "" {
		if strings.TrimSpace(cfg.Server) == "" {
			return "", fmt.Errorf("mssql: server is required")
		}
		host, instance, _ := strings.Cut(cfg.Server, `\`)
		u := &url.URL{Scheme: "sqlserver", Host: host}
		if instance != "" {
			u.Path = "/" + instance
		}
		if cfg.Database != "" {
			u.RawQuery = url.Values{"database": {cfg.Database}}.Encode()
		}
		dsn = u.String()
	}
	if _, err := msdsn.Parse(dsn); err != nil {
		return "", fmt.Errorf("mssql dsn: %w", err)
	}
	return dsn, nil
}

// errorCode extracts the SQL Server error number.
func errorCode(err error) (string, bool) {
	var me mssql.Error
	if errors.As(err, &me) {
		return "mssql-" + strconv.Itoa(int(me.Number)), true
	}
	return "", false
}
