// Package all wires every built-in database backend into the db registry.
//
// Importing it (as a blank import) makes these driver names available to
// db.Open:
//
//   - "sqlserver" (ofods/internal/db/mssql)
//   - "postgres"  (ofods/internal/db/postgres)
//   - "mysql"     (ofods/internal/db/mysql)
//   - "sqlite"    (ofods/internal/db/sqlite)
package all

import (
	_ "ofods/internal/db/mssql"
	_ "ofods/internal/db/mysql"
	_ "ofods/internal/db/postgres"
	_ "ofods/internal/db/sqlite"
)
