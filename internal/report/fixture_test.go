package report

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	_ "ofods/internal/db/sqlite"
)

// execFile runs every statement of a testdata script.
func execFile(t *testing.T, conn *sql.DB, name string) {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(b), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := conn.ExecContext(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
}

// newDB creates a SQLite database file with the schema and, when seed is
// true, the sample rows. It returns the file path.
func newDB(t *testing.T, seed bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ofods.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	execFile(t, conn, "schema.sql")
	if seed {
		execFile(t, conn, "seed.sql")
	}
	return path
}

// openDB opens path for direct queries in tests.
func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

const wantSeededReport = `Total Orders Per Customer
Customer_ID | First_Name | Last_Name | Total_Orders
------------------------------------------------------------
1 | Ana | Lopez | 2
2 | Ben | Okafor | 1
3 | Chen | Wu | 0


Most Ordered Menu Items
Menu_Item | Restaurant | Times_Ordered
------------------------------------------------------------
Samosa | Spice Route | 2
Naan | Spice Route | 1
Salad | Green Bowl | 1


Revenue Generated Per Restaurant
Restaurant_ID | Restaurant_Name | Total_Revenue
------------------------------------------------------------
1 | Spice Route | $14.50
2 | Green Bowl | $0.00
3 | Empty Kitchen | $0.00
`
