package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestDefault_Tables verifies the built-in declaration order and that the
markup source carries its record path.
*/
func TestDefault_Tables(t *testing.T) {
	c := Default()

	var names []string
	for _, tbl := range c.Inserts.Tables {
		names = append(names, tbl.Table)
	}
	assert.Equal(t, []string{
		"Customers", "Restaurants", "Menu_Items", "Orders",
		"Payments", "Delivery_Personnel", "Reviews_Ratings",
	}, names)
	assert.Equal(t, "payments/payment", c.Inserts.Tables[4].Options.String("record_path", ""))
	assert.Equal(t, "sqlserver", c.Database.Driver)
	assert.Equal(t, "Report.txt", c.Report.Output)
	assert.Equal(t, "insert_data.sql", c.Inserts.Output)
	assert.Equal(t, QuoteRaw, c.Inserts.QuoteMode)
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_JSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ofods.json")
	require.NoError(t, os.WriteFile(p, []byte(`{
		"database": {"driver": "postgres", "dsn": "postgres://localhost/ofods"},
		"inserts": {
			"quote_mode": "escape",
			"tables": [
				{"table": "Customers", "path": "c.csv", "columns": ["Customer_ID"], "options": {"comma": ";"}},
				{"table": "Payments", "path": "p.xml", "columns": ["Amount"], "options": null}
			]
		}
	}`), 0o644))

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "ofods", c.Job)
	assert.Equal(t, "postgres", c.Database.Driver)
	assert.Empty(t, c.Database.Server, "server default only applies to sqlserver")
	assert.Equal(t, "Report.txt", c.Report.Output)
	assert.Equal(t, QuoteEscape, c.Inserts.QuoteMode)
	require.Len(t, c.Inserts.Tables, 2)
	assert.Equal(t, ';', c.Inserts.Tables[0].Options.Rune("comma", ','))
	assert.NotNil(t, c.Inserts.Tables[1].Options)
}

func TestLoad_YAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ofods.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
job: nightly
database:
  server: db01
report:
  output: out/report.txt
inserts:
  tables:
    - table: Orders
      path: orders.xlsx
      columns: [Order_ID, Total_Cost]
      options:
        sheet: Orders
        header_row: 2
`), 0o644))

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "nightly", c.Job)
	assert.Equal(t, "db01", c.Database.Server)
	assert.Equal(t, "OFODS-Revised", c.Database.Name)
	assert.Equal(t, "out/report.txt", c.Report.Output)
	require.Len(t, c.Inserts.Tables, 1)
	assert.Equal(t, "Orders", c.Inserts.Tables[0].Options.String("sheet", ""))
	assert.Equal(t, 2, c.Inserts.Tables[0].Options.Int("header_row", 1))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"job":`), 0o644))
	_, err = Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDriver: "mysql",
		EnvDSN:    "user@tcp(localhost)/ofods",
		EnvServer: "",
	}
	c := Default()
	ApplyEnv(&c, func(k string) string { return env[k] })

	assert.Equal(t, "mysql", c.Database.Driver)
	assert.Equal(t, "user@tcp(localhost)/ofods", c.Database.DSN)
	assert.Equal(t, "DESKTOP-ACSF2AH", c.Database.Server, "empty env values do not override")
}

func TestOptions_Getters(t *testing.T) {
	o := Options{
		"s":   "x",
		"b":   true,
		"f":   float64(3),
		"i":   4,
		"tab": `\t`,
	}
	assert.Equal(t, "x", o.String("s", "d"))
	assert.Equal(t, "d", o.String("b", "d"))
	assert.True(t, o.Bool("b", false))
	assert.False(t, o.Bool("s", false))
	assert.Equal(t, 3, o.Int("f", 0))
	assert.Equal(t, 4, o.Int("i", 0))
	assert.Equal(t, 9, o.Int("missing", 9))
	assert.Equal(t, '\t', o.Rune("tab", ','))
	assert.Equal(t, 'x', o.Rune("s", ','))
	assert.Equal(t, ',', o.Rune("missing", ','))
}
