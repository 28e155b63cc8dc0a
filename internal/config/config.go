// Package config defines the configuration model shared by the report and
// insert-statement pipelines.
//
// A configuration is decoded from JSON (or YAML, chosen by file extension).
// When no file is given, Default returns the built-in configuration: the
// reporting server/database and the seven seed tables with their source files
// and column lists.
//
// Example (trimmed):
//
//	{
//	  "job": "ofods",
//	  "database": { "driver": "sqlserver", "server": "db01", "database": "OFODS" },
//	  "report":   { "output": "Report.txt" },
//	  "inserts":  {
//	    "output": "insert_data.sql",
//	    "tables": [
//	      { "table": "Customers", "path": "customers.csv",
//	        "columns": ["Customer_ID", "First_Name", "Last_Name"] },
//	      { "table": "Payments", "path": "payments.xml",
//	        "columns": ["Transaction_ID", "Amount"],
//	        "options": { "record_path": "payments/payment" } }
//	    ]
//	  }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Quote modes for generated INSERT values.
const (
	// QuoteRaw wraps values in single quotes without escaping. A value that
	// contains a single quote produces a malformed statement.
	QuoteRaw = "raw"
	// QuoteEscape doubles embedded single quotes.
	QuoteEscape = "escape"
)

// Config is the top-level object decoded from a configuration file.
type Config struct {
	// Job names the run for logs and metrics.
	Job string `json:"job" yaml:"job"`

	Database Database `json:"database" yaml:"database"`
	Report   Report   `json:"report" yaml:"report"`
	Inserts  Inserts  `json:"inserts" yaml:"inserts"`
}

// Database configures the reporting connection.
type Database struct {
	// Driver selects the backend: sqlserver, postgres, mysql or sqlite.
	Driver string `json:"driver" yaml:"driver"`

	// DSN, when set, is passed to the driver verbatim and wins over
	// Server/Name.
	DSN string `json:"dsn" yaml:"dsn"`

	// Server and Name identify a SQL Server host and database. The connection
	// authenticates with the ambient operating-system identity.
	Server string `json:"server" yaml:"server"`
	Name   string `json:"database" yaml:"database"`
}

// Report configures the report generator.
type Report struct {
	// Output is the report file, overwritten on each run.
	Output string `json:"output" yaml:"output"`
}

// Inserts configures the insert-statement generator.
type Inserts struct {
	// Output is the SQL file, overwritten on each run.
	Output string `json:"output" yaml:"output"`

	// QuoteMode is QuoteRaw or QuoteEscape.
	QuoteMode string `json:"quote_mode" yaml:"quote_mode"`

	// Tables are processed in declaration order.
	Tables []TableSpec `json:"tables" yaml:"tables"`
}

// TableSpec binds a destination table to its source file and the ordered
// list of columns pulled from each source record.
type TableSpec struct {
	Table string `json:"table" yaml:"table"`
	Path  string `json:"path" yaml:"path"`

	// Format overrides extension-based detection (csv, tsv, xlsx, json,
	// yaml, xml).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	Columns []string `json:"columns" yaml:"columns"`

	// Options is interpreted by the format adapter, e.g. "comma" for csv,
	// "sheet" for xlsx, "record_path" for xml.
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Job: "ofods",
		Database: Database{
			Driver: "sqlserver",
			Server: "DESKTOP-ACSF2AH",
			Name:   "OFODS-Revised",
		},
		Report: Report{Output: "Report.txt"},
		Inserts: Inserts{
			Output:    "insert_data.sql",
			QuoteMode: QuoteRaw,
			Tables:    DefaultTables(),
		},
	}
}

// DefaultTables returns the seed table declarations in processing order.
func DefaultTables() []TableSpec {
	return []TableSpec{
		{Table: "Customers", Path: "customers.csv", Columns: []string{"Customer_ID", "First_Name", "Last_Name", "Email", "Address", "Zip_Code"}},
		{Table: "Restaurants", Path: "restaurants.json", Columns: []string{"Restaurant_ID", "Name", "Cuisine", "Location", "Rating"}},
		{Table: "Menu_Items", Path: "menu_items.csv", Columns: []string{"Menu_Item_ID", "Restaurant_ID", "Name", "Price", "Availability"}},
		{Table: "Orders", Path: "orders.csv", Columns: []string{"Order_ID", "Customer_ID", "Order_Date", "Order_Status", "Total_Cost"}},
		{
			Table:   "Payments",
			Path:    "payments.xml",
			Columns: []string{"Transaction_ID", "Order_ID", "Amount", "Payment_Method", "Status"},
			Options: Options{"record_path": "payments/payment"},
		},
		{Table: "Delivery_Personnel", Path: "delivery_personnel.csv", Columns: []string{"Delivery_ID", "Name", "Phone_Number", "Vehicle_Type"}},
		{Table: "Reviews_Ratings", Path: "reviews_ratings.csv", Columns: []string{"Review_ID", "Customer_ID", "Restaurant_ID", "Comments", "Rating"}},
	}
}

// Load reads a configuration file. An empty path yields Default. Fields the
// file leaves empty are filled from Default, except that a file declaring
// its own tables replaces the default table list entirely.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	applyDefaults(&c)
	return c, nil
}

func applyDefaults(c *Config) {
	d := Default()
	if c.Job == "" {
		c.Job = d.Job
	}
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Database.DSN == "" && c.Database.Driver == d.Database.Driver {
		if c.Database.Server == "" {
			c.Database.Server = d.Database.Server
		}
		if c.Database.Name == "" {
			c.Database.Name = d.Database.Name
		}
	}
	if c.Report.Output == "" {
		c.Report.Output = d.Report.Output
	}
	if c.Inserts.Output == "" {
		c.Inserts.Output = d.Inserts.Output
	}
	if c.Inserts.QuoteMode == "" {
		c.Inserts.QuoteMode = d.Inserts.QuoteMode
	}
	if len(c.Inserts.Tables) == 0 {
		c.Inserts.Tables = d.Inserts.Tables
	}
	for i := range c.Inserts.Tables {
		if c.Inserts.Tables[i].Options == nil {
			c.Inserts.Tables[i].Options = Options{}
		}
	}
}

// Environment variables consulted by ApplyEnv.
const (
	EnvDriver = "OFODS_DB_DRIVER"
	EnvDSN    = "OFODS_DB_DSN"
	EnvServer = "OFODS_DB_SERVER"
	EnvName   = "OFODS_DB_NAME"
)

// ApplyEnv overrides database settings from the environment. getenv is
// usually os.Getenv; tests pass a map lookup.
func ApplyEnv(c *Config, getenv func(string) string) {
	if v := getenv(EnvDriver); v != "" {
		c.Database.Driver = v
	}
	if v := getenv(EnvDSN); v != "" {
		c.Database.DSN = v
	}
	if v := getenv(EnvServer); v != "" {
		c.Database.Server = v
	}
	if v := getenv(EnvName); v != "" {
		c.Database.Name = v
	}
}

// Options is a small helper to fetch typed values from a free-form option
// map. It performs only minimal type coercion and returns the provided
// default when a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64
// and YAML integers as int; both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character settings such as a delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			if s == `\t` {
				return '\t'
			}
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON makes a missing or null "options" object decode to a
// non-nil, empty Options map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
