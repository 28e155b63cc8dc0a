package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofods/internal/config"
	_ "ofods/internal/parser/all"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestProbe_CSV(t *testing.T) {
	p := write(t, "customers.csv", "Customer_ID,First_Name\n7,Ana\n8,Ben\n")

	rep, err := Probe(config.TableSpec{Path: p, Columns: []string{"Customer_ID", "Email"}})
	require.NoError(t, err)
	assert.Equal(t, "csv", rep.Format)
	assert.Equal(t, 2, rep.Records)
	assert.Equal(t, []string{"Customer_ID", "First_Name"}, rep.Columns)
	assert.Equal(t, map[string]int{"Email": 2}, rep.Missing)
}

func TestProbe_JSONUnevenRecords(t *testing.T) {
	p := write(t, "restaurants.json", `[{"Restaurant_ID": 1, "Name": "A"}, {"Restaurant_ID": 2, "Rating": 4.5}]`)

	rep, err := Probe(config.TableSpec{Path: p, Columns: []string{"Name"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Restaurant_ID", "Rating"}, rep.Columns)
	assert.Equal(t, map[string]int{"Name": 1}, rep.Missing)
}

/*
TestProbe_XMLDiscoversRecordPath verifies the repeated element is found
without a configured record_path and offered in the starter declaration.
*/
func TestProbe_XMLDiscoversRecordPath(t *testing.T) {
	p := write(t, "payments.xml", `<payments>
  <meta><exported>2024-01-01</exported></meta>
  <payment><Transaction_ID>1</Transaction_ID><Amount>5.50</Amount></payment>
  <payment><Transaction_ID>2</Transaction_ID><Amount>3.50</Amount></payment>
</payments>`)

	rep, err := Probe(config.TableSpec{Path: p})
	require.NoError(t, err)
	assert.Equal(t, []string{"payments/payment"}, rep.RecordPaths)
	assert.Equal(t, "payments/payment", rep.RecordPath)
	assert.Equal(t, 2, rep.Records)
	assert.Equal(t, []string{"Amount", "Transaction_ID"}, rep.Columns)

	ts := rep.TableSpec("Payments")
	assert.Equal(t, "Payments", ts.Table)
	assert.Empty(t, ts.Format)
	assert.Equal(t, "payments/payment", ts.Options.String("record_path", ""))
	assert.Empty(t, config.ValidateInserts(config.Inserts{
		Output:    "out.sql",
		QuoteMode: config.QuoteEscape,
		Tables:    []config.TableSpec{ts},
	}))
}

func TestRecordPaths(t *testing.T) {
	tests := []struct {
		name string
		tree map[string]any
		want []string
	}{
		{
			name: "nested lists shallowest first",
			tree: map[string]any{"root": map[string]any{
				"b": map[string]any{"item": []any{map[string]any{"x": "1"}, map[string]any{"x": "2"}}},
				"a": []any{map[string]any{"y": "1"}, map[string]any{"y": "2"}},
			}},
			want: []string{"root/a", "root/b/item"},
		},
		{
			name: "single record falls back to leaf elements",
			tree: map[string]any{"payments": map[string]any{"payment": map[string]any{"Amount": "1"}}},
			want: []string{"payments/payment"},
		},
		{
			name: "list of text is not a record list",
			tree: map[string]any{"tags": map[string]any{"tag": []any{"a", "b"}}},
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RecordPaths(tc.tree))
		})
	}
}

func TestProbe_Errors(t *testing.T) {
	_, err := Probe(config.TableSpec{Path: write(t, "notes.txt", "x")})
	require.Error(t, err)

	_, err = Probe(config.TableSpec{Path: write(t, "flat.xml", "<a>text</a>")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set record_path")
}
