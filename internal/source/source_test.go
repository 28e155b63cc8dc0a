package source

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"customers.csv", FormatCSV},
		{"data/CUSTOMERS.CSV", FormatCSV},
		{"orders.tsv", FormatTSV},
		{"menu.xlsx", FormatXLSX},
		{"restaurants.json", FormatJSON},
		{"restaurants.yaml", FormatYAML},
		{"restaurants.yml", FormatYAML},
		{"payments.xml", FormatXML},
		{"orders.csv.gz", FormatCSV},
		{"payments.xml.zst", FormatXML},
		{"restaurants.json.xz", FormatJSON},
		{"notes.txt", ""},
		{"noext", ""},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFormat(tc.path))
		})
	}
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionGZ, DetectCompression("a.csv.gz"))
	assert.Equal(t, CompressionBZ2, DetectCompression("a.csv.bz2"))
	assert.Equal(t, CompressionXZ, DetectCompression("a.csv.xz"))
	assert.Equal(t, CompressionZSTD, DetectCompression("a.csv.ZST"))
	assert.Equal(t, CompressionNone, DetectCompression("a.csv"))
}

/*
TestOpen_Decompresses writes the same payload plain and under each writable
compression layer, and verifies Open yields the original bytes for all.
*/
func TestOpen_Decompresses(t *testing.T) {
	payload := []byte("Customer_ID,First_Name\n7,Ana\n")
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, data, 0o644))
		return p
	}

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	_, err = xw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	var zstBuf bytes.Buffer
	zw, err := zstd.NewWriter(&zstBuf)
	require.NoError(t, err)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	paths := []string{
		write("plain.csv", payload),
		write("c.csv.gz", gzBuf.Bytes()),
		write("c.csv.xz", xzBuf.Bytes()),
		write("c.csv.zst", zstBuf.Bytes()),
	}
	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			rc, err := Open(p)
			require.NoError(t, err)
			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, payload, got)
		})
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestText_StripsBOM(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"utf8_bom", append([]byte{0xEF, 0xBB, 0xBF}, "id,name"...)},
		{"no_bom", []byte("id,name")},
		{"utf16le_bom", []byte{0xFF, 0xFE, 'i', 0, 'd', 0, ',', 0, 'n', 0, 'a', 0, 'm', 0, 'e', 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := io.ReadAll(Text(bytes.NewReader(tc.in)))
			require.NoError(t, err)
			assert.Equal(t, "id,name", string(got))
		})
	}
}

func TestText_RejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		off  int64
	}{
		{"latin1", []byte("id,name\n7,Jos\xe9\n"), 13},
		{"after_bom", append([]byte{0xEF, 0xBB, 0xBF}, "ab\xff"...), 2},
		{"truncated_sequence", []byte("caf\xc3"), 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := io.ReadAll(Text(bytes.NewReader(tc.in)))
			require.Error(t, err)
			var ie *InvalidUTF8Error
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tc.off, ie.Offset)
		})
	}
}

func TestText_KeepsValidMultibyte(t *testing.T) {
	in := "José,Zoë,\uFFFD,日本"
	got, err := io.ReadAll(Text(bytes.NewReader([]byte(in))))
	require.NoError(t, err)
	assert.Equal(t, in, string(got))
}

func TestStripBOM_KeepsNonUTF8(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, 'a', 0xE9)
	got, err := io.ReadAll(StripBOM(bytes.NewReader(in)))
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0xE9}, got)
}
