// Package source opens seed source files for the format adapters. It
// detects the format from the file name, removes a compression layer chosen
// by extension, and normalizes the text encoding of text formats.
package source

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format names understood by the parser registry.
const (
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
)

// Formats lists every supported format name.
var Formats = []string{FormatCSV, FormatTSV, FormatXLSX, FormatJSON, FormatYAML, FormatXML}

var extFormats = map[string]string{
	".csv":  FormatCSV,
	".tsv":  FormatTSV,
	".xlsx": FormatXLSX,
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".xml":  FormatXML,
}

// Compression identifies a compression layer by file extension.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGZ   Compression = ".gz"
	CompressionBZ2  Compression = ".bz2"
	CompressionXZ   Compression = ".xz"
	CompressionZSTD Compression = ".zst"
)

// DetectCompression returns the compression layer implied by path.
func DetectCompression(path string) Compression {
	switch Compression(strings.ToLower(filepath.Ext(path))) {
	case CompressionGZ:
		return CompressionGZ
	case CompressionBZ2:
		return CompressionBZ2
	case CompressionXZ:
		return CompressionXZ
	case CompressionZSTD:
		return CompressionZSTD
	}
	return CompressionNone
}

// DetectFormat returns the format implied by path, ignoring a trailing
// compression extension ("orders.csv.gz" is csv). It returns "" when the
// extension is not recognized.
func DetectFormat(path string) string {
	if c := DetectCompression(path); c != CompressionNone {
		path = path[:len(path)-len(c)]
	}
	return extFormats[strings.ToLower(filepath.Ext(path))]
}

// Open opens path and removes any compression layer. The returned
// ReadCloser closes both the decompressor and the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	var (
		r       io.Reader
		closeFn = func() error { return nil }
	)
	switch DetectCompression(path) {
	case CompressionGZ:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("source: gzip %s: %w", path, err)
		}
		r, closeFn = gz, gz.Close
	case CompressionBZ2:
		r = bzip2.NewReader(f)
	case CompressionXZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("source: xz %s: %w", path, err)
		}
		r = xr
	case CompressionZSTD:
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("source: zstd %s: %w", path, err)
		}
		r, closeFn = zr, func() error { zr.Close(); return nil }
	default:
		r = f
	}
	return &readCloser{Reader: r, closeInner: closeFn, file: f}, nil
}

type readCloser struct {
	io.Reader
	closeInner func() error
	file       *os.File
}

func (rc *readCloser) Close() error {
	ierr := rc.closeInner()
	ferr := rc.file.Close()
	if ierr != nil {
		return ierr
	}
	return ferr
}

// Text wraps r so a leading byte-order mark is consumed: a UTF-8 BOM is
// dropped and UTF-16 input (either endianness) is transcoded to UTF-8.
// Input without a BOM must be valid UTF-8; the first invalid byte fails the
// read with an *InvalidUTF8Error.
func Text(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(encoding.Nop.NewDecoder()),
		&utf8Checker{},
	))
}

// InvalidUTF8Error reports the offset of the first byte that is not part of
// a valid UTF-8 sequence. The offset counts bytes after any BOM.
type InvalidUTF8Error struct {
	Offset int64
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("source: invalid UTF-8 at byte offset %d", e.Offset)
}

// utf8Checker copies valid UTF-8 through and stops at the first invalid
// sequence.
type utf8Checker struct {
	off int64
}

func (c *utf8Checker) Reset() { c.off = 0 }

func (c *utf8Checker) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() { c.off += int64(nSrc) }()
	for nSrc < len(src) {
		b := src[nSrc]
		if b < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = b
			nDst++
			nSrc++
			continue
		}
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			return nDst, nSrc, &InvalidUTF8Error{Offset: c.off + int64(nSrc)}
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

// StripBOM is like Text but leaves input without a BOM untouched, for
// formats that declare their own encoding (XML).
func StripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))
}
