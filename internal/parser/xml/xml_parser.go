// Package xmlparser implements the markup adapter. The document is first
// converted into a nested map/list tree (see DecodeTree) and records are then
// found by descending a configured element path, e.g. "payments/payment"
// for:
//
//	<payments>
//	  <payment><Transaction_ID>1</Transaction_ID>...</payment>
//	  <payment>...</payment>
//	</payments>
package xmlparser

import (
	"fmt"
	"io"
	"strings"

	"ofods/internal/config"
	"ofods/internal/parser"
	"ofods/internal/record"
	"ofods/internal/source"
)

// Options configures the markup adapter.
type Options struct {
	// RecordPath names the elements from the root down to the repeated
	// record element.
	RecordPath []string
}

// FromConfigOptions reads "record_path" (slash separated).
func FromConfigOptions(o config.Options) (Options, error) {
	raw := strings.Trim(o.String("record_path", ""), "/")
	if raw == "" {
		return Options{}, fmt.Errorf("xml parser: record_path is required")
	}
	return Options{RecordPath: strings.Split(raw, "/")}, nil
}

func init() {
	parser.Register(source.FormatXML, func(o config.Options) (parser.Parser, error) {
		opt, err := FromConfigOptions(o)
		if err != nil {
			return nil, err
		}
		return NewParser(opt), nil
	})
}

// Parser is the markup adapter.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse decodes the document and returns the records found at RecordPath.
// A record element that occurs once yields one record; an empty container
// yields none.
func (p *Parser) Parse(r io.Reader) ([]record.Record, error) {
	tree, err := DecodeTree(source.StripBOM(r))
	if err != nil {
		return nil, err
	}
	return Descend(tree, p.opt.RecordPath)
}

// Descend walks path through tree and returns the record maps found at its
// end.
func Descend(tree map[string]any, path []string) ([]record.Record, error) {
	var cur any = tree
	for i, seg := range path {
		if cur == nil {
			return nil, nil
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("xml parser: %s is not an element container (got %T)", strings.Join(path[:i], "/"), cur)
		}
		cur, ok = m[seg]
		if !ok {
			return nil, fmt.Errorf("xml parser: element %q not found under %q", seg, "/"+strings.Join(path[:i], "/"))
		}
	}

	switch v := cur.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []record.Record{record.Record(v)}, nil
	case []any:
		out := make([]record.Record, 0, len(v))
		for i, elem := range v {
			switch e := elem.(type) {
			case map[string]any:
				out = append(out, record.Record(e))
			case nil:
				out = append(out, record.Record{})
			default:
				return nil, fmt.Errorf("xml parser: %s[%d] has no child elements", strings.Join(path, "/"), i)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("xml parser: %s has no child elements", strings.Join(path, "/"))
	}
}
