// Package json implements the structured-text adapter for JSON documents.
//
// The expected document is a top-level array of objects, one per record:
//
//	[{"Restaurant_ID": 1, "Name": "Taj"}, {"Restaurant_ID": 2, "Name": "Nori"}]
//
// A single top-level object is accepted as one record. Numbers are kept as
// json.Number so their source spelling survives the coercion to text.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ofods/internal/config"
	"ofods/internal/parser"
	"ofods/internal/record"
	"ofods/internal/source"
)

func init() {
	parser.Register(source.FormatJSON, func(config.Options) (parser.Parser, error) {
		return Parser{}, nil
	})
}

// Parser is the JSON adapter. It has no options.
type Parser struct{}

// Parse decodes the whole document and returns its records in array order.
// Trailing data after the root value is an error.
func (Parser) Parse(r io.Reader) ([]record.Record, error) {
	return DecodeAll(source.Text(r))
}

// DecodeAll reads one JSON root value from r and expands it into records.
func DecodeAll(r io.Reader) ([]record.Record, error) {
	d := json.NewDecoder(r)
	d.UseNumber()

	var root any
	if err := d.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("json parser: decode root: %w", err)
	}
	var extra any
	if err := d.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json parser: unexpected data after root value")
	}

	switch v := root.(type) {
	case map[string]any:
		return []record.Record{record.Record(v)}, nil
	case []any:
		out := make([]record.Record, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("json parser: element %d in array is not an object", i)
			}
			out = append(out, record.Record(obj))
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("json parser: unsupported top-level JSON type %T", v)
	}
}
