// Package yaml implements the structured-text adapter for YAML documents:
// a top-level sequence of mappings, one per record.
package yaml

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ofods/internal/config"
	"ofods/internal/parser"
	"ofods/internal/record"
	"ofods/internal/source"
)

func init() {
	parser.Register(source.FormatYAML, func(config.Options) (parser.Parser, error) {
		return Parser{}, nil
	})
}

// Parser is the YAML adapter. It has no options.
type Parser struct{}

// Parse decodes the first document of r. A single mapping is one record.
func (Parser) Parse(r io.Reader) ([]record.Record, error) {
	var root any
	if err := yaml.NewDecoder(source.Text(r)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml parser: decode: %w", err)
	}

	switch v := root.(type) {
	case map[string]any:
		return []record.Record{record.Record(v)}, nil
	case []any:
		out := make([]record.Record, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("yaml parser: item %d is not a mapping", i)
			}
			out = append(out, record.Record(obj))
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("yaml parser: unsupported top-level type %T", v)
	}
}
