// Package all wires every built-in format adapter into the parser registry.
//
// Importing it (as a blank import) runs the init functions of each adapter,
// making these format names available to parser.New:
//
//   - "csv", "tsv" (ofods/internal/parser/csv)
//   - "xlsx"       (ofods/internal/parser/xlsx)
//   - "json"       (ofods/internal/parser/json)
//   - "yaml"       (ofods/internal/parser/yaml)
//   - "xml"        (ofods/internal/parser/xml)
package all

import (
	_ "ofods/internal/parser/csv"
	_ "ofods/internal/parser/json"
	_ "ofods/internal/parser/xlsx"
	_ "ofods/internal/parser/xml"
	_ "ofods/internal/parser/yaml"
)
