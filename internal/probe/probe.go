// Package probe inspects a seed source before it is declared in the
// configuration: which format it is, how many records it holds, which
// columns those records carry and, for markup, which element paths look
// like repeated records.
//
// The output feeds a starter TableSpec the same way the config validator
// consumes one, so a probed source can be pasted into the inserts.tables
// list.
package probe

import (
	"fmt"
	"sort"
	"strings"

	"ofods/internal/config"
	"ofods/internal/parser"
	xmlparser "ofods/internal/parser/xml"
	"ofods/internal/record"
	"ofods/internal/source"
)

// Report is what Probe learned about one source.
type Report struct {
	Path    string `json:"path"`
	Format  string `json:"format"`
	Records int    `json:"records"`

	// Columns lists record keys in the order records introduce them; keys
	// new in the same record are sorted.
	Columns []string `json:"columns"`

	// Missing counts, per declared column, the records that lack it.
	// Only columns missing from at least one record are listed.
	Missing map[string]int `json:"missing,omitempty"`

	// RecordPath is the path the records were read from and RecordPaths
	// every candidate found (markup only).
	RecordPath  string   `json:"record_path,omitempty"`
	RecordPaths []string `json:"record_paths,omitempty"`
}

// Probe reads spec.Path with the adapter for its format. For markup without
// a record_path option, the first discovered candidate path is used.
func Probe(spec config.TableSpec) (Report, error) {
	rep := Report{Path: spec.Path, Format: spec.Format}
	if rep.Format == "" {
		rep.Format = source.DetectFormat(spec.Path)
	}
	if rep.Format == "" {
		return rep, fmt.Errorf("probe: %s: cannot detect format from file name", spec.Path)
	}

	var (
		recs []record.Record
		err  error
	)
	if rep.Format == source.FormatXML {
		recs, err = probeXML(spec, &rep)
	} else {
		recs, err = parse(spec, rep.Format)
	}
	if err != nil {
		return rep, fmt.Errorf("probe: %s: %w", spec.Path, err)
	}

	rep.Records = len(recs)
	rep.Columns = columns(recs)
	rep.Missing = missing(recs, spec.Columns)
	return rep, nil
}

func parse(spec config.TableSpec, format string) ([]record.Record, error) {
	p, err := parser.New(format, spec.Options)
	if err != nil {
		return nil, err
	}
	rc, err := source.Open(spec.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return p.Parse(rc)
}

func probeXML(spec config.TableSpec, rep *Report) ([]record.Record, error) {
	rc, err := source.Open(spec.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	tree, err := xmlparser.DecodeTree(source.StripBOM(rc))
	if err != nil {
		return nil, err
	}
	rep.RecordPaths = RecordPaths(tree)

	path := strings.Trim(spec.Options.String("record_path", ""), "/")
	if path == "" {
		if len(rep.RecordPaths) == 0 {
			return nil, fmt.Errorf("no repeated record element found; set record_path")
		}
		path = rep.RecordPaths[0]
	}
	rep.RecordPath = path
	return xmlparser.Descend(tree, strings.Split(path, "/"))
}

// RecordPaths returns candidate record paths in a decoded markup tree:
// element paths whose value is a list of elements, shallowest first. When
// nothing repeats, elements holding only text children are offered instead.
func RecordPaths(tree map[string]any) []string {
	var lists, leaves []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := k
			if prefix != "" {
				p = prefix + "/" + k
			}
			switch v := m[k].(type) {
			case []any:
				if hasElement(v) {
					lists = append(lists, p)
				}
			case map[string]any:
				if prefix != "" && flat(v) {
					leaves = append(leaves, p)
					continue
				}
				walk(p, v)
			}
		}
	}
	walk("", tree)

	byDepth := func(paths []string) {
		sort.SliceStable(paths, func(i, j int) bool {
			return strings.Count(paths[i], "/") < strings.Count(paths[j], "/")
		})
	}
	if len(lists) > 0 {
		byDepth(lists)
		return lists
	}
	byDepth(leaves)
	return leaves
}

func hasElement(list []any) bool {
	for _, v := range list {
		if _, ok := v.(map[string]any); ok {
			return true
		}
	}
	return false
}

// flat reports whether every child of m is text.
func flat(m map[string]any) bool {
	for _, v := range m {
		switch v.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func columns(recs []record.Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range recs {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		// map order is random; new keys within one record are sorted
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

func missing(recs []record.Record, declared []string) map[string]int {
	var out map[string]int
	for _, col := range declared {
		n := 0
		for _, r := range recs {
			if _, ok := r[col]; !ok {
				n++
			}
		}
		if n > 0 {
			if out == nil {
				out = map[string]int{}
			}
			out[col] = n
		}
	}
	return out
}

// TableSpec returns a starter declaration for table using every probed
// column.
func (r Report) TableSpec(table string) config.TableSpec {
	ts := config.TableSpec{
		Table:   table,
		Path:    r.Path,
		Columns: append([]string(nil), r.Columns...),
		Options: config.Options{},
	}
	if source.DetectFormat(r.Path) != r.Format {
		ts.Format = r.Format
	}
	if r.RecordPath != "" {
		ts.Options["record_path"] = r.RecordPath
	}
	return ts
}
