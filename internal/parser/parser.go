// Package parser defines the format adapter contract and a registry of
// adapters keyed by format name. Adapters register themselves from init;
// importing ofods/internal/parser/all enables every built-in format.
package parser

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"ofods/internal/config"
	"ofods/internal/record"
)

// Parser turns one source stream into records, in source order.
type Parser interface {
	Parse(r io.Reader) ([]record.Record, error)
}

// Factory builds a Parser from per-table options.
type Factory func(opt config.Options) (Parser, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a format name.
func Register(format string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[format] = f
}

// New builds the parser registered for format.
func New(format string, opt config.Options) (Parser, error) {
	mu.RLock()
	f, ok := factories[format]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("parser: no adapter registered for format %q", format)
	}
	if opt == nil {
		opt = config.Options{}
	}
	return f(opt)
}

// Registered returns the registered format names, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
