package engine

import (
	"fmt"

	"github.com/gobwas/glob"
)

// TableGuard restricts which tables mutating statements may target,
// using glob patterns from configuration. An empty pattern list allows
// everything.
type TableGuard struct {
	globs []glob.Glob
}

// NewTableGuard compiles the allowed-table patterns.
func NewTableGuard(patterns []string) (*TableGuard, error) {
	g := &TableGuard{
		globs: make([]glob.Glob, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid table pattern %q: %w", pattern, err)
		}
		g.globs = append(g.globs, compiled)
	}
	return g, nil
}

// Allowed reports whether mutations may target the table.
func (g *TableGuard) Allowed(table string) bool {
	if g == nil || len(g.globs) == 0 {
		return true
	}
	for _, compiled := range g.globs {
		if compiled.Match(table) {
			return true
		}
	}
	return false
}
