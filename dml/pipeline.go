package dml

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// classification is a cached Classify outcome. Statements are
// immutable after parsing, so sharing one parse across requests is
// safe; execution timing is always measured per request.
type classification struct {
	stmt  Statement
	isDML bool
	err   error
}

// Pipeline wraps a Parser with an LRU cache keyed by XXH64 of the raw
// text. Classification is pure, so hits skip lexing entirely.
type Pipeline struct {
	parser *Parser
	cache  *lru.Cache[uint64, classification]
}

// NewPipeline creates a classification pipeline. A cacheSize of zero
// or less disables caching.
func NewPipeline(cacheSize int, opts ParserOptions) (*Pipeline, error) {
	p := &Pipeline{parser: NewParser(opts)}
	if cacheSize > 0 {
		cache, err := lru.New[uint64, classification](cacheSize)
		if err != nil {
			return nil, err
		}
		p.cache = cache
	}
	return p, nil
}

// Classify classifies and parses raw query text, consulting the cache
// first. Semantics match Parser.Classify.
func (p *Pipeline) Classify(raw string) (Statement, bool, error) {
	if p.cache == nil {
		return p.parser.Classify(raw)
	}

	key := xxhash.Sum64String(raw)
	if hit, ok := p.cache.Get(key); ok {
		telemetry.ParseCacheHits.Inc()
		return hit.stmt, hit.isDML, hit.err
	}
	telemetry.ParseCacheMisses.Inc()

	stmt, isDML, err := p.parser.Classify(raw)
	p.cache.Add(key, classification{stmt: stmt, isDML: isDML, err: err})
	return stmt, isDML, err
}
