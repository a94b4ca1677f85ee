package telemetry

// Histogram bucket definitions for different latency profiles
var (
	// ExecutionBuckets for DML statement execution (platform round trips)
	ExecutionBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

	// ParseBuckets for local classification and parsing
	ParseBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01}
)

// DML processing metrics
var (
	// StatementsTotal counts processed DML statements by (type, status)
	StatementsTotal CounterVec = noopCounterVec{}

	// PreviewsTotal counts preview-mode executions by statement type
	PreviewsTotal CounterVec = noopCounterVec{}

	// ParseFailuresTotal counts matched-prefix statements whose body failed to parse
	ParseFailuresTotal Counter = NoopStat{}

	// ValidationFailuresTotal counts statements rejected by the validator
	ValidationFailuresTotal Counter = NoopStat{}

	// PassthroughTotal counts non-DML inputs handed back to ordinary execution
	PassthroughTotal Counter = NoopStat{}

	// ExecutionSeconds observes handler wall-clock time by statement type
	ExecutionSeconds HistogramVec = noopHistogramVec{}
)

// Parse cache metrics
var (
	ParseCacheHits   Counter = NoopStat{}
	ParseCacheMisses Counter = NoopStat{}
)

// History metrics
var (
	// HistoryWritesTotal counts attempt-log writes by (sink, status)
	HistoryWritesTotal CounterVec = noopCounterVec{}
)

// initMetrics replaces the noop defaults with registered collectors.
func initMetrics() {
	StatementsTotal = NewCounterVec("statements_total",
		"Processed DML statements", []string{"type", "status"})
	PreviewsTotal = NewCounterVec("previews_total",
		"Preview-mode executions", []string{"type"})
	ParseFailuresTotal = NewCounter("parse_failures_total",
		"DML statements whose body failed to parse")
	ValidationFailuresTotal = NewCounter("validation_failures_total",
		"DML statements rejected by validation")
	PassthroughTotal = NewCounter("passthrough_total",
		"Non-DML inputs passed through to ordinary execution")
	ExecutionSeconds = NewHistogramVec("execution_seconds",
		"Handler execution time", []string{"type"}, ExecutionBuckets)
	ParseCacheHits = NewCounter("parse_cache_hits_total",
		"Classification cache hits")
	ParseCacheMisses = NewCounter("parse_cache_misses_total",
		"Classification cache misses")
	HistoryWritesTotal = NewCounterVec("history_writes_total",
		"History attempt-log writes", []string{"sink", "status"})
}
