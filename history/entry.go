// Package history implements the best-effort attempt log for DML
// processing. Every processed statement, successful or not, is written
// to the configured sinks as a side effect; a sink failure never
// alters the primary result.
package history

import "time"

// Entry is one logged processing attempt.
type Entry struct {
	Query           string    `msgpack:"query" json:"query"`
	DMLType         string    `msgpack:"type" json:"dmlType"`
	Success         bool      `msgpack:"ok" json:"success"`
	Preview         bool      `msgpack:"preview" json:"preview"`
	RecordCount     int       `msgpack:"records" json:"recordCount"`
	ExecutionTimeMS int64     `msgpack:"elapsed_ms" json:"executionTime"`
	Error           string    `msgpack:"err" json:"error,omitempty"`
	Message         string    `msgpack:"msg" json:"message,omitempty"`
	Timestamp       time.Time `msgpack:"ts" json:"timestamp"`
}
