package engine

import (
	"context"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/history"
)

// QueryEngine is the host platform's read-side query surface. UPDATE
// and DELETE use it to resolve WHERE-matched records before touching
// the mutation primitives.
type QueryEngine interface {
	// RunQuery executes a read statement with positional parameters
	// and returns the result rows as column-name keyed maps.
	RunQuery(ctx context.Context, sql string, params []any) ([]map[string]any, error)
}

// RecordStore is the host platform's record-mutation surface. Calls
// are blocking and synchronous; failures surface as-is in the
// ExecutionResult error.
type RecordStore interface {
	// CreateEntity creates one record of the given type and returns
	// its platform identifier.
	CreateEntity(ctx context.Context, typeID string, fields map[string]any) (string, error)
	// UpdateEntity applies field values to an existing record.
	UpdateEntity(ctx context.Context, typeID, id string, fields map[string]any) error
	// DeleteEntity removes an existing record.
	DeleteEntity(ctx context.Context, typeID, id string) error
	// CreateEnumeration creates a custom list and returns its script ID.
	CreateEnumeration(ctx context.Context, id string, options dml.ListOptions) (string, error)
}

// HistoryLogger records processing attempts. Best effort: the
// Processor swallows its errors.
type HistoryLogger interface {
	LogAttempt(entry history.Entry) error
}
