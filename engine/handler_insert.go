package engine

import (
	"context"
	"fmt"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// executeInsert maps the statement to a platform record type and
// either previews or performs the insert. Without a trailing COMMIT
// marker the create primitive is never invoked.
func (e *Engine) executeInsert(ctx context.Context, stmt *dml.Insert) ExecutionResult {
	if !e.guard.Allowed(stmt.TableName) {
		return failureResult(ErrorTypeExecution,
			fmt.Sprintf("table %q is not permitted by allowed_tables", stmt.TableName))
	}
	typeID, err := resolveRecordType(stmt.TableName)
	if err != nil {
		return failureResult(ErrorTypeExecution, err.Error())
	}

	fields := stmt.FieldMap()

	if !stmt.Commit {
		telemetry.PreviewsTotal.With(stmt.Code().String()).Inc()
		return ExecutionResult{
			Success: true,
			Result: map[string]any{
				"recordType": typeID,
				"fields":     fields,
			},
			Message: "PREVIEW ONLY - NO RECORDS INSERTED. Append COMMIT to execute.",
			Metadata: map[string]any{
				MetaPreviewOnly:     true,
				MetaRecordsToInsert: 1,
			},
		}
	}

	if e.records == nil {
		return failureResult(ErrorTypeExecution, "no record store attached - committed INSERT is unavailable")
	}

	id, err := e.records.CreateEntity(ctx, typeID, fields)
	if err != nil {
		return failureResult(ErrorTypeExecution, fmt.Sprintf("failed to insert record: %v", err))
	}

	return ExecutionResult{
		Success: true,
		Result: map[string]any{
			"recordType": typeID,
			"id":         id,
		},
		Message:  fmt.Sprintf("1 record inserted into %s (id %s)", typeID, id),
		Metadata: map[string]any{},
	}
}
