package engine

import (
	"context"
	"fmt"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// executeDelete resolves the WHERE condition to existing records and
// deletes each match. Same preview contract as INSERT and UPDATE.
func (e *Engine) executeDelete(ctx context.Context, stmt *dml.Delete) ExecutionResult {
	if !e.guard.Allowed(stmt.TableName) {
		return failureResult(ErrorTypeExecution,
			fmt.Sprintf("table %q is not permitted by allowed_tables", stmt.TableName))
	}
	typeID, err := resolveRecordType(stmt.TableName)
	if err != nil {
		return failureResult(ErrorTypeExecution, err.Error())
	}

	ids, err := e.resolveTargets(ctx, stmt.TableName, stmt.Where)
	if err != nil {
		return failureResult(ErrorTypeExecution, err.Error())
	}

	if !stmt.Commit {
		telemetry.PreviewsTotal.With(stmt.Code().String()).Inc()
		return ExecutionResult{
			Success: true,
			Result: map[string]any{
				"recordType": typeID,
				"matchedIds": ids,
			},
			Message: fmt.Sprintf("PREVIEW ONLY - NO RECORDS DELETED. %d record(s) match. Append COMMIT to execute.", len(ids)),
			Metadata: map[string]any{
				MetaPreviewOnly:     true,
				MetaRecordsToDelete: len(ids),
			},
		}
	}

	if e.records == nil {
		return failureResult(ErrorTypeExecution, "no record store attached - committed DELETE is unavailable")
	}

	for i, id := range ids {
		if err := e.records.DeleteEntity(ctx, typeID, id); err != nil {
			return failureResult(ErrorTypeExecution,
				fmt.Sprintf("deleted %d of %d record(s) before error: %v", i, len(ids), err))
		}
	}

	return ExecutionResult{
		Success: true,
		Result: map[string]any{
			"recordType": typeID,
			"deletedIds": ids,
		},
		Message:  fmt.Sprintf("%d record(s) deleted from %s", len(ids), typeID),
		Metadata: map[string]any{},
	}
}
