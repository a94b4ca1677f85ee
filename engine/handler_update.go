package engine

import (
	"context"
	"fmt"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// executeUpdate resolves the WHERE condition to existing records
// through the host query engine, then applies the SET assignments to
// each match. Preview mode reports the match count without touching
// the update primitive.
func (e *Engine) executeUpdate(ctx context.Context, stmt *dml.Update) ExecutionResult {
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
				"setFields":  stmt.SetMap(),
			},
			Message: fmt.Sprintf("PREVIEW ONLY - NO RECORDS UPDATED. %d record(s) match. Append COMMIT to execute.", len(ids)),
			Metadata: map[string]any{
				MetaPreviewOnly:     true,
				MetaRecordsToUpdate: len(ids),
			},
		}
	}

	if e.records == nil {
		return failureResult(ErrorTypeExecution, "no record store attached - committed UPDATE is unavailable")
	}

	fields := stmt.SetMap()
	for i, id := range ids {
		if err := e.records.UpdateEntity(ctx, typeID, id, fields); err != nil {
			return failureResult(ErrorTypeExecution,
				fmt.Sprintf("updated %d of %d record(s) before error: %v", i, len(ids), err))
		}
	}

	return ExecutionResult{
		Success: true,
		Result: map[string]any{
			"recordType": typeID,
			"updatedIds": ids,
		},
		Message:  fmt.Sprintf("%d record(s) updated in %s", len(ids), typeID),
		Metadata: map[string]any{},
	}
}
