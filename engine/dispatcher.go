package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/WebSolutionsGroup/esqrt-sub001/common"
	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// ExecuteDML routes a validated statement to its handler and stamps
// the envelope: executionTime is measured from dispatch entry across
// every path, dmlType comes from the statement code, and no handler
// panic ever escapes - it is recovered into an EXECUTION_ERROR
// failure.
func (e *Engine) ExecuteDML(ctx context.Context, stmt dml.Statement) (res ExecutionResult) {
	start := time.Now()
	code := common.StatementUnknown
	if stmt != nil {
		code = stmt.Code()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("type", code.String()).Msg("DML handler panicked")
			res = failureResult(ErrorTypeExecution, fmt.Sprintf("handler panic: %v", r))
		}
		res = normalizeEnvelope(res)
		res.ExecutionTime = time.Since(start).Milliseconds()
		res.DMLType = typeName(code)
		if res.Metadata == nil {
			res.Metadata = map[string]any{}
		}

		status := "ok"
		if !res.Success {
			status = "error"
		}
		telemetry.StatementsTotal.With(code.String(), status).Inc()
		telemetry.ExecutionSeconds.With(code.String()).Observe(time.Since(start).Seconds())
	}()

	switch s := stmt.(type) {
	case *dml.CreateRecord:
		return e.executeCreateRecord(s)
	case *dml.CreateList:
		return e.executeCreateList(ctx, s)
	case *dml.Insert:
		return e.executeInsert(ctx, s)
	case *dml.Update:
		return e.executeUpdate(ctx, s)
	case *dml.Delete:
		return e.executeDelete(ctx, s)
	default:
		return failureResult(ErrorTypeUnsupported,
			fmt.Sprintf("no handler registered for statement type %T", stmt))
	}
}

// normalizeEnvelope enforces the envelope contract: a failed result
// carries an error and no payload, a successful one carries no error.
// A handler that breaks the contract is a defect surfaced as
// INVALID_OPERATION_RESULT rather than propagated.
func normalizeEnvelope(res ExecutionResult) ExecutionResult {
	if res.Success && res.Error != "" {
		return failureResult(ErrorTypeInvalidResult, "handler returned success with an error set")
	}
	if !res.Success && res.Result != nil {
		return failureResult(ErrorTypeInvalidResult, "handler returned failure with a result payload")
	}
	if !res.Success && res.Error == "" {
		return failureResult(ErrorTypeInvalidResult, "handler returned failure without an error")
	}
	return res
}
