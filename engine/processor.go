package engine

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/history"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

// Processor is the DML entry point. It classifies raw query text,
// validates, dispatches and logs the attempt. Non-DML text exits
// immediately with WasDML=false: the caller must run it through
// ordinary query execution.
type Processor struct {
	pipeline *dml.Pipeline
	engine   *Engine
	history  HistoryLogger
}

// NewProcessor wires the pipeline, engine and history logger. The
// history logger may be nil.
func NewProcessor(pipeline *dml.Pipeline, engine *Engine, historyLogger HistoryLogger) *Processor {
	return &Processor{
		pipeline: pipeline,
		engine:   engine,
		history:  historyLogger,
	}
}

// ProcessQuery runs the classify, validate, execute, log sequence.
// Every stage converts its failures into the uniform result shape;
// callers never see a raw error from this subsystem.
func (p *Processor) ProcessQuery(ctx context.Context, raw string) ProcessResult {
	stmt, isDML, err := p.pipeline.Classify(raw)

	// Stage 1: not DML - hand back to ordinary query execution.
	if !isDML {
		telemetry.PassthroughTotal.Inc()
		return ProcessResult{
			ExecutionResult: ExecutionResult{Success: true, Metadata: map[string]any{}},
			WasDML:          false,
			Analysis:        Analysis{IsDML: false},
		}
	}

	// Stage 2: a DML keyword prefix matched but the body failed to parse.
	if err != nil {
		telemetry.ParseFailuresTotal.Inc()
		log.Debug().Err(err).Str("sql_prefix", truncateSQLForLog(raw, 80)).Msg("DML parse failed")
		res := failureResult(ErrorTypeParse, err.Error())
		res.Metadata = map[string]any{MetaErrorType: ErrorTypeParse}
		pr := ProcessResult{
			ExecutionResult: res,
			WasDML:          true,
			Analysis:        Analysis{IsDML: true, Error: err.Error()},
		}
		p.logAttempt(raw, pr)
		return pr
	}

	// Stage 3: structural validation. Errors accumulate; execution is
	// blocked entirely on the first invalid statement.
	validation := dml.Validate(stmt)
	if !validation.IsValid {
		telemetry.ValidationFailuresTotal.Inc()
		res := failureResult(ErrorTypeValidation, strings.Join(validation.Errors, "; "))
		res.DMLType = typeName(stmt.Code())
		pr := ProcessResult{
			ExecutionResult: res,
			WasDML:          true,
			Analysis:        Analysis{IsDML: true, Type: typeName(stmt.Code())},
		}
		p.logAttempt(raw, pr)
		return pr
	}

	// Stage 4: dispatch, then log the attempt unconditionally.
	res := p.engine.ExecuteDML(ctx, stmt)
	pr := ProcessResult{
		ExecutionResult: res,
		WasDML:          true,
		Analysis:        Analysis{IsDML: true, Type: typeName(stmt.Code())},
	}
	p.logAttempt(raw, pr)
	return pr
}

// logAttempt writes the history entry. History is best-effort
// telemetry: failures are logged and swallowed, never altering the
// primary result.
func (p *Processor) logAttempt(raw string, pr ProcessResult) {
	if p.history == nil {
		return
	}
	entry := history.Entry{
		Query:           raw,
		DMLType:         pr.DMLType,
		Success:         pr.Success,
		Preview:         metadataBool(pr.Metadata, MetaPreviewOnly),
		RecordCount:     recordCount(pr.Metadata),
		ExecutionTimeMS: pr.ExecutionTime,
		Error:           pr.Error,
		Message:         pr.Message,
		Timestamp:       time.Now().UTC(),
	}
	if err := p.history.LogAttempt(entry); err != nil {
		log.Warn().Err(err).Msg("Failed to write DML history entry")
	}
}

func metadataBool(meta map[string]any, key string) bool {
	if meta == nil {
		return false
	}
	b, _ := meta[key].(bool)
	return b
}

// recordCount extracts whichever affected-record count the handler
// reported.
func recordCount(meta map[string]any) int {
	for _, key := range []string{MetaRecordsToInsert, MetaRecordsToUpdate, MetaRecordsToDelete} {
		if n, ok := meta[key].(int); ok {
			return n
		}
	}
	return 0
}

// truncateSQLForLog returns first n chars of SQL for logging
func truncateSQLForLog(sql string, n int) string {
	if len(sql) <= n {
		return sql
	}
	return sql[:n] + "..."
}
