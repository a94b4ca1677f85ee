// Package engine routes validated DML statements to their operation
// handlers and wraps every outcome in a uniform result envelope.
package engine

import (
	"github.com/WebSolutionsGroup/esqrt-sub001/common"
)

// Metadata keys used in ExecutionResult.Metadata.
const (
	MetaPreviewOnly     = "isPreviewOnly"
	MetaRecordsToInsert = "recordsToInsert"
	MetaRecordsToUpdate = "recordsToUpdate"
	MetaRecordsToDelete = "recordsToDelete"
	MetaErrorType       = "errorType"
)

// Error type values carried in metadata.
const (
	ErrorTypeUnsupported   = "UNSUPPORTED_DML_OPERATION"
	ErrorTypeInvalidResult = "INVALID_OPERATION_RESULT"
	ErrorTypeExecution     = "EXECUTION_ERROR"
	ErrorTypeValidation    = "VALIDATION_ERROR"
	ErrorTypeParse         = "PARSE_ERROR"
)

// ExecutionResult is the uniform envelope returned by every operation
// handler and by the dispatcher. Success=false implies Result=nil;
// ExecutionTime is always stamped by the dispatcher, failure paths
// included.
type ExecutionResult struct {
	Success       bool           `json:"success"`
	Result        any            `json:"result"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime int64          `json:"executionTime"` // milliseconds
	Message       string         `json:"message,omitempty"`
	DMLType       string         `json:"dmlType,omitempty"`
	Metadata      map[string]any `json:"metadata"`
}

// failureResult builds a failed envelope with its error type stamped
// into metadata.
func failureResult(errType, msg string) ExecutionResult {
	return ExecutionResult{
		Success:  false,
		Error:    msg,
		Metadata: map[string]any{MetaErrorType: errType},
	}
}

// Analysis reports what the classifier decided about the input.
type Analysis struct {
	IsDML bool   `json:"isDML"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`
}

// ProcessResult is the Processor's output. When WasDML is false the
// caller must run the text through ordinary query execution; the
// Processor performed no DML side effects.
type ProcessResult struct {
	ExecutionResult
	WasDML   bool     `json:"wasDML"`
	Analysis Analysis `json:"analysis"`
}

// typeName renders a StatementCode for the DMLType field, empty for
// non-DML codes.
func typeName(code common.StatementCode) string {
	if !code.IsDML() {
		return ""
	}
	return code.String()
}
