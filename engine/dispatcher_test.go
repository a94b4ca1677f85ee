package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebSolutionsGroup/esqrt-sub001/common"
	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
)

// unroutableStatement satisfies dml.Statement but matches no dispatch
// case.
type unroutableStatement struct{}

func (unroutableStatement) Code() common.StatementCode { return common.StatementUnknown }
func (unroutableStatement) Table() string              { return "" }

func TestExecuteDMLUnsupportedType(t *testing.T) {
	e := newTestEngine(nil, nil, Options{})

	res := e.ExecuteDML(context.Background(), unroutableStatement{})

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, ErrorTypeUnsupported, res.Metadata[MetaErrorType])
	assert.Empty(t, res.DMLType)
}

func TestExecuteDMLNilStatement(t *testing.T) {
	e := newTestEngine(nil, nil, Options{})

	res := e.ExecuteDML(context.Background(), nil)

	assert.False(t, res.Success)
	assert.Equal(t, ErrorTypeUnsupported, res.Metadata[MetaErrorType])
}

func TestExecuteDMLRecoversHandlerPanic(t *testing.T) {
	queries := &mockQueryEngine{panicWith: "boom"}
	e := newTestEngine(queries, nil, Options{})

	res := e.ExecuteDML(context.Background(), mustParse(`UPDATE customer SET x = 1 WHERE id = 1`))

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "handler panic")
	assert.Contains(t, res.Error, "boom")
	assert.Equal(t, ErrorTypeExecution, res.Metadata[MetaErrorType])
}

func TestExecuteDMLStampsEnvelope(t *testing.T) {
	e := newTestEngine(nil, nil, Options{})

	tests := []struct {
		name    string
		stmt    dml.Statement
		dmlType string
	}{
		{"create record", mustParse(`CREATE RECORD gear (slot FREEFORMTEXT)`), "CREATE_RECORD"},
		{"create list", mustParse(`CREATE LIST l (values [value "High"])`), "CREATE_LIST"},
		{"insert preview", mustParse(`INSERT INTO customer SET a = 1`), "INSERT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.ExecuteDML(context.Background(), tt.stmt)

			assert.Equal(t, tt.dmlType, res.DMLType)
			assert.NotNil(t, res.Metadata, "metadata must never be nil")
			assert.GreaterOrEqual(t, res.ExecutionTime, int64(0))
			if res.Success {
				assert.Empty(t, res.Error)
			} else {
				assert.NotEmpty(t, res.Error)
				assert.Nil(t, res.Result)
			}
		})
	}
}

func TestExecuteDMLStampsTypeOnFailures(t *testing.T) {
	// Failure paths carry the same envelope fields as successes.
	e := newTestEngine(nil, nil, Options{})

	res := e.ExecuteDML(context.Background(), mustParse(`INSERT INTO nonsense_table SET a = 1`))

	require.False(t, res.Success)
	assert.Equal(t, "INSERT", res.DMLType)
	assert.NotNil(t, res.Metadata)
}

func TestNormalizeEnvelope(t *testing.T) {
	tests := []struct {
		name string
		in   ExecutionResult
		ok   bool
	}{
		{"valid success", ExecutionResult{Success: true, Result: "x"}, true},
		{"valid failure", ExecutionResult{Success: false, Error: "broke"}, true},
		{"success with error", ExecutionResult{Success: true, Error: "broke"}, false},
		{"failure with payload", ExecutionResult{Success: false, Error: "broke", Result: "x"}, false},
		{"failure without error", ExecutionResult{Success: false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalizeEnvelope(tt.in)
			if tt.ok {
				assert.Equal(t, tt.in, out)
				return
			}
			assert.False(t, out.Success)
			assert.Equal(t, ErrorTypeInvalidResult, out.Metadata[MetaErrorType])
			assert.Nil(t, out.Result)
			assert.NotEmpty(t, out.Error)
		})
	}
}
