package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
)

func newTestProcessor(t *testing.T, queries QueryEngine, records RecordStore, hist HistoryLogger) *Processor {
	t.Helper()
	pipeline, err := dml.NewPipeline(0, dml.ParserOptions{})
	require.NoError(t, err)
	return NewProcessor(pipeline, newTestEngine(queries, records, Options{}), hist)
}

func TestProcessQueryPassthrough(t *testing.T) {
	hist := &mockHistory{}
	p := newTestProcessor(t, nil, nil, hist)

	res := p.ProcessQuery(context.Background(), "SELECT * FROM customer")

	assert.False(t, res.WasDML)
	assert.True(t, res.Success)
	assert.False(t, res.Analysis.IsDML)
	assert.Empty(t, hist.entries, "passthrough is not a DML attempt")
}

func TestProcessQueryParseError(t *testing.T) {
	hist := &mockHistory{}
	p := newTestProcessor(t, nil, nil, hist)

	res := p.ProcessQuery(context.Background(), "INSERT INTO customer (a, b) VALUES (1)")

	assert.True(t, res.WasDML)
	assert.False(t, res.Success)
	assert.Equal(t, ErrorTypeParse, res.Metadata[MetaErrorType])
	assert.True(t, res.Analysis.IsDML)
	assert.NotEmpty(t, res.Analysis.Error)

	require.Len(t, hist.entries, 1, "failed parses are still logged")
	assert.False(t, hist.entries[0].Success)
	assert.Equal(t, "INSERT INTO customer (a, b) VALUES (1)", hist.entries[0].Query)
}

func TestProcessQueryValidationFailure(t *testing.T) {
	hist := &mockHistory{}
	records := &mockRecordStore{}
	p := newTestProcessor(t, nil, records, hist)

	res := p.ProcessQuery(context.Background(), "UPDATE customer SET x = 1 COMMIT")

	assert.True(t, res.WasDML)
	require.False(t, res.Success)
	assert.Equal(t, ErrorTypeValidation, res.Metadata[MetaErrorType])
	assert.Contains(t, res.Error, "WHERE condition is required for UPDATE statements")
	assert.Equal(t, "UPDATE", res.DMLType)
	assert.Equal(t, 0, records.mutations(), "invalid statements never execute")

	require.Len(t, hist.entries, 1)
	assert.Equal(t, "UPDATE", hist.entries[0].DMLType)
}

func TestProcessQueryValidationJoinsAllErrors(t *testing.T) {
	p := newTestProcessor(t, nil, nil, nil)

	res := p.ProcessQuery(context.Background(), "CREATE RECORD t (dept LIST, dept LIST)")

	require.False(t, res.Success)
	assert.Contains(t, res.Error, `duplicate field name "dept"`)
	assert.Contains(t, res.Error, "requires a list reference")
	assert.Contains(t, res.Error, "; ", "accumulated errors are joined")
}

func TestProcessQueryExecutesAndLogs(t *testing.T) {
	hist := &mockHistory{}
	p := newTestProcessor(t, nil, &mockRecordStore{}, hist)

	res := p.ProcessQuery(context.Background(), "INSERT INTO customer SET companyname = 'Acme'")

	assert.True(t, res.WasDML)
	require.True(t, res.Success)
	assert.Equal(t, "INSERT", res.Analysis.Type)

	require.Len(t, hist.entries, 1)
	entry := hist.entries[0]
	assert.True(t, entry.Success)
	assert.True(t, entry.Preview, "preview flag comes from result metadata")
	assert.Equal(t, 1, entry.RecordCount)
	assert.Equal(t, "INSERT", entry.DMLType)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestProcessQueryHistoryFailureDoesNotAlterResult(t *testing.T) {
	failing := &mockHistory{err: errors.New("sink unavailable")}
	working := &mockHistory{}

	pFailing := newTestProcessor(t, nil, &mockRecordStore{}, failing)
	pWorking := newTestProcessor(t, nil, &mockRecordStore{}, working)

	raw := "INSERT INTO customer SET companyname = 'Acme' COMMIT"
	got := pFailing.ProcessQuery(context.Background(), raw)
	want := pWorking.ProcessQuery(context.Background(), raw)

	require.Len(t, failing.entries, 1, "the attempt was made")
	got.ExecutionTime = 0
	want.ExecutionTime = 0
	assert.Equal(t, want, got, "history failure must be invisible to the caller")
}

func TestProcessQueryNilHistoryLogger(t *testing.T) {
	p := newTestProcessor(t, nil, nil, nil)

	res := p.ProcessQuery(context.Background(), "INSERT INTO customer SET a = 1")
	assert.True(t, res.Success)
}

func TestProcessQueryCommitRoundTrip(t *testing.T) {
	queries := &mockQueryEngine{rows: idRows("5")}
	records := &mockRecordStore{}
	hist := &mockHistory{}
	p := NewProcessor(
		mustPipeline(t),
		newTestEngine(queries, records, Options{}),
		hist,
	)

	preview := p.ProcessQuery(context.Background(), "DELETE FROM customer WHERE id = 5")
	require.True(t, preview.Success)
	assert.Equal(t, 0, records.mutations())

	commit := p.ProcessQuery(context.Background(), "DELETE FROM customer WHERE id = 5 COMMIT")
	require.True(t, commit.Success, "error: %s", commit.Error)
	assert.Equal(t, []string{"customer/5"}, records.deleted)

	require.Len(t, hist.entries, 2)
	assert.True(t, hist.entries[0].Preview)
	assert.False(t, hist.entries[1].Preview)
}

func mustPipeline(t *testing.T) *dml.Pipeline {
	t.Helper()
	pipeline, err := dml.NewPipeline(16, dml.ParserOptions{})
	require.NoError(t, err)
	return pipeline
}
