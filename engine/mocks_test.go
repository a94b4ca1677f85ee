package engine

import (
	"context"
	"fmt"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/history"
)

// mockQueryEngine returns canned rows and records every query it ran.
type mockQueryEngine struct {
	rows      []map[string]any
	err       error
	panicWith any

	calls    int
	lastSQL  string
	lastArgs []any
}

func (m *mockQueryEngine) RunQuery(_ context.Context, sql string, params []any) ([]map[string]any, error) {
	m.calls++
	m.lastSQL = sql
	m.lastArgs = params
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	return m.rows, m.err
}

// mockRecordStore counts mutation calls so tests can assert that
// previews never touch the platform.
type mockRecordStore struct {
	createErr error
	updateErr error
	deleteErr error
	listErr   error

	created []string
	updated []string
	deleted []string
	enumIDs []string
	nextID  int
}

func (m *mockRecordStore) mutations() int {
	return len(m.created) + len(m.updated) + len(m.deleted) + len(m.enumIDs)
}

func (m *mockRecordStore) CreateEntity(_ context.Context, typeID string, _ map[string]any) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.nextID++
	id := fmt.Sprintf("%d", m.nextID)
	m.created = append(m.created, typeID+"/"+id)
	return id, nil
}

func (m *mockRecordStore) UpdateEntity(_ context.Context, typeID, id string, _ map[string]any) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, typeID+"/"+id)
	return nil
}

func (m *mockRecordStore) DeleteEntity(_ context.Context, typeID, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, typeID+"/"+id)
	return nil
}

func (m *mockRecordStore) CreateEnumeration(_ context.Context, id string, _ dml.ListOptions) (string, error) {
	if m.listErr != nil {
		return "", m.listErr
	}
	m.enumIDs = append(m.enumIDs, id)
	return id, nil
}

// mockHistory captures entries and optionally fails every write.
type mockHistory struct {
	err     error
	entries []history.Entry
}

func (m *mockHistory) LogAttempt(entry history.Entry) error {
	m.entries = append(m.entries, entry)
	return m.err
}

func idRows(ids ...any) []map[string]any {
	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{"id": id})
	}
	return rows
}

func newTestEngine(queries QueryEngine, records RecordStore, opts Options) *Engine {
	guard, err := NewTableGuard(nil)
	if err != nil {
		panic(err)
	}
	return NewEngine(queries, records, guard, opts)
}

func mustParse(raw string) dml.Statement {
	stmt, isDML, err := dml.NewParser(dml.ParserOptions{}).Classify(raw)
	if err != nil || !isDML {
		panic(fmt.Sprintf("test statement %q did not parse: %v", raw, err))
	}
	return stmt
}
