package engine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
)

// buildSelect renders the WHERE-resolution query: a prepared SELECT of
// record IDs matching the statement's conditions.
func buildSelect(table string, conds []dml.Condition) (string, []any, error) {
	ex := goqu.Ex{}
	for _, c := range conds {
		switch c.Op {
		case dml.OpEq:
			ex[c.Field] = c.Value
		case dml.OpIn:
			ex[c.Field] = c.Values
		default:
			return "", nil, fmt.Errorf("unsupported condition operator %q", c.Op)
		}
	}

	sql, params, err := goqu.From(table).Select("id").Where(ex).Prepared(true).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build selection query: %w", err)
	}
	return sql, params, nil
}

// resolveTargets runs the WHERE-resolution query through the host
// query engine and returns the matched record IDs.
func (e *Engine) resolveTargets(ctx context.Context, table string, conds []dml.Condition) ([]string, error) {
	if e.queries == nil {
		return nil, fmt.Errorf("no query engine attached")
	}

	sql, params, err := buildSelect(table, conds)
	if err != nil {
		return nil, err
	}

	rows, err := e.queries.RunQuery(ctx, sql, params)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve WHERE condition: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		id, ok := row["id"]
		if !ok {
			return nil, fmt.Errorf("selection row is missing an id column")
		}
		ids = append(ids, stringifyID(id))
	}
	return ids, nil
}

// stringifyID normalizes a row ID to its canonical string form. The
// query engine may hand IDs back as strings or numbers.
func stringifyID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case int64:
		return fmt.Sprintf("%d", id)
	case int:
		return fmt.Sprintf("%d", id)
	default:
		return fmt.Sprintf("%v", id)
	}
}
