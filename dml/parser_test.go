package dml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebSolutionsGroup/esqrt-sub001/common"
)

func newTestParser() *Parser {
	return NewParser(ParserOptions{})
}

func TestClassifyPassthrough(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"plain select", "SELECT * FROM customer"},
		{"select with where", "SELECT id, companyname FROM customer WHERE id = 5"},
		{"empty input", ""},
		{"whitespace only", "   \n\t  "},
		{"show-like text", "SHOW ME THE DATA"},
		{"create table is not create record", "CREATE TABLE foo (id INT)"},
		{"delete without from", "DELETE EVERYTHING"},
		{"commit alone", "COMMIT"},
	}

	parser := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, isDML, err := parser.Classify(tt.sql)
			if err != nil {
				t.Fatalf("non-DML input must never error, got %v", err)
			}
			if isDML {
				t.Fatalf("expected passthrough, got DML statement %T", stmt)
			}
			if stmt != nil {
				t.Fatalf("expected nil statement, got %T", stmt)
			}
		})
	}
}

func TestClassifyMatchedPrefixParseErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"create record without body", "CREATE RECORD employee"},
		{"create record unbalanced paren", "CREATE RECORD emp (name = \"X\""},
		{"create record bad field type", "CREATE RECORD emp (foo WIBBLE)"},
		{"create list without body", "CREATE LIST priorities"},
		{"insert missing values", "INSERT INTO customer (a, b)"},
		{"insert count mismatch", "INSERT INTO customer (a, b) VALUES (1)"},
		{"update without set", "UPDATE customer WHERE id = 1"},
		{"update empty set", "UPDATE customer SET WHERE id = 1"},
		{"delete missing table", "DELETE FROM WHERE id = 1"},
		{"where without operator", "DELETE FROM customer WHERE id"},
	}

	parser := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, isDML, err := parser.Classify(tt.sql)
			if !isDML {
				t.Fatalf("prefix matched, expected DML classification")
			}
			if err == nil {
				t.Fatalf("expected parse error, got %T", stmt)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("parse errors must wrap ErrSyntax, got %v", err)
			}
			if stmt != nil {
				t.Errorf("failed parse must not return a statement")
			}
		})
	}
}

func TestParseCreateRecord(t *testing.T) {
	sql := `CREATE RECORD employee_data (
		name = "Employee Data",
		description = "HR employee tracking",
		owner = "admin",
		accesstype = "public",
		allowattachments = TRUE,
		showid = FALSE,
		full_name FREEFORMTEXT,
		hire_date DATE,
		salary CURRENCY,
		dept LIST(customlist_departments)
	)`

	parser := newTestParser()
	stmt, isDML, err := parser.Classify(sql)
	require.NoError(t, err)
	require.True(t, isDML)

	rec, ok := stmt.(*CreateRecord)
	require.True(t, ok, "expected *CreateRecord, got %T", stmt)

	assert.Equal(t, common.StatementCreateRecord, rec.Code())
	assert.Equal(t, "employee_data", rec.EntityID)
	assert.Equal(t, "customrecord_employee_data", rec.FullEntityID)
	assert.Equal(t, "Employee Data", rec.DisplayName)
	assert.Equal(t, "HR employee tracking", rec.Description)
	assert.Equal(t, "admin", rec.Owner)
	assert.Equal(t, "public", rec.AccessType)
	assert.Equal(t, map[string]bool{"allowattachments": true, "showid": false}, rec.Toggles)

	require.Len(t, rec.Fields, 4)
	assert.Equal(t, Field{Name: "full_name", Type: FieldFreeFormText, ScriptID: "custrecord_employee_data_full_name"}, rec.Fields[0])
	assert.Equal(t, FieldDate, rec.Fields[1].Type)
	assert.Equal(t, FieldCurrency, rec.Fields[2].Type)
	assert.Equal(t, "customlist_departments", rec.Fields[3].ListReference)
}

func TestParseCreateRecordLegacyPrefix(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`CREATE RECORD gear ("acme", slot FREEFORMTEXT)`)
	require.NoError(t, err)

	rec := stmt.(*CreateRecord)
	assert.Equal(t, "acme", rec.Prefix)
	assert.Equal(t, "customrecord_acme_gear", rec.FullEntityID)
	assert.Equal(t, "custrecord_acme_gear_slot", rec.Fields[0].ScriptID)
}

func TestParseCreateRecordFieldOrderIndependent(t *testing.T) {
	// Config options and field declarations may interleave freely.
	parser := newTestParser()
	stmt, _, err := parser.Classify(`CREATE RECORD t (a FREEFORMTEXT, name = "T", b DATE, shownotes = TRUE, c CHECKBOX)`)
	require.NoError(t, err)

	rec := stmt.(*CreateRecord)
	assert.Equal(t, "T", rec.DisplayName)
	require.Len(t, rec.Fields, 3)
	assert.Equal(t, "a", rec.Fields[0].Name)
	assert.Equal(t, "b", rec.Fields[1].Name)
	assert.Equal(t, "c", rec.Fields[2].Name)
}

func TestParseCreateList(t *testing.T) {
	sql := `CREATE LIST priority_levels (
		name = "Priority Levels",
		description "Ticket priorities",
		optionsorder "ALPHABETICAL",
		matrixoption FALSE,
		isinactive FALSE,
		values [
			value "High" abbreviation "H" inactive FALSE translations [ language "fr", value "Haute", language "de", value "Hoch" ],
			value "Medium" inactive FALSE,
			value "Low" inactive TRUE abbreviation "L"
		]
	)`

	parser := newTestParser()
	stmt, isDML, err := parser.Classify(sql)
	require.NoError(t, err)
	require.True(t, isDML)

	list, ok := stmt.(*CreateList)
	require.True(t, ok, "expected *CreateList, got %T", stmt)

	assert.Equal(t, "priority_levels", list.ListID)
	assert.Equal(t, "customlist_priority_levels", list.FullListID)
	assert.Equal(t, "Priority Levels", list.DisplayName)
	assert.Equal(t, "Ticket priorities", list.Options.Description)
	assert.Equal(t, "ALPHABETICAL", list.Options.OrderingMode)
	assert.False(t, list.Options.IsMatrix)

	require.Len(t, list.Options.Values, 3)

	high := list.Options.Values[0]
	assert.Equal(t, "High", high.Value)
	assert.Equal(t, "H", high.Abbreviation)
	assert.False(t, high.Inactive)
	assert.Equal(t, []Translation{
		{Language: "fr", Value: "Haute"},
		{Language: "de", Value: "Hoch"},
	}, high.Translations)

	assert.Equal(t, ListValue{Value: "Medium"}, list.Options.Values[1])

	low := list.Options.Values[2]
	assert.True(t, low.Inactive)
	assert.Equal(t, "L", low.Abbreviation, "attributes may appear in non-adjacent order")
}

func TestParseCreateListMinimal(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`CREATE LIST priority_levels (values [value "High" inactive FALSE])`)
	require.NoError(t, err)

	list := stmt.(*CreateList)
	require.Len(t, list.Options.Values, 1)
	assert.Equal(t, ListValue{Value: "High", Inactive: false}, list.Options.Values[0])
	assert.True(t, len(list.FullListID) > 0 && list.FullListID[:11] == "customlist_")
}

func TestParseInsertColumnsValues(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`INSERT INTO customer (companyname, phone, credit_limit, active) VALUES ('Acme', "555-0100", 2500.50, TRUE)`)
	require.NoError(t, err)

	ins := stmt.(*Insert)
	assert.Equal(t, "customer", ins.TableName)
	assert.False(t, ins.Commit)
	assert.Equal(t, []Assignment{
		{Field: "companyname", Value: "Acme"},
		{Field: "phone", Value: "555-0100"},
		{Field: "credit_limit", Value: 2500.50},
		{Field: "active", Value: true},
	}, ins.Fields)
}

func TestParseInsertSetForm(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`INSERT INTO customer SET companyname = 'Acme', notes = NULL;`)
	require.NoError(t, err)

	ins := stmt.(*Insert)
	assert.Equal(t, []Assignment{
		{Field: "companyname", Value: "Acme"},
		{Field: "notes", Value: nil},
	}, ins.Fields)
}

func TestParseUpdate(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`UPDATE customer SET companyname='Acme', credit_limit=1000 WHERE id = 123`)
	require.NoError(t, err)

	upd := stmt.(*Update)
	assert.Equal(t, "customer", upd.TableName)
	assert.Equal(t, []Assignment{
		{Field: "companyname", Value: "Acme"},
		{Field: "credit_limit", Value: float64(1000)},
	}, upd.Set)
	assert.Equal(t, []Condition{{Field: "id", Op: OpEq, Value: float64(123)}}, upd.Where)
}

func TestParseUpdateWithoutWhereSucceeds(t *testing.T) {
	// The parser accepts a missing WHERE; the validator rejects it.
	parser := newTestParser()
	stmt, _, err := parser.Classify(`UPDATE customer SET x = 1`)
	require.NoError(t, err)
	assert.Empty(t, stmt.(*Update).Where)
}

func TestParseDeleteWithConditions(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`DELETE FROM customrecord_employee WHERE active = false AND dept IN ('sales', 'support', 42)`)
	require.NoError(t, err)

	del := stmt.(*Delete)
	assert.Equal(t, "customrecord_employee", del.TableName)
	require.Len(t, del.Where, 2)
	assert.Equal(t, Condition{Field: "active", Op: OpEq, Value: false}, del.Where[0])
	assert.Equal(t, Condition{Field: "dept", Op: OpIn, Values: []any{"sales", "support", float64(42)}}, del.Where[1])
}

func TestCommitMarker(t *testing.T) {
	tests := []struct {
		name       string
		sql        string
		wantCommit bool
	}{
		{"no marker", `DELETE FROM customer WHERE id = 1`, false},
		{"trailing commit", `DELETE FROM customer WHERE id = 1 COMMIT`, true},
		{"after semicolon", `DELETE FROM customer WHERE id = 1; COMMIT`, true},
		{"lowercase", `DELETE FROM customer WHERE id = 1 commit`, true},
		{"newline separated", "DELETE FROM customer WHERE id = 1\nCOMMIT", true},
		{"commit inside literal only", `UPDATE customer SET note = 'please COMMIT this' WHERE id = 1`, false},
	}

	parser := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, isDML, err := parser.Classify(tt.sql)
			require.NoError(t, err)
			require.True(t, isDML)

			var commit bool
			switch s := stmt.(type) {
			case *Delete:
				commit = s.Commit
			case *Update:
				commit = s.Commit
			default:
				t.Fatalf("unexpected statement type %T", stmt)
			}
			assert.Equal(t, tt.wantCommit, commit)
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	parser := newTestParser()

	stmt, isDML, err := parser.Classify(`insert into Customer set CompanyName = 'x'`)
	require.NoError(t, err)
	require.True(t, isDML)

	ins := stmt.(*Insert)
	assert.Equal(t, "customer", ins.TableName)
	assert.Equal(t, "companyname", ins.Fields[0].Field)
}

func TestClassifySingleOutcome(t *testing.T) {
	// Every input lands in exactly one bucket: passthrough, a parsed
	// statement, or a parse error.
	inputs := []string{
		"SELECT 1",
		"CREATE RECORD a (x FREEFORMTEXT)",
		"CREATE RECORD a (",
		"CREATE LIST l (values [value \"v\" inactive FALSE])",
		"INSERT INTO customer SET a = 1",
		"UPDATE customer SET a = 1 WHERE id = 1",
		"DELETE FROM customer WHERE id = 1",
		"GARBAGE IN",
	}

	parser := newTestParser()
	for _, sql := range inputs {
		stmt, isDML, err := parser.Classify(sql)
		switch {
		case !isDML:
			assert.Nil(t, stmt, "passthrough must carry no statement: %q", sql)
			assert.NoError(t, err, "passthrough must carry no error: %q", sql)
		case err != nil:
			assert.Nil(t, stmt, "parse error must carry no statement: %q", sql)
		default:
			assert.NotNil(t, stmt, "parsed DML must carry a statement: %q", sql)
		}
	}
}

func TestQuotedStringEscapes(t *testing.T) {
	parser := newTestParser()
	stmt, _, err := parser.Classify(`INSERT INTO customer SET companyname = 'O''Brien & Sons'`)
	require.NoError(t, err)
	assert.Equal(t, "O'Brien & Sons", stmt.(*Insert).Fields[0].Value)
}
