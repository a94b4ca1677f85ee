package dml

import (
	"fmt"
)

// ValidationResult accumulates structural defects found in a parsed
// statement. Checks never short-circuit: every applicable defect is
// reported in one pass.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Validate checks a parsed statement for required fields and shape.
// UPDATE and DELETE without a WHERE clause are rejected outright: that
// is the safety invariant preventing accidental full-table mutation.
func Validate(stmt Statement) ValidationResult {
	res := ValidationResult{}

	switch s := stmt.(type) {
	case *CreateRecord:
		validateCreateRecord(s, &res)
	case *CreateList:
		validateCreateList(s, &res)
	case *Insert:
		validateInsert(s, &res)
	case *Update:
		validateUpdate(s, &res)
	case *Delete:
		validateDelete(s, &res)
	default:
		res.addError("unrecognized statement type %T", stmt)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func validateCreateRecord(s *CreateRecord, res *ValidationResult) {
	if s.EntityID == "" {
		res.addError("CREATE RECORD requires an entity identifier")
	}
	if len(s.Fields) == 0 {
		res.addError("CREATE RECORD requires at least one field definition")
	}
	seen := map[string]struct{}{}
	for _, f := range s.Fields {
		if _, dup := seen[f.Name]; dup {
			res.addError("duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
		if (f.Type == FieldList || f.Type == FieldMultiSelect) && f.ListReference == "" {
			res.addError("field %q of type %s requires a list reference", f.Name, f.Type)
		}
	}
}

func validateCreateList(s *CreateList, res *ValidationResult) {
	if s.ListID == "" {
		res.addError("CREATE LIST requires a list identifier")
	}
	if len(s.Options.Values) == 0 {
		res.addError("CREATE LIST requires at least one value")
	}
	seen := map[string]struct{}{}
	for _, v := range s.Options.Values {
		if v.Value == "" {
			res.addError("list values must be non-empty")
			continue
		}
		if _, dup := seen[v.Value]; dup {
			res.addError("duplicate list value %q", v.Value)
		}
		seen[v.Value] = struct{}{}
	}
}

func validateInsert(s *Insert, res *ValidationResult) {
	if s.TableName == "" {
		res.addError("INSERT requires a table name")
	}
	if len(s.Fields) == 0 {
		res.addError("INSERT requires at least one field value")
	}
}

func validateUpdate(s *Update, res *ValidationResult) {
	if s.TableName == "" {
		res.addError("UPDATE requires a table name")
	}
	if len(s.Set) == 0 {
		res.addError("UPDATE requires at least one SET assignment")
	}
	if len(s.Where) == 0 {
		res.addError("WHERE condition is required for UPDATE statements")
	}
}

func validateDelete(s *Delete, res *ValidationResult) {
	if s.TableName == "" {
		res.addError("DELETE requires a table name")
	}
	if len(s.Where) == 0 {
		res.addError("WHERE condition is required for DELETE statements")
	}
}
