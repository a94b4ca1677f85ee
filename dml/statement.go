// Package dml implements the workbench DML mini-language: a small
// statement set (CREATE RECORD, CREATE LIST, INSERT, UPDATE, DELETE)
// layered over an otherwise read-only query box. The package covers
// lexing, classification, parsing into a tagged statement union,
// script ID derivation and structural validation. Execution lives in
// the engine package.
package dml

import (
	"github.com/WebSolutionsGroup/esqrt-sub001/common"
)

// Statement is the tagged union over the five DML subtypes. Concrete
// types are *CreateRecord, *CreateList, *Insert, *Update and *Delete.
// Statements are immutable after parsing; the pipeline caches and
// shares them across requests.
type Statement interface {
	Code() common.StatementCode
	// Table returns the target table or entity identifier of the
	// statement, used for logging and mutation guards.
	Table() string
}

// FieldType enumerates the field kinds supported in CREATE RECORD
// field declarations.
type FieldType string

const (
	FieldFreeFormText  FieldType = "FREEFORMTEXT"
	FieldTextArea      FieldType = "TEXTAREA"
	FieldRichText      FieldType = "RICHTEXT"
	FieldEmail         FieldType = "EMAIL"
	FieldPhone         FieldType = "PHONE"
	FieldHyperlink     FieldType = "HYPERLINK"
	FieldInteger       FieldType = "INTEGER"
	FieldDecimal       FieldType = "DECIMAL"
	FieldCurrency      FieldType = "CURRENCY"
	FieldPercent       FieldType = "PERCENT"
	FieldCheckbox      FieldType = "CHECKBOX"
	FieldDate          FieldType = "DATE"
	FieldDateTime      FieldType = "DATETIME"
	FieldTimeOfDay     FieldType = "TIMEOFDAY"
	FieldList          FieldType = "LIST"
	FieldMultiSelect   FieldType = "MULTISELECT"
	FieldDocument      FieldType = "DOCUMENT"
	FieldImage         FieldType = "IMAGE"
	FieldInlineHTML    FieldType = "INLINEHTML"
	FieldLongText      FieldType = "LONGTEXT"
	FieldPassword      FieldType = "PASSWORD"
)

// fieldTypes maps the uppercased declaration token to its FieldType.
var fieldTypes = map[string]FieldType{
	string(FieldFreeFormText): FieldFreeFormText,
	string(FieldTextArea):     FieldTextArea,
	string(FieldRichText):     FieldRichText,
	string(FieldEmail):        FieldEmail,
	string(FieldPhone):        FieldPhone,
	string(FieldHyperlink):    FieldHyperlink,
	string(FieldInteger):      FieldInteger,
	string(FieldDecimal):      FieldDecimal,
	string(FieldCurrency):     FieldCurrency,
	string(FieldPercent):      FieldPercent,
	string(FieldCheckbox):     FieldCheckbox,
	string(FieldDate):         FieldDate,
	string(FieldDateTime):     FieldDateTime,
	string(FieldTimeOfDay):    FieldTimeOfDay,
	string(FieldList):         FieldList,
	string(FieldMultiSelect):  FieldMultiSelect,
	string(FieldDocument):     FieldDocument,
	string(FieldImage):        FieldImage,
	string(FieldInlineHTML):   FieldInlineHTML,
	string(FieldLongText):     FieldLongText,
	string(FieldPassword):     FieldPassword,
}

// ParseFieldType resolves a declaration token to a FieldType.
func ParseFieldType(token string) (FieldType, bool) {
	ft, ok := fieldTypes[token]
	return ft, ok
}

// Field is a single field declaration inside a CREATE RECORD body.
// ScriptID is derived from the field name plus the configured prefix
// and always satisfies the platform length ceiling.
type Field struct {
	Name          string
	Type          FieldType
	ListReference string // referenced list/record for LIST and MULTISELECT fields
	ScriptID      string
}

// CreateRecord describes a new entity type definition. The platform
// offers no primitive for creating these programmatically, so the
// handler renders manual setup instructions instead of mutating state.
type CreateRecord struct {
	EntityID     string
	FullEntityID string // customrecord_{prefix}{entityId}
	DisplayName  string
	Description  string
	Owner        string
	AccessType   string
	Prefix       string
	Toggles      map[string]bool
	Fields       []Field
}

func (s *CreateRecord) Code() common.StatementCode { return common.StatementCreateRecord }
func (s *CreateRecord) Table() string              { return s.FullEntityID }

// Translation is one language/value pair attached to a list value.
type Translation struct {
	Language string
	Value    string
}

// ListValue is a single enumeration value with its optional attributes.
type ListValue struct {
	Value        string
	Abbreviation string
	Inactive     bool
	Translations []Translation
}

// ListOptions holds the parsed CREATE LIST body.
type ListOptions struct {
	Description  string
	OrderingMode string // "ORDER_ENTERED", "ALPHABETICAL", ...
	IsMatrix     bool
	IsInactive   bool
	Values       []ListValue
}

// CreateList describes a new enumeration (custom list) definition.
type CreateList struct {
	ListID      string
	FullListID  string // customlist_{prefix}{listId}
	DisplayName string
	Options     ListOptions
}

func (s *CreateList) Code() common.StatementCode { return common.StatementCreateList }
func (s *CreateList) Table() string              { return s.FullListID }

// Assignment is one field=value pair, order-preserving.
type Assignment struct {
	Field string
	Value any // string, float64, bool or nil (NULL)
}

// ConditionOp is the comparison operator of a WHERE condition.
type ConditionOp string

const (
	OpEq ConditionOp = "="
	OpIn ConditionOp = "IN"
)

// Condition is a single WHERE predicate. Conditions in a clause are
// AND-joined.
type Condition struct {
	Field  string
	Op     ConditionOp
	Value  any   // for OpEq
	Values []any // for OpIn
}

// Insert describes an INSERT INTO statement. Commit is false unless
// the raw text carried a trailing COMMIT marker; without it the
// handler runs in preview mode and never calls the create primitive.
type Insert struct {
	TableName string
	Fields    []Assignment
	Commit    bool
}

func (s *Insert) Code() common.StatementCode { return common.StatementInsert }
func (s *Insert) Table() string              { return s.TableName }

// FieldMap returns the assignments as a name-to-value map.
func (s *Insert) FieldMap() map[string]any {
	m := make(map[string]any, len(s.Fields))
	for _, a := range s.Fields {
		m[a.Field] = a.Value
	}
	return m
}

// Update describes an UPDATE statement. A statement parsed without a
// WHERE clause has an empty Where slice and is rejected by Validate.
type Update struct {
	TableName string
	Set       []Assignment
	Where     []Condition
	Commit    bool
}

func (s *Update) Code() common.StatementCode { return common.StatementUpdate }
func (s *Update) Table() string              { return s.TableName }

// SetMap returns the SET assignments as a name-to-value map.
func (s *Update) SetMap() map[string]any {
	m := make(map[string]any, len(s.Set))
	for _, a := range s.Set {
		m[a.Field] = a.Value
	}
	return m
}

// Delete describes a DELETE FROM statement.
type Delete struct {
	TableName string
	Where     []Condition
	Commit    bool
}

func (s *Delete) Code() common.StatementCode { return common.StatementDelete }
func (s *Delete) Table() string              { return s.TableName }
