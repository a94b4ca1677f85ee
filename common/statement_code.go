// Package common provides shared types used across the codebase.
// HARD RULE: StatementCode is defined HERE and ONLY HERE.
// Both dml and engine packages use this type directly.
package common

// StatementCode categorizes workbench statements for execution routing.
type StatementCode int

const (
	StatementUnknown StatementCode = iota // 0 - means not yet classified
	StatementCreateRecord
	StatementCreateList
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementPassthrough // not DML - run through ordinary query execution
)

// statementNames holds the wire-format names surfaced as dmlType in results.
var statementNames = map[StatementCode]string{
	StatementCreateRecord: "CREATE_RECORD",
	StatementCreateList:   "CREATE_LIST",
	StatementInsert:       "INSERT",
	StatementUpdate:       "UPDATE",
	StatementDelete:       "DELETE",
	StatementPassthrough:  "PASSTHROUGH",
}

func (t StatementCode) String() string {
	if name, ok := statementNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsDML returns true if the statement is one of the five workbench
// DML subtypes.
func (t StatementCode) IsDML() bool {
	switch t {
	case StatementCreateRecord, StatementCreateList,
		StatementInsert, StatementUpdate, StatementDelete:
		return true
	}
	return false
}

// IsMutation returns true if the statement can change platform state
// when committed. CREATE RECORD never mutates: the platform has no
// primitive for it and the handler only generates instructions.
func (t StatementCode) IsMutation() bool {
	switch t {
	case StatementInsert, StatementUpdate, StatementDelete, StatementCreateList:
		return true
	}
	return false
}
