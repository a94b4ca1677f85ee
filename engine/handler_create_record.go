package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
)

// RecordFieldSummary is one resolved field definition in a CREATE
// RECORD result.
type RecordFieldSummary struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	ScriptID      string `json:"scriptId"`
	ListReference string `json:"listReference,omitempty"`
}

// CreateRecordResult is the payload of a CREATE RECORD execution.
type CreateRecordResult struct {
	ScriptID     string               `json:"scriptId"`
	DisplayName  string               `json:"displayName"`
	Fields       []RecordFieldSummary `json:"fields"`
	Instructions string               `json:"instructions"`
}

// executeCreateRecord renders complete manual setup instructions for a
// new entity type. The platform has no primitive for creating record
// type definitions programmatically, so success here means
// "instructions produced", never "entity created".
func (e *Engine) executeCreateRecord(stmt *dml.CreateRecord) ExecutionResult {
	fields := make([]RecordFieldSummary, 0, len(stmt.Fields))
	for _, f := range stmt.Fields {
		fields = append(fields, RecordFieldSummary{
			Name:          f.Name,
			Type:          string(f.Type),
			ScriptID:      f.ScriptID,
			ListReference: f.ListReference,
		})
	}

	result := CreateRecordResult{
		ScriptID:     stmt.FullEntityID,
		DisplayName:  displayNameOrID(stmt.DisplayName, stmt.EntityID),
		Fields:       fields,
		Instructions: renderRecordInstructions(stmt),
	}

	return ExecutionResult{
		Success: true,
		Result:  result,
		Message: "CREATE RECORD parsed - the platform does not support programmatic record type creation; manual setup instructions generated",
		Metadata: map[string]any{
			"fieldCount": len(stmt.Fields),
		},
	}
}

// renderRecordInstructions produces the deterministic step-by-step
// setup guide, covering every resolved script ID, field definition and
// configuration option.
func renderRecordInstructions(stmt *dml.CreateRecord) string {
	var sb strings.Builder
	step := 0
	nextStep := func(format string, args ...any) {
		step++
		fmt.Fprintf(&sb, "%d. ", step)
		fmt.Fprintf(&sb, format, args...)
		sb.WriteString("\n")
	}

	nextStep("Navigate to Customization > Lists, Records, & Fields > Record Types > New")
	nextStep("Set Label to %q", displayNameOrID(stmt.DisplayName, stmt.EntityID))
	nextStep("Set ID to %q (the platform shows it as %s)", strings.TrimPrefix(stmt.FullEntityID, "customrecord"), stmt.FullEntityID)
	if stmt.Description != "" {
		nextStep("Set Description to %q", stmt.Description)
	}
	if stmt.Owner != "" {
		nextStep("Set Owner to %q", stmt.Owner)
	}
	if stmt.AccessType != "" {
		nextStep("Set Access Type to %q", stmt.AccessType)
	}
	for _, key := range sortedToggleKeys(stmt.Toggles) {
		state := "Uncheck"
		if stmt.Toggles[key] {
			state = "Check"
		}
		nextStep("%s the %s option", state, key)
	}
	nextStep("Save the record type")
	for _, f := range stmt.Fields {
		detail := ""
		if f.ListReference != "" {
			detail = fmt.Sprintf(", List/Record %q", f.ListReference)
		}
		nextStep("Add a field: Label %q, Type %s, ID %q%s", f.Name, f.Type, strings.TrimPrefix(f.ScriptID, "custrecord"), detail)
	}
	nextStep("Save")
	return sb.String()
}

// sortedToggleKeys keeps instruction rendering deterministic.
func sortedToggleKeys(toggles map[string]bool) []string {
	keys := make([]string, 0, len(toggles))
	for k := range toggles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func displayNameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
