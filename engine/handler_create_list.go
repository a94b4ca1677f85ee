package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
)

// ListValueSummary is one resolved enumeration value in a CREATE LIST
// result.
type ListValueSummary struct {
	Value        string `json:"value"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Inactive     bool   `json:"inactive"`
	Translations int    `json:"translations,omitempty"`
}

// CreateListResult is the payload of a CREATE LIST execution.
type CreateListResult struct {
	ScriptID     string             `json:"scriptId"`
	DisplayName  string             `json:"displayName"`
	Values       []ListValueSummary `json:"values"`
	Created      bool               `json:"created"`
	Instructions string             `json:"instructions,omitempty"`
}

// executeCreateList either creates the enumeration through the
// platform primitive (when live creation is enabled) or renders manual
// setup instructions, the safe default.
func (e *Engine) executeCreateList(ctx context.Context, stmt *dml.CreateList) ExecutionResult {
	values := make([]ListValueSummary, 0, len(stmt.Options.Values))
	for _, v := range stmt.Options.Values {
		values = append(values, ListValueSummary{
			Value:        v.Value,
			Abbreviation: v.Abbreviation,
			Inactive:     v.Inactive,
			Translations: len(v.Translations),
		})
	}

	if e.opts.EnableLiveListCreation && e.records != nil {
		scriptID, err := e.records.CreateEnumeration(ctx, stmt.FullListID, stmt.Options)
		if err != nil {
			return failureResult(ErrorTypeExecution, fmt.Sprintf("failed to create list: %v", err))
		}
		return ExecutionResult{
			Success: true,
			Result: CreateListResult{
				ScriptID:    scriptID,
				DisplayName: displayNameOrID(stmt.DisplayName, stmt.ListID),
				Values:      values,
				Created:     true,
			},
			Message:  fmt.Sprintf("List %s created with %d value(s)", scriptID, len(values)),
			Metadata: map[string]any{"valueCount": len(values)},
		}
	}

	return ExecutionResult{
		Success: true,
		Result: CreateListResult{
			ScriptID:     stmt.FullListID,
			DisplayName:  displayNameOrID(stmt.DisplayName, stmt.ListID),
			Values:       values,
			Created:      false,
			Instructions: renderListInstructions(stmt),
		},
		Message:  "CREATE LIST parsed - manual setup instructions generated",
		Metadata: map[string]any{"valueCount": len(values)},
	}
}

func renderListInstructions(stmt *dml.CreateList) string {
	var sb strings.Builder
	step := 0
	nextStep := func(format string, args ...any) {
		step++
		fmt.Fprintf(&sb, "%d. ", step)
		fmt.Fprintf(&sb, format, args...)
		sb.WriteString("\n")
	}

	nextStep("Navigate to Customization > Lists, Records, & Fields > Lists > New")
	nextStep("Set Name to %q", displayNameOrID(stmt.DisplayName, stmt.ListID))
	nextStep("Set ID to %q (the platform shows it as %s)", strings.TrimPrefix(stmt.FullListID, "customlist"), stmt.FullListID)
	if stmt.Options.Description != "" {
		nextStep("Set Description to %q", stmt.Options.Description)
	}
	if stmt.Options.OrderingMode != "" {
		nextStep("Set the value ordering to %s", stmt.Options.OrderingMode)
	}
	if stmt.Options.IsMatrix {
		nextStep("Check the Matrix Option List option")
	}
	if stmt.Options.IsInactive {
		nextStep("Check the Inactive option")
	}
	for _, v := range stmt.Options.Values {
		attrs := []string{}
		if v.Abbreviation != "" {
			attrs = append(attrs, fmt.Sprintf("Abbreviation %q", v.Abbreviation))
		}
		if v.Inactive {
			attrs = append(attrs, "Inactive checked")
		}
		for _, t := range v.Translations {
			attrs = append(attrs, fmt.Sprintf("%s translation %q", t.Language, t.Value))
		}
		detail := ""
		if len(attrs) > 0 {
			detail = " (" + strings.Join(attrs, ", ") + ")"
		}
		nextStep("Add value %q%s", v.Value, detail)
	}
	nextStep("Save")
	return sb.String()
}
