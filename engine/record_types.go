package engine

import (
	"fmt"
	"strings"
)

// standardRecordTypes maps workbench table names to platform record
// type identifiers for the standard entity types. Custom-prefixed
// names pass through unchanged.
var standardRecordTypes = map[string]string{
	"customer":        "customer",
	"contact":         "contact",
	"employee":        "employee",
	"vendor":          "vendor",
	"partner":         "partner",
	"item":            "inventoryitem",
	"inventoryitem":   "inventoryitem",
	"salesorder":      "salesorder",
	"purchaseorder":   "purchaseorder",
	"invoice":         "invoice",
	"creditmemo":      "creditmemo",
	"journalentry":    "journalentry",
	"department":      "department",
	"location":        "location",
	"classification":  "classification",
	"subsidiary":      "subsidiary",
	"task":            "task",
	"phonecall":       "phonecall",
	"supportcase":     "supportcase",
	"message":         "message",
}

// resolveRecordType maps a statement table name to the platform record
// type identifier the mutation primitives expect.
func resolveRecordType(table string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(table))
	if typeID, ok := standardRecordTypes[name]; ok {
		return typeID, nil
	}
	if strings.HasPrefix(name, "customrecord") || strings.HasPrefix(name, "customlist") {
		return name, nil
	}
	return "", fmt.Errorf("unknown record type for table %q", table)
}
