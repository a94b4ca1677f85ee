package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRecordType(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"customer", "customer"},
		{"Customer", "customer"},
		{"  employee  ", "employee"},
		{"item", "inventoryitem"},
		{"salesorder", "salesorder"},
		{"customrecord_gear", "customrecord_gear"},
		{"customlist_priorities", "customlist_priorities"},
	}
	for _, tt := range tests {
		got, err := resolveRecordType(tt.table)
		require.NoError(t, err, "table %q", tt.table)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveRecordTypeUnknown(t *testing.T) {
	for _, table := range []string{"not_a_table", "", "my_custom_thing"} {
		_, err := resolveRecordType(table)
		assert.Error(t, err, "table %q", table)
	}
}
