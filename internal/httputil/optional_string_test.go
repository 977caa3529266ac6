package httputil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString_PatchStates(t *testing.T) {
	type patch struct {
		Description OptionalString `json:"description"`
	}

	tests := []struct {
		name    string
		body    string
		present bool
		null    bool
		orEmpty *string
	}{
		{"absent", `{}`, false, false, nil},
		{"null", `{"description": null}`, true, true, strPtr("")},
		{"empty", `{"description": ""}`, true, false, strPtr("")},
		{"value", `{"description": "Graphs and trees"}`, true, false, strPtr("Graphs and trees")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.present, p.Description.Present)
			assert.Equal(t, tt.null, p.Description.Null())
			assert.Equal(t, tt.orEmpty, p.Description.OrEmpty())
		})
	}
}

func TestOptionalString_RejectsNonString(t *testing.T) {
	var p struct {
		ParentFolderID OptionalString `json:"parent_folder_id"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"parent_folder_id": 42}`), &p))
}

func strPtr(s string) *string {
	return &s
}
