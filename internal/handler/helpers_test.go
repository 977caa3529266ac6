package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		extras map[string]interface{}
	}{
		{"validation", fmt.Errorf("%w: name is required", domain.ErrValidation), http.StatusBadRequest, nil},
		{"not found", fmt.Errorf("course x: %w", domain.ErrNotFound), http.StatusNotFound, nil},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, nil},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, nil},
		{
			"conflict with details",
			&domain.ConflictError{Message: "dup", ResourceType: "review", ResourceID: "r1"},
			http.StatusConflict,
			map[string]interface{}{"resource_type": "review", "existing_id": "r1"},
		},
		{"wrapped conflict sentinel", fmt.Errorf("review insert: %w", domain.ErrConflict), http.StatusConflict, nil},
		{
			"dependency",
			&domain.DependencyError{Dependency: "store", Op: "query", Retryable: true},
			http.StatusServiceUnavailable,
			map[string]interface{}{"retryable": true},
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, float64(tt.status), body["status"])
			for k, v := range tt.extras {
				assert.Equal(t, v, body[k], k)
			}
		})
	}
}
