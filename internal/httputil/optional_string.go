package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString is a PATCH field that distinguishes "absent" from "null".
// A course description or a node's parent_folder_id both need it: absent
// leaves the value alone, null clears the description or moves the node to
// the course root, and a string sets it.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs for keys present in the body
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Null reports an explicit JSON null
func (o OptionalString) Null() bool {
	return o.Present && o.Value == nil
}

// OrEmpty folds null into "" for columns where clearing means empty text.
// It returns nil when the key was absent.
func (o OptionalString) OrEmpty() *string {
	if !o.Present {
		return nil
	}
	s := ""
	if o.Value != nil {
		s = *o.Value
	}
	return &s
}
