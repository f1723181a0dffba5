// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"sync"
)

// JSONObject is an in-memory JSON object that accepts partial updates.
// Safe for concurrent use.
type JSONObject struct {
	mu      sync.Mutex
	state   map[string]any
	patches []map[string]any
	err     error
}

// NewJSONObject decodes initial as the object's starting state.
func NewJSONObject(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, initial string) *JSONObject {
	t.Helper()
	object := &JSONObject{}
	if err := json.Unmarshal([]byte(initial), &object.state); err != nil {
		t.Fatalf("decoding initial object: %v", err)
	}
	if object.state == nil {
		t.Fatalf("initial object is null")
	}
	return object
}

// Patch encodes body, applies its top-level keys (null deletes), and
// returns the full updated object. When a failure is armed with Fail,
// Patch returns it and changes nothing.
func (o *JSONObject) Patch(body any) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return nil, o.err
	}
	o.patches = append(o.patches, fields)
	for key, value := range fields {
		if value == nil {
			delete(o.state, key)
			continue
		}
		o.state[key] = value
	}
	return json.Marshal(o.state)
}

// Get returns the full object, or the armed failure.
func (o *JSONObject) Get() (json.RawMessage, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return nil, o.err
	}
	return json.Marshal(o.state)
}

// Set changes one key directly, as another client would.
func (o *JSONObject) Set(key string, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state[key] = value
}

// Fail arms err for every later Patch and Get. Fail(nil) disarms.
func (o *JSONObject) Fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
}

// Patches returns the decoded bodies of every accepted patch.
func (o *JSONObject) Patches() []map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]map[string]any(nil), o.patches...)
}

// LastPatch returns the most recent accepted patch body, or nil.
func (o *JSONObject) LastPatch() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.patches) == 0 {
		return nil
	}
	return o.patches[len(o.patches)-1]
}
