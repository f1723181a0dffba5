// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"encoding/json"
	"reflect"
	"slices"
)

// Null is the patch value for an explicit JSON null, which the
// platform treats as "clear this field". It is the only way a Patch
// emits null: nil values, nil pointers, nil maps, and nil slices are
// omitted from the encoded patch.
var Null = null{}

type null struct{}

func (null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Patch is the body of a partial update: top-level field name to new
// value.
type Patch map[string]any

// Set records a field and returns the patch for chaining.
func (p Patch) Set(field string, value any) Patch {
	p[field] = value
	return p
}

// Fields returns the sorted names of the fields the patch will send.
func (p Patch) Fields() []string {
	fields := make([]string, 0, len(p))
	for field, value := range p {
		if !absent(value) {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)
	return fields
}

// Empty reports whether the patch would send no fields.
func (p Patch) Empty() bool {
	return len(p.Fields()) == 0
}

// MarshalJSON encodes the patch, dropping absent values.
func (p Patch) MarshalJSON() ([]byte, error) {
	present := make(map[string]any, len(p))
	for field, value := range p {
		if !absent(value) {
			present[field] = value
		}
	}
	return json.Marshal(present)
}

func absent(value any) bool {
	if value == nil {
		return true
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return reflected.IsNil()
	}
	return false
}
