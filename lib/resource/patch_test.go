// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchEncoding(t *testing.T) {
	var nilSlice []string
	var nilPointer *int
	patch := Patch{
		"name":          "spam filter",
		"emoji_id":      Null,
		"emoji_name":    Null,
		"exempt_roles":  []string{},
		"skipped_nil":   nil,
		"skipped_slice": nilSlice,
		"skipped_ptr":   nilPointer,
		"enabled":       false,
	}
	encoded, err := json.Marshal(patch)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	require.JSONEq(t, `{
		"name": "spam filter",
		"emoji_id": null,
		"emoji_name": null,
		"exempt_roles": [],
		"enabled": false
	}`, string(encoded))

	want := []string{"emoji_id", "emoji_name", "enabled", "exempt_roles", "name"}
	if got := patch.Fields(); !slices.Equal(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Error("empty patch reports non-empty")
	}
	if !(Patch{"a": nil}).Empty() {
		t.Error("patch of nils reports non-empty")
	}
	if (Patch{}).Set("a", Null).Empty() {
		t.Error("patch with Null reports empty")
	}
}
