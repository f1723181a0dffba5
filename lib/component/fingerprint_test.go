// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"testing"
)

func TestFingerprintIgnoresKeyOrderAndWhitespace(t *testing.T) {
	first, err := FingerprintJSON([]byte(`[{"type":10,"content":"hi","id":3}]`))
	if err != nil {
		t.Fatalf("FingerprintJSON: %v", err)
	}
	second, err := FingerprintJSON([]byte("[ {\"id\": 3,\n \"content\": \"hi\", \"type\": 10} ]"))
	if err != nil {
		t.Fatalf("FingerprintJSON: %v", err)
	}
	if first != second {
		t.Errorf("fingerprints differ: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex characters", len(first))
	}

	different, err := FingerprintJSON([]byte(`[{"type":10,"content":"hi!","id":3}]`))
	if err != nil {
		t.Fatalf("FingerprintJSON: %v", err)
	}
	if different == first {
		t.Error("different content produced the same fingerprint")
	}
}

func TestFingerprintMatchesEncodedTree(t *testing.T) {
	nodes := []Component{&TextDisplay{ID: 3, Content: "hi"}}
	fromTree, err := Fingerprint(nodes)
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	fromJSON, err := FingerprintJSON([]byte(`[{"content":"hi","type":10,"id":3}]`))
	if err != nil {
		t.Fatalf("FingerprintJSON: %v", err)
	}
	if fromTree != fromJSON {
		t.Errorf("Fingerprint = %s, FingerprintJSON = %s", fromTree, fromJSON)
	}

	empty, err := Fingerprint(nil)
	if err != nil {
		t.Fatalf("Fingerprint(nil): %v", err)
	}
	if empty == fromTree {
		t.Error("empty tree shares a fingerprint with a non-empty one")
	}
}

func TestFingerprintRejectsInvalidJSON(t *testing.T) {
	if _, err := FingerprintJSON([]byte(`[{`)); err == nil {
		t.Error("FingerprintJSON accepted truncated JSON")
	}
}
