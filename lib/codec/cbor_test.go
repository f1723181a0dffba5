// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/stretchr/testify/require"
)

// sampleSnapshot mirrors a resource snapshot: json tags only, with a
// snowflake that must encode as text.
type sampleSnapshot struct {
	ID          ref.Snowflake `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Volume      float64       `json:"volume"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	description := "wave"
	original := sampleSnapshot{ID: 749054660769218631, Name: "Wave", Description: &description, Volume: 0.5}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleSnapshot
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ID != original.ID || decoded.Name != original.Name || *decoded.Description != description || decoded.Volume != 0.5 {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestSnowflakeEncodesAsText(t *testing.T) {
	data, err := Marshal(sampleSnapshot{ID: 42, Name: "x"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"42"`) {
		t.Errorf("notation %q does not carry the id as text", notation)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(map[string]any{"b": 1, "a": []any{"x", 2}, "c": nil})
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(map[string]any{"c": nil, "a": []any{"x", 2}, "b": 1})
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, name := range []string{"first", "second"} {
		if err := encoder.Encode(sampleSnapshot{Name: name}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	single, err := Marshal(sampleSnapshot{Name: "first"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buffer.Bytes(), single) {
		t.Error("stream does not begin with the first item's deterministic encoding")
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var snapshot sampleSnapshot
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &snapshot); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestJSONTranscodeRoundtrip(t *testing.T) {
	wire := `[{"type":1,"id":3,"components":[{"type":2,"style":1,"label":"Go","custom_id":"go","disabled":false}]},{"type":17,"accent_color":5793266,"spoiler":true,"components":[{"type":10,"content":"ratio 0.25"}]},{"type":14,"divider":null}]`

	data, err := FromJSON([]byte(wire))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	back, err := ToJSON(data)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	require.JSONEq(t, wire, string(back))

	// Key order in the input does not change the encoding.
	reordered := `[{"components":[{"custom_id":"go","label":"Go","style":1,"type":2,"disabled":false}],"id":3,"type":1},{"spoiler":true,"type":17,"components":[{"content":"ratio 0.25","type":10}],"accent_color":5793266},{"divider":null,"type":14}]`
	again, err := FromJSON([]byte(reordered))
	if err != nil {
		t.Fatalf("FromJSON(reordered): %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("transcoding depends on key order")
	}
}

func TestFromJSONNumbers(t *testing.T) {
	data, err := FromJSON([]byte(`{"integer": 16777215, "negative": -3, "fraction": 0.5}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	var decoded map[string]any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["integer"] != uint64(16777215) || decoded["negative"] != int64(-3) || decoded["fraction"] != 0.5 {
		t.Errorf("decoded = %#v", decoded)
	}
}

func TestTranscodeRejects(t *testing.T) {
	if _, err := FromJSON([]byte(`{"a": 1} {"b": 2}`)); err == nil {
		t.Error("FromJSON accepted trailing data")
	}
	if _, err := FromJSON([]byte(`{"a": `)); err == nil {
		t.Error("FromJSON accepted truncated JSON")
	}
	binary, err := Marshal(map[string]any{"payload": []byte{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ToJSON(binary); err == nil {
		t.Error("ToJSON accepted a byte string")
	}
}

func BenchmarkFromJSON(b *testing.B) {
	wire := []byte(`[{"type":1,"components":[{"type":2,"style":1,"label":"Go","custom_id":"go"}]}]`)
	b.SetBytes(int64(len(wire)))
	b.ReportAllocs()
	for b.Loop() {
		FromJSON(wire)
	}
}
