// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSnowflakeJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Snowflake
	}{
		{"string", `"175928847299117063"`, 175928847299117063},
		{"number", `123`, 123},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got Snowflake
			if err := json.Unmarshal([]byte(test.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", test.input, err)
			}
			if got != test.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", test.input, got, test.want)
			}
		})
	}

	data, err := json.Marshal(Snowflake(42))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"42"` {
		t.Errorf("Marshal = %s, want \"42\"", data)
	}
}

func TestSnowflakeRejectsGarbage(t *testing.T) {
	for _, input := range []string{`"abc"`, `"-1"`, `true`, `"1.5"`} {
		var got Snowflake
		if err := json.Unmarshal([]byte(input), &got); err == nil {
			t.Errorf("Unmarshal(%s) succeeded with %d, want error", input, got)
		}
	}
}

func TestSnowflakeOmitEmpty(t *testing.T) {
	type wrapper struct {
		ID Snowflake `json:"id,omitempty"`
	}
	data, err := json.Marshal(wrapper{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{}` {
		t.Errorf("zero snowflake not omitted: %s", data)
	}
}

func TestSnowflakeMapKey(t *testing.T) {
	original := map[Snowflake]string{7: "seven"}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"7":"seven"}` {
		t.Errorf("map key encoding = %s", data)
	}
	var decoded map[Snowflake]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded[7] != "seven" {
		t.Errorf("decoded map = %v", decoded)
	}
}

func TestSnowflakeTime(t *testing.T) {
	// 175928847299117063 is the documented example snowflake, created
	// at 2016-04-30 11:18:25.796 UTC.
	got := Snowflake(175928847299117063).Time()
	want := time.Date(2016, time.April, 30, 11, 18, 25, 796*int(time.Millisecond), time.UTC)
	if !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
}
