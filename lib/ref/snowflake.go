// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// platformEpoch is the first millisecond of 2015 UTC, the zero point of
// the timestamp embedded in every snowflake.
const platformEpoch int64 = 1420070400000

// Snowflake is a platform-assigned 64-bit identifier (users, channels,
// roles, guilds, messages, emoji, rules, ...).
//
// The platform always sends snowflakes as JSON strings because they
// exceed the 53-bit integer precision of JavaScript numbers. Snowflake
// marshals as a string and accepts both strings and bare numbers on
// input, since hand-written payloads (CLI input, fixtures) commonly use
// numbers. The zero value means "unset" and is omitted by omitempty.
type Snowflake uint64

// ParseSnowflake parses a decimal snowflake string.
func ParseSnowflake(raw string) (Snowflake, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty snowflake")
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", raw, err)
	}
	return Snowflake(value), nil
}

// MustParseSnowflake is like ParseSnowflake but panics on error. Use in
// tests and static initialization where the input is known-valid.
func MustParseSnowflake(raw string) Snowflake {
	s, err := ParseSnowflake(raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseSnowflake(%q): %v", raw, err))
	}
	return s
}

// String returns the decimal form.
func (s Snowflake) String() string { return strconv.FormatUint(uint64(s), 10) }

// IsZero reports whether the snowflake is unset.
func (s Snowflake) IsZero() bool { return s == 0 }

// Time returns the creation time encoded in the upper 42 bits.
func (s Snowflake) Time() time.Time {
	milliseconds := int64(s>>22) + platformEpoch
	return time.UnixMilli(milliseconds).UTC()
}

// MarshalText implements encoding.TextMarshaler. Used for map keys and
// by the CBOR codec.
func (s Snowflake) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces the zero value.
func (s *Snowflake) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*s = 0
		return nil
	}
	parsed, err := ParseSnowflake(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalJSON emits the snowflake as a JSON string.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return s.UnmarshalText(data[1 : len(data)-1])
	}
	return s.UnmarshalText(data)
}
