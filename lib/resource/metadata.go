// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"encoding/json"
	"maps"
)

// Metadata is a nested JSON object the platform replaces wholesale on
// update. Values are whatever encoding/json produced: strings,
// float64, bool, []any, map[string]any.
type Metadata map[string]any

// Merge returns a new Metadata holding every key of m overlaid with
// every key of update. Neither input is modified. The union is
// shallow: a key present in update replaces the whole value under that
// key.
func (m Metadata) Merge(update Metadata) Metadata {
	merged := make(Metadata, len(m)+len(update))
	maps.Copy(merged, m)
	maps.Copy(merged, update)
	return merged
}

// Clone returns a shallow copy. A nil Metadata clones to nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// Strings returns the value under key as a string slice. Missing keys,
// nulls, and non-string elements yield nil.
func (m Metadata) Strings(key string) []string {
	switch typed := m[key].(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		values := make([]string, 0, len(typed))
		for _, element := range typed {
			text, ok := element.(string)
			if !ok {
				return nil
			}
			values = append(values, text)
		}
		return values
	}
	return nil
}

// Ints returns the value under key as an int slice.
func (m Metadata) Ints(key string) []int {
	switch typed := m[key].(type) {
	case []int:
		return append([]int(nil), typed...)
	case []any:
		values := make([]int, 0, len(typed))
		for _, element := range typed {
			number, ok := toInt(element)
			if !ok {
				return nil
			}
			values = append(values, number)
		}
		return values
	}
	return nil
}

// Int returns the value under key as an int and whether it was a
// number.
func (m Metadata) Int(key string) (int, bool) {
	return toInt(m[key])
}

// Bool returns the value under key and whether it was a bool.
func (m Metadata) Bool(key string) (bool, bool) {
	value, ok := m[key].(bool)
	return value, ok
}

// StringValue returns the value under key and whether it was a string.
func (m Metadata) StringValue(key string) (string, bool) {
	value, ok := m[key].(string)
	return value, ok
}

func toInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		if typed != float64(int(typed)) {
			return 0, false
		}
		return int(typed), true
	case json.Number:
		number, err := typed.Int64()
		return int(number), err == nil
	}
	return 0, false
}
