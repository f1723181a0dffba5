// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// FromJSON transcodes a JSON document to deterministic CBOR. Component
// trees marshal through hand-written MarshalJSON methods that inject
// the "type" discriminant, so their CBOR form is produced from the wire
// JSON rather than from the Go structs. Integral numbers become CBOR
// integers and all other numbers become floats.
func FromJSON(data []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("codec: decoding JSON: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("codec: trailing data after JSON value")
	}
	converted, err := convertNumbers(value)
	if err != nil {
		return nil, err
	}
	return Marshal(converted)
}

// ToJSON transcodes a single CBOR data item to JSON. Only data items
// with a JSON equivalent (string keys, no tags, no byte strings) are
// accepted.
func ToJSON(data []byte) ([]byte, error) {
	var value any
	if err := Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("codec: decoding CBOR: %w", err)
	}
	if err := checkJSONCompatible(value); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("codec: encoding JSON: %w", err)
	}
	return encoded, nil
}

func convertNumbers(value any) (any, error) {
	switch typed := value.(type) {
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer, nil
		}
		float, err := typed.Float64()
		if err != nil {
			return nil, fmt.Errorf("codec: number %s: %w", typed, err)
		}
		return float, nil
	case map[string]any:
		for key, element := range typed {
			converted, err := convertNumbers(element)
			if err != nil {
				return nil, err
			}
			typed[key] = converted
		}
		return typed, nil
	case []any:
		for index, element := range typed {
			converted, err := convertNumbers(element)
			if err != nil {
				return nil, err
			}
			typed[index] = converted
		}
		return typed, nil
	}
	return value, nil
}

func checkJSONCompatible(value any) error {
	switch typed := value.(type) {
	case nil, bool, string, int64, uint64:
		return nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return fmt.Errorf("codec: %v has no JSON form", typed)
		}
		return nil
	case map[string]any:
		for key, element := range typed {
			if err := checkJSONCompatible(element); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return nil
	case []any:
		for index, element := range typed {
			if err := checkJSONCompatible(element); err != nil {
				return fmt.Errorf("[%d]: %w", index, err)
			}
		}
		return nil
	}
	return fmt.Errorf("codec: CBOR value of type %T has no JSON form", value)
}
