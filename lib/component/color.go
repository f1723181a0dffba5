// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"image/color"
	"reflect"
	"strconv"
	"strings"
)

// MaxColor is the largest packed 24-bit RGB value.
const MaxColor = 0xFFFFFF

// NormalizeColor converts an accent color input into a packed 0xRRGGBB
// integer.
//
//   - nil → nil (no accent color; serialized as an absent key)
//   - integer in 0..0xFFFFFF → itself
//   - "#RRGGBB" or "RRGGBB" → parsed hex
//   - 3-element array or slice of integers in 0..255 → packed
//   - color.Color → its 8-bit RGB channels (alpha ignored)
//
// Integers outside 0..0xFFFFFF, malformed hex, sequences whose length is
// not 3, out-of-range channels, and unsupported types are
// InvalidArgument errors.
func NormalizeColor(value any) (*int, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case *int:
		if typed == nil {
			return nil, nil
		}
		return packedColor(int64(*typed))
	case string:
		return hexColor(typed)
	case color.Color:
		red, green, blue, _ := typed.RGBA()
		packed := int(red>>8)<<16 | int(green>>8)<<8 | int(blue>>8)
		return &packed, nil
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return packedColor(reflected.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if reflected.Uint() > MaxColor {
			return nil, invalidArgument("accent_color", "%#x exceeds %#x", reflected.Uint(), MaxColor)
		}
		return packedColor(int64(reflected.Uint()))
	case reflect.Array, reflect.Slice:
		return tupleColor(reflected)
	}
	return nil, invalidArgument("accent_color", "unsupported color value of type %T", value)
}

func packedColor(value int64) (*int, error) {
	if value < 0 || value > MaxColor {
		return nil, invalidArgument("accent_color", "%#x is outside 0x0..%#x", value, MaxColor)
	}
	packed := int(value)
	return &packed, nil
}

func hexColor(raw string) (*int, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(digits) != 6 {
		return nil, invalidArgument("accent_color", "hex color %q must have 6 digits", raw)
	}
	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, invalidArgument("accent_color", "hex color %q: %v", raw, err)
	}
	packed := int(value)
	return &packed, nil
}

func tupleColor(tuple reflect.Value) (*int, error) {
	if tuple.Len() != 3 {
		return nil, invalidArgument("accent_color", "RGB tuple must have 3 elements, got %d", tuple.Len())
	}
	packed := 0
	for index := 0; index < 3; index++ {
		element := tuple.Index(index)
		if element.Kind() == reflect.Interface {
			element = element.Elem()
		}
		var channel int64
		switch element.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			channel = element.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if element.Uint() > 255 {
				return nil, invalidArgument("accent_color", "RGB channel %d is %d, want 0..255", index, element.Uint())
			}
			channel = int64(element.Uint())
		case reflect.Float64:
			// Decoded JSON/YAML numbers arrive as float64.
			float := element.Float()
			if float != float64(int64(float)) {
				return nil, invalidArgument("accent_color", "RGB channel %d is not an integer: %v", index, float)
			}
			channel = int64(float)
		default:
			return nil, invalidArgument("accent_color", "RGB channel %d has unsupported type %s", index, element.Kind())
		}
		if channel < 0 || channel > 255 {
			return nil, invalidArgument("accent_color", "RGB channel %d is %d, want 0..255", index, channel)
		}
		packed = packed<<8 | int(channel)
	}
	return &packed, nil
}
