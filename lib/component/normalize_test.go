// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bureau-foundation/chorus/lib/ref"
)

func TestNormalizeColor(t *testing.T) {
	magenta := 0xFF00FF
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"packed int", 0xFF00FF, 0xFF00FF},
		{"hash hex", "#FF00FF", 0xFF00FF},
		{"bare hex lowercase", "ff00ff", 0xFF00FF},
		{"byte array", [3]byte{255, 0, 255}, 0xFF00FF},
		{"int slice", []int{255, 0, 255}, 0xFF00FF},
		{"decoded numbers", []any{float64(255), float64(0), float64(255)}, 0xFF00FF},
		{"color.Color", color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}, 0xFF00FF},
		{"pointer", &magenta, 0xFF00FF},
		{"zero", 0, 0},
		{"max", uint32(0xFFFFFF), 0xFFFFFF},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NormalizeColor(test.input)
			if err != nil {
				t.Fatalf("NormalizeColor(%v): %v", test.input, err)
			}
			if got == nil || *got != test.want {
				t.Errorf("NormalizeColor(%v) = %v, want %#x", test.input, got, test.want)
			}
		})
	}

	for _, bad := range []any{0x1000000, -1, uint64(1 << 32), "#FF00F", "#GG00FF", []int{1, 2}, []int{1, 2, 3, 4}, []int{256, 0, 0}, []any{1.5, 0, 0}, 3.5, struct{}{}} {
		if _, err := NormalizeColor(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NormalizeColor(%#v) error = %v, want ErrInvalidArgument", bad, err)
		}
	}

	got, err := NormalizeColor(nil)
	if err != nil || got != nil {
		t.Errorf("NormalizeColor(nil) = %v, %v", got, err)
	}
}

func TestAbsentColorIsOmitted(t *testing.T) {
	container := NewContainer().AccentColor(nil)
	container.TextDisplay("plain")
	node, err := container.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	require.JSONEq(t, `{"type":17,"components":[{"type":10,"content":"plain"}]}`, mustMarshal(t, node))

	black := NewContainer().AccentColor(0)
	black.TextDisplay("black")
	node, err = black.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	require.JSONEq(t, `{"type":17,"accent_color":0,"components":[{"type":10,"content":"black"}]}`, mustMarshal(t, node))
}

type cachedEmoji struct{ id ref.Snowflake }

func (c cachedEmoji) EmojiID() ref.Snowflake { return c.id }

func TestNormalizeEmoji(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  Emoji
	}{
		{"integer", 123, Emoji{ID: 123}},
		{"unsigned", uint64(123), Emoji{ID: 123}},
		{"snowflake", ref.Snowflake(123), Emoji{ID: 123}},
		{"numeric string", "123", Emoji{ID: 123}},
		{"unicode", "😀", Emoji{Name: "😀"}},
		{"mention", "<:party:456>", Emoji{ID: 456, Name: "party"}},
		{"animated mention", "<a:spin:789>", Emoji{ID: 789, Name: "spin", Animated: true}},
		{"value", Emoji{Name: "✅"}, Emoji{Name: "✅"}},
		{"pointer", &Emoji{ID: 9, Name: "x"}, Emoji{ID: 9, Name: "x"}},
		{"identifier", cachedEmoji{id: 321}, Emoji{ID: 321}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NormalizeEmoji(test.input)
			if err != nil {
				t.Fatalf("NormalizeEmoji(%v): %v", test.input, err)
			}
			if got == nil || *got != test.want {
				t.Errorf("NormalizeEmoji(%v) = %+v, want %+v", test.input, got, test.want)
			}
		})
	}

	for _, bad := range []any{0, -5, "", "   ", Emoji{}, cachedEmoji{}, 1.5, []int{1}} {
		if _, err := NormalizeEmoji(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NormalizeEmoji(%#v) error = %v, want ErrInvalidArgument", bad, err)
		}
	}

	got, err := NormalizeEmoji(nil)
	if err != nil || got != nil {
		t.Errorf("NormalizeEmoji(nil) = %v, %v", got, err)
	}
}

func TestEmojiWireShape(t *testing.T) {
	id, err := NewButton(ButtonPrimary).CustomID("a").Emoji(123).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	require.JSONEq(t, `{"type":2,"style":1,"custom_id":"a","emoji":{"id":"123"}}`, mustMarshal(t, id))

	name, err := NewButton(ButtonPrimary).CustomID("b").Emoji("😀").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	require.JSONEq(t, `{"type":2,"style":1,"custom_id":"b","emoji":{"name":"😀"}}`, mustMarshal(t, name))

	none, err := NewButton(ButtonPrimary).CustomID("c").Label("c").Emoji(nil).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	require.JSONEq(t, `{"type":2,"style":1,"custom_id":"c","label":"c"}`, mustMarshal(t, none))
}
