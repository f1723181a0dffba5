// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"reflect"
	"strings"

	"github.com/bureau-foundation/chorus/lib/ref"
)

// Emoji is a partial emoji reference as it appears on buttons, select
// options, and soundboard sounds. Custom emoji carry ID (and usually
// Name); unicode emoji carry only Name.
type Emoji struct {
	ID       ref.Snowflake `json:"id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Animated bool          `json:"animated,omitempty"`
}

// IsCustom reports whether the emoji refers to a guild emoji by ID.
func (e Emoji) IsCustom() bool { return !e.ID.IsZero() }

// EmojiIdentifier is implemented by entities that can stand in for a
// custom emoji (for example a cached guild emoji object).
type EmojiIdentifier interface {
	EmojiID() ref.Snowflake
}

// NormalizeEmoji converts the forms callers use to name an emoji into
// the wire shape. Every call site that accepts an emoji goes through
// this function.
//
//   - nil → nil (no emoji)
//   - positive integer, ref.Snowflake, or all-digit string → {id}
//   - "<:name:id>" or "<a:name:id>" mention syntax → {id, name, animated}
//   - any other non-empty string → {name} (a unicode emoji)
//   - Emoji or *Emoji → a copy
//   - EmojiIdentifier → {id}
//
// Zero or negative integers, empty strings, and unsupported types are
// InvalidArgument errors.
func NormalizeEmoji(value any) (*Emoji, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case Emoji:
		return checkEmoji(typed)
	case *Emoji:
		if typed == nil {
			return nil, nil
		}
		return checkEmoji(*typed)
	case ref.Snowflake:
		if typed.IsZero() {
			return nil, invalidArgument("emoji", "zero emoji id")
		}
		return &Emoji{ID: typed}, nil
	case string:
		return emojiFromString(typed)
	case EmojiIdentifier:
		id := typed.EmojiID()
		if id.IsZero() {
			return nil, invalidArgument("emoji", "%T has a zero emoji id", value)
		}
		return &Emoji{ID: id}, nil
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if reflected.Int() <= 0 {
			return nil, invalidArgument("emoji", "emoji id must be positive, got %d", reflected.Int())
		}
		return &Emoji{ID: ref.Snowflake(reflected.Int())}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if reflected.Uint() == 0 {
			return nil, invalidArgument("emoji", "emoji id must be positive, got 0")
		}
		return &Emoji{ID: ref.Snowflake(reflected.Uint())}, nil
	}
	return nil, invalidArgument("emoji", "unsupported emoji value of type %T", value)
}

func checkEmoji(emoji Emoji) (*Emoji, error) {
	if emoji.ID.IsZero() && emoji.Name == "" {
		return nil, invalidArgument("emoji", "emoji has neither id nor name")
	}
	return &emoji, nil
}

func emojiFromString(raw string) (*Emoji, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, invalidArgument("emoji", "empty emoji string")
	}
	if isDigits(trimmed) {
		id, err := ref.ParseSnowflake(trimmed)
		if err != nil {
			return nil, invalidArgument("emoji", "%v", err)
		}
		if id.IsZero() {
			return nil, invalidArgument("emoji", "zero emoji id")
		}
		return &Emoji{ID: id}, nil
	}
	if emoji, ok := parseEmojiMention(trimmed); ok {
		return emoji, nil
	}
	return &Emoji{Name: trimmed}, nil
}

// parseEmojiMention parses "<:name:id>" and "<a:name:id>".
func parseEmojiMention(raw string) (*Emoji, bool) {
	if !strings.HasPrefix(raw, "<") || !strings.HasSuffix(raw, ">") {
		return nil, false
	}
	parts := strings.Split(raw[1:len(raw)-1], ":")
	if len(parts) != 3 || (parts[0] != "" && parts[0] != "a") || parts[1] == "" || !isDigits(parts[2]) {
		return nil, false
	}
	id, err := ref.ParseSnowflake(parts[2])
	if err != nil || id.IsZero() {
		return nil, false
	}
	return &Emoji{ID: id, Name: parts[1], Animated: parts[0] == "a"}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
