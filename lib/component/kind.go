// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import "fmt"

// Kind is the wire discriminant carried in every component's "type"
// field. Values 15 and 16 are reserved by the platform and are not
// assigned here.
type Kind int

const (
	KindActionRow         Kind = 1
	KindButton            Kind = 2
	KindStringSelect      Kind = 3
	KindTextInput         Kind = 4
	KindUserSelect        Kind = 5
	KindRoleSelect        Kind = 6
	KindMentionableSelect Kind = 7
	KindChannelSelect     Kind = 8
	KindSection           Kind = 9
	KindTextDisplay       Kind = 10
	KindThumbnail         Kind = 11
	KindMediaGallery      Kind = 12
	KindFile              Kind = 13
	KindSeparator         Kind = 14
	KindContainer         Kind = 17
)

// kindNames is the closed set of known kinds. It is the single source
// for Kinds, Known, String, and ParseKind.
var kindNames = map[Kind]string{
	KindActionRow:         "action_row",
	KindButton:            "button",
	KindStringSelect:      "string_select",
	KindTextInput:         "text_input",
	KindUserSelect:        "user_select",
	KindRoleSelect:        "role_select",
	KindMentionableSelect: "mentionable_select",
	KindChannelSelect:     "channel_select",
	KindSection:           "section",
	KindTextDisplay:       "text_display",
	KindThumbnail:         "thumbnail",
	KindMediaGallery:      "media_gallery",
	KindFile:              "file",
	KindSeparator:         "separator",
	KindContainer:         "container",
}

var kindsByName = func() map[string]Kind {
	byName := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		byName[name] = kind
	}
	return byName
}()

// Kinds returns every known kind in ascending discriminant order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for kind := KindActionRow; kind <= KindContainer; kind++ {
		if _, ok := kindNames[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Known reports whether k is a discriminant this package can decode.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// String returns the snake_case name, or "kind(N)" for unknown values.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind looks up a kind by its snake_case name.
func ParseKind(name string) (Kind, bool) {
	kind, ok := kindsByName[name]
	return kind, ok
}

// IsSelect reports whether k is one of the five select menu kinds.
func (k Kind) IsSelect() bool {
	switch k {
	case KindStringSelect, KindUserSelect, KindRoleSelect, KindMentionableSelect, KindChannelSelect:
		return true
	}
	return false
}

// IsInteractive reports whether k may appear inside an action row.
func (k Kind) IsInteractive() bool {
	return k == KindButton || k == KindTextInput || k.IsSelect()
}

// ButtonStyle selects a button's color and behavior.
type ButtonStyle int

const (
	ButtonPrimary   ButtonStyle = 1
	ButtonSecondary ButtonStyle = 2
	ButtonSuccess   ButtonStyle = 3
	ButtonDanger    ButtonStyle = 4
	// ButtonLink opens URL instead of sending an interaction.
	ButtonLink ButtonStyle = 5
)

var buttonStyleNames = [...]string{
	ButtonPrimary:   "primary",
	ButtonSecondary: "secondary",
	ButtonSuccess:   "success",
	ButtonDanger:    "danger",
	ButtonLink:      "link",
}

// Valid reports whether s is one of the five defined styles.
func (s ButtonStyle) Valid() bool {
	return s >= ButtonPrimary && s <= ButtonLink
}

func (s ButtonStyle) String() string {
	if s.Valid() {
		return buttonStyleNames[s]
	}
	return fmt.Sprintf("button_style(%d)", int(s))
}

// ParseButtonStyle looks up a style by name ("primary", "link", ...).
func ParseButtonStyle(name string) (ButtonStyle, bool) {
	for style := ButtonPrimary; style <= ButtonLink; style++ {
		if buttonStyleNames[style] == name {
			return style, true
		}
	}
	return 0, false
}

// SeparatorSpacing is the vertical padding around a separator.
type SeparatorSpacing int

const (
	SpacingSmall SeparatorSpacing = 1
	SpacingLarge SeparatorSpacing = 2
)

var spacingNames = [...]string{
	SpacingSmall: "small",
	SpacingLarge: "large",
}

// Valid reports whether s is small or large.
func (s SeparatorSpacing) Valid() bool {
	return s == SpacingSmall || s == SpacingLarge
}

func (s SeparatorSpacing) String() string {
	if s.Valid() {
		return spacingNames[s]
	}
	return fmt.Sprintf("spacing(%d)", int(s))
}

// ParseSeparatorSpacing looks up a spacing by name ("small", "large").
func ParseSeparatorSpacing(name string) (SeparatorSpacing, bool) {
	for spacing := SpacingSmall; spacing <= SpacingLarge; spacing++ {
		if spacingNames[spacing] == name {
			return spacing, true
		}
	}
	return 0, false
}

// TextInputStyle selects single-line or multi-line modal input.
type TextInputStyle int

const (
	TextInputShort     TextInputStyle = 1
	TextInputParagraph TextInputStyle = 2
)

// Valid reports whether s is short or paragraph.
func (s TextInputStyle) Valid() bool {
	return s == TextInputShort || s == TextInputParagraph
}

// LoadingState reports how far the platform got resolving an unfurled
// media URL. Only present on server payloads.
type LoadingState int

const (
	LoadingUnknown    LoadingState = 0
	LoadingInProgress LoadingState = 1
	LoadingSucceeded  LoadingState = 2
	LoadingNotFound   LoadingState = 3
)
