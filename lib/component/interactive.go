// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"encoding/json"

	"github.com/bureau-foundation/chorus/lib/ref"
)

// Button is a clickable button. Link buttons (Style == ButtonLink) carry
// URL and no CustomID; every other style carries CustomID and no URL.
// The parser trusts server payloads; builders enforce the rule. SKUID
// is set by the server on purchase buttons and is preserved on
// re-serialization.
type Button struct {
	ID       int           `json:"id,omitempty"`
	Style    ButtonStyle   `json:"style"`
	Label    string        `json:"label,omitempty"`
	Emoji    *Emoji        `json:"emoji,omitempty"`
	CustomID string        `json:"custom_id,omitempty"`
	URL      string        `json:"url,omitempty"`
	SKUID    ref.Snowflake `json:"sku_id,omitempty"`
	Disabled bool          `json:"disabled,omitempty"`
}

func (*Button) Kind() Kind         { return KindButton }
func (b *Button) ComponentID() int { return b.ID }
func (*Button) component()         {}

func (b *Button) MarshalJSON() ([]byte, error) {
	type fields Button
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindButton, (*fields)(b)})
}

// SelectOption is one literal choice in a string select. It is a value
// type, not a node.
type SelectOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Emoji       *Emoji `json:"emoji,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

// Default value types for entity selects.
const (
	DefaultValueUser    = "user"
	DefaultValueRole    = "role"
	DefaultValueChannel = "channel"
)

// DefaultValue pre-selects an entity in a user, role, mentionable, or
// channel select.
type DefaultValue struct {
	ID   ref.Snowflake `json:"id"`
	Type string        `json:"type"`
}

// SelectMenu is a dropdown. Its kind is fixed at construction to one of
// the five select kinds: string selects carry literal Options; user,
// role, mentionable, and channel selects choose platform entities and
// carry no option list (ChannelTypes narrows channel selects,
// DefaultValues pre-selects entities).
//
// MinValues and MaxValues are pointers because zero is a meaningful
// minimum distinct from "platform default".
type SelectMenu struct {
	ID            int            `json:"id,omitempty"`
	CustomID      string         `json:"custom_id"`
	Options       []SelectOption `json:"options,omitempty"`
	ChannelTypes  []int          `json:"channel_types,omitempty"`
	DefaultValues []DefaultValue `json:"default_values,omitempty"`
	Placeholder   string         `json:"placeholder,omitempty"`
	MinValues     *int           `json:"min_values,omitempty"`
	MaxValues     *int           `json:"max_values,omitempty"`
	Disabled      bool           `json:"disabled,omitempty"`

	kind Kind
}

// NewSelectMenu returns an empty select menu of the given select kind.
// Panics if kind is not a select kind; the argument is always a
// compile-time constant at call sites.
func NewSelectMenu(kind Kind, customID string) *SelectMenu {
	if !kind.IsSelect() {
		panic("component.NewSelectMenu: " + kind.String() + " is not a select kind")
	}
	return &SelectMenu{kind: kind, CustomID: customID}
}

func (s *SelectMenu) Kind() Kind       { return s.kind }
func (s *SelectMenu) ComponentID() int { return s.ID }
func (*SelectMenu) component()         {}

func (s *SelectMenu) MarshalJSON() ([]byte, error) {
	type fields SelectMenu
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{s.kind, (*fields)(s)})
}

// TextInput is a text field inside a modal's action row.
type TextInput struct {
	ID          int            `json:"id,omitempty"`
	CustomID    string         `json:"custom_id"`
	Style       TextInputStyle `json:"style"`
	Label       string         `json:"label,omitempty"`
	MinLength   *int           `json:"min_length,omitempty"`
	MaxLength   *int           `json:"max_length,omitempty"`
	Required    *bool          `json:"required,omitempty"`
	Value       string         `json:"value,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
}

func (*TextInput) Kind() Kind         { return KindTextInput }
func (t *TextInput) ComponentID() int { return t.ID }
func (*TextInput) component()         {}

func (t *TextInput) MarshalJSON() ([]byte, error) {
	type fields TextInput
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindTextInput, (*fields)(t)})
}
