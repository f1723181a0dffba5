// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Parser decodes wire payloads into component trees.
//
// Strict controls unknown discriminants inside lists (an action row's,
// section's, or container's children, or a top-level component array).
// When false (the default), such elements are dropped and logged at
// debug level so that payloads carrying newer component types still
// decode. When true, ParseList and parent nodes fail with
// *UnknownKindError. A single Parse of an unknown discriminant always
// returns *UnknownKindError: there is no parent list to drop it from.
//
// A Section accessory that is not a Button or Thumbnail is always a
// *MalformedPayloadError, in both modes, because a section without a
// valid accessory is meaningless.
type Parser struct {
	Strict bool
	// Logger receives debug records for dropped components. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// defaultParser is the lenient parser behind Parse, ParseList, and
// Components.UnmarshalJSON.
var defaultParser = &Parser{}

// Parse decodes one component with the default (lenient) parser.
func Parse(data []byte) (Component, error) {
	return defaultParser.Parse(data)
}

// ParseList decodes a component array with the default (lenient) parser.
func ParseList(data []byte) ([]Component, error) {
	return defaultParser.ParseList(data)
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// discriminant extracts just the "type" field before the variant is
// known.
type discriminant struct {
	Type *Kind `json:"type"`
}

// Parse decodes a single component object.
func (p *Parser) Parse(data []byte) (Component, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &MalformedPayloadError{Reason: "component is not a JSON object", Err: err}
	}
	if fields == nil {
		return nil, &MalformedPayloadError{Reason: "component is null"}
	}
	var tag discriminant
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, &MalformedPayloadError{Field: "type", Reason: "type is not an integer", Err: err}
	}
	if tag.Type == nil {
		return nil, &MalformedPayloadError{Field: "type", Reason: "required field missing"}
	}
	return p.dispatch(*tag.Type, data, fields)
}

// ParseValue decodes a component already held as a generic map, as
// produced by decoding YAML or JSON into map[string]any.
func (p *Parser) ParseValue(value map[string]any) (Component, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &MalformedPayloadError{Reason: "component value is not JSON-encodable", Err: err}
	}
	return p.Parse(data)
}

// ParseList decodes a JSON array of components. Unknown discriminants
// are dropped unless the parser is strict.
func (p *Parser) ParseList(data []byte) ([]Component, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, &MalformedPayloadError{Reason: "component list is not a JSON array", Err: err}
	}
	return p.parseChildren(0, "", elements)
}

// dispatch is the single exhaustive switch from discriminant to
// decoder. Adding a Kind without a case here makes
// TestEveryKindDispatches fail.
func (p *Parser) dispatch(kind Kind, data []byte, fields map[string]json.RawMessage) (Component, error) {
	switch kind {
	case KindActionRow:
		return p.parseActionRow(data)
	case KindButton:
		button, err := decodeLeaf[Button](kind, data, fields, "style")
		if err != nil {
			return nil, err
		}
		return button, nil
	case KindStringSelect, KindUserSelect, KindRoleSelect, KindMentionableSelect, KindChannelSelect:
		menu, err := decodeLeaf[SelectMenu](kind, data, fields, "custom_id")
		if err != nil {
			return nil, err
		}
		menu.kind = kind
		return menu, nil
	case KindTextInput:
		input, err := decodeLeaf[TextInput](kind, data, fields, "custom_id", "style")
		if err != nil {
			return nil, err
		}
		return input, nil
	case KindSection:
		return p.parseSection(data)
	case KindTextDisplay:
		text, err := decodeLeaf[TextDisplay](kind, data, fields, "content")
		if err != nil {
			return nil, err
		}
		return text, nil
	case KindThumbnail:
		thumbnail, err := decodeLeaf[Thumbnail](kind, data, fields, "media")
		if err != nil {
			return nil, err
		}
		if thumbnail.Media.URL == "" {
			return nil, missingField(kind, "media.url")
		}
		return thumbnail, nil
	case KindMediaGallery:
		gallery, err := decodeLeaf[MediaGallery](kind, data, fields, "items")
		if err != nil {
			return nil, err
		}
		for index, item := range gallery.Items {
			if item.Media.URL == "" {
				return nil, missingField(kind, fmt.Sprintf("items[%d].media.url", index))
			}
		}
		return gallery, nil
	case KindFile:
		file, err := decodeLeaf[File](kind, data, fields, "file")
		if err != nil {
			return nil, err
		}
		if file.File.URL == "" {
			return nil, missingField(kind, "file.url")
		}
		return file, nil
	case KindSeparator:
		separator, err := decodeLeaf[Separator](kind, data, fields)
		if err != nil {
			return nil, err
		}
		return separator, nil
	case KindContainer:
		return p.parseContainer(data)
	}
	return nil, &UnknownKindError{Type: kind}
}

// decodeLeaf checks that each required key is present and non-null,
// then decodes the whole object into T. The "type" key is ignored by
// T's default decoding.
func decodeLeaf[T any](kind Kind, data []byte, fields map[string]json.RawMessage, required ...string) (*T, error) {
	for _, name := range required {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, missingField(kind, name)
		}
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, &MalformedPayloadError{Type: kind, Reason: "decoding fields", Err: err}
	}
	return &value, nil
}

func (p *Parser) parseActionRow(data []byte) (Component, error) {
	var wire struct {
		ID         int               `json:"id"`
		Components []json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &MalformedPayloadError{Type: KindActionRow, Reason: "decoding fields", Err: err}
	}
	if wire.Components == nil {
		return nil, missingField(KindActionRow, "components")
	}
	children, err := p.parseChildren(KindActionRow, "components", wire.Components)
	if err != nil {
		return nil, err
	}
	for index, child := range children {
		if !child.Kind().IsInteractive() {
			return nil, &MalformedPayloadError{
				Type:   KindActionRow,
				Field:  fmt.Sprintf("components[%d]", index),
				Reason: fmt.Sprintf("%s cannot appear in an action row", child.Kind()),
			}
		}
	}
	return &ActionRow{ID: wire.ID, Components: children}, nil
}

func (p *Parser) parseSection(data []byte) (Component, error) {
	var wire struct {
		ID         int               `json:"id"`
		Components []json.RawMessage `json:"components"`
		Accessory  json.RawMessage   `json:"accessory"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &MalformedPayloadError{Type: KindSection, Reason: "decoding fields", Err: err}
	}
	if wire.Components == nil {
		return nil, missingField(KindSection, "components")
	}
	if len(bytes.TrimSpace(wire.Accessory)) == 0 || bytes.Equal(bytes.TrimSpace(wire.Accessory), []byte("null")) {
		return nil, missingField(KindSection, "accessory")
	}

	children, err := p.parseChildren(KindSection, "components", wire.Components)
	if err != nil {
		return nil, err
	}
	for index, child := range children {
		if child.Kind() != KindTextDisplay {
			return nil, &MalformedPayloadError{
				Type:   KindSection,
				Field:  fmt.Sprintf("components[%d]", index),
				Reason: fmt.Sprintf("%s cannot appear in a section", child.Kind()),
			}
		}
	}

	accessory, err := p.Parse(wire.Accessory)
	if err != nil {
		var unknown *UnknownKindError
		if errors.As(err, &unknown) {
			return nil, &MalformedPayloadError{
				Type:   KindSection,
				Field:  "accessory",
				Reason: fmt.Sprintf("accessory must be a button or thumbnail, got type %d", int(unknown.Type)),
			}
		}
		return nil, fmt.Errorf("component: section accessory: %w", err)
	}
	if kind := accessory.Kind(); kind != KindButton && kind != KindThumbnail {
		return nil, &MalformedPayloadError{
			Type:   KindSection,
			Field:  "accessory",
			Reason: fmt.Sprintf("accessory must be a button or thumbnail, got %s", kind),
		}
	}
	return &Section{ID: wire.ID, Components: children, Accessory: accessory}, nil
}

func (p *Parser) parseContainer(data []byte) (Component, error) {
	var wire struct {
		ID          int               `json:"id"`
		Components  []json.RawMessage `json:"components"`
		AccentColor *int              `json:"accent_color"`
		Spoiler     bool              `json:"spoiler"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &MalformedPayloadError{Type: KindContainer, Reason: "decoding fields", Err: err}
	}
	if wire.Components == nil {
		return nil, missingField(KindContainer, "components")
	}
	children, err := p.parseChildren(KindContainer, "components", wire.Components)
	if err != nil {
		return nil, err
	}
	return &Container{
		ID:          wire.ID,
		Components:  children,
		AccentColor: wire.AccentColor,
		Spoiler:     wire.Spoiler,
	}, nil
}

// parseChildren decodes each element in order. Unknown discriminants
// are dropped (lenient) or returned (strict); every other error aborts
// with the element's position attached.
func (p *Parser) parseChildren(parent Kind, field string, elements []json.RawMessage) ([]Component, error) {
	children := make([]Component, 0, len(elements))
	for index, element := range elements {
		child, err := p.Parse(element)
		if err == nil {
			children = append(children, child)
			continue
		}
		var unknown *UnknownKindError
		if errors.As(err, &unknown) && !p.Strict {
			p.logger().Debug("dropping unknown component",
				"parent", parent.String(),
				"index", index,
				"type", int(unknown.Type),
			)
			continue
		}
		if parent == 0 {
			return nil, fmt.Errorf("component: [%d]: %w", index, err)
		}
		return nil, fmt.Errorf("component: %s.%s[%d]: %w", parent, field, index, err)
	}
	return children, nil
}
