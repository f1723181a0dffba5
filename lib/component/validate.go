// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"fmt"
	"strings"
)

// Platform limits enforced when building outbound trees.
const (
	MaxActionRowChildren  = 5
	MaxSectionTexts       = 3
	MaxGalleryItems       = 10
	MaxSelectOptions      = 25
	MaxCustomIDLength     = 100
	MaxButtonLabelLength  = 80
	MaxTotalComponents    = 40
	maxSelectValuesBound  = 25
	maxTextInputLengthCap = 4000
)

// Validate checks an outbound tree against the rules builders enforce:
// button link/custom_id exclusivity, select option placement, child
// placement, and platform limits. Parsed trees are not validated
// automatically; call Validate before re-sending a tree that did not
// come from a builder.
func Validate(root Component) error {
	var failure error
	Walk(root, func(node Component) bool {
		if err := validateNode(node); err != nil {
			failure = err
			return false
		}
		return true
	})
	return failure
}

// ValidateAll validates every tree and the total node count.
func ValidateAll(roots []Component) error {
	for index, root := range roots {
		if root == nil {
			return fmt.Errorf("component: [%d]: %w", index, invalidArgument("component", "nil component"))
		}
		if err := Validate(root); err != nil {
			return fmt.Errorf("component: [%d]: %w", index, err)
		}
	}
	if total := Count(roots); total > MaxTotalComponents {
		return invalidArgument("components", "%d components exceed the limit of %d", total, MaxTotalComponents)
	}
	return nil
}

// validateNode checks one node without descending into its children
// beyond their kinds.
func validateNode(node Component) error {
	switch typed := node.(type) {
	case *Button:
		return validateButton(typed)
	case *SelectMenu:
		return validateSelectMenu(typed)
	case *TextInput:
		return validateTextInput(typed)
	case *TextDisplay:
		if typed.Content == "" {
			return invalidArgument("content", "text display content is empty")
		}
	case *Thumbnail:
		if typed.Media.URL == "" {
			return invalidArgument("media", "thumbnail media url is required")
		}
	case *File:
		if typed.File.URL == "" {
			return invalidArgument("file", "file url is required")
		}
		if !typed.File.IsAttachment() {
			return invalidArgument("file", "file url %q must use the %s scheme", typed.File.URL, attachmentScheme)
		}
	case *Separator:
		if typed.Spacing != 0 && !typed.Spacing.Valid() {
			return invalidArgument("spacing", "unknown separator spacing %d", int(typed.Spacing))
		}
	case *MediaGallery:
		if len(typed.Items) == 0 || len(typed.Items) > MaxGalleryItems {
			return invalidArgument("items", "media gallery needs 1..%d items, has %d", MaxGalleryItems, len(typed.Items))
		}
		for index, item := range typed.Items {
			if item.Media.URL == "" {
				return invalidArgument("items", "item %d has no media url", index)
			}
		}
	case *ActionRow:
		return validateActionRow(typed)
	case *Section:
		return validateSection(typed)
	case *Container:
		if len(typed.Components) == 0 {
			return invalidArgument("components", "container is empty")
		}
		for index, child := range typed.Components {
			if child == nil {
				return invalidArgument("components", "container child %d is nil", index)
			}
		}
		if typed.AccentColor != nil && (*typed.AccentColor < 0 || *typed.AccentColor > MaxColor) {
			return invalidArgument("accent_color", "%#x is outside 0x0..%#x", *typed.AccentColor, MaxColor)
		}
	case nil:
		return invalidArgument("component", "nil component")
	default:
		return invalidArgument("component", "unsupported component %T", node)
	}
	return nil
}

func validateButton(button *Button) error {
	if !button.Style.Valid() {
		return invalidArgument("style", "unknown button style %d", int(button.Style))
	}
	if button.Label == "" && button.Emoji == nil {
		return invalidArgument("label", "button needs a label or an emoji")
	}
	if len(button.Label) > MaxButtonLabelLength {
		return invalidArgument("label", "label exceeds %d characters", MaxButtonLabelLength)
	}
	if button.Style == ButtonLink {
		if button.URL == "" {
			return invalidArgument("url", "link buttons require a url")
		}
		if button.CustomID != "" {
			return invalidArgument("custom_id", "link buttons cannot have a custom_id")
		}
		return nil
	}
	if button.URL != "" {
		return invalidArgument("url", "%s buttons cannot have a url", button.Style)
	}
	return validateCustomID(button.CustomID)
}

func validateCustomID(customID string) error {
	if customID == "" {
		return invalidArgument("custom_id", "custom_id is required")
	}
	if len(customID) > MaxCustomIDLength {
		return invalidArgument("custom_id", "custom_id exceeds %d characters", MaxCustomIDLength)
	}
	return nil
}

func validateSelectMenu(menu *SelectMenu) error {
	if !menu.kind.IsSelect() {
		return invalidArgument("type", "select menu has non-select kind %s", menu.kind)
	}
	if err := validateCustomID(menu.CustomID); err != nil {
		return err
	}
	if menu.kind == KindStringSelect {
		if len(menu.Options) == 0 || len(menu.Options) > MaxSelectOptions {
			return invalidArgument("options", "string select needs 1..%d options, has %d", MaxSelectOptions, len(menu.Options))
		}
		for index, option := range menu.Options {
			if option.Label == "" || option.Value == "" {
				return invalidArgument("options", "option %d needs a label and a value", index)
			}
		}
		if len(menu.DefaultValues) > 0 {
			return invalidArgument("default_values", "string selects mark defaults on their options")
		}
	} else if len(menu.Options) > 0 {
		return invalidArgument("options", "%s menus select platform entities and carry no options", menu.kind)
	}
	if len(menu.ChannelTypes) > 0 && menu.kind != KindChannelSelect {
		return invalidArgument("channel_types", "only channel selects accept channel_types")
	}
	for index, value := range menu.DefaultValues {
		if value.ID.IsZero() {
			return invalidArgument("default_values", "default value %d has no id", index)
		}
		if !defaultValueAllowed(menu.kind, value.Type) {
			return invalidArgument("default_values", "%s menus cannot default to a %q", menu.kind, value.Type)
		}
	}
	minimum, maximum := 1, 1
	if menu.MinValues != nil {
		minimum = *menu.MinValues
		if minimum < 0 || minimum > maxSelectValuesBound {
			return invalidArgument("min_values", "min_values must be 0..%d, got %d", maxSelectValuesBound, minimum)
		}
	}
	if menu.MaxValues != nil {
		maximum = *menu.MaxValues
		if maximum < 1 || maximum > maxSelectValuesBound {
			return invalidArgument("max_values", "max_values must be 1..%d, got %d", maxSelectValuesBound, maximum)
		}
	} else if minimum > maximum {
		maximum = minimum
	}
	if minimum > maximum {
		return invalidArgument("min_values", "min_values %d exceeds max_values %d", minimum, maximum)
	}
	if len(menu.DefaultValues) > maximum {
		return invalidArgument("default_values", "%d defaults exceed max_values %d", len(menu.DefaultValues), maximum)
	}
	return nil
}

func defaultValueAllowed(kind Kind, valueType string) bool {
	switch kind {
	case KindUserSelect:
		return valueType == DefaultValueUser
	case KindRoleSelect:
		return valueType == DefaultValueRole
	case KindMentionableSelect:
		return valueType == DefaultValueUser || valueType == DefaultValueRole
	case KindChannelSelect:
		return valueType == DefaultValueChannel
	}
	return false
}

func validateTextInput(input *TextInput) error {
	if err := validateCustomID(input.CustomID); err != nil {
		return err
	}
	if !input.Style.Valid() {
		return invalidArgument("style", "unknown text input style %d", int(input.Style))
	}
	if strings.TrimSpace(input.Label) == "" {
		return invalidArgument("label", "text input label is required")
	}
	if input.MinLength != nil && (*input.MinLength < 0 || *input.MinLength > maxTextInputLengthCap) {
		return invalidArgument("min_length", "min_length must be 0..%d", maxTextInputLengthCap)
	}
	if input.MaxLength != nil && (*input.MaxLength < 1 || *input.MaxLength > maxTextInputLengthCap) {
		return invalidArgument("max_length", "max_length must be 1..%d", maxTextInputLengthCap)
	}
	if input.MinLength != nil && input.MaxLength != nil && *input.MinLength > *input.MaxLength {
		return invalidArgument("min_length", "min_length %d exceeds max_length %d", *input.MinLength, *input.MaxLength)
	}
	return nil
}

func validateActionRow(row *ActionRow) error {
	if len(row.Components) == 0 || len(row.Components) > MaxActionRowChildren {
		return invalidArgument("components", "action row needs 1..%d components, has %d", MaxActionRowChildren, len(row.Components))
	}
	for index, child := range row.Components {
		if child == nil {
			return invalidArgument("components", "action row child %d is nil", index)
		}
		kind := child.Kind()
		if !kind.IsInteractive() {
			return invalidArgument("components", "%s cannot appear in an action row", kind)
		}
		if (kind.IsSelect() || kind == KindTextInput) && len(row.Components) > 1 {
			return invalidArgument("components", "a %s must be alone in its action row", kind)
		}
	}
	return nil
}

func validateSection(section *Section) error {
	if len(section.Components) == 0 || len(section.Components) > MaxSectionTexts {
		return invalidArgument("components", "section needs 1..%d text displays, has %d", MaxSectionTexts, len(section.Components))
	}
	for index, child := range section.Components {
		if child == nil || child.Kind() != KindTextDisplay {
			return invalidArgument("components", "section child %d must be a text display", index)
		}
	}
	if section.Accessory == nil {
		return invalidArgument("accessory", "section requires an accessory")
	}
	if kind := section.Accessory.Kind(); kind != KindButton && kind != KindThumbnail {
		return invalidArgument("accessory", "accessory must be a button or thumbnail, got %s", kind)
	}
	return nil
}
