// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import "encoding/json"

// ActionRow holds up to five interactive components laid out
// horizontally: buttons, a single select menu, or (in modals) a text
// input. It never contains another layout node.
type ActionRow struct {
	ID         int         `json:"id,omitempty"`
	Components []Component `json:"components"`
}

func (*ActionRow) Kind() Kind         { return KindActionRow }
func (a *ActionRow) ComponentID() int { return a.ID }
func (*ActionRow) component()         {}

func (a *ActionRow) MarshalJSON() ([]byte, error) {
	type fields ActionRow
	copied := *a
	if copied.Components == nil {
		copied.Components = []Component{}
	}
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindActionRow, (*fields)(&copied)})
}

// Buttons returns the row's buttons in order.
func (a *ActionRow) Buttons() []*Button {
	var buttons []*Button
	for _, child := range a.Components {
		if button, ok := child.(*Button); ok {
			buttons = append(buttons, button)
		}
	}
	return buttons
}

// SelectMenus returns the row's select menus in order.
func (a *ActionRow) SelectMenus() []*SelectMenu {
	var menus []*SelectMenu
	for _, child := range a.Components {
		if menu, ok := child.(*SelectMenu); ok {
			menus = append(menus, menu)
		}
	}
	return menus
}

// TextInputs returns the row's text inputs in order.
func (a *ActionRow) TextInputs() []*TextInput {
	var inputs []*TextInput
	for _, child := range a.Components {
		if input, ok := child.(*TextInput); ok {
			inputs = append(inputs, input)
		}
	}
	return inputs
}

// Section pairs one to three text displays with exactly one accessory,
// which is a Button or a Thumbnail.
type Section struct {
	ID         int         `json:"id,omitempty"`
	Components []Component `json:"components"`
	Accessory  Component   `json:"accessory"`
}

func (*Section) Kind() Kind         { return KindSection }
func (s *Section) ComponentID() int { return s.ID }
func (*Section) component()         {}

func (s *Section) MarshalJSON() ([]byte, error) {
	type fields Section
	copied := *s
	if copied.Components == nil {
		copied.Components = []Component{}
	}
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindSection, (*fields)(&copied)})
}

// TextDisplays returns the section's text children in order.
func (s *Section) TextDisplays() []*TextDisplay {
	var texts []*TextDisplay
	for _, child := range s.Components {
		if text, ok := child.(*TextDisplay); ok {
			texts = append(texts, text)
		}
	}
	return texts
}

// MediaGallery shows up to ten media items in a grid.
type MediaGallery struct {
	ID    int                `json:"id,omitempty"`
	Items []MediaGalleryItem `json:"items"`
}

func (*MediaGallery) Kind() Kind         { return KindMediaGallery }
func (m *MediaGallery) ComponentID() int { return m.ID }
func (*MediaGallery) component()         {}

func (m *MediaGallery) MarshalJSON() ([]byte, error) {
	type fields MediaGallery
	copied := *m
	if copied.Items == nil {
		copied.Items = []MediaGalleryItem{}
	}
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindMediaGallery, (*fields)(&copied)})
}

// Container groups any components (including action rows) inside a
// visually distinct box with an optional accent color bar.
// AccentColor is a packed 0xRRGGBB value; nil means no accent.
type Container struct {
	ID          int         `json:"id,omitempty"`
	Components  []Component `json:"components"`
	AccentColor *int        `json:"accent_color,omitempty"`
	Spoiler     bool        `json:"spoiler,omitempty"`
}

func (*Container) Kind() Kind         { return KindContainer }
func (c *Container) ComponentID() int { return c.ID }
func (*Container) component()         {}

func (c *Container) MarshalJSON() ([]byte, error) {
	type fields Container
	copied := *c
	if copied.Components == nil {
		copied.Components = []Component{}
	}
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindContainer, (*fields)(&copied)})
}

// Walk calls visit for root and every descendant in depth-first,
// document order: children of action rows, sections, and containers, and
// a section's accessory after its text children. Walk stops early and
// returns false when visit returns false.
func Walk(root Component, visit func(Component) bool) bool {
	if root == nil {
		return true
	}
	if !visit(root) {
		return false
	}
	var children []Component
	switch node := root.(type) {
	case *ActionRow:
		children = node.Components
	case *Container:
		children = node.Components
	case *Section:
		children = append(append([]Component(nil), node.Components...), node.Accessory)
	}
	for _, child := range children {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// FindByCustomID returns the first interactive component in the trees
// whose custom_id equals customID, or nil. Interaction payloads identify
// the clicked component by custom_id, so this is how handlers locate
// the node that produced an interaction.
func FindByCustomID(roots []Component, customID string) Component {
	var found Component
	for _, root := range roots {
		Walk(root, func(node Component) bool {
			switch typed := node.(type) {
			case *Button:
				if typed.CustomID == customID {
					found = typed
				}
			case *SelectMenu:
				if typed.CustomID == customID {
					found = typed
				}
			case *TextInput:
				if typed.CustomID == customID {
					found = typed
				}
			}
			return found == nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Count returns the total number of nodes in the trees. The platform
// caps the total number of components per message.
func Count(roots []Component) int {
	total := 0
	for _, root := range roots {
		Walk(root, func(Component) bool {
			total++
			return true
		})
	}
	return total
}
