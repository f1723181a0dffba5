// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import "fmt"

// ActionRowBuilder configures an ActionRow. Child builders are added
// through the typed methods, each of which calls configure (when
// non-nil) synchronously and returns the child for further chaining.
type ActionRowBuilder struct {
	failure
	id       int
	children []Builder
}

// NewActionRow starts a row of buttons or a single select menu.
func NewActionRow() *ActionRowBuilder {
	return &ActionRowBuilder{}
}

// ID sets the row's numeric component id.
func (r *ActionRowBuilder) ID(id int) *ActionRowBuilder {
	r.id = id
	return r
}

// Button appends a button of the given style.
func (r *ActionRowBuilder) Button(style ButtonStyle, configure func(*ButtonBuilder)) *ButtonBuilder {
	button := NewButton(style)
	if configure != nil {
		configure(button)
	}
	r.children = append(r.children, button)
	return button
}

// LinkButton appends a link button.
func (r *ActionRowBuilder) LinkButton(label, url string) *ButtonBuilder {
	button := NewLinkButton(label, url)
	r.children = append(r.children, button)
	return button
}

// SelectMenu appends a select of the given kind.
func (r *ActionRowBuilder) SelectMenu(kind Kind, customID string, configure func(*SelectMenuBuilder)) *SelectMenuBuilder {
	menu := NewSelectMenuBuilder(kind, customID)
	if configure != nil {
		configure(menu)
	}
	r.children = append(r.children, menu)
	return menu
}

// TextInput appends a modal text input.
func (r *ActionRowBuilder) TextInput(customID string, style TextInputStyle, label string, configure func(*TextInputBuilder)) *TextInputBuilder {
	input := NewTextInput(customID, style, label)
	if configure != nil {
		configure(input)
	}
	r.children = append(r.children, input)
	return input
}

// Build validates the row and its children and returns its node.
func (r *ActionRowBuilder) Build() (Component, error) {
	if r.err != nil {
		return nil, r.err
	}
	children, err := buildChildren(KindActionRow, r.children)
	if err != nil {
		return nil, err
	}
	row := &ActionRow{ID: r.id, Components: children}
	if err := validateActionRow(row); err != nil {
		return nil, err
	}
	return row, nil
}

// SectionBuilder configures a Section: one to three text displays plus
// exactly one accessory.
type SectionBuilder struct {
	failure
	id        int
	texts     []Builder
	accessory Builder
}

// NewSection starts a block of text displays with one accessory.
func NewSection() *SectionBuilder {
	return &SectionBuilder{}
}

// ID sets the section's numeric component id.
func (s *SectionBuilder) ID(id int) *SectionBuilder {
	s.id = id
	return s
}

// TextDisplay appends a text child.
func (s *SectionBuilder) TextDisplay(content string) *TextDisplayBuilder {
	text := NewTextDisplay(content)
	s.texts = append(s.texts, text)
	return text
}

// ButtonAccessory sets the accessory to a button. Setting a second
// accessory records an invalid argument.
func (s *SectionBuilder) ButtonAccessory(style ButtonStyle, configure func(*ButtonBuilder)) *ButtonBuilder {
	button := NewButton(style)
	if configure != nil {
		configure(button)
	}
	s.setAccessory(button)
	return button
}

// ThumbnailAccessory sets the accessory to a thumbnail of url.
func (s *SectionBuilder) ThumbnailAccessory(url string, configure func(*ThumbnailBuilder)) *ThumbnailBuilder {
	thumbnail := NewThumbnail(url)
	if configure != nil {
		configure(thumbnail)
	}
	s.setAccessory(thumbnail)
	return thumbnail
}

func (s *SectionBuilder) setAccessory(accessory Builder) {
	if s.accessory != nil {
		s.fail(invalidArgument("accessory", "section already has an accessory"))
		return
	}
	s.accessory = accessory
}

// Build validates the section and its children and returns its node.
func (s *SectionBuilder) Build() (Component, error) {
	if s.err != nil {
		return nil, s.err
	}
	texts, err := buildChildren(KindSection, s.texts)
	if err != nil {
		return nil, err
	}
	section := &Section{ID: s.id, Components: texts}
	if s.accessory != nil {
		accessory, err := s.accessory.Build()
		if err != nil {
			return nil, fmt.Errorf("component: section.accessory: %w", err)
		}
		section.Accessory = accessory
	}
	if err := validateSection(section); err != nil {
		return nil, err
	}
	return section, nil
}

// layout holds the ordered child builders shared by View and
// ContainerBuilder, and the methods that append to them.
type layout struct {
	failure
	children []Builder
	sealed   bool
}

func (l *layout) add(child Builder) {
	if l.sealed {
		l.fail(ErrViewSealed)
		return
	}
	l.children = append(l.children, child)
}

// Add appends any builder, including Prebuilt nodes.
func (l *layout) Add(child Builder) {
	if child == nil {
		l.fail(invalidArgument("component", "nil builder"))
		return
	}
	l.add(child)
}

// ActionRow appends an action row.
func (l *layout) ActionRow(configure func(*ActionRowBuilder)) *ActionRowBuilder {
	row := NewActionRow()
	if configure != nil {
		configure(row)
	}
	l.add(row)
	return row
}

// TextDisplay appends a text display.
func (l *layout) TextDisplay(content string) *TextDisplayBuilder {
	text := NewTextDisplay(content)
	l.add(text)
	return text
}

// Section appends a section.
func (l *layout) Section(configure func(*SectionBuilder)) *SectionBuilder {
	section := NewSection()
	if configure != nil {
		configure(section)
	}
	l.add(section)
	return section
}

// MediaGallery appends a media gallery.
func (l *layout) MediaGallery(configure func(*MediaGalleryBuilder)) *MediaGalleryBuilder {
	gallery := NewMediaGallery()
	if configure != nil {
		configure(gallery)
	}
	l.add(gallery)
	return gallery
}

// Separator appends a separator.
func (l *layout) Separator(configure func(*SeparatorBuilder)) *SeparatorBuilder {
	separator := NewSeparator()
	if configure != nil {
		configure(separator)
	}
	l.add(separator)
	return separator
}

// File appends a file display for an attachment:// url.
func (l *layout) File(url string, configure func(*FileBuilder)) *FileBuilder {
	file := NewFile(url)
	if configure != nil {
		configure(file)
	}
	l.add(file)
	return file
}

// ContainerBuilder configures a Container.
type ContainerBuilder struct {
	layout
	id          int
	accentColor *int
	spoiler     bool
}

// NewContainer starts a bordered group of layout components.
func NewContainer() *ContainerBuilder {
	return &ContainerBuilder{}
}

// ID sets the container's numeric component id.
func (c *ContainerBuilder) ID(id int) *ContainerBuilder {
	c.id = id
	return c
}

// AccentColor sets the accent bar color from any form NormalizeColor
// accepts. nil clears it.
func (c *ContainerBuilder) AccentColor(color any) *ContainerBuilder {
	normalized, err := NormalizeColor(color)
	if err != nil {
		c.fail(err)
		return c
	}
	c.accentColor = normalized
	return c
}

// Spoiler blurs the container until clicked.
func (c *ContainerBuilder) Spoiler(spoiler bool) *ContainerBuilder {
	c.spoiler = spoiler
	return c
}

// Build validates the container and its children and returns its node.
func (c *ContainerBuilder) Build() (Component, error) {
	if c.err != nil {
		return nil, c.err
	}
	children, err := buildChildren(KindContainer, c.children)
	if err != nil {
		return nil, err
	}
	container := &Container{
		ID:          c.id,
		Components:  children,
		AccentColor: c.accentColor,
		Spoiler:     c.spoiler,
	}
	if err := validateNode(container); err != nil {
		return nil, err
	}
	return container, nil
}

func buildChildren(parent Kind, builders []Builder) ([]Component, error) {
	children := make([]Component, 0, len(builders))
	for index, builder := range builders {
		child, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("component: %s.components[%d]: %w", parent, index, err)
		}
		children = append(children, child)
	}
	return children, nil
}
