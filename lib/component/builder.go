// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import "fmt"

// Builder is implemented by every component builder. Build validates
// the accumulated configuration and returns the finished node. Build
// returns the first invalid argument recorded by a setter, if any,
// before checking anything else.
type Builder interface {
	Build() (Component, error)
}

// failure records the first error reported to a builder. Setters keep
// returning the builder so that chains stay fluent; callers that want
// to react at the call site check Err.
type failure struct {
	err error
}

func (f *failure) fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// Err returns the first invalid argument recorded so far, or nil.
func (f *failure) Err() error { return f.err }

// ButtonBuilder configures a Button.
type ButtonBuilder struct {
	failure
	button Button
}

// NewButton starts a button of the given style.
func NewButton(style ButtonStyle) *ButtonBuilder {
	return &ButtonBuilder{button: Button{Style: style}}
}

// NewLinkButton starts a link button that opens url.
func NewLinkButton(label, url string) *ButtonBuilder {
	return &ButtonBuilder{button: Button{Style: ButtonLink, Label: label, URL: url}}
}

// ID sets the button's numeric component id.
func (b *ButtonBuilder) ID(id int) *ButtonBuilder {
	b.button.ID = id
	return b
}

// Style sets the button style.
func (b *ButtonBuilder) Style(style ButtonStyle) *ButtonBuilder {
	b.button.Style = style
	return b
}

// Label sets the text shown on the button.
func (b *ButtonBuilder) Label(label string) *ButtonBuilder {
	b.button.Label = label
	return b
}

// CustomID sets the id returned in the interaction when the button is pressed.
func (b *ButtonBuilder) CustomID(customID string) *ButtonBuilder {
	b.button.CustomID = customID
	return b
}

// URL sets the target of a link button.
func (b *ButtonBuilder) URL(url string) *ButtonBuilder {
	b.button.URL = url
	return b
}

// Emoji sets the button emoji from any form NormalizeEmoji accepts.
func (b *ButtonBuilder) Emoji(emoji any) *ButtonBuilder {
	normalized, err := NormalizeEmoji(emoji)
	if err != nil {
		b.fail(err)
		return b
	}
	b.button.Emoji = normalized
	return b
}

// Disabled greys the button out.
func (b *ButtonBuilder) Disabled(disabled bool) *ButtonBuilder {
	b.button.Disabled = disabled
	return b
}

// Build validates style-dependent url/custom_id exclusivity.
func (b *ButtonBuilder) Build() (Component, error) {
	if b.err != nil {
		return nil, b.err
	}
	button := b.button
	if err := validateButton(&button); err != nil {
		return nil, err
	}
	return &button, nil
}

// SelectMenuBuilder configures any of the five select kinds.
type SelectMenuBuilder struct {
	failure
	menu SelectMenu
}

// NewSelectMenuBuilder starts a select of the given kind. A non-select
// kind is recorded as an invalid argument.
func NewSelectMenuBuilder(kind Kind, customID string) *SelectMenuBuilder {
	builder := &SelectMenuBuilder{menu: SelectMenu{kind: kind, CustomID: customID}}
	if !kind.IsSelect() {
		builder.fail(invalidArgument("type", "%s is not a select kind", kind))
	}
	return builder
}

// NewStringSelect starts a select menu over caller-supplied options.
func NewStringSelect(customID string) *SelectMenuBuilder {
	return NewSelectMenuBuilder(KindStringSelect, customID)
}

// NewUserSelect starts a select menu over guild members.
func NewUserSelect(customID string) *SelectMenuBuilder {
	return NewSelectMenuBuilder(KindUserSelect, customID)
}

// NewRoleSelect starts a select menu over guild roles.
func NewRoleSelect(customID string) *SelectMenuBuilder {
	return NewSelectMenuBuilder(KindRoleSelect, customID)
}

// NewMentionableSelect starts a select menu over users and roles.
func NewMentionableSelect(customID string) *SelectMenuBuilder {
	return NewSelectMenuBuilder(KindMentionableSelect, customID)
}

// NewChannelSelect starts a select menu over guild channels.
func NewChannelSelect(customID string) *SelectMenuBuilder {
	return NewSelectMenuBuilder(KindChannelSelect, customID)
}

// ID sets the menu's numeric component id.
func (b *SelectMenuBuilder) ID(id int) *SelectMenuBuilder {
	b.menu.ID = id
	return b
}

// Placeholder sets the text shown while nothing is selected.
func (b *SelectMenuBuilder) Placeholder(placeholder string) *SelectMenuBuilder {
	b.menu.Placeholder = placeholder
	return b
}

// MinValues sets the fewest choices the user must make.
func (b *SelectMenuBuilder) MinValues(minimum int) *SelectMenuBuilder {
	b.menu.MinValues = &minimum
	return b
}

// MaxValues sets the most choices the user may make.
func (b *SelectMenuBuilder) MaxValues(maximum int) *SelectMenuBuilder {
	b.menu.MaxValues = &maximum
	return b
}

// Disabled greys the menu out.
func (b *SelectMenuBuilder) Disabled(disabled bool) *SelectMenuBuilder {
	b.menu.Disabled = disabled
	return b
}

// Option appends a literal option. Only string selects carry options;
// calling Option on another kind records an invalid argument.
// configure may be nil.
func (b *SelectMenuBuilder) Option(label, value string, configure func(*OptionBuilder)) *SelectMenuBuilder {
	if b.menu.kind != KindStringSelect {
		b.fail(invalidArgument("options", "%s menus carry no options", b.menu.kind))
		return b
	}
	option := &OptionBuilder{option: SelectOption{Label: label, Value: value}}
	if configure != nil {
		configure(option)
	}
	if option.err != nil {
		b.fail(fmt.Errorf("component: option %q: %w", value, option.err))
		return b
	}
	b.menu.Options = append(b.menu.Options, option.option)
	return b
}

// ChannelTypes restricts a channel select to the given channel types.
func (b *SelectMenuBuilder) ChannelTypes(types ...int) *SelectMenuBuilder {
	if b.menu.kind != KindChannelSelect {
		b.fail(invalidArgument("channel_types", "only channel selects accept channel_types"))
		return b
	}
	b.menu.ChannelTypes = append(b.menu.ChannelTypes, types...)
	return b
}

// DefaultValue pre-selects an entity in an entity select.
func (b *SelectMenuBuilder) DefaultValue(value DefaultValue) *SelectMenuBuilder {
	if !defaultValueAllowed(b.menu.kind, value.Type) {
		b.fail(invalidArgument("default_values", "%s menus cannot default to a %q", b.menu.kind, value.Type))
		return b
	}
	b.menu.DefaultValues = append(b.menu.DefaultValues, value)
	return b
}

// Build validates the menu and returns its node.
func (b *SelectMenuBuilder) Build() (Component, error) {
	if b.err != nil {
		return nil, b.err
	}
	menu := b.menu
	if err := validateSelectMenu(&menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// OptionBuilder configures one SelectOption.
type OptionBuilder struct {
	failure
	option SelectOption
}

// Description sets the secondary text under the option label.
func (o *OptionBuilder) Description(description string) *OptionBuilder {
	o.option.Description = description
	return o
}

// Emoji sets the option emoji from any form NormalizeEmoji accepts.
func (o *OptionBuilder) Emoji(emoji any) *OptionBuilder {
	normalized, err := NormalizeEmoji(emoji)
	if err != nil {
		o.fail(err)
		return o
	}
	o.option.Emoji = normalized
	return o
}

// Default preselects the option.
func (o *OptionBuilder) Default(selected bool) *OptionBuilder {
	o.option.Default = selected
	return o
}

// TextInputBuilder configures a modal TextInput.
type TextInputBuilder struct {
	failure
	input TextInput
}

// NewTextInput starts a modal text field.
func NewTextInput(customID string, style TextInputStyle, label string) *TextInputBuilder {
	return &TextInputBuilder{input: TextInput{CustomID: customID, Style: style, Label: label}}
}

// ID sets the field's numeric component id.
func (b *TextInputBuilder) ID(id int) *TextInputBuilder {
	b.input.ID = id
	return b
}

// Length bounds the number of characters the user may enter.
func (b *TextInputBuilder) Length(minimum, maximum int) *TextInputBuilder {
	b.input.MinLength = &minimum
	b.input.MaxLength = &maximum
	return b
}

// Required sets whether the field must be filled in.
func (b *TextInputBuilder) Required(required bool) *TextInputBuilder {
	b.input.Required = &required
	return b
}

// Value prefills the field.
func (b *TextInputBuilder) Value(value string) *TextInputBuilder {
	b.input.Value = value
	return b
}

// Placeholder sets the text shown while the field is empty.
func (b *TextInputBuilder) Placeholder(placeholder string) *TextInputBuilder {
	b.input.Placeholder = placeholder
	return b
}

// Build validates the field and returns its node.
func (b *TextInputBuilder) Build() (Component, error) {
	if b.err != nil {
		return nil, b.err
	}
	input := b.input
	if err := validateTextInput(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

// TextDisplayBuilder configures a TextDisplay.
type TextDisplayBuilder struct {
	text TextDisplay
}

// NewTextDisplay starts a markdown text block.
func NewTextDisplay(content string) *TextDisplayBuilder {
	return &TextDisplayBuilder{text: TextDisplay{Content: content}}
}

// ID sets the block's numeric component id.
func (b *TextDisplayBuilder) ID(id int) *TextDisplayBuilder {
	b.text.ID = id
	return b
}

// Build validates the block and returns its node.
func (b *TextDisplayBuilder) Build() (Component, error) {
	text := b.text
	if err := validateNode(&text); err != nil {
		return nil, err
	}
	return &text, nil
}

// ThumbnailBuilder configures a Thumbnail.
type ThumbnailBuilder struct {
	thumbnail Thumbnail
}

// NewThumbnail starts a section accessory image.
func NewThumbnail(url string) *ThumbnailBuilder {
	return &ThumbnailBuilder{thumbnail: Thumbnail{Media: Media(url)}}
}

// ID sets the thumbnail's numeric component id.
func (b *ThumbnailBuilder) ID(id int) *ThumbnailBuilder {
	b.thumbnail.ID = id
	return b
}

// Description sets the image alt text.
func (b *ThumbnailBuilder) Description(description string) *ThumbnailBuilder {
	b.thumbnail.Description = description
	return b
}

// Spoiler blurs the image until clicked.
func (b *ThumbnailBuilder) Spoiler(spoiler bool) *ThumbnailBuilder {
	b.thumbnail.Spoiler = spoiler
	return b
}

// Build validates the thumbnail and returns its node.
func (b *ThumbnailBuilder) Build() (Component, error) {
	thumbnail := b.thumbnail
	if err := validateNode(&thumbnail); err != nil {
		return nil, err
	}
	return &thumbnail, nil
}

// FileBuilder configures a File. The url must use the attachment://
// scheme; AttachmentURL builds one from a filename.
type FileBuilder struct {
	file File
}

// NewFile starts a file display for an attachment:// URL.
func NewFile(url string) *FileBuilder {
	return &FileBuilder{file: File{File: Media(url)}}
}

// ID sets the file's numeric component id.
func (b *FileBuilder) ID(id int) *FileBuilder {
	b.file.ID = id
	return b
}

// Spoiler hides the file until clicked.
func (b *FileBuilder) Spoiler(spoiler bool) *FileBuilder {
	b.file.Spoiler = spoiler
	return b
}

// Build validates the file and returns its node.
func (b *FileBuilder) Build() (Component, error) {
	file := b.file
	if err := validateNode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// SeparatorBuilder configures a Separator.
type SeparatorBuilder struct {
	separator Separator
}

// NewSeparator starts a vertical spacer.
func NewSeparator() *SeparatorBuilder {
	return &SeparatorBuilder{}
}

// ID sets the separator's numeric component id.
func (b *SeparatorBuilder) ID(id int) *SeparatorBuilder {
	b.separator.ID = id
	return b
}

// Divider sets whether a line is drawn. Leaving it unset lets the
// platform default apply (a line is drawn).
func (b *SeparatorBuilder) Divider(divider bool) *SeparatorBuilder {
	b.separator.Divider = &divider
	return b
}

// Spacing sets the size of the gap.
func (b *SeparatorBuilder) Spacing(spacing SeparatorSpacing) *SeparatorBuilder {
	b.separator.Spacing = spacing
	return b
}

// Build returns the separator node.
func (b *SeparatorBuilder) Build() (Component, error) {
	separator := b.separator
	if err := validateNode(&separator); err != nil {
		return nil, err
	}
	return &separator, nil
}

// MediaGalleryBuilder configures a MediaGallery.
type MediaGalleryBuilder struct {
	gallery MediaGallery
}

// NewMediaGallery starts an image grid.
func NewMediaGallery() *MediaGalleryBuilder {
	return &MediaGalleryBuilder{}
}

// ID sets the gallery's numeric component id.
func (b *MediaGalleryBuilder) ID(id int) *MediaGalleryBuilder {
	b.gallery.ID = id
	return b
}

// Item appends a gallery entry for url. configure may be nil.
func (b *MediaGalleryBuilder) Item(url string, configure func(*GalleryItemBuilder)) *MediaGalleryBuilder {
	item := &GalleryItemBuilder{item: MediaGalleryItem{Media: Media(url)}}
	if configure != nil {
		configure(item)
	}
	b.gallery.Items = append(b.gallery.Items, item.item)
	return b
}

// Build validates the gallery and returns its node.
func (b *MediaGalleryBuilder) Build() (Component, error) {
	gallery := b.gallery
	gallery.Items = append([]MediaGalleryItem(nil), b.gallery.Items...)
	if err := validateNode(&gallery); err != nil {
		return nil, err
	}
	return &gallery, nil
}

// GalleryItemBuilder configures one MediaGalleryItem.
type GalleryItemBuilder struct {
	item MediaGalleryItem
}

// Description sets the item alt text.
func (g *GalleryItemBuilder) Description(description string) *GalleryItemBuilder {
	g.item.Description = description
	return g
}

// Spoiler blurs the item until clicked.
func (g *GalleryItemBuilder) Spoiler(spoiler bool) *GalleryItemBuilder {
	g.item.Spoiler = spoiler
	return g
}

// prebuilt adapts an existing node to Builder.
type prebuilt struct {
	node Component
}

func (p prebuilt) Build() (Component, error) {
	if p.node == nil {
		return nil, invalidArgument("component", "nil component")
	}
	if err := Validate(p.node); err != nil {
		return nil, err
	}
	return p.node, nil
}

// Prebuilt wraps an already constructed node (typically a parsed one)
// so it can be placed in a View or container. Build validates it.
func Prebuilt(node Component) Builder {
	return prebuilt{node: node}
}
