// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import "encoding/json"

// TextDisplay renders markdown text. Content may contain the platform's
// markdown and mention syntax; this package treats it as opaque.
type TextDisplay struct {
	ID      int    `json:"id,omitempty"`
	Content string `json:"content"`
}

func (*TextDisplay) Kind() Kind         { return KindTextDisplay }
func (t *TextDisplay) ComponentID() int { return t.ID }
func (*TextDisplay) component()         {}

func (t *TextDisplay) MarshalJSON() ([]byte, error) {
	type fields TextDisplay
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindTextDisplay, (*fields)(t)})
}

// Separator adds vertical space, optionally with a visible divider line.
// Divider is a pointer because the platform draws a divider when the key
// is absent; an explicit false must survive serialization.
type Separator struct {
	ID      int              `json:"id,omitempty"`
	Divider *bool            `json:"divider,omitempty"`
	Spacing SeparatorSpacing `json:"spacing,omitempty"`
}

func (*Separator) Kind() Kind         { return KindSeparator }
func (s *Separator) ComponentID() int { return s.ID }
func (*Separator) component()         {}

func (s *Separator) MarshalJSON() ([]byte, error) {
	type fields Separator
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindSeparator, (*fields)(s)})
}

// Thumbnail is a small image, used as a Section accessory.
type Thumbnail struct {
	ID          int           `json:"id,omitempty"`
	Media       UnfurledMedia `json:"media"`
	Description string        `json:"description,omitempty"`
	Spoiler     bool          `json:"spoiler,omitempty"`
}

func (*Thumbnail) Kind() Kind         { return KindThumbnail }
func (t *Thumbnail) ComponentID() int { return t.ID }
func (*Thumbnail) component()         {}

func (t *Thumbnail) MarshalJSON() ([]byte, error) {
	type fields Thumbnail
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindThumbnail, (*fields)(t)})
}

// File displays an uploaded attachment. File.URL must use the
// attachment:// scheme (see AttachmentURL). Name and Size are filled in
// by the platform.
type File struct {
	ID      int           `json:"id,omitempty"`
	File    UnfurledMedia `json:"file"`
	Spoiler bool          `json:"spoiler,omitempty"`
	Name    string        `json:"name,omitempty"`
	Size    int           `json:"size,omitempty"`
}

func (*File) Kind() Kind         { return KindFile }
func (f *File) ComponentID() int { return f.ID }
func (*File) component()         {}

func (f *File) MarshalJSON() ([]byte, error) {
	type fields File
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*fields
	}{KindFile, (*fields)(f)})
}
