// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"strings"

	"github.com/bureau-foundation/chorus/lib/ref"
)

// attachmentScheme prefixes media URLs that refer to files uploaded in
// the same request as the message.
const attachmentScheme = "attachment://"

// UnfurledMedia references an image, video, or file by URL. Only URL is
// set by builders; the remaining fields are presentation metadata the
// platform fills in after resolving the URL.
type UnfurledMedia struct {
	URL          string        `json:"url"`
	ProxyURL     string        `json:"proxy_url,omitempty"`
	Width        *int          `json:"width,omitempty"`
	Height       *int          `json:"height,omitempty"`
	ContentType  string        `json:"content_type,omitempty"`
	LoadingState LoadingState  `json:"loading_state,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty"`
	AttachmentID ref.Snowflake `json:"attachment_id,omitempty"`
}

// Media returns an UnfurledMedia for url with no metadata.
func Media(url string) UnfurledMedia {
	return UnfurledMedia{URL: url}
}

// AttachmentURL returns the URL referring to an attachment named
// filename in the same request ("attachment://report.pdf").
func AttachmentURL(filename string) string {
	return attachmentScheme + filename
}

// IsAttachment reports whether the URL refers to a not-yet-uploaded
// attachment rather than a remote resource.
func (m UnfurledMedia) IsAttachment() bool {
	return strings.HasPrefix(m.URL, attachmentScheme)
}

// AttachmentName returns the filename of an attachment:// URL, or "".
func (m UnfurledMedia) AttachmentName() string {
	if !m.IsAttachment() {
		return ""
	}
	return strings.TrimPrefix(m.URL, attachmentScheme)
}

// MediaGalleryItem is one entry in a MediaGallery. It is a value, not a
// node: it has no discriminant and cannot appear elsewhere in the tree.
type MediaGalleryItem struct {
	Media       UnfurledMedia `json:"media"`
	Description string        `json:"description,omitempty"`
	Spoiler     bool          `json:"spoiler,omitempty"`
}
