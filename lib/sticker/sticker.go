// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sticker models guild stickers and edits them with
// write-through partial updates. Only name, description, and tags are
// editable; standard (pack) stickers are read-only on the platform.
package sticker

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

const resourceName = "sticker"

// Type distinguishes pack stickers from guild uploads.
type Type int

const (
	TypeStandard Type = 1
	TypeGuild    Type = 2
)

// FormatType is the sticker's image format.
type FormatType int

const (
	FormatPNG    FormatType = 1
	FormatAPNG   FormatType = 2
	FormatLottie FormatType = 3
	FormatGIF    FormatType = 4
)

func (f FormatType) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatAPNG:
		return "apng"
	case FormatLottie:
		return "lottie"
	case FormatGIF:
		return "gif"
	}
	return "unknown"
}

// Field limits enforced before sending.
const (
	MinNameLength        = 2
	MaxNameLength        = 30
	MinDescriptionLength = 2
	MaxDescriptionLength = 100
	MaxTagsLength        = 200
)

// Sticker is a snapshot of one sticker. Tags is the platform's
// comma-separated autocomplete string.
type Sticker struct {
	ID          ref.Snowflake  `json:"id"`
	PackID      ref.Snowflake  `json:"pack_id,omitempty"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Tags        string         `json:"tags"`
	Type        Type           `json:"type"`
	FormatType  FormatType     `json:"format_type"`
	Available   *bool          `json:"available,omitempty"`
	GuildID     ref.Snowflake  `json:"guild_id,omitempty"`
	User        *resource.User `json:"user,omitempty"`
	SortValue   *int           `json:"sort_value,omitempty"`
}

// TagList splits Tags into trimmed, non-empty entries.
func (s *Sticker) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(s.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Handle is a write-through handle on one guild sticker.
type Handle struct {
	handle *resource.Handle[Sticker]
}

func NewHandle(sticker *Sticker, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	if sticker == nil {
		return nil, resource.InvalidArgument(resourceName, "sticker", "handle requires an initial snapshot")
	}
	handle, err := resource.New(resource.Config[Sticker]{
		Resource: resourceName,
		ID:       sticker.ID,
		Initial:  sticker,
		Updater:  updater,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &Handle{handle: handle}, nil
}

// Hydrate decodes a sticker payload and wraps it.
func Hydrate(data []byte, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	sticker, err := resource.DecodeJSON[Sticker](data)
	if err != nil {
		return nil, err
	}
	return NewHandle(sticker, updater, logger)
}

// Sticker returns the current snapshot.
func (h *Handle) Sticker() *Sticker { return h.handle.Snapshot() }

// Refresh re-hydrates from fetcher.
func (h *Handle) Refresh(ctx context.Context, fetcher resource.Fetcher) (*Sticker, error) {
	return h.handle.Refresh(ctx, fetcher)
}

func (h *Handle) SetName(ctx context.Context, name string) (*Sticker, error) {
	return h.handle.Apply(ctx, func(current *Sticker) (resource.Patch, error) {
		if err := checkEditable(current); err != nil {
			return nil, err
		}
		if err := checkLength("name", name, MinNameLength, MaxNameLength); err != nil {
			return nil, err
		}
		return resource.Patch{"name": name}, nil
	})
}

// SetDescription sets the description. An empty description clears it.
func (h *Handle) SetDescription(ctx context.Context, description string) (*Sticker, error) {
	return h.handle.Apply(ctx, func(current *Sticker) (resource.Patch, error) {
		if err := checkEditable(current); err != nil {
			return nil, err
		}
		if description == "" {
			return resource.Patch{"description": resource.Null}, nil
		}
		if err := checkLength("description", description, MinDescriptionLength, MaxDescriptionLength); err != nil {
			return nil, err
		}
		return resource.Patch{"description": description}, nil
	})
}

// SetTags replaces the autocomplete tags. Tags are joined with commas.
func (h *Handle) SetTags(ctx context.Context, tags ...string) (*Sticker, error) {
	return h.handle.Apply(ctx, func(current *Sticker) (resource.Patch, error) {
		if err := checkEditable(current); err != nil {
			return nil, err
		}
		cleaned := make([]string, 0, len(tags))
		for index, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return nil, resource.InvalidArgument(resourceName, "tags", "tag %d is empty", index)
			}
			if strings.Contains(tag, ",") {
				return nil, resource.InvalidArgument(resourceName, "tags", "tag %q contains a comma", tag)
			}
			cleaned = append(cleaned, tag)
		}
		if len(cleaned) == 0 {
			return nil, resource.InvalidArgument(resourceName, "tags", "at least one tag is required")
		}
		joined := strings.Join(cleaned, ",")
		if utf8.RuneCountInString(joined) > MaxTagsLength {
			return nil, resource.InvalidArgument(resourceName, "tags", "tags exceed %d characters", MaxTagsLength)
		}
		return resource.Patch{"tags": joined}, nil
	})
}

// UserRef resolves the uploader when the payload carried only an ID.
func (h *Handle) UserRef(ctx context.Context, resolver resource.Resolver) (*resource.User, error) {
	sticker := h.Sticker()
	if sticker.User == nil {
		return nil, nil
	}
	if sticker.User.Username != "" {
		return sticker.User, nil
	}
	return resolver.UserByID(ctx, sticker.User.ID)
}

func checkEditable(sticker *Sticker) error {
	if sticker.Type == TypeStandard {
		return resource.InvalidArgument(resourceName, "sticker", "standard sticker %s cannot be edited", sticker.ID)
	}
	return nil
}

func checkLength(field, value string, minimum, maximum int) error {
	length := utf8.RuneCountInString(value)
	if length < minimum || length > maximum {
		return resource.InvalidArgument(resourceName, field, "%s must be %d..%d characters, got %d", field, minimum, maximum, length)
	}
	return nil
}
