// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package soundboard models guild soundboard sounds and edits them with
// write-through partial updates.
package soundboard

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/chorus/lib/component"
	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

const resourceName = "sound"

// Name length bounds enforced before sending.
const (
	MinNameLength = 2
	MaxNameLength = 32
)

// Sound is a snapshot of one soundboard sound. Volume is 0..1; the
// emoji is either a custom emoji ID or a unicode emoji name.
type Sound struct {
	SoundID   ref.Snowflake  `json:"sound_id"`
	Name      string         `json:"name"`
	Volume    float64        `json:"volume"`
	EmojiID   ref.Snowflake  `json:"emoji_id,omitempty"`
	EmojiName string         `json:"emoji_name,omitempty"`
	GuildID   ref.Snowflake  `json:"guild_id,omitempty"`
	Available bool           `json:"available"`
	User      *resource.User `json:"user,omitempty"`
}

// Emoji returns the sound's emoji in component form, or nil.
func (s *Sound) Emoji() *component.Emoji {
	if s.EmojiID.IsZero() && s.EmojiName == "" {
		return nil
	}
	return &component.Emoji{ID: s.EmojiID, Name: s.EmojiName}
}

// Handle is a write-through handle on one sound.
type Handle struct {
	handle *resource.Handle[Sound]
}

// NewHandle wraps an already decoded sound.
func NewHandle(sound *Sound, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	if sound == nil {
		return nil, resource.InvalidArgument(resourceName, "sound", "handle requires an initial snapshot")
	}
	handle, err := resource.New(resource.Config[Sound]{
		Resource: resourceName,
		ID:       sound.SoundID,
		Initial:  sound,
		Updater:  updater,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &Handle{handle: handle}, nil
}

// Hydrate decodes a sound payload and wraps it.
func Hydrate(data []byte, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	sound, err := resource.DecodeJSON[Sound](data)
	if err != nil {
		return nil, err
	}
	return NewHandle(sound, updater, logger)
}

// Sound returns the current snapshot.
func (h *Handle) Sound() *Sound { return h.handle.Snapshot() }

func (h *Handle) SetName(ctx context.Context, name string) (*Sound, error) {
	return h.handle.Apply(ctx, func(*Sound) (resource.Patch, error) {
		length := len([]rune(strings.TrimSpace(name)))
		if length < MinNameLength || length > MaxNameLength {
			return nil, resource.InvalidArgument(resourceName, "name", "name must be %d..%d characters", MinNameLength, MaxNameLength)
		}
		return resource.Patch{"name": name}, nil
	})
}

// SetVolume sets playback volume in 0..1.
func (h *Handle) SetVolume(ctx context.Context, volume float64) (*Sound, error) {
	return h.handle.Apply(ctx, func(*Sound) (resource.Patch, error) {
		if !(volume >= 0 && volume <= 1) {
			return nil, resource.InvalidArgument(resourceName, "volume", "volume must be 0..1, got %v", volume)
		}
		return resource.Patch{"volume": volume}, nil
	})
}

// SetEmoji sets the emoji from any form component.NormalizeEmoji
// accepts. nil clears both emoji fields with explicit nulls.
func (h *Handle) SetEmoji(ctx context.Context, emoji any) (*Sound, error) {
	return h.handle.Apply(ctx, func(*Sound) (resource.Patch, error) {
		normalized, err := component.NormalizeEmoji(emoji)
		if err != nil {
			return nil, err
		}
		if normalized == nil {
			return resource.Patch{"emoji_id": resource.Null, "emoji_name": resource.Null}, nil
		}
		if normalized.IsCustom() {
			return resource.Patch{"emoji_id": normalized.ID, "emoji_name": resource.Null}, nil
		}
		return resource.Patch{"emoji_id": resource.Null, "emoji_name": normalized.Name}, nil
	})
}

// UserRef resolves the uploader when the payload carried only an ID.
func (h *Handle) UserRef(ctx context.Context, resolver resource.Resolver) (*resource.User, error) {
	sound := h.Sound()
	if sound.User == nil {
		return nil, nil
	}
	if sound.User.Username != "" {
		return sound.User, nil
	}
	return resolver.UserByID(ctx, sound.User.ID)
}
