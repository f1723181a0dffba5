// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package soundboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bureau-foundation/chorus/lib/component"
	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
	"github.com/bureau-foundation/chorus/lib/testutil"
)

const soundJSON = `{
	"sound_id": "1106714396018884649",
	"name": "quack",
	"volume": 0.5,
	"emoji_id": null,
	"emoji_name": "🦆",
	"guild_id": "613425648685547541",
	"available": true,
	"user": {"id": "53908232506183680", "username": "sam"}
}`

func newSoundHandle(t *testing.T) (*Handle, *testutil.JSONObject) {
	t.Helper()
	object := testutil.NewJSONObject(t, soundJSON)
	updater := resource.UpdaterFunc(func(_ context.Context, _ ref.Snowflake, patch resource.Patch) (json.RawMessage, error) {
		return object.Patch(patch)
	})
	handle, err := Hydrate([]byte(soundJSON), updater, nil)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	return handle, object
}

func TestSoundSnapshot(t *testing.T) {
	handle, _ := newSoundHandle(t)
	sound := handle.Sound()
	if sound.SoundID != 1106714396018884649 || sound.Volume != 0.5 || !sound.Available {
		t.Errorf("sound = %+v", sound)
	}
	if emoji := sound.Emoji(); emoji == nil || emoji.Name != "🦆" || emoji.IsCustom() {
		t.Errorf("Emoji() = %+v", emoji)
	}
	if sound.User == nil || sound.User.Username != "sam" {
		t.Errorf("User = %+v", sound.User)
	}
}

func TestSetEmoji(t *testing.T) {
	ctx := context.Background()
	handle, object := newSoundHandle(t)

	sound, err := handle.SetEmoji(ctx, "1002929287654321")
	if err != nil {
		t.Fatalf("SetEmoji(id): %v", err)
	}
	if sound.EmojiID != 1002929287654321 || sound.EmojiName != "" {
		t.Errorf("after custom emoji: id=%s name=%q", sound.EmojiID, sound.EmojiName)
	}
	patch := object.LastPatch()
	if patch["emoji_id"] != "1002929287654321" {
		t.Errorf("emoji_id sent as %#v", patch["emoji_id"])
	}
	if value, present := patch["emoji_name"]; !present || value != nil {
		t.Errorf("emoji_name sent as %#v, want explicit null", value)
	}

	sound, err = handle.SetEmoji(ctx, component.Emoji{Name: "🔔"})
	if err != nil {
		t.Fatalf("SetEmoji(unicode): %v", err)
	}
	if !sound.EmojiID.IsZero() || sound.EmojiName != "🔔" {
		t.Errorf("after unicode emoji: id=%s name=%q", sound.EmojiID, sound.EmojiName)
	}

	sound, err = handle.SetEmoji(ctx, nil)
	if err != nil {
		t.Fatalf("SetEmoji(nil): %v", err)
	}
	if sound.Emoji() != nil {
		t.Errorf("Emoji() after clear = %+v", sound.Emoji())
	}
	patch = object.LastPatch()
	for _, key := range []string{"emoji_id", "emoji_name"} {
		if value, present := patch[key]; !present || value != nil {
			t.Errorf("%s sent as %#v (present=%v), want explicit null", key, value, present)
		}
	}
	if len(patch) != 2 {
		t.Errorf("clear sent %d fields, want 2", len(patch))
	}
}

func TestSetVolumeAndName(t *testing.T) {
	ctx := context.Background()
	handle, object := newSoundHandle(t)

	sound, err := handle.SetVolume(ctx, 1)
	if err != nil || sound.Volume != 1 {
		t.Fatalf("SetVolume(1) = %+v, %v", sound, err)
	}
	sound, err = handle.SetName(ctx, "honk")
	if err != nil || sound.Name != "honk" {
		t.Fatalf("SetName = %+v, %v", sound, err)
	}

	before := handle.Sound()
	sent := len(object.Patches())
	for _, volume := range []float64{-0.1, 1.01} {
		if _, err := handle.SetVolume(ctx, volume); !errors.Is(err, resource.ErrInvalidArgument) {
			t.Errorf("SetVolume(%v) error = %v", volume, err)
		}
	}
	if _, err := handle.SetName(ctx, "x"); !errors.Is(err, resource.ErrInvalidArgument) {
		t.Errorf("SetName(x) error = %v", err)
	}
	if _, err := handle.SetEmoji(ctx, -1); !errors.Is(err, component.ErrInvalidArgument) {
		t.Errorf("SetEmoji(-1) error = %v", err)
	}
	if len(object.Patches()) != sent || handle.Sound() != before {
		t.Error("invalid arguments reached the server or changed the snapshot")
	}
}

func TestSoundFailureKeepsSnapshot(t *testing.T) {
	handle, object := newSoundHandle(t)
	before := handle.Sound()
	object.Fail(errors.New("missing permissions"))
	if _, err := handle.SetVolume(context.Background(), 0.2); !resource.IsRemoteUpdate(err) {
		t.Fatalf("error = %v, want remote update error", err)
	}
	if handle.Sound() != before || before.Volume != 0.5 {
		t.Error("snapshot changed after a failed update")
	}
}

func TestNewHandleRejectsNilSound(t *testing.T) {
	updater := resource.UpdaterFunc(func(context.Context, ref.Snowflake, resource.Patch) (json.RawMessage, error) {
		return nil, nil
	})
	handle, err := NewHandle(nil, updater, nil)
	if !errors.Is(err, resource.ErrInvalidArgument) {
		t.Fatalf("error = %v, want invalid argument", err)
	}
	if handle != nil {
		t.Error("handle returned for a nil sound")
	}
}
