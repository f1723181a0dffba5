// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bureau-foundation/chorus/lib/automod"
	"github.com/bureau-foundation/chorus/lib/entitlement"
	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

const ruleJSON = `{
	"id": "900",
	"guild_id": "100",
	"name": "no spoilers",
	"creator_id": "7",
	"event_type": 1,
	"trigger_type": 1,
	"trigger_metadata": {"keyword_filter": ["ending"]},
	"actions": [{"type": 1, "metadata": {"custom_message": "no"}}],
	"enabled": true,
	"exempt_roles": ["300"],
	"exempt_channels": []
}`

func TestAutoModerationRuleWriteThrough(t *testing.T) {
	platform, client := newFakePlatform(t)
	object := platform.object("/guilds/100/auto-moderation/rules/900", ruleJSON)
	ctx := context.Background()

	handle, err := client.AutoModerationRule(ctx, 100, 900)
	if err != nil {
		t.Fatalf("AutoModerationRule failed: %v", err)
	}
	if handle.Rule().Name != "no spoilers" {
		t.Fatalf("Name = %q", handle.Rule().Name)
	}

	rule, err := handle.SetName(ctx, "no leaks")
	if err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if rule.Name != "no leaks" || handle.Rule().Name != "no leaks" {
		t.Errorf("snapshot name = %q", handle.Rule().Name)
	}
	if patch := object.LastPatch(); len(patch) != 1 || patch["name"] != "no leaks" {
		t.Errorf("patch = %v, want only name", patch)
	}

	rule, err = handle.SetKeywordFilter(ctx, []string{"ending", "twist"})
	if err != nil {
		t.Fatalf("SetKeywordFilter failed: %v", err)
	}
	if got := rule.KeywordFilter(); len(got) != 2 || got[1] != "twist" {
		t.Errorf("KeywordFilter() = %v", got)
	}

	requests := platform.requests()
	last := requests[len(requests)-1]
	if last.Method != http.MethodPatch || last.Path != "/guilds/100/auto-moderation/rules/900" {
		t.Errorf("last request = %s %s", last.Method, last.Path)
	}
}

func TestAutoModerationRuleRejected(t *testing.T) {
	platform, client := newFakePlatform(t)
	object := platform.object("/guilds/100/auto-moderation/rules/900", ruleJSON)
	ctx := context.Background()

	handle, err := client.AutoModerationRule(ctx, 100, 900)
	if err != nil {
		t.Fatalf("AutoModerationRule failed: %v", err)
	}

	object.Fail(errors.New("Missing Permissions"))
	rule, err := handle.SetEnabled(ctx, false)
	if err == nil {
		t.Fatal("SetEnabled succeeded against a rejecting server")
	}
	if !resource.IsRemoteUpdate(err) {
		t.Errorf("IsRemoteUpdate(%v) = false", err)
	}
	if !IsAPIError(err, ErrCodeMissingPermissions) {
		t.Errorf("error %v does not carry code %d", err, ErrCodeMissingPermissions)
	}
	var updateErr *resource.UpdateError
	if !errors.As(err, &updateErr) || updateErr.Op != "update" {
		t.Errorf("error = %v, want UpdateError with Op update", err)
	}
	if !rule.Enabled || !handle.Rule().Enabled {
		t.Error("snapshot changed after a rejected update")
	}
}

func TestAutoModerationRules(t *testing.T) {
	platform, client := newFakePlatform(t)
	platform.handle("GET /guilds/100/auto-moderation/rules", func(writer http.ResponseWriter, _ map[string]any) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte("[" + ruleJSON + "]"))
	})

	handles, err := client.AutoModerationRules(context.Background(), 100)
	if err != nil {
		t.Fatalf("AutoModerationRules failed: %v", err)
	}
	if len(handles) != 1 || handles[0].Rule().ID != 900 {
		t.Fatalf("handles = %v", handles)
	}
	if _, ok := handles[0].Rule().Action(automod.ActionBlockMessage); !ok {
		t.Error("block message action missing")
	}
}

func TestAutoModerationRuleRefresh(t *testing.T) {
	platform, client := newFakePlatform(t)
	object := platform.object("/guilds/100/auto-moderation/rules/900", ruleJSON)
	ctx := context.Background()

	handle, err := client.AutoModerationRule(ctx, 100, 900)
	if err != nil {
		t.Fatalf("AutoModerationRule failed: %v", err)
	}
	object.Set("name", "renamed elsewhere")
	rule, err := handle.Refresh(ctx, client.AutoModerationRuleFetcher(100))
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rule.Name != "renamed elsewhere" {
		t.Errorf("Name = %q after refresh", rule.Name)
	}
}

func TestSoundboardAndSticker(t *testing.T) {
	platform, client := newFakePlatform(t)
	sound := platform.object("/guilds/100/soundboard-sounds/55", `{
		"sound_id": "55", "guild_id": "100", "name": "airhorn", "volume": 1,
		"emoji_id": null, "emoji_name": "📯", "available": true
	}`)
	platform.object("/guilds/100/stickers/66", `{
		"id": "66", "guild_id": "100", "name": "wave", "description": "hello",
		"tags": "hi", "type": 2, "format_type": 1, "available": true
	}`)
	ctx := context.Background()

	soundHandle, err := client.SoundboardSound(ctx, 100, 55)
	if err != nil {
		t.Fatalf("SoundboardSound failed: %v", err)
	}
	if _, err := soundHandle.SetVolume(ctx, 0.5); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}
	if patch := sound.LastPatch(); patch["volume"] != 0.5 {
		t.Errorf("sound patch = %v", patch)
	}

	stickerHandle, err := client.GuildSticker(ctx, 100, 66)
	if err != nil {
		t.Fatalf("GuildSticker failed: %v", err)
	}
	updated, err := stickerHandle.SetTags(ctx, "hi", "wave")
	if err != nil {
		t.Fatalf("SetTags failed: %v", err)
	}
	if updated.Tags != "hi,wave" {
		t.Errorf("Tags = %q", updated.Tags)
	}
}

func TestCurrentApplication(t *testing.T) {
	platform, client := newFakePlatform(t)
	object := platform.object("/applications/@me", `{
		"id": "11", "name": "chorus", "icon": null, "description": "", "bot_public": true,
		"install_params": {"scopes": ["bot"], "permissions": "2048"}
	}`)
	ctx := context.Background()

	handle, err := client.CurrentApplication(ctx)
	if err != nil {
		t.Fatalf("CurrentApplication failed: %v", err)
	}
	updated, err := handle.SetInstallScopes(ctx, "bot", "applications.commands")
	if err != nil {
		t.Fatalf("SetInstallScopes failed: %v", err)
	}
	if scopes := updated.InstallScopes(); len(scopes) != 2 {
		t.Errorf("InstallScopes() = %v", scopes)
	}
	installParams, ok := object.LastPatch()["install_params"].(map[string]any)
	if !ok || installParams["permissions"] != "2048" {
		t.Errorf("install_params patch = %v, want permissions preserved", object.LastPatch())
	}

	object.Set("description", "set from the portal")
	refreshed, err := handle.Refresh(ctx, client.CurrentApplicationFetcher())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.Description != "set from the portal" {
		t.Errorf("Description = %q", refreshed.Description)
	}
}

func TestEntitlementConsume(t *testing.T) {
	platform, client := newFakePlatform(t)
	platform.object("/applications/11/entitlements/77", `{
		"id": "77", "sku_id": "5", "application_id": "11", "user_id": "7",
		"type": 8, "deleted": false, "consumed": false
	}`)
	ctx := context.Background()

	handle, err := client.Entitlement(ctx, 11, 77)
	if err != nil {
		t.Fatalf("Entitlement failed: %v", err)
	}
	if handle.Entitlement().Type != entitlement.TypeApplicationSubscription {
		t.Errorf("Type = %v", handle.Entitlement().Type)
	}
	consumed, err := handle.Consume(ctx)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if !consumed.Consumed {
		t.Error("entitlement not consumed after Consume")
	}

	var methods []string
	for _, request := range platform.requests() {
		methods = append(methods, request.Method+" "+request.Path)
	}
	want := []string{
		"GET /applications/11/entitlements/77",
		"POST /applications/11/entitlements/77/consume",
		"GET /applications/11/entitlements/77",
	}
	if len(methods) != len(want) {
		t.Fatalf("requests = %v, want %v", methods, want)
	}
	for index := range want {
		if methods[index] != want[index] {
			t.Errorf("request %d = %q, want %q", index, methods[index], want[index])
		}
	}
}

func TestSubscription(t *testing.T) {
	platform, client := newFakePlatform(t)
	platform.object("/skus/5/subscriptions/88", `{
		"id": "88", "user_id": "7", "sku_ids": ["5"], "entitlement_ids": ["77"],
		"renewal_sku_ids": ["5"],
		"current_period_start": "2026-01-01T00:00:00Z",
		"current_period_end": "2026-02-01T00:00:00Z",
		"status": 0
	}`)

	subscription, err := client.Subscription(context.Background(), 5, 88)
	if err != nil {
		t.Fatalf("Subscription failed: %v", err)
	}
	if subscription.Status != entitlement.SubscriptionActive || !subscription.Renews() {
		t.Errorf("subscription = %+v", subscription)
	}
}

func TestResolver(t *testing.T) {
	platform, client := newFakePlatform(t)
	platform.object("/users/7", `{"id": "7", "username": "nelly"}`)
	platform.object("/channels/8", `{"id": "8", "type": 0, "name": "general"}`)
	platform.object("/guilds/100/roles/300", `{"id": "300", "name": "mods", "color": 0, "position": 2}`)
	ctx := context.Background()

	user, err := client.UserByID(ctx, 7)
	if err != nil || user.Username != "nelly" {
		t.Errorf("UserByID = %+v, %v", user, err)
	}
	channel, err := client.ChannelByID(ctx, 8)
	if err != nil || channel.Name != "general" {
		t.Errorf("ChannelByID = %+v, %v", channel, err)
	}
	role, err := client.RoleByID(ctx, 100, 300)
	if err != nil || role.Name != "mods" {
		t.Errorf("RoleByID = %+v, %v", role, err)
	}

	_, err = client.UserByID(ctx, ref.Snowflake(404))
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("missing user error = %v", err)
	}
}

func TestRuleExemptRefsThroughClient(t *testing.T) {
	platform, client := newFakePlatform(t)
	platform.object("/guilds/100/auto-moderation/rules/900", ruleJSON)
	platform.object("/guilds/100/roles/300", `{"id": "300", "name": "mods", "color": 0, "position": 2}`)
	platform.object("/users/7", `{"id": "7", "username": "creator"}`)
	ctx := context.Background()

	handle, err := client.AutoModerationRule(ctx, 100, 900)
	if err != nil {
		t.Fatalf("AutoModerationRule failed: %v", err)
	}
	roles, err := handle.ExemptRoleRefs(ctx, client)
	if err != nil || len(roles) != 1 || roles[0].Name != "mods" {
		t.Errorf("ExemptRoleRefs = %v, %v", roles, err)
	}
	creator, err := handle.CreatorRef(ctx, client)
	if err != nil || creator.Username != "creator" {
		t.Errorf("CreatorRef = %+v, %v", creator, err)
	}
}
