// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/chorus/lib/application"
	"github.com/bureau-foundation/chorus/lib/automod"
	"github.com/bureau-foundation/chorus/lib/entitlement"
	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
	"github.com/bureau-foundation/chorus/lib/soundboard"
	"github.com/bureau-foundation/chorus/lib/sticker"
)

// route builds the path of one resource from its ID.
type route func(id ref.Snowflake) string

// updater PATCHes the route and returns the full updated object.
func (c *Client) updater(path route) resource.Updater {
	return resource.UpdaterFunc(func(ctx context.Context, id ref.Snowflake, patch resource.Patch) (json.RawMessage, error) {
		return c.doRequest(ctx, http.MethodPatch, path(id), patch)
	})
}

// fetcher GETs the route.
func (c *Client) fetcher(path route) resource.Fetcher {
	return resource.FetcherFunc(func(ctx context.Context, id ref.Snowflake) (json.RawMessage, error) {
		return c.doRequest(ctx, http.MethodGet, path(id), nil)
	})
}

func automodRoute(guildID ref.Snowflake) route {
	return func(id ref.Snowflake) string {
		return fmt.Sprintf("/guilds/%s/auto-moderation/rules/%s", guildID, id)
	}
}

// AutoModerationRuleUpdater returns the Updater for rules in guildID.
func (c *Client) AutoModerationRuleUpdater(guildID ref.Snowflake) resource.Updater {
	return c.updater(automodRoute(guildID))
}

// AutoModerationRuleFetcher returns the Fetcher for rules in guildID.
func (c *Client) AutoModerationRuleFetcher(guildID ref.Snowflake) resource.Fetcher {
	return c.fetcher(automodRoute(guildID))
}

// AutoModerationRule fetches one rule and returns a handle on it.
func (c *Client) AutoModerationRule(ctx context.Context, guildID, ruleID ref.Snowflake) (*automod.Handle, error) {
	body, err := c.doRequest(ctx, http.MethodGet, automodRoute(guildID)(ruleID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching auto-moderation rule %s: %w", ruleID, err)
	}
	return automod.Hydrate(body, c.AutoModerationRuleUpdater(guildID), c.logger)
}

// AutoModerationRules lists the guild's rules as handles.
func (c *Client) AutoModerationRules(ctx context.Context, guildID ref.Snowflake) ([]*automod.Handle, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/guilds/%s/auto-moderation/rules", guildID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: listing auto-moderation rules in %s: %w", guildID, err)
	}
	var payloads []json.RawMessage
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse auto-moderation rules: %w", err)
	}
	updater := c.AutoModerationRuleUpdater(guildID)
	handles := make([]*automod.Handle, 0, len(payloads))
	for index, payload := range payloads {
		handle, err := automod.Hydrate(payload, updater, c.logger)
		if err != nil {
			return nil, fmt.Errorf("messaging: auto-moderation rule %d: %w", index, err)
		}
		handles = append(handles, handle)
	}
	return handles, nil
}

func soundRoute(guildID ref.Snowflake) route {
	return func(id ref.Snowflake) string {
		return fmt.Sprintf("/guilds/%s/soundboard-sounds/%s", guildID, id)
	}
}

// SoundboardSound fetches one guild sound and returns a handle on it.
func (c *Client) SoundboardSound(ctx context.Context, guildID, soundID ref.Snowflake) (*soundboard.Handle, error) {
	path := soundRoute(guildID)
	body, err := c.doRequest(ctx, http.MethodGet, path(soundID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching sound %s: %w", soundID, err)
	}
	return soundboard.Hydrate(body, c.updater(path), c.logger)
}

func stickerRoute(guildID ref.Snowflake) route {
	return func(id ref.Snowflake) string {
		return fmt.Sprintf("/guilds/%s/stickers/%s", guildID, id)
	}
}

// GuildSticker fetches one guild sticker and returns a handle on it.
func (c *Client) GuildSticker(ctx context.Context, guildID, stickerID ref.Snowflake) (*sticker.Handle, error) {
	path := stickerRoute(guildID)
	body, err := c.doRequest(ctx, http.MethodGet, path(stickerID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching sticker %s: %w", stickerID, err)
	}
	return sticker.Hydrate(body, c.updater(path), c.logger)
}

// currentApplicationRoute ignores the ID: the bot edits only its own
// application.
func currentApplicationRoute(ref.Snowflake) string { return "/applications/@me" }

// CurrentApplication fetches the bot's application.
func (c *Client) CurrentApplication(ctx context.Context) (*application.Handle, error) {
	body, err := c.doRequest(ctx, http.MethodGet, currentApplicationRoute(0), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching current application: %w", err)
	}
	return application.Hydrate(body, c.updater(currentApplicationRoute), c.logger)
}

// CurrentApplicationFetcher returns the Fetcher for Handle.Refresh.
func (c *Client) CurrentApplicationFetcher() resource.Fetcher {
	return c.fetcher(currentApplicationRoute)
}

func entitlementRoute(applicationID ref.Snowflake) route {
	return func(id ref.Snowflake) string {
		return fmt.Sprintf("/applications/%s/entitlements/%s", applicationID, id)
	}
}

// Entitlement fetches one entitlement of applicationID.
func (c *Client) Entitlement(ctx context.Context, applicationID, entitlementID ref.Snowflake) (*entitlement.Handle, error) {
	path := entitlementRoute(applicationID)
	body, err := c.doRequest(ctx, http.MethodGet, path(entitlementID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching entitlement %s: %w", entitlementID, err)
	}
	return entitlement.Hydrate(body, entitlement.Config{
		Consumer: c.entitlementConsumer(path),
		Fetcher:  c.fetcher(path),
		Logger:   c.logger,
	})
}

func (c *Client) entitlementConsumer(path route) entitlement.Consumer {
	return entitlement.ConsumerFunc(func(ctx context.Context, id ref.Snowflake) error {
		_, err := c.doRequest(ctx, http.MethodPost, path(id)+"/consume", nil)
		return err
	})
}

// Subscription fetches one subscription to skuID.
func (c *Client) Subscription(ctx context.Context, skuID, subscriptionID ref.Snowflake) (*entitlement.Subscription, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/skus/%s/subscriptions/%s", skuID, subscriptionID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching subscription %s: %w", subscriptionID, err)
	}
	return entitlement.DecodeSubscription(body)
}
