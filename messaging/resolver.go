// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

// Compile-time check: *Client resolves snapshot references.
var _ resource.Resolver = (*Client)(nil)

// UserByID fetches a user.
func (c *Client) UserByID(ctx context.Context, id ref.Snowflake) (*resource.User, error) {
	var user resource.User
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s", id), &user); err != nil {
		return nil, fmt.Errorf("messaging: fetching user %s: %w", id, err)
	}
	return &user, nil
}

// ChannelByID fetches a channel.
func (c *Client) ChannelByID(ctx context.Context, id ref.Snowflake) (*resource.Channel, error) {
	var channel resource.Channel
	if err := c.getJSON(ctx, fmt.Sprintf("/channels/%s", id), &channel); err != nil {
		return nil, fmt.Errorf("messaging: fetching channel %s: %w", id, err)
	}
	return &channel, nil
}

// RoleByID fetches one role of guildID.
func (c *Client) RoleByID(ctx context.Context, guildID, id ref.Snowflake) (*resource.Role, error) {
	var role resource.Role
	if err := c.getJSON(ctx, fmt.Sprintf("/guilds/%s/roles/%s", guildID, id), &role); err != nil {
		return nil, fmt.Errorf("messaging: fetching role %s: %w", id, err)
	}
	return &role, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
