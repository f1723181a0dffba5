// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/chorus/lib/ref"
)

// User is the subset of a platform user that resources embed or
// reference.
type User struct {
	ID            ref.Snowflake `json:"id"`
	Username      string        `json:"username"`
	GlobalName    string        `json:"global_name,omitempty"`
	Discriminator string        `json:"discriminator,omitempty"`
	Avatar        string        `json:"avatar,omitempty"`
	Bot           bool          `json:"bot,omitempty"`
}

// Channel is the subset of a channel that resources reference.
type Channel struct {
	ID      ref.Snowflake `json:"id"`
	Type    int           `json:"type"`
	GuildID ref.Snowflake `json:"guild_id,omitempty"`
	Name    string        `json:"name,omitempty"`
}

// Role is the subset of a guild role that resources reference.
type Role struct {
	ID       ref.Snowflake `json:"id"`
	Name     string        `json:"name"`
	Color    int           `json:"color"`
	Position int           `json:"position"`
	Managed  bool          `json:"managed,omitempty"`
}

// Resolver looks up entities referenced by ID in a snapshot.
// Implementations typically call the platform's REST API; a nil entity
// with a nil error is not allowed.
type Resolver interface {
	UserByID(ctx context.Context, id ref.Snowflake) (*User, error)
	ChannelByID(ctx context.Context, id ref.Snowflake) (*Channel, error)
	RoleByID(ctx context.Context, guildID, id ref.Snowflake) (*Role, error)
}

// ResolveEach resolves ids in order with lookup and stops at the first
// failure.
func ResolveEach[T any](ctx context.Context, ids []ref.Snowflake, lookup func(context.Context, ref.Snowflake) (*T, error)) ([]*T, error) {
	entities := make([]*T, 0, len(ids))
	for _, id := range ids {
		entity, err := lookup(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resource: resolving %s: %w", id, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
