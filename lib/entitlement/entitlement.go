// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package entitlement models premium entitlements and subscriptions.
//
// Entitlements have no update route. The only mutation is consuming a
// one-time purchase, which goes through a dedicated endpoint and is
// followed by a fetch to re-hydrate the snapshot. Subscriptions are
// read-only.
package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

const resourceName = "entitlement"

// Type is how the entitlement was obtained.
type Type int

const (
	TypePurchase                Type = 1
	TypePremiumSubscription     Type = 2
	TypeDeveloperGift           Type = 3
	TypeTestModePurchase        Type = 4
	TypeFreePurchase            Type = 5
	TypeUserGift                Type = 6
	TypePremiumPurchase         Type = 7
	TypeApplicationSubscription Type = 8
)

func (t Type) String() string {
	switch t {
	case TypePurchase:
		return "purchase"
	case TypePremiumSubscription:
		return "premium_subscription"
	case TypeDeveloperGift:
		return "developer_gift"
	case TypeTestModePurchase:
		return "test_mode_purchase"
	case TypeFreePurchase:
		return "free_purchase"
	case TypeUserGift:
		return "user_gift"
	case TypePremiumPurchase:
		return "premium_purchase"
	case TypeApplicationSubscription:
		return "application_subscription"
	}
	return "unknown"
}

// Entitlement is a snapshot of one entitlement. StartsAt and EndsAt are
// nil for entitlements without a time window (test entitlements, one
// time purchases).
type Entitlement struct {
	ID            ref.Snowflake `json:"id"`
	SKUID         ref.Snowflake `json:"sku_id"`
	ApplicationID ref.Snowflake `json:"application_id"`
	UserID        ref.Snowflake `json:"user_id,omitempty"`
	GuildID       ref.Snowflake `json:"guild_id,omitempty"`
	Type          Type          `json:"type"`
	Deleted       bool          `json:"deleted"`
	Consumed      bool          `json:"consumed,omitempty"`
	StartsAt      *time.Time    `json:"starts_at,omitempty"`
	EndsAt        *time.Time    `json:"ends_at,omitempty"`
}

// ActiveAt reports whether the entitlement grants access at instant:
// not deleted, and instant falls in [StartsAt, EndsAt). Consumption is
// reported separately by Consumed.
func (e *Entitlement) ActiveAt(instant time.Time) bool {
	if e.Deleted {
		return false
	}
	if e.StartsAt != nil && instant.Before(*e.StartsAt) {
		return false
	}
	if e.EndsAt != nil && !instant.Before(*e.EndsAt) {
		return false
	}
	return true
}

// Consumer marks a one-time purchase entitlement as consumed.
type Consumer interface {
	Consume(ctx context.Context, id ref.Snowflake) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(ctx context.Context, id ref.Snowflake) error

func (f ConsumerFunc) Consume(ctx context.Context, id ref.Snowflake) error { return f(ctx, id) }

// ErrNotEditable is returned when a caller routes a partial update at
// an entitlement.
var ErrNotEditable = errors.New("entitlement: entitlements have no update route")

var readOnly = resource.UpdaterFunc(func(context.Context, ref.Snowflake, resource.Patch) (json.RawMessage, error) {
	return nil, ErrNotEditable
})

// Config wires a Handle to its collaborators.
type Config struct {
	Consumer Consumer
	Fetcher  resource.Fetcher
	Logger   *slog.Logger
}

// Handle wraps one entitlement.
type Handle struct {
	handle   *resource.Handle[Entitlement]
	consumer Consumer
	fetcher  resource.Fetcher
}

func NewHandle(entitlement *Entitlement, config Config) (*Handle, error) {
	if config.Consumer == nil || config.Fetcher == nil {
		return nil, errors.New("entitlement: handle requires a consumer and a fetcher")
	}
	if entitlement == nil {
		return nil, resource.InvalidArgument(resourceName, "entitlement", "handle requires an initial snapshot")
	}
	handle, err := resource.New(resource.Config[Entitlement]{
		Resource: resourceName,
		ID:       entitlement.ID,
		Initial:  entitlement,
		Updater:  readOnly,
		Logger:   config.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Handle{handle: handle, consumer: config.Consumer, fetcher: config.Fetcher}, nil
}

// Hydrate decodes an entitlement payload and wraps it.
func Hydrate(data []byte, config Config) (*Handle, error) {
	entitlement, err := resource.DecodeJSON[Entitlement](data)
	if err != nil {
		return nil, err
	}
	return NewHandle(entitlement, config)
}

// Entitlement returns the current snapshot.
func (h *Handle) Entitlement() *Entitlement { return h.handle.Snapshot() }

// Refresh re-hydrates through the configured fetcher.
func (h *Handle) Refresh(ctx context.Context) (*Entitlement, error) {
	return h.handle.Refresh(ctx, h.fetcher)
}

// Consume marks the entitlement consumed and re-hydrates it. A failure
// of either the consume call or the fetch leaves the snapshot as it
// was; the error is a *resource.UpdateError. Consuming an entitlement
// that is already consumed sends nothing.
func (h *Handle) Consume(ctx context.Context) (*Entitlement, error) {
	current := h.Entitlement()
	if current.Consumed {
		return current, nil
	}
	if current.Deleted {
		return current, resource.InvalidArgument(resourceName, "entitlement", "entitlement %s is deleted", current.ID)
	}
	return h.handle.Do(ctx, "consume", h.consumer.Consume, h.fetcher)
}
