// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bureau-foundation/chorus/lib/ref"
)

// SubscriptionStatus is the billing state of a subscription.
type SubscriptionStatus int

const (
	SubscriptionActive   SubscriptionStatus = 0
	SubscriptionEnding   SubscriptionStatus = 1
	SubscriptionInactive SubscriptionStatus = 2
)

func (s SubscriptionStatus) String() string {
	switch s {
	case SubscriptionActive:
		return "active"
	case SubscriptionEnding:
		return "ending"
	case SubscriptionInactive:
		return "inactive"
	}
	return fmt.Sprintf("SubscriptionStatus(%d)", int(s))
}

// Subscription is a read-only snapshot of a user's recurring
// subscription to one or more SKUs.
type Subscription struct {
	ID                 ref.Snowflake      `json:"id"`
	UserID             ref.Snowflake      `json:"user_id"`
	SKUIDs             []ref.Snowflake    `json:"sku_ids"`
	EntitlementIDs     []ref.Snowflake    `json:"entitlement_ids"`
	RenewalSKUIDs      []ref.Snowflake    `json:"renewal_sku_ids,omitempty"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	Status             SubscriptionStatus `json:"status"`
	CanceledAt         *time.Time         `json:"canceled_at,omitempty"`
	Country            string             `json:"country,omitempty"`
}

// DecodeSubscription parses a subscription payload.
func DecodeSubscription(data []byte) (*Subscription, error) {
	var subscription Subscription
	if err := json.Unmarshal(data, &subscription); err != nil {
		return nil, fmt.Errorf("entitlement: decoding subscription: %w", err)
	}
	return &subscription, nil
}

// Renews reports whether the subscription will bill again at the end
// of the current period.
func (s *Subscription) Renews() bool {
	return s.Status == SubscriptionActive && s.CanceledAt == nil
}

// InPeriod reports whether instant falls inside the current period.
func (s *Subscription) InPeriod(instant time.Time) bool {
	return !instant.Before(s.CurrentPeriodStart) && instant.Before(s.CurrentPeriodEnd)
}
