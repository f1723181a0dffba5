// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
	"github.com/bureau-foundation/chorus/lib/testutil"
)

const purchaseJSON = `{
	"id": "1019653849998299136",
	"sku_id": "1019475255913222144",
	"application_id": "1019370614521200640",
	"user_id": "771129655544643584",
	"type": 1,
	"deleted": false,
	"consumed": false
}`

type consumeRecorder struct {
	object *testutil.JSONObject
	calls  []ref.Snowflake
	err    error
}

func (r *consumeRecorder) Consume(_ context.Context, id ref.Snowflake) error {
	r.calls = append(r.calls, id)
	if r.err != nil {
		return r.err
	}
	r.object.Set("consumed", true)
	return nil
}

func newEntitlementHandle(t *testing.T) (*Handle, *testutil.JSONObject, *consumeRecorder) {
	t.Helper()
	object := testutil.NewJSONObject(t, purchaseJSON)
	recorder := &consumeRecorder{object: object}
	fetcher := resource.FetcherFunc(func(context.Context, ref.Snowflake) (json.RawMessage, error) {
		return object.Get()
	})
	handle, err := Hydrate([]byte(purchaseJSON), Config{Consumer: recorder, Fetcher: fetcher})
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	return handle, object, recorder
}

func TestConsume(t *testing.T) {
	ctx := context.Background()
	handle, _, recorder := newEntitlementHandle(t)

	entitlement, err := handle.Consume(ctx)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if !entitlement.Consumed || !handle.Entitlement().Consumed {
		t.Error("entitlement not consumed after Consume")
	}
	if len(recorder.calls) != 1 || recorder.calls[0] != 1019653849998299136 {
		t.Errorf("consume calls = %v", recorder.calls)
	}

	if _, err := handle.Consume(ctx); err != nil {
		t.Fatalf("second Consume: %v", err)
	}
	if len(recorder.calls) != 1 {
		t.Errorf("second Consume called the platform again (%d calls)", len(recorder.calls))
	}
}

func TestConsumeFailureLeavesSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("consume fails", func(t *testing.T) {
		handle, _, recorder := newEntitlementHandle(t)
		before := handle.Entitlement()
		recorder.err = errors.New("entitlement already consumed")
		_, err := handle.Consume(ctx)
		var updateErr *resource.UpdateError
		if !errors.As(err, &updateErr) || updateErr.Op != "consume" {
			t.Fatalf("error = %v, want consume *UpdateError", err)
		}
		if !errors.Is(err, recorder.err) {
			t.Error("original error not reachable")
		}
		if handle.Entitlement() != before {
			t.Error("snapshot changed")
		}
	})

	t.Run("fetch fails", func(t *testing.T) {
		handle, object, _ := newEntitlementHandle(t)
		before := handle.Entitlement()
		// Set bypasses the armed failure, so the consume still lands.
		object.Fail(errors.New("service unavailable"))
		_, err := handle.Consume(ctx)
		var updateErr *resource.UpdateError
		if !errors.As(err, &updateErr) || updateErr.Op != "fetch" {
			t.Fatalf("error = %v, want fetch *UpdateError", err)
		}
		if handle.Entitlement() != before || before.Consumed {
			t.Error("snapshot changed after failed fetch")
		}

		object.Fail(nil)
		refreshed, err := handle.Refresh(ctx)
		if err != nil || !refreshed.Consumed {
			t.Fatalf("Refresh = %+v, %v", refreshed, err)
		}
	})
}

func TestConsumeDeleted(t *testing.T) {
	object := testutil.NewJSONObject(t, purchaseJSON)
	recorder := &consumeRecorder{object: object}
	fetcher := resource.FetcherFunc(func(context.Context, ref.Snowflake) (json.RawMessage, error) { return object.Get() })
	handle, err := NewHandle(&Entitlement{ID: 1, Deleted: true}, Config{Consumer: recorder, Fetcher: fetcher})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := handle.Consume(context.Background()); !errors.Is(err, resource.ErrInvalidArgument) {
		t.Errorf("error = %v, want invalid argument", err)
	}
	if len(recorder.calls) != 0 {
		t.Error("deleted entitlement was sent to the platform")
	}
}

func TestNewHandleRequiresCollaborators(t *testing.T) {
	if _, err := NewHandle(&Entitlement{ID: 1}, Config{}); err == nil {
		t.Error("NewHandle without consumer and fetcher succeeded")
	}
	fetcher := resource.FetcherFunc(func(context.Context, ref.Snowflake) (json.RawMessage, error) { return nil, nil })
	_, err := NewHandle(nil, Config{Consumer: &consumeRecorder{}, Fetcher: fetcher})
	if !errors.Is(err, resource.ErrInvalidArgument) {
		t.Errorf("nil entitlement: error = %v, want invalid argument", err)
	}
}

func TestActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	windowed := &Entitlement{StartsAt: &start, EndsAt: &end}
	open := &Entitlement{}
	deleted := &Entitlement{Deleted: true}

	tests := []struct {
		name        string
		entitlement *Entitlement
		instant     time.Time
		want        bool
	}{
		{"before window", windowed, start.Add(-time.Second), false},
		{"at start", windowed, start, true},
		{"inside", windowed, start.AddDate(0, 0, 10), true},
		{"at end", windowed, end, false},
		{"no window", open, start, true},
		{"deleted", deleted, start, false},
	}
	for _, test := range tests {
		if got := test.entitlement.ActiveAt(test.instant); got != test.want {
			t.Errorf("%s: ActiveAt = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestDecodeSubscription(t *testing.T) {
	subscription, err := DecodeSubscription([]byte(`{
		"id": "1278078770116427839",
		"user_id": "1088605110638227537",
		"sku_ids": ["1158857122189168803"],
		"entitlement_ids": ["1"],
		"renewal_sku_ids": null,
		"current_period_start": "2024-08-27T19:48:44.406602+00:00",
		"current_period_end": "2024-09-27T19:48:44.406602+00:00",
		"status": 1,
		"canceled_at": "2024-08-28T10:00:00+00:00",
		"country": "US"
	}`))
	if err != nil {
		t.Fatalf("DecodeSubscription: %v", err)
	}
	if subscription.Status != SubscriptionEnding || subscription.Status.String() != "ending" {
		t.Errorf("Status = %v", subscription.Status)
	}
	if subscription.Renews() {
		t.Error("canceled subscription reports renewal")
	}
	if len(subscription.SKUIDs) != 1 || subscription.SKUIDs[0] != 1158857122189168803 {
		t.Errorf("SKUIDs = %v", subscription.SKUIDs)
	}
	if !subscription.InPeriod(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("InPeriod false inside the period")
	}
	if subscription.InPeriod(subscription.CurrentPeriodEnd) {
		t.Error("InPeriod true at the period end")
	}

	if _, err := DecodeSubscription([]byte(`{"status": "active"}`)); err == nil {
		t.Error("DecodeSubscription accepted a string status")
	}
}
