// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bureau-foundation/chorus/lib/ref"
)

// Updater sends a partial update for the resource with the given ID and
// returns the platform's full representation of the updated resource.
type Updater interface {
	Update(ctx context.Context, id ref.Snowflake, patch Patch) (json.RawMessage, error)
}

// Fetcher retrieves the full representation of a resource.
type Fetcher interface {
	Fetch(ctx context.Context, id ref.Snowflake) (json.RawMessage, error)
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(ctx context.Context, id ref.Snowflake, patch Patch) (json.RawMessage, error)

func (f UpdaterFunc) Update(ctx context.Context, id ref.Snowflake, patch Patch) (json.RawMessage, error) {
	return f(ctx, id, patch)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, id ref.Snowflake) (json.RawMessage, error)

func (f FetcherFunc) Fetch(ctx context.Context, id ref.Snowflake) (json.RawMessage, error) {
	return f(ctx, id)
}

// Decode parses a full resource payload into a snapshot. The returned
// snapshot is owned by the handle and must not be modified afterwards.
type Decode[S any] func(data []byte) (*S, error)

// DecodeJSON is a Decode for snapshot types that decode with plain
// encoding/json.
func DecodeJSON[S any](data []byte) (*S, error) {
	var snapshot S
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Config configures a Handle.
type Config[S any] struct {
	// Resource names the resource kind in errors and logs.
	Resource string

	// ID is the resource's identifier, passed to the Updater and
	// Fetcher.
	ID ref.Snowflake

	// Initial is the hydrated snapshot. Required.
	Initial *S

	// Updater sends partial updates. Required.
	Updater Updater

	// Decode parses full payloads. Defaults to DecodeJSON.
	Decode Decode[S]

	// Logger receives one info record per applied update. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Handle is a write-through view of one remote resource. Reads never
// block; mutations are serialized.
type Handle[S any] struct {
	resource string
	id       ref.Snowflake
	updater  Updater
	decode   Decode[S]
	logger   *slog.Logger

	// writeMu serializes Apply and Refresh so that each merge base is
	// the result of the previous mutation.
	writeMu  sync.Mutex
	snapshot atomic.Pointer[S]
}

// New returns a handle over an already hydrated snapshot.
func New[S any](config Config[S]) (*Handle[S], error) {
	if config.Initial == nil {
		return nil, InvalidArgument(config.Resource, "snapshot", "handle requires an initial snapshot")
	}
	if config.Updater == nil {
		return nil, fmt.Errorf("resource: %s handle requires an updater", config.Resource)
	}
	decode := config.Decode
	if decode == nil {
		decode = DecodeJSON[S]
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	handle := &Handle[S]{
		resource: config.Resource,
		id:       config.ID,
		updater:  config.Updater,
		decode:   decode,
		logger:   logger,
	}
	handle.snapshot.Store(config.Initial)
	return handle, nil
}

// Hydrate decodes data and returns a handle over the result.
func Hydrate[S any](data []byte, config Config[S]) (*Handle[S], error) {
	decode := config.Decode
	if decode == nil {
		decode = DecodeJSON[S]
	}
	snapshot, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("resource: decoding %s: %w", config.Resource, err)
	}
	config.Initial = snapshot
	config.Decode = decode
	return New(config)
}

// ID returns the resource identifier.
func (h *Handle[S]) ID() ref.Snowflake { return h.id }

// Snapshot returns the current snapshot. The pointer stays valid and
// unchanged after later updates; callers must treat it as read-only.
func (h *Handle[S]) Snapshot() *S {
	return h.snapshot.Load()
}

// Apply performs one write-through mutation. build receives the current
// snapshot and returns the fields to send. Errors from build are
// returned as they are (they are local argument errors and nothing was
// sent). An empty patch returns the current snapshot without a request.
// Updater and decode failures are returned as *UpdateError and leave
// the snapshot untouched. On success the decoded response becomes the
// new snapshot and is returned.
func (h *Handle[S]) Apply(ctx context.Context, build func(current *S) (Patch, error)) (*S, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	current := h.snapshot.Load()
	patch, err := build(current)
	if err != nil {
		return current, err
	}
	if patch.Empty() {
		return current, nil
	}
	fields := patch.Fields()

	response, err := h.updater.Update(ctx, h.id, patch)
	if err != nil {
		return current, &UpdateError{Resource: h.resource, ID: h.id, Op: "update", Fields: fields, Err: err}
	}
	next, err := h.decode(response)
	if err != nil {
		return current, &UpdateError{Resource: h.resource, ID: h.id, Op: "decode", Fields: fields, Err: err}
	}
	h.snapshot.Store(next)
	h.logger.Info("resource updated",
		"resource", h.resource,
		"id", h.id,
		"fields", fields,
	)
	return next, nil
}

// Set sends a single top-level field.
func (h *Handle[S]) Set(ctx context.Context, field string, value any) (*S, error) {
	return h.Apply(ctx, func(*S) (Patch, error) {
		return Patch{field: value}, nil
	})
}

// Refresh re-hydrates the snapshot from fetcher. On failure the
// snapshot is untouched.
func (h *Handle[S]) Refresh(ctx context.Context, fetcher Fetcher) (*S, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return h.refreshLocked(ctx, fetcher)
}

// Do runs action under the handle's write lock and then re-hydrates
// from fetcher. It serves operations that change a resource through an
// endpoint other than its update route (consuming an entitlement).
// If action fails nothing is fetched and the snapshot is untouched.
func (h *Handle[S]) Do(ctx context.Context, op string, action func(ctx context.Context, id ref.Snowflake) error, fetcher Fetcher) (*S, error) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := action(ctx, h.id); err != nil {
		return h.snapshot.Load(), &UpdateError{Resource: h.resource, ID: h.id, Op: op, Err: err}
	}
	return h.refreshLocked(ctx, fetcher)
}

func (h *Handle[S]) refreshLocked(ctx context.Context, fetcher Fetcher) (*S, error) {
	current := h.snapshot.Load()
	response, err := fetcher.Fetch(ctx, h.id)
	if err != nil {
		return current, &UpdateError{Resource: h.resource, ID: h.id, Op: "fetch", Err: err}
	}
	next, err := h.decode(response)
	if err != nil {
		return current, &UpdateError{Resource: h.resource, ID: h.id, Op: "decode", Err: err}
	}
	h.snapshot.Store(next)
	h.logger.Debug("resource refreshed", "resource", h.resource, "id", h.id)
	return next, nil
}
