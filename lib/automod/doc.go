// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package automod models a guild's auto-moderation rules and edits them
// with write-through partial updates.
//
// A [Rule] is an immutable snapshot. A [Handle] owns the current
// snapshot and exposes one method per editable field. Every method
// sends a single PATCH and replaces the whole snapshot with the rule
// the platform returns.
//
// Trigger metadata is one nested object on the wire, replaced wholesale
// by the platform. The trigger setters (SetKeywordFilter,
// SetAllowList, ...) therefore send the current metadata with one key
// changed, so unrelated keys survive.
//
// Actions are keyed by type: a rule holds at most one action of each
// type. [Handle.SetAction] upserts by type. A candidate with no match
// is appended. A candidate whose metadata is entirely unset removes the
// matching action. Any other candidate replaces the matching action in
// place.
package automod
