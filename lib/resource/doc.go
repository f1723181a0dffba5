// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resource implements write-through handles for platform
// resources that are edited with partial updates.
//
// A [Handle] holds an immutable snapshot of a resource. Mutations go
// through [Handle.Apply]: the caller's function reads the current
// snapshot (the merge base) and returns a [Patch] naming only the
// fields to change. The handle sends the patch through its [Updater],
// decodes the full object the platform returns, and swaps the snapshot
// pointer. Either every cached field reflects the response, or, on any
// failure, the snapshot is exactly what it was before the call.
//
// Nested metadata objects (automod trigger metadata, application
// install params) are replaced wholesale by the platform, so setters
// for one key send the union of the current object and the new key via
// [Metadata.Merge]. Because the merge base is read before the request
// and the result applied after, Apply serializes mutations per handle;
// concurrent callers queue rather than overwrite each other's keys.
//
// Handles do not retry. Transport errors and platform rejections are
// returned as [*UpdateError], which matches [ErrRemoteUpdate] and
// unwraps to the collaborator's error (for example a
// *messaging.APIError).
//
// Foreign references (exempt roles, a sticker's uploader) are plain IDs
// in snapshots. [Resolver] turns them into entities after parsing and
// is never consulted during serialization.
package resource
