// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for chorus packages.
//
// [JSONObject] stands in for the platform's storage of one resource:
// it applies PATCH bodies the way the platform does (top-level keys
// replace, null deletes) and returns the full object, so resource
// handle tests exercise real encode/decode round trips without HTTP.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no chorus-internal dependencies.
package testutil
