// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps the bot token out of swap, core dumps, and the
// garbage-collected heap.
//
// [Buffer] is an anonymous mmap region locked with mlock and marked
// MADV_DONTDUMP. [ReadFromPath] loads the token named by the
// configuration's api.token_file into a Buffer; the REST client copies
// it to a string only when building the Authorization header.
// Close zeroes and unmaps the region.
package secret
