// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides the platform's identifier type.
//
// Every platform object (user, channel, role, guild, message, emoji,
// auto-moderation rule, sound, sticker, SKU, entitlement) is named by a
// [Snowflake]: a 64-bit integer whose upper 42 bits are a millisecond
// timestamp. Snowflakes are strings on the wire, decimal in logs, and
// text in CBOR, so the type implements encoding.TextMarshaler alongside
// its JSON methods.
package ref
