// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package component models message UI components: the recursive tree of
// action rows, buttons, select menus, sections, containers, media
// galleries, separators, text displays, thumbnails, and files that the
// chat platform renders under a message.
//
// The package has two directions that must stay symmetric:
//
//   - Read: [Parse] and [ParseList] decode the tagged-union wire format
//     (an integer "type" discriminant per node) into concrete [Component]
//     values. A [Parser] decides what happens to discriminants it does
//     not recognize: the default parser drops them from their parent's
//     child list so that newer server payloads still decode; a strict
//     parser returns [*UnknownKindError].
//
//   - Write: [View] and the per-variant builders ([ButtonBuilder],
//     [ContainerBuilder], ...) construct a tree fluently, validate it at
//     Build time, and marshal it to the exact wire shape the parser
//     reads. Unset optional fields are omitted rather than sent as null.
//
// Every field the parser reads for a variant is a field the builder can
// emit for that variant under the same discriminant, so
// Parse(Marshal(Build(x))) reproduces Build(x).
//
// Caller inputs that need interpretation (accent colors, emoji) go
// through [NormalizeColor] and [NormalizeEmoji]. Builders record the
// first invalid argument as an [*InvalidArgumentError], visible
// immediately through Err and returned again by Build.
//
// [ValidateWire] checks an encoded component array against the embedded
// JSON Schema and [Fingerprint] produces a stable content hash used for
// idempotent sends.
package component
