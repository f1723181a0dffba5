// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import "encoding/json"

// Component is a node in a message's component tree. The set of
// implementations is closed: every concrete type lives in this package
// and corresponds to exactly one Kind (SelectMenu covers the five select
// kinds and reports which one through Kind).
//
// All implementations are pointer types and marshal to their wire shape
// including the "type" discriminant.
type Component interface {
	json.Marshaler

	// Kind returns the wire discriminant.
	Kind() Kind

	// ComponentID returns the optional numeric identifier. Zero means
	// unset; the platform assigns identifiers to components sent
	// without one.
	ComponentID() int

	component()
}

// Compile-time checks: every variant implements Component.
var (
	_ Component = (*ActionRow)(nil)
	_ Component = (*Button)(nil)
	_ Component = (*SelectMenu)(nil)
	_ Component = (*TextInput)(nil)
	_ Component = (*Section)(nil)
	_ Component = (*TextDisplay)(nil)
	_ Component = (*Thumbnail)(nil)
	_ Component = (*MediaGallery)(nil)
	_ Component = (*File)(nil)
	_ Component = (*Separator)(nil)
	_ Component = (*Container)(nil)
)

// Components is a component list that decodes through the default
// (lenient) parser, for embedding in wire structs such as messages.
// A nil list marshals as an empty array.
type Components []Component

// MarshalJSON encodes the list as a JSON array.
func (c Components) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Component(c))
}

// UnmarshalJSON decodes the array with the default parser: unknown
// discriminants are dropped, malformed payloads are errors.
func (c *Components) UnmarshalJSON(data []byte) error {
	parsed, err := ParseList(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
