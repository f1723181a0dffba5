// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is. The structured error types below
// unwrap to these.
var (
	// ErrMalformedPayload: an inbound payload is missing a required
	// field for its discriminant or places a node where it may not go.
	ErrMalformedPayload = errors.New("malformed component payload")

	// ErrUnknownKind: an inbound "type" value outside the known set.
	ErrUnknownKind = errors.New("unknown component type")

	// ErrInvalidArgument: caller-supplied builder input violates a
	// local contract.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrViewSealed: a View was modified after it was built.
	ErrViewSealed = errors.New("view already built")
)

// MalformedPayloadError describes a payload that cannot be decoded into
// the variant its discriminant names. Type is the discriminant of the
// node being decoded (zero when the discriminant itself is missing) and
// Field is the offending wire field.
type MalformedPayloadError struct {
	Type   Kind
	Field  string
	Reason string
	// Err is the underlying decode error, if any.
	Err error
}

func (e *MalformedPayloadError) Error() string {
	message := "component: malformed"
	if e.Type != 0 {
		message += " " + e.Type.String()
	}
	if e.Field != "" {
		message += fmt.Sprintf(" field %q", e.Field)
	}
	message += ": " + e.Reason
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

// Is matches ErrMalformedPayload.
func (e *MalformedPayloadError) Is(target error) bool { return target == ErrMalformedPayload }

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// UnknownKindError reports a discriminant this package does not know.
type UnknownKindError struct {
	Type Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("component: unknown type %d", int(e.Type))
}

// Is matches ErrUnknownKind.
func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// InvalidArgumentError reports a builder input that violates a local
// contract. Argument names the builder parameter ("accent_color",
// "emoji", "custom_id", ...).
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("component: invalid %s: %s", e.Argument, e.Reason)
}

// Is matches ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func missingField(kind Kind, field string) error {
	return &MalformedPayloadError{Type: kind, Field: field, Reason: "required field missing"}
}

func invalidArgument(argument, format string, args ...any) error {
	return &InvalidArgumentError{Argument: argument, Reason: fmt.Sprintf(format, args...)}
}
