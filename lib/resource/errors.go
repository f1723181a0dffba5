// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/chorus/lib/component"
	"github.com/bureau-foundation/chorus/lib/ref"
)

// ErrInvalidArgument is the same sentinel component builders use, so a
// single errors.Is check covers builder and setter input errors.
var ErrInvalidArgument = component.ErrInvalidArgument

// ErrRemoteUpdate matches every *UpdateError.
var ErrRemoteUpdate = errors.New("remote update failed")

// UpdateError reports a failed round trip to the platform. The handle's
// snapshot is unchanged when one is returned.
type UpdateError struct {
	// Resource names the resource kind ("auto_moderation_rule",
	// "sound", ...).
	Resource string
	ID       ref.Snowflake
	// Op is "update", "fetch", or "decode".
	Op     string
	Fields []string
	Err    error
}

func (e *UpdateError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("resource: %s %s %s %v: %v", e.Op, e.Resource, e.ID, e.Fields, e.Err)
	}
	return fmt.Sprintf("resource: %s %s %s: %v", e.Op, e.Resource, e.ID, e.Err)
}

// Is matches ErrRemoteUpdate.
func (e *UpdateError) Is(target error) bool { return target == ErrRemoteUpdate }

func (e *UpdateError) Unwrap() error { return e.Err }

// IsRemoteUpdate reports whether err is or wraps an *UpdateError.
func IsRemoteUpdate(err error) bool {
	return errors.Is(err, ErrRemoteUpdate)
}

// ArgumentError reports a setter input that violates a local contract.
// Nothing was sent when one is returned.
type ArgumentError struct {
	Resource string
	Argument string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Resource, e.Argument, e.Reason)
}

// Is matches ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// InvalidArgument returns an *ArgumentError with a formatted reason.
func InvalidArgument(resource, argument, format string, args ...any) error {
	return &ArgumentError{Resource: resource, Argument: argument, Reason: fmt.Sprintf(format, args...)}
}
