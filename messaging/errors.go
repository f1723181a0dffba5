// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// APIError is a structured error response from the platform. Callers
// use errors.As to inspect it:
//
//	var apiErr *APIError
//	if errors.As(err, &apiErr) && apiErr.Code == ErrCodeMissingPermissions { ... }
//
// Errors returned through a resource handle are wrapped in a
// *resource.UpdateError; errors.As reaches the APIError through it.
type APIError struct {
	// Code is the platform's numeric JSON error code. Zero for
	// responses that carry only an HTTP status (some 5xx and 429s).
	Code int `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Errors is the per-field error tree of a form-body rejection.
	Errors json.RawMessage `json:"errors,omitempty"`
	// RetryAfter is set on 429 responses. Retrying is the caller's
	// decision.
	RetryAfter time.Duration `json:"-"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "api: %d (%d): %s", e.Code, e.StatusCode, e.Message)
	if fields := e.FieldErrors(); len(fields) > 0 {
		builder.WriteString(" [")
		for index, field := range fields {
			if index > 0 {
				builder.WriteString("; ")
			}
			fmt.Fprintf(&builder, "%s: %s", field.Path, field.Message)
		}
		builder.WriteString("]")
	}
	return builder.String()
}

// Platform JSON error codes the library reacts to.
const (
	ErrCodeUnknownChannel      = 10003
	ErrCodeUnknownGuild        = 10004
	ErrCodeUnknownMessage      = 10008
	ErrCodeUnknownRole         = 10011
	ErrCodeUnknownUser         = 10013
	ErrCodeUnknownSticker      = 10060
	ErrCodeUnauthorized        = 40001
	ErrCodeMissingAccess       = 50001
	ErrCodeMissingPermissions  = 50013
	ErrCodeInvalidFormBody     = 50035
	ErrCodeInteractionTimedOut = 10062
)

// IsAPIError reports whether err is (or wraps) an *APIError with code.
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// FieldError is one leaf of the errors tree.
type FieldError struct {
	// Path is the dotted location, e.g. "components.0.components.1.custom_id".
	Path    string
	Code    string
	Message string
}

// FieldErrors flattens the errors tree, sorted by path. The tree nests
// objects keyed by field name or array index, with "_errors" arrays at
// the leaves.
func (e *APIError) FieldErrors() []FieldError {
	if len(e.Errors) == 0 {
		return nil
	}
	var tree map[string]json.RawMessage
	if err := json.Unmarshal(e.Errors, &tree); err != nil {
		return nil
	}
	var fields []FieldError
	collectFieldErrors(tree, "", &fields)
	slices.SortStableFunc(fields, func(a, b FieldError) int { return strings.Compare(a.Path, b.Path) })
	return fields
}

func collectFieldErrors(tree map[string]json.RawMessage, path string, fields *[]FieldError) {
	for key, raw := range tree {
		if key == "_errors" {
			var leaves []struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			if json.Unmarshal(raw, &leaves) == nil {
				for _, leaf := range leaves {
					*fields = append(*fields, FieldError{Path: path, Code: leaf.Code, Message: leaf.Message})
				}
			}
			continue
		}
		var child map[string]json.RawMessage
		if json.Unmarshal(raw, &child) != nil {
			continue
		}
		childPath := key
		if path != "" {
			childPath = path + "." + key
		}
		collectFieldErrors(child, childPath, fields)
	}
}
