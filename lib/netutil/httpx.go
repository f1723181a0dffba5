// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response reads for the REST
// client.
//
// Every REST response body is read through ReadResponse or
// DecodeResponse, which refuse bodies larger than MaxResponseSize
// rather than truncating them silently. ErrorBody reads a failed
// response for diagnostics and caps what ends up in an error message.
package netutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize bounds REST response bodies. The largest legitimate
// payloads (a full guild member page, a message with 40 components and
// embeds) are well under a megabyte.
const MaxResponseSize int64 = 8 << 20

// MaxErrorBodySize bounds the part of an error response quoted in
// error messages.
const MaxErrorBodySize int64 = 4 << 10

// ErrResponseTooLarge is returned when a body exceeds MaxResponseSize.
var ErrResponseTooLarge = errors.New("netutil: response body exceeds size limit")

// ReadResponse reads a response body of at most MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, ErrResponseTooLarge
	}
	return data, nil
}

// DecodeResponse reads a body with ReadResponse and JSON-decodes it
// into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads up to MaxErrorBodySize bytes of an error response.
// Read errors are ignored; a partial body is still useful.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxErrorBodySize))
	return string(data)
}
