// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/chorus/lib/codec"
	"github.com/bureau-foundation/chorus/lib/netutil"
)

var inputFormats = map[string]bool{"json": true, "jsonc": true, "yaml": true, "cbor": true}

func validInputFormat(format string) bool { return inputFormats[format] }

// formatFromPath guesses the input format from the file extension.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc":
		return "jsonc"
	case ".yaml", ".yml":
		return "yaml"
	case ".cbor":
		return "cbor"
	default:
		return "json"
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := netutil.ReadResponse(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// normalizeInput converts the input to a JSON component array. A single
// component object is wrapped in an array.
func normalizeInput(data []byte, format string) ([]byte, error) {
	var payload []byte
	switch format {
	case "jsonc":
		payload = jsonc.ToJSON(data)
	case "yaml":
		var value any
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		payload = encoded
	case "cbor":
		encoded, err := codec.ToJSON(data)
		if err != nil {
			return nil, err
		}
		payload = encoded
	default:
		payload = data
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input is empty")
	}
	if trimmed[0] == '{' {
		wrapped := make([]byte, 0, len(trimmed)+2)
		wrapped = append(wrapped, '[')
		wrapped = append(wrapped, trimmed...)
		return append(wrapped, ']'), nil
	}
	return trimmed, nil
}
