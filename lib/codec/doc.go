// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides chorus's CBOR encoding configuration.
//
// JSON is the platform's wire format. CBOR is used for binary exports:
// encoded views written by chorus-view and archived resource snapshots.
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same logical data always produces identical bytes and exports can be
// compared byte for byte.
//
// Snapshot structs carry `json` tags only. fxamacker/cbor reads `json`
// tags when `cbor` tags are absent, so one tag set controls field
// naming for both formats:
//
//	data, err := codec.Marshal(rule)
//	err = codec.Unmarshal(data, &rule)
//
// Component trees go through FromJSON because their discriminants are
// written by MarshalJSON:
//
//	wire, err := json.Marshal(component.Components(roots))
//	data, err := codec.FromJSON(wire)
package codec
