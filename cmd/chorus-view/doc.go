// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Chorus-view is a developer tool for message component trees. It reads
// a view description as JSON, commented JSON, YAML, or CBOR, parses and
// validates it the way the library does for outbound messages, and
// prints the wire payload (JSON, CBOR, or CBOR diagnostic notation)
// together with the tree's fingerprint.
//
// With --send-channel the view is posted to a channel using the bot
// token named by api.token_file in the config file.
//
//	chorus-view --input deploy.yaml --format diag
//	chorus-view --input deploy.jsonc --send-channel 1234567890
package main
