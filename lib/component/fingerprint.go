// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3-256 digest of the RFC 8785
// canonical form of the trees' wire JSON. Two trees that encode to the
// same JSON modulo key order and whitespace have the same fingerprint.
func Fingerprint(roots []Component) (string, error) {
	encoded, err := json.Marshal(Components(roots))
	if err != nil {
		return "", fmt.Errorf("component: encoding for fingerprint: %w", err)
	}
	return FingerprintJSON(encoded)
}

// FingerprintJSON fingerprints an already encoded JSON document.
func FingerprintJSON(data []byte) (string, error) {
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("component: canonicalizing for fingerprint: %w", err)
	}
	digest := blake3.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}
