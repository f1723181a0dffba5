// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/components.schema.json
var wireSchemaSource []byte

const wireSchemaURL = "https://chorus.bureau.foundation/schema/components.schema.json"

var (
	wireSchemaOnce     sync.Once
	wireSchemaCompiled *jsonschema.Schema
	wireSchemaErr      error
)

func wireSchema() (*jsonschema.Schema, error) {
	wireSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(wireSchemaURL, bytes.NewReader(wireSchemaSource)); err != nil {
			wireSchemaErr = fmt.Errorf("component: loading wire schema: %w", err)
			return
		}
		wireSchemaCompiled, wireSchemaErr = compiler.Compile(wireSchemaURL)
		if wireSchemaErr != nil {
			wireSchemaErr = fmt.Errorf("component: compiling wire schema: %w", wireSchemaErr)
		}
	})
	return wireSchemaCompiled, wireSchemaErr
}

// ValidateWire checks an encoded outbound component array against the
// platform's wire rules, including top-level placement, which Validate
// leaves to the server. It is independent of the Go types: use it on
// payloads assembled elsewhere, or as a final check before sending.
func ValidateWire(data []byte) error {
	schema, err := wireSchema()
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return fmt.Errorf("component: wire payload is not JSON: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("component: wire payload has trailing data after the component array")
	}
	if err := schema.Validate(document); err != nil {
		return fmt.Errorf("component: wire payload rejected: %w", err)
	}
	return nil
}
