// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging is the REST client for the chat platform.
//
// [Client] holds the base URL, the bot token (in a secret.Buffer), and
// the HTTP transport. Every request goes through one path that sets the
// Bot authorization and User-Agent headers, bounds the response read,
// and turns any non-2xx response into an [*APIError] carrying the
// platform's numeric code, message, HTTP status, and per-field error
// tree. [IsAPIError] tests for a specific code; [APIError.FieldErrors]
// flattens the tree into dotted paths such as
// "components.0.components.1.custom_id".
//
// Resource endpoints return write-through handles from the lib/
// resource packages, wired to Updater and Fetcher adapters that PATCH
// and GET the resource's route:
//
//	rule, err := client.AutoModerationRule(ctx, guildID, ruleID)
//	rule.SetKeywordFilter(ctx, []string{"spam"})
//
// *Client also implements resource.Resolver, so snapshot references
// (exempt roles, sound uploaders) resolve through the same client.
//
// [Client.SendMessage] and [Client.EditMessage] send component trees
// built with lib/component. Layout components set the components-v2
// message flag; sends carry the tree's fingerprint as an enforced nonce
// so a retried send is deduplicated by the platform. With
// ClientConfig.ValidateComponents the wire payload is checked against
// the embedded JSON Schema before any request is made.
//
// Request URLs are built by string concatenation. Every path segment is
// a snowflake or a fixed word, so no escaping is needed.
package messaging
