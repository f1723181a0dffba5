// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/chorus/lib/component"
	"github.com/bureau-foundation/chorus/lib/ref"
)

// MessageFlag is one bit of a message's flags.
type MessageFlag int

const (
	FlagEphemeral             MessageFlag = 1 << 6
	FlagSuppressNotifications MessageFlag = 1 << 12

	// FlagIsComponentsV2 marks a message whose body is its component
	// tree. Such messages cannot carry content or embeds.
	FlagIsComponentsV2 MessageFlag = 1 << 15
)

// maxNonceLength is the platform's limit on message nonces.
const maxNonceLength = 25

// Message is the subset of a message the library reads back.
type Message struct {
	ID         ref.Snowflake         `json:"id"`
	ChannelID  ref.Snowflake         `json:"channel_id"`
	Content    string                `json:"content"`
	Flags      MessageFlag           `json:"flags"`
	Nonce      json.RawMessage       `json:"nonce,omitempty"`
	Components []component.Component `json:"-"`
}

// MessageSend describes a message to send or an edit to apply.
type MessageSend struct {
	// Content is plain text. Must be empty when the components use
	// layout kinds (sections, containers, text displays, ...).
	Content string

	// View supplies the component tree. A nil View leaves components
	// out of the body, so an edit keeps the message's existing tree. An
	// empty View sends an empty array and clears it.
	View *component.View

	// Flags are added to the flags the library derives.
	Flags MessageFlag
}

type messageBody struct {
	Content      string                `json:"content,omitempty"`
	Components   *component.Components `json:"components,omitempty"`
	Flags        MessageFlag           `json:"flags,omitempty"`
	Nonce        string                `json:"nonce,omitempty"`
	EnforceNonce bool                  `json:"enforce_nonce,omitempty"`
}

// SendMessage posts a message to channelID. The view's fingerprint is
// used as the nonce with enforce_nonce set, so retrying an identical
// send after a timeout does not post a duplicate.
func (c *Client) SendMessage(ctx context.Context, channelID ref.Snowflake, send MessageSend) (*Message, error) {
	body, err := c.messageBody(send)
	if err != nil {
		return nil, err
	}
	if roots := body.roots(); len(roots) > 0 {
		fingerprint, err := component.Fingerprint(roots)
		if err != nil {
			return nil, fmt.Errorf("messaging: fingerprinting components: %w", err)
		}
		body.Nonce = fingerprint[:maxNonceLength]
		body.EnforceNonce = true
	}
	return c.postMessage(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", channelID), body)
}

// EditMessage replaces the content and component tree of a message.
func (c *Client) EditMessage(ctx context.Context, channelID, messageID ref.Snowflake, send MessageSend) (*Message, error) {
	body, err := c.messageBody(send)
	if err != nil {
		return nil, err
	}
	return c.postMessage(ctx, http.MethodPatch, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), body)
}

// GetMessage fetches one message and parses its components with the
// client's parser.
func (c *Client) GetMessage(ctx context.Context, channelID, messageID ref.Snowflake) (*Message, error) {
	response, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID), nil)
	if err != nil {
		return nil, fmt.Errorf("messaging: fetching message %s: %w", messageID, err)
	}
	return c.decodeMessage(response)
}

func (c *Client) messageBody(send MessageSend) (*messageBody, error) {
	body := &messageBody{Content: send.Content, Flags: send.Flags}
	if send.View != nil {
		nodes, err := send.View.Build()
		if err != nil {
			return nil, fmt.Errorf("messaging: building view: %w", err)
		}
		components := component.Components(nodes)
		body.Components = &components
	}
	if usesLayoutKinds(body.roots()) {
		if body.Content != "" {
			return nil, fmt.Errorf("messaging: %w", &component.InvalidArgumentError{
				Argument: "content",
				Reason:   "messages with layout components cannot carry content",
			})
		}
		body.Flags |= FlagIsComponentsV2
	}
	if c.validateComponents && body.Components != nil {
		encoded, err := json.Marshal(body.Components)
		if err != nil {
			return nil, fmt.Errorf("messaging: encoding components: %w", err)
		}
		if err := component.ValidateWire(encoded); err != nil {
			return nil, fmt.Errorf("messaging: %w", err)
		}
	}
	return body, nil
}

func (b *messageBody) roots() []component.Component {
	if b.Components == nil {
		return nil
	}
	return *b.Components
}

func (c *Client) postMessage(ctx context.Context, method, path string, body *messageBody) (*Message, error) {
	response, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, fmt.Errorf("messaging: %s %s: %w", method, path, err)
	}
	message, err := c.decodeMessage(response)
	if err != nil {
		return nil, err
	}
	c.logger.Info("message sent",
		"channel_id", message.ChannelID,
		"message_id", message.ID,
		"components", component.Count(message.Components),
	)
	return message, nil
}

func (c *Client) decodeMessage(data []byte) (*Message, error) {
	var wire struct {
		Message
		Components json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("messaging: failed to parse message: %w", err)
	}
	message := wire.Message
	if len(wire.Components) > 0 {
		nodes, err := c.parser.ParseList(wire.Components)
		if err != nil {
			return nil, fmt.Errorf("messaging: message %s components: %w", message.ID, err)
		}
		message.Components = nodes
	}
	return &message, nil
}

// usesLayoutKinds reports whether any top-level node is something other
// than an action row.
func usesLayoutKinds(roots []component.Component) bool {
	for _, root := range roots {
		if root.Kind() != component.KindActionRow {
			return true
		}
	}
	return false
}
