// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bureau-foundation/chorus/lib/component"
)

// echoMessages makes the platform answer message writes by echoing the
// request body back as the created message.
func echoMessages(platform *fakePlatform, route string) {
	platform.handle(route, func(writer http.ResponseWriter, body map[string]any) {
		writeJSON(writer, http.StatusOK, map[string]any{
			"id":         "5000",
			"channel_id": "42",
			"content":    body["content"],
			"flags":      body["flags"],
			"nonce":      body["nonce"],
			"components": body["components"],
		})
	})
}

func deployView() *component.View {
	return component.NewView(func(view *component.View) {
		view.Container(func(container *component.ContainerBuilder) {
			container.AccentColor("#5865F2")
			container.TextDisplay("## Deploy finished")
			container.ActionRow(func(row *component.ActionRowBuilder) {
				row.Button(component.ButtonSuccess, func(button *component.ButtonBuilder) {
					button.Label("Promote").CustomID("deploy:promote")
				})
			})
		})
	})
}

func TestSendMessageLayoutView(t *testing.T) {
	platform, client := newFakePlatform(t)
	echoMessages(platform, "POST /channels/42/messages")

	message, err := client.SendMessage(context.Background(), 42, MessageSend{View: deployView()})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	requests := platform.requests()
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}
	body := requests[0].Body
	if body["flags"] != float64(FlagIsComponentsV2) {
		t.Errorf("flags = %v, want %d", body["flags"], FlagIsComponentsV2)
	}
	if _, present := body["content"]; present {
		t.Errorf("content sent with a layout view: %v", body["content"])
	}
	nonce, _ := body["nonce"].(string)
	if len(nonce) != maxNonceLength {
		t.Errorf("nonce = %q, want %d characters", nonce, maxNonceLength)
	}
	if body["enforce_nonce"] != true {
		t.Errorf("enforce_nonce = %v", body["enforce_nonce"])
	}

	if message.ID != 5000 || message.Flags&FlagIsComponentsV2 == 0 {
		t.Errorf("message = %+v", message)
	}
	if len(message.Components) != 1 || message.Components[0].Kind() != component.KindContainer {
		t.Fatalf("parsed components = %v", message.Components)
	}
	if count := component.Count(message.Components); count != 4 {
		t.Errorf("Count = %d, want 4", count)
	}
}

func TestSendMessageNonceIsStable(t *testing.T) {
	platform, client := newFakePlatform(t)
	echoMessages(platform, "POST /channels/42/messages")
	ctx := context.Background()

	for range 2 {
		if _, err := client.SendMessage(ctx, 42, MessageSend{View: deployView()}); err != nil {
			t.Fatalf("SendMessage failed: %v", err)
		}
	}
	requests := platform.requests()
	if requests[0].Body["nonce"] != requests[1].Body["nonce"] {
		t.Errorf("nonces differ for identical views: %v vs %v", requests[0].Body["nonce"], requests[1].Body["nonce"])
	}
}

func TestSendMessageActionRowsKeepContent(t *testing.T) {
	platform, client := newFakePlatform(t)
	echoMessages(platform, "POST /channels/42/messages")

	view := component.NewView(func(view *component.View) {
		view.ActionRow(func(row *component.ActionRowBuilder) {
			row.LinkButton("Docs", "https://example.com/docs")
		})
	})
	message, err := client.SendMessage(context.Background(), 42, MessageSend{
		Content: "see the docs",
		View:    view,
		Flags:   FlagSuppressNotifications,
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	body := platform.requests()[0].Body
	if body["content"] != "see the docs" {
		t.Errorf("content = %v", body["content"])
	}
	if body["flags"] != float64(FlagSuppressNotifications) {
		t.Errorf("flags = %v, want only suppress notifications", body["flags"])
	}
	if message.Content != "see the docs" {
		t.Errorf("Content = %q", message.Content)
	}
}

func TestSendMessageTextOnly(t *testing.T) {
	platform, client := newFakePlatform(t)
	echoMessages(platform, "POST /channels/42/messages")

	message, err := client.SendMessage(context.Background(), 42, MessageSend{Content: "hello"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	body := platform.requests()[0].Body
	if _, present := body["nonce"]; present {
		t.Errorf("nonce sent without components: %v", body["nonce"])
	}
	if _, present := body["components"]; present {
		t.Errorf("components sent without a view: %v", body["components"])
	}
	if len(message.Components) != 0 {
		t.Errorf("Components = %v", message.Components)
	}
}

func TestSendMessageRejectsContentWithLayout(t *testing.T) {
	platform, client := newFakePlatform(t)
	echoMessages(platform, "POST /channels/42/messages")

	_, err := client.SendMessage(context.Background(), 42, MessageSend{Content: "hi", View: deployView()})
	if !errors.Is(err, component.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	var argumentErr *component.InvalidArgumentError
	if !errors.As(err, &argumentErr) || argumentErr.Argument != "content" {
		t.Errorf("error = %v, want an invalid content argument", err)
	}
	if len(platform.requests()) != 0 {
		t.Error("request sent for an invalid message")
	}
}

func TestSendMessageSchemaValidation(t *testing.T) {
	platform, client := newFakePlatform(t, func(config *ClientConfig) {
		config.ValidateComponents = true
	})
	echoMessages(platform, "POST /channels/42/messages")
	ctx := context.Background()

	button := &component.Button{Style: component.ButtonPrimary, Label: "Loose", CustomID: "loose"}
	_, err := client.SendMessage(ctx, 42, MessageSend{View: component.ViewFromComponents(button)})
	if err == nil {
		t.Fatal("top-level button passed schema validation")
	}
	if len(platform.requests()) != 0 {
		t.Error("request sent for a payload the schema rejects")
	}

	if _, err := client.SendMessage(ctx, 42, MessageSend{View: deployView()}); err != nil {
		t.Fatalf("valid view rejected: %v", err)
	}
}

func TestEditAndGetMessage(t *testing.T) {
	platform, client := newFakePlatform(t)
	echoMessages(platform, "PATCH /channels/42/messages/5000")
	platform.handle("GET /channels/42/messages/5000", func(writer http.ResponseWriter, _ map[string]any) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{
			"id": "5000", "channel_id": "42", "content": "", "flags": 32768,
			"components": [
				{"type": 10, "id": 1, "content": "edited"},
				{"type": 99, "id": 2}
			]
		}`))
	})
	ctx := context.Background()

	view := component.NewView(func(view *component.View) {
		view.TextDisplay("edited")
	})
	edited, err := client.EditMessage(ctx, 42, 5000, MessageSend{View: view})
	if err != nil {
		t.Fatalf("EditMessage failed: %v", err)
	}
	if edited.Flags&FlagIsComponentsV2 == 0 {
		t.Errorf("Flags = %d, want components v2", edited.Flags)
	}
	if request := platform.requests()[0]; request.Method != http.MethodPatch {
		t.Errorf("method = %s", request.Method)
	}
	if _, present := platform.requests()[0].Body["nonce"]; present {
		t.Error("edit sent a nonce")
	}

	if _, err := client.EditMessage(ctx, 42, 5000, MessageSend{Content: "typo fixed"}); err != nil {
		t.Fatalf("content-only EditMessage failed: %v", err)
	}
	contentOnly := platform.requests()[1].Body
	if _, present := contentOnly["components"]; present {
		t.Errorf("content-only edit sent components: %v", contentOnly["components"])
	}
	if contentOnly["content"] != "typo fixed" {
		t.Errorf("content = %v", contentOnly["content"])
	}

	empty := component.NewView(func(*component.View) {})
	if _, err := client.EditMessage(ctx, 42, 5000, MessageSend{View: empty}); err != nil {
		t.Fatalf("clearing EditMessage failed: %v", err)
	}
	cleared, ok := platform.requests()[2].Body["components"].([]any)
	if !ok || len(cleared) != 0 {
		t.Errorf("components = %v, want an empty array from an empty view", platform.requests()[2].Body["components"])
	}

	fetched, err := client.GetMessage(ctx, 42, 5000)
	if err != nil {
		t.Fatalf("GetMessage failed: %v", err)
	}
	if len(fetched.Components) != 1 {
		t.Fatalf("Components = %v, want the unknown kind skipped", fetched.Components)
	}
	display, ok := fetched.Components[0].(*component.TextDisplay)
	if !ok || display.Content != "edited" {
		t.Errorf("Components[0] = %#v", fetched.Components[0])
	}
}

func TestStrictParserRejectsUnknownKinds(t *testing.T) {
	platform, client := newFakePlatform(t, func(config *ClientConfig) {
		config.Parser = &component.Parser{Strict: true}
	})
	platform.handle("GET /channels/42/messages/5000", func(writer http.ResponseWriter, _ map[string]any) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"id": "5000", "channel_id": "42", "components": [{"type": 99}]}`))
	})

	if _, err := client.GetMessage(context.Background(), 42, 5000); err == nil {
		t.Fatal("strict parser accepted an unknown kind")
	}
}
