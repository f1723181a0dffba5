// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package automod

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

const resourceName = "auto_moderation_rule"

// Handle is a write-through handle on one rule. Methods return the new
// snapshot; on error the previous snapshot is kept and returned.
type Handle struct {
	handle *resource.Handle[Rule]
}

// NewHandle wraps an already decoded rule. updater receives
// PATCH bodies for the rule's ID.
func NewHandle(rule *Rule, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	if rule == nil {
		return nil, resource.InvalidArgument(resourceName, "rule", "handle requires an initial snapshot")
	}
	handle, err := resource.New(resource.Config[Rule]{
		Resource: resourceName,
		ID:       rule.ID,
		Initial:  rule,
		Updater:  updater,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &Handle{handle: handle}, nil
}

// Hydrate decodes a rule payload and wraps it.
func Hydrate(data []byte, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	rule, err := resource.DecodeJSON[Rule](data)
	if err != nil {
		return nil, err
	}
	return NewHandle(rule, updater, logger)
}

// Rule returns the current snapshot.
func (h *Handle) Rule() *Rule { return h.handle.Snapshot() }

// Refresh re-reads the rule.
func (h *Handle) Refresh(ctx context.Context, fetcher resource.Fetcher) (*Rule, error) {
	return h.handle.Refresh(ctx, fetcher)
}

func (h *Handle) SetName(ctx context.Context, name string) (*Rule, error) {
	return h.handle.Apply(ctx, func(*Rule) (resource.Patch, error) {
		if strings.TrimSpace(name) == "" {
			return nil, resource.InvalidArgument(resourceName, "name", "name is empty")
		}
		return resource.Patch{"name": name}, nil
	})
}

func (h *Handle) SetEventType(ctx context.Context, eventType EventType) (*Rule, error) {
	return h.handle.Apply(ctx, func(*Rule) (resource.Patch, error) {
		if eventType != EventMessageSend && eventType != EventMemberUpdate {
			return nil, resource.InvalidArgument(resourceName, "event_type", "unknown event type %d", int(eventType))
		}
		return resource.Patch{"event_type": eventType}, nil
	})
}

func (h *Handle) SetEnabled(ctx context.Context, enabled bool) (*Rule, error) {
	return h.handle.Set(ctx, "enabled", enabled)
}

// SetExemptRoles replaces the exempt role list. No arguments clears it.
func (h *Handle) SetExemptRoles(ctx context.Context, roles ...ref.Snowflake) (*Rule, error) {
	return h.setIDs(ctx, "exempt_roles", roles, MaxExemptRoles)
}

// SetExemptChannels replaces the exempt channel list. No arguments
// clears it.
func (h *Handle) SetExemptChannels(ctx context.Context, channels ...ref.Snowflake) (*Rule, error) {
	return h.setIDs(ctx, "exempt_channels", channels, MaxExemptChannels)
}

func (h *Handle) setIDs(ctx context.Context, field string, ids []ref.Snowflake, limit int) (*Rule, error) {
	return h.handle.Apply(ctx, func(*Rule) (resource.Patch, error) {
		if len(ids) > limit {
			return nil, resource.InvalidArgument(resourceName, field, "%d ids exceed the limit of %d", len(ids), limit)
		}
		for _, id := range ids {
			if id.IsZero() {
				return nil, resource.InvalidArgument(resourceName, field, "zero id")
			}
		}
		return resource.Patch{field: append([]ref.Snowflake{}, ids...)}, nil
	})
}

// mergeTrigger sends the current trigger metadata with key set to
// value.
func (h *Handle) mergeTrigger(ctx context.Context, key string, value any, check func() error) (*Rule, error) {
	return h.handle.Apply(ctx, func(current *Rule) (resource.Patch, error) {
		if check != nil {
			if err := check(); err != nil {
				return nil, err
			}
		}
		merged := current.TriggerMetadata.Merge(resource.Metadata{key: value})
		return resource.Patch{"trigger_metadata": merged}, nil
	})
}

func (h *Handle) SetKeywordFilter(ctx context.Context, keywords []string) (*Rule, error) {
	return h.mergeTrigger(ctx, KeyKeywordFilter, nonNil(keywords), func() error {
		return checkStrings(KeyKeywordFilter, keywords, MaxKeywords)
	})
}

// SetRegexPatterns replaces the regex list. Patterns are checked with
// Go's RE2 parser, which accepts the same syntax the platform
// evaluates.
func (h *Handle) SetRegexPatterns(ctx context.Context, patterns []string) (*Rule, error) {
	return h.mergeTrigger(ctx, KeyRegexPatterns, nonNil(patterns), func() error {
		if err := checkStrings(KeyRegexPatterns, patterns, MaxRegexPatterns); err != nil {
			return err
		}
		for _, pattern := range patterns {
			if _, err := regexp.Compile(pattern); err != nil {
				return resource.InvalidArgument(resourceName, KeyRegexPatterns, "%q: %v", pattern, err)
			}
		}
		return nil
	})
}

func (h *Handle) SetPresets(ctx context.Context, presets ...Preset) (*Rule, error) {
	values := make([]int, 0, len(presets))
	for _, preset := range presets {
		values = append(values, int(preset))
	}
	return h.mergeTrigger(ctx, KeyPresets, values, func() error {
		for _, preset := range presets {
			if preset < PresetProfanity || preset > PresetSlurs {
				return resource.InvalidArgument(resourceName, KeyPresets, "unknown preset %d", int(preset))
			}
		}
		return nil
	})
}

func (h *Handle) SetAllowList(ctx context.Context, allowed []string) (*Rule, error) {
	return h.mergeTrigger(ctx, KeyAllowList, nonNil(allowed), func() error {
		return checkStrings(KeyAllowList, allowed, MaxAllowList)
	})
}

func (h *Handle) SetMentionTotalLimit(ctx context.Context, limit int) (*Rule, error) {
	return h.mergeTrigger(ctx, KeyMentionTotalLimit, limit, func() error {
		if limit < 0 || limit > MaxMentionTotalLimit {
			return resource.InvalidArgument(resourceName, KeyMentionTotalLimit, "limit must be 0..%d, got %d", MaxMentionTotalLimit, limit)
		}
		return nil
	})
}

func (h *Handle) SetMentionRaidProtection(ctx context.Context, enabled bool) (*Rule, error) {
	return h.mergeTrigger(ctx, KeyMentionRaidProtection, enabled, nil)
}

// SetAction upserts candidate by type; see the package documentation.
func (h *Handle) SetAction(ctx context.Context, candidate Action) (*Rule, error) {
	return h.handle.Apply(ctx, func(current *Rule) (resource.Patch, error) {
		if err := checkAction(candidate); err != nil {
			return nil, err
		}
		return resource.Patch{"actions": upsertAction(current.Actions, candidate)}, nil
	})
}

// RemoveAction removes the action of the given type. It sends nothing
// when the rule has no such action.
func (h *Handle) RemoveAction(ctx context.Context, actionType ActionType) (*Rule, error) {
	return h.handle.Apply(ctx, func(current *Rule) (resource.Patch, error) {
		if _, ok := current.Action(actionType); !ok {
			return nil, nil
		}
		return resource.Patch{"actions": upsertAction(current.Actions, Action{Type: actionType})}, nil
	})
}

// SetBlockMessage blocks matching messages, showing customMessage to
// the author. An empty message sends the action without metadata, so
// the platform default text is shown; it replaces an existing block
// action rather than removing it.
func (h *Handle) SetBlockMessage(ctx context.Context, customMessage string) (*Rule, error) {
	if customMessage != "" {
		return h.SetAction(ctx, Action{
			Type:     ActionBlockMessage,
			Metadata: &ActionMetadata{CustomMessage: &customMessage},
		})
	}
	return h.handle.Apply(ctx, func(current *Rule) (resource.Patch, error) {
		return resource.Patch{"actions": replaceAction(current.Actions, Action{Type: ActionBlockMessage})}, nil
	})
}

// SetSendAlert posts an alert to channelID when the rule triggers.
func (h *Handle) SetSendAlert(ctx context.Context, channelID ref.Snowflake) (*Rule, error) {
	if channelID.IsZero() {
		return h.Rule(), resource.InvalidArgument(resourceName, "channel_id", "alert channel is required")
	}
	return h.SetAction(ctx, Action{
		Type:     ActionSendAlertMessage,
		Metadata: &ActionMetadata{ChannelID: channelID},
	})
}

// SetTimeout times the member out for duration, rounded down to whole
// seconds.
func (h *Handle) SetTimeout(ctx context.Context, duration time.Duration) (*Rule, error) {
	seconds := int(duration / time.Second)
	return h.SetAction(ctx, Action{
		Type:     ActionTimeout,
		Metadata: &ActionMetadata{DurationSeconds: &seconds},
	})
}

// ClearTimeout removes the timeout action.
func (h *Handle) ClearTimeout(ctx context.Context) (*Rule, error) {
	return h.RemoveAction(ctx, ActionTimeout)
}

// ToggleBlockMemberInteraction adds the block-member-interaction action
// when absent and removes it when present. The action carries no
// metadata, so the upsert's unset-metadata branch is the removal.
func (h *Handle) ToggleBlockMemberInteraction(ctx context.Context) (*Rule, error) {
	return h.SetAction(ctx, Action{Type: ActionBlockMemberInteraction})
}

// ExemptRoleRefs resolves the exempt role IDs of the current snapshot.
func (h *Handle) ExemptRoleRefs(ctx context.Context, resolver resource.Resolver) ([]*resource.Role, error) {
	rule := h.Rule()
	return resource.ResolveEach(ctx, rule.ExemptRoles, func(ctx context.Context, id ref.Snowflake) (*resource.Role, error) {
		return resolver.RoleByID(ctx, rule.GuildID, id)
	})
}

// ExemptChannelRefs resolves the exempt channel IDs of the current
// snapshot.
func (h *Handle) ExemptChannelRefs(ctx context.Context, resolver resource.Resolver) ([]*resource.Channel, error) {
	return resource.ResolveEach(ctx, h.Rule().ExemptChannels, resolver.ChannelByID)
}

// CreatorRef resolves the rule's creator.
func (h *Handle) CreatorRef(ctx context.Context, resolver resource.Resolver) (*resource.User, error) {
	return resolver.UserByID(ctx, h.Rule().CreatorID)
}

func checkAction(action Action) error {
	if action.Type < ActionBlockMessage || action.Type > ActionBlockMemberInteraction {
		return resource.InvalidArgument(resourceName, "actions", "unknown action type %d", int(action.Type))
	}
	metadata := action.Metadata
	if metadata == nil {
		return nil
	}
	if metadata.CustomMessage != nil && len(*metadata.CustomMessage) > MaxCustomMessage {
		return resource.InvalidArgument(resourceName, "custom_message", "message exceeds %d characters", MaxCustomMessage)
	}
	if metadata.DurationSeconds != nil {
		seconds := *metadata.DurationSeconds
		if seconds <= 0 || time.Duration(seconds)*time.Second > MaxTimeout {
			return resource.InvalidArgument(resourceName, "duration_seconds", "timeout must be 1s..%s, got %ds", MaxTimeout, seconds)
		}
	}
	return nil
}

func checkStrings(key string, values []string, limit int) error {
	if len(values) > limit {
		return resource.InvalidArgument(resourceName, key, "%d entries exceed the limit of %d", len(values), limit)
	}
	for index, value := range values {
		if value == "" {
			return resource.InvalidArgument(resourceName, key, "entry %d is empty", index)
		}
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
