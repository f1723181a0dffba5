// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package automod

import (
	"fmt"
	"time"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

// EventType is the user action that triggers rule evaluation.
type EventType int

const (
	EventMessageSend  EventType = 1
	EventMemberUpdate EventType = 2
)

func (e EventType) String() string {
	switch e {
	case EventMessageSend:
		return "message_send"
	case EventMemberUpdate:
		return "member_update"
	}
	return fmt.Sprintf("event_type(%d)", int(e))
}

// TriggerType selects what content a rule inspects. It cannot be
// changed after creation.
type TriggerType int

const (
	TriggerKeyword       TriggerType = 1
	TriggerSpam          TriggerType = 3
	TriggerKeywordPreset TriggerType = 4
	TriggerMentionSpam   TriggerType = 5
	TriggerMemberProfile TriggerType = 6
)

func (t TriggerType) String() string {
	switch t {
	case TriggerKeyword:
		return "keyword"
	case TriggerSpam:
		return "spam"
	case TriggerKeywordPreset:
		return "keyword_preset"
	case TriggerMentionSpam:
		return "mention_spam"
	case TriggerMemberProfile:
		return "member_profile"
	}
	return fmt.Sprintf("trigger_type(%d)", int(t))
}

// Preset is a platform-maintained word list.
type Preset int

const (
	PresetProfanity     Preset = 1
	PresetSexualContent Preset = 2
	PresetSlurs         Preset = 3
)

// ActionType is the discriminant of a rule action.
type ActionType int

const (
	ActionBlockMessage           ActionType = 1
	ActionSendAlertMessage       ActionType = 2
	ActionTimeout                ActionType = 3
	ActionBlockMemberInteraction ActionType = 4
)

func (a ActionType) String() string {
	switch a {
	case ActionBlockMessage:
		return "block_message"
	case ActionSendAlertMessage:
		return "send_alert_message"
	case ActionTimeout:
		return "timeout"
	case ActionBlockMemberInteraction:
		return "block_member_interaction"
	}
	return fmt.Sprintf("action_type(%d)", int(a))
}

// Trigger metadata keys.
const (
	KeyKeywordFilter         = "keyword_filter"
	KeyRegexPatterns         = "regex_patterns"
	KeyPresets               = "presets"
	KeyAllowList             = "allow_list"
	KeyMentionTotalLimit     = "mention_total_limit"
	KeyMentionRaidProtection = "mention_raid_protection_enabled"
)

// Platform limits checked before sending.
const (
	MaxKeywords          = 1000
	MaxRegexPatterns     = 10
	MaxAllowList         = 1000
	MaxMentionTotalLimit = 50
	MaxExemptRoles       = 20
	MaxExemptChannels    = 50
	MaxCustomMessage     = 150
	MaxTimeout           = 28 * 24 * time.Hour
)

// ActionMetadata carries the per-type action settings. A field is unset
// when nil (or zero for ChannelID).
type ActionMetadata struct {
	CustomMessage   *string       `json:"custom_message,omitempty"`
	ChannelID       ref.Snowflake `json:"channel_id,omitempty"`
	DurationSeconds *int          `json:"duration_seconds,omitempty"`
}

// Unset reports whether every field is unset.
func (m *ActionMetadata) Unset() bool {
	return m == nil || (m.CustomMessage == nil && m.ChannelID.IsZero() && m.DurationSeconds == nil)
}

// Action is what the platform does when a rule triggers.
type Action struct {
	Type     ActionType      `json:"type"`
	Metadata *ActionMetadata `json:"metadata,omitempty"`
}

// Duration returns the timeout duration of a timeout action.
func (a Action) Duration() (time.Duration, bool) {
	if a.Metadata == nil || a.Metadata.DurationSeconds == nil {
		return 0, false
	}
	return time.Duration(*a.Metadata.DurationSeconds) * time.Second, true
}

// Rule is a snapshot of one auto-moderation rule.
type Rule struct {
	ID              ref.Snowflake     `json:"id"`
	GuildID         ref.Snowflake     `json:"guild_id"`
	Name            string            `json:"name"`
	CreatorID       ref.Snowflake     `json:"creator_id"`
	EventType       EventType         `json:"event_type"`
	TriggerType     TriggerType       `json:"trigger_type"`
	TriggerMetadata resource.Metadata `json:"trigger_metadata"`
	Actions         []Action          `json:"actions"`
	Enabled         bool              `json:"enabled"`
	ExemptRoles     []ref.Snowflake   `json:"exempt_roles"`
	ExemptChannels  []ref.Snowflake   `json:"exempt_channels"`
}

// Action returns the rule's action of the given type.
func (r *Rule) Action(actionType ActionType) (Action, bool) {
	for _, action := range r.Actions {
		if action.Type == actionType {
			return action, true
		}
	}
	return Action{}, false
}

func (r *Rule) KeywordFilter() []string {
	return r.TriggerMetadata.Strings(KeyKeywordFilter)
}

func (r *Rule) RegexPatterns() []string {
	return r.TriggerMetadata.Strings(KeyRegexPatterns)
}

func (r *Rule) AllowList() []string {
	return r.TriggerMetadata.Strings(KeyAllowList)
}

func (r *Rule) Presets() []Preset {
	values := r.TriggerMetadata.Ints(KeyPresets)
	if values == nil {
		return nil
	}
	presets := make([]Preset, len(values))
	for index, value := range values {
		presets[index] = Preset(value)
	}
	return presets
}

// MentionTotalLimit returns the mention spam threshold, if set.
func (r *Rule) MentionTotalLimit() (int, bool) {
	return r.TriggerMetadata.Int(KeyMentionTotalLimit)
}

// MentionRaidProtection reports whether mention raid detection is on.
func (r *Rule) MentionRaidProtection() bool {
	enabled, _ := r.TriggerMetadata.Bool(KeyMentionRaidProtection)
	return enabled
}

// upsertAction applies the three-way upsert to a copy of actions.
func upsertAction(actions []Action, candidate Action) []Action {
	result := make([]Action, 0, len(actions)+1)
	matched := false
	for _, existing := range actions {
		if existing.Type != candidate.Type {
			result = append(result, existing)
			continue
		}
		matched = true
		if candidate.Metadata.Unset() {
			continue
		}
		result = append(result, candidate)
	}
	if !matched {
		result = append(result, candidate)
	}
	return result
}

// replaceAction swaps the action of candidate's type for candidate in a
// copy of actions, appending it when absent. It never removes.
func replaceAction(actions []Action, candidate Action) []Action {
	result := make([]Action, 0, len(actions)+1)
	replaced := false
	for _, existing := range actions {
		if existing.Type == candidate.Type {
			if !replaced {
				result = append(result, candidate)
				replaced = true
			}
			continue
		}
		result = append(result, existing)
	}
	if !replaced {
		result = append(result, candidate)
	}
	return result
}
