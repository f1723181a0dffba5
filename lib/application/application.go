// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package application models the bot's own application record and edits
// it with write-through partial updates.
//
// install_params is a nested object the platform replaces wholesale on
// update. SetInstallScopes and SetInstallPermissions therefore send the
// current install_params merged with the one changed key, the same way
// automod merges trigger_metadata.
package application

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/resource"
)

const resourceName = "application"

// Flag is one bit of the application flags field.
type Flag uint64

const (
	FlagAutoModerationRuleCreateBadge Flag = 1 << 6
	FlagGatewayPresence               Flag = 1 << 12
	FlagGatewayPresenceLimited        Flag = 1 << 13
	FlagGatewayGuildMembers           Flag = 1 << 14
	FlagGatewayGuildMembersLimited    Flag = 1 << 15
	FlagVerificationPendingGuildLimit Flag = 1 << 16
	FlagEmbedded                      Flag = 1 << 17
	FlagGatewayMessageContent         Flag = 1 << 18
	FlagGatewayMessageContentLimited  Flag = 1 << 19
	FlagApplicationCommandBadge       Flag = 1 << 23
)

// EditableFlags are the bits an application may change on itself. Every
// other bit is granted by the platform.
const EditableFlags = FlagGatewayPresenceLimited | FlagGatewayGuildMembersLimited | FlagGatewayMessageContentLimited

// Has reports whether every bit of flag is set.
func (f Flag) Has(flag Flag) bool { return f&flag == flag }

// Limits enforced before sending.
const (
	MaxDescriptionLength = 400
	MaxTags              = 5
	MaxTagLength         = 20
)

// install_params keys.
const (
	KeyScopes      = "scopes"
	KeyPermissions = "permissions"
)

// Application is a snapshot of the current application.
type Application struct {
	ID                             ref.Snowflake     `json:"id"`
	Name                           string            `json:"name"`
	Icon                           *string           `json:"icon"`
	Description                    string            `json:"description"`
	Flags                          Flag              `json:"flags,omitempty"`
	Tags                           []string          `json:"tags,omitempty"`
	InstallParams                  resource.Metadata `json:"install_params,omitempty"`
	CustomInstallURL               string            `json:"custom_install_url,omitempty"`
	InteractionsEndpointURL        string            `json:"interactions_endpoint_url,omitempty"`
	RoleConnectionsVerificationURL string            `json:"role_connections_verification_url,omitempty"`
	CoverImage                     string            `json:"cover_image,omitempty"`
	BotPublic                      bool              `json:"bot_public"`
	Owner                          *resource.User    `json:"owner,omitempty"`
}

// InstallScopes returns install_params.scopes.
func (a *Application) InstallScopes() []string {
	return a.InstallParams.Strings(KeyScopes)
}

// InstallPermissions returns install_params.permissions. The platform
// sends the bitfield as a decimal string.
func (a *Application) InstallPermissions() uint64 {
	raw, ok := a.InstallParams.StringValue(KeyPermissions)
	if !ok {
		return 0
	}
	permissions, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return permissions
}

// Handle is a write-through handle on the current application.
type Handle struct {
	handle *resource.Handle[Application]
}

func NewHandle(application *Application, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	if application == nil {
		return nil, resource.InvalidArgument(resourceName, "application", "handle requires an initial snapshot")
	}
	handle, err := resource.New(resource.Config[Application]{
		Resource: resourceName,
		ID:       application.ID,
		Initial:  application,
		Updater:  updater,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &Handle{handle: handle}, nil
}

// Hydrate decodes an application payload and wraps it.
func Hydrate(data []byte, updater resource.Updater, logger *slog.Logger) (*Handle, error) {
	application, err := resource.DecodeJSON[Application](data)
	if err != nil {
		return nil, err
	}
	return NewHandle(application, updater, logger)
}

// Application returns the current snapshot.
func (h *Handle) Application() *Application { return h.handle.Snapshot() }

func (h *Handle) Refresh(ctx context.Context, fetcher resource.Fetcher) (*Application, error) {
	return h.handle.Refresh(ctx, fetcher)
}

func (h *Handle) SetDescription(ctx context.Context, description string) (*Application, error) {
	return h.handle.Apply(ctx, func(*Application) (resource.Patch, error) {
		if utf8.RuneCountInString(description) > MaxDescriptionLength {
			return nil, resource.InvalidArgument(resourceName, "description", "description exceeds %d characters", MaxDescriptionLength)
		}
		return resource.Patch{"description": description}, nil
	})
}

// SetTags replaces the discovery tags. No tags clears the list.
func (h *Handle) SetTags(ctx context.Context, tags ...string) (*Application, error) {
	return h.handle.Apply(ctx, func(*Application) (resource.Patch, error) {
		if len(tags) > MaxTags {
			return nil, resource.InvalidArgument(resourceName, "tags", "%d tags exceed the limit of %d", len(tags), MaxTags)
		}
		for _, tag := range tags {
			if tag == "" || utf8.RuneCountInString(tag) > MaxTagLength {
				return nil, resource.InvalidArgument(resourceName, "tags", "tag %q must be 1..%d characters", tag, MaxTagLength)
			}
		}
		return resource.Patch{"tags": append([]string{}, tags...)}, nil
	})
}

// SetFlags sends flags. Only EditableFlags may differ from the current
// value.
func (h *Handle) SetFlags(ctx context.Context, flags Flag) (*Application, error) {
	return h.handle.Apply(ctx, func(current *Application) (resource.Patch, error) {
		if changed := (current.Flags ^ flags) &^ EditableFlags; changed != 0 {
			return nil, resource.InvalidArgument(resourceName, "flags", "flags %#x are not editable", uint64(changed))
		}
		if current.Flags == flags {
			return nil, nil
		}
		return resource.Patch{"flags": flags}, nil
	})
}

// SetInteractionsEndpointURL sets the HTTP interactions endpoint. An
// empty URL clears it.
func (h *Handle) SetInteractionsEndpointURL(ctx context.Context, endpoint string) (*Application, error) {
	return h.setURL(ctx, "interactions_endpoint_url", endpoint)
}

// SetCustomInstallURL sets the custom install link. The platform
// rejects a custom install URL and install_params together, so a
// non-empty URL is refused while install_params is set.
func (h *Handle) SetCustomInstallURL(ctx context.Context, installURL string) (*Application, error) {
	return h.handle.Apply(ctx, func(current *Application) (resource.Patch, error) {
		if installURL != "" && len(current.InstallParams) > 0 {
			return nil, resource.InvalidArgument(resourceName, "custom_install_url", "install_params is set; clear it before setting a custom install url")
		}
		return urlPatch("custom_install_url", installURL)
	})
}

func (h *Handle) SetRoleConnectionsVerificationURL(ctx context.Context, verificationURL string) (*Application, error) {
	return h.setURL(ctx, "role_connections_verification_url", verificationURL)
}

// SetInstallScopes merges scopes into install_params.
func (h *Handle) SetInstallScopes(ctx context.Context, scopes ...string) (*Application, error) {
	return h.mergeInstallParams(ctx, KeyScopes, func() (any, error) {
		if len(scopes) == 0 {
			return nil, resource.InvalidArgument(resourceName, KeyScopes, "at least one scope is required")
		}
		for _, scope := range scopes {
			if scope == "" || strings.ContainsAny(scope, " \t") {
				return nil, resource.InvalidArgument(resourceName, KeyScopes, "invalid scope %q", scope)
			}
		}
		return append([]string{}, scopes...), nil
	})
}

// SetInstallPermissions merges the permissions bitfield into
// install_params.
func (h *Handle) SetInstallPermissions(ctx context.Context, permissions uint64) (*Application, error) {
	return h.mergeInstallParams(ctx, KeyPermissions, func() (any, error) {
		return strconv.FormatUint(permissions, 10), nil
	})
}

// ClearInstallParams removes install_params.
func (h *Handle) ClearInstallParams(ctx context.Context) (*Application, error) {
	return h.handle.Apply(ctx, func(current *Application) (resource.Patch, error) {
		if len(current.InstallParams) == 0 {
			return nil, nil
		}
		return resource.Patch{"install_params": resource.Null}, nil
	})
}

func (h *Handle) mergeInstallParams(ctx context.Context, key string, value func() (any, error)) (*Application, error) {
	return h.handle.Apply(ctx, func(current *Application) (resource.Patch, error) {
		if current.CustomInstallURL != "" {
			return nil, resource.InvalidArgument(resourceName, "install_params", "custom_install_url is set; clear it before setting install params")
		}
		resolved, err := value()
		if err != nil {
			return nil, err
		}
		merged := current.InstallParams.Merge(resource.Metadata{key: resolved})
		return resource.Patch{"install_params": merged}, nil
	})
}

func (h *Handle) setURL(ctx context.Context, field, value string) (*Application, error) {
	return h.handle.Apply(ctx, func(*Application) (resource.Patch, error) {
		return urlPatch(field, value)
	})
}

// urlPatch validates an absolute https URL. Empty clears the field.
func urlPatch(field, value string) (resource.Patch, error) {
	if value == "" {
		return resource.Patch{field: resource.Null}, nil
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme != "https" || parsed.Host == "" {
		return nil, resource.InvalidArgument(resourceName, field, "%q is not an absolute https url", value)
	}
	return resource.Patch{field: value}, nil
}
