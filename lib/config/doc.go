// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for chorus tools.
//
// Configuration is loaded from a single file specified by either the
// CHORUS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no file discovery and no environment
// variable overrides individual values.
//
// The file may carry development and production sections that override
// base values when [Config].Environment matches. Without an explicit
// production section, production logs at warn.
//
// ${HOME} and ${VAR:-default} are expanded in api.token_file. The bot
// token itself is read from that file by [Config.Token] and never
// appears in the YAML.
//
// Key exports:
//
//   - [Config] -- master struct with API, Components, Log
//   - [Default] -- base values the file is loaded over
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Logger] -- the slog logger the config describes
package config
