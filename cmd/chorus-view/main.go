// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/chorus/lib/codec"
	"github.com/bureau-foundation/chorus/lib/component"
	"github.com/bureau-foundation/chorus/lib/config"
	"github.com/bureau-foundation/chorus/lib/ref"
	"github.com/bureau-foundation/chorus/lib/version"
	"github.com/bureau-foundation/chorus/messaging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath     string
	inputPath      string
	inputFormat    string
	outputFormat   string
	strict         bool
	validateSchema bool
	sendChannel    string
	showVersion    bool

	// Set when the flag was given explicitly, so it overrides the
	// config file.
	strictSet         bool
	validateSchemaSet bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	var parsed options
	flagSet := pflag.NewFlagSet("chorus-view", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&parsed.configPath, "config", "", "path to chorus.yaml (default: $"+config.EnvironmentVariable+", then built-in defaults)")
	flagSet.StringVarP(&parsed.inputPath, "input", "i", "-", "view description to read, or - for stdin")
	flagSet.StringVar(&parsed.inputFormat, "input-format", "", "json, jsonc, yaml, or cbor (default: from the input file extension, else json)")
	flagSet.StringVarP(&parsed.outputFormat, "format", "f", "json", "output format: json, cbor, or diag")
	flagSet.BoolVar(&parsed.strict, "strict", false, "fail on unknown component kinds instead of dropping them")
	flagSet.BoolVar(&parsed.validateSchema, "validate-schema", true, "check the wire payload against the component schema")
	flagSet.StringVar(&parsed.sendChannel, "send-channel", "", "post the view as a message to this channel ID")
	flagSet.BoolVar(&parsed.showVersion, "version", false, "print version information and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, `chorus-view reads a component view description, validates it, and
prints the wire payload. With --send-channel it posts the view as a
message using the bot token from the config file.

Usage:
  chorus-view [flags]

Flags:
%s`, flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", extra[0])
	}
	parsed.strictSet = flagSet.Changed("strict")
	parsed.validateSchemaSet = flagSet.Changed("validate-schema")

	switch parsed.outputFormat {
	case "json", "cbor", "diag":
	default:
		return nil, fmt.Errorf("--format must be json, cbor, or diag, got %q", parsed.outputFormat)
	}
	if parsed.inputFormat == "" {
		parsed.inputFormat = formatFromPath(parsed.inputPath)
	}
	if !validInputFormat(parsed.inputFormat) {
		return nil, fmt.Errorf("--input-format must be json, jsonc, yaml, or cbor, got %q", parsed.inputFormat)
	}
	return &parsed, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	parsed, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	if parsed.showVersion {
		fmt.Fprintf(stdout, "chorus-view %s\n", version.Info())
		return nil
	}

	cfg, err := loadConfig(parsed.configPath)
	if err != nil {
		return err
	}
	if parsed.strictSet {
		cfg.Components.Strict = parsed.strict
	}
	if parsed.validateSchemaSet {
		cfg.Components.ValidateSchema = parsed.validateSchema
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := cfg.Logger(stderr)

	raw, err := readInput(parsed.inputPath, stdin)
	if err != nil {
		return err
	}
	payload, err := normalizeInput(raw, parsed.inputFormat)
	if err != nil {
		return fmt.Errorf("decoding %s input: %w", parsed.inputFormat, err)
	}

	parser := &component.Parser{Strict: cfg.Components.Strict, Logger: logger}
	nodes, err := parser.ParseList(payload)
	if err != nil {
		return fmt.Errorf("parsing components: %w", err)
	}
	if err := component.ValidateAll(nodes); err != nil {
		return fmt.Errorf("validating components: %w", err)
	}
	wire, err := json.Marshal(component.Components(nodes))
	if err != nil {
		return fmt.Errorf("encoding components: %w", err)
	}
	if cfg.Components.ValidateSchema {
		if err := component.ValidateWire(wire); err != nil {
			return err
		}
	}
	fingerprint, err := component.FingerprintJSON(wire)
	if err != nil {
		return err
	}
	logger.Info("view validated",
		"components", component.Count(nodes),
		"top_level", len(nodes),
		"fingerprint", fingerprint,
	)

	if parsed.sendChannel != "" {
		return sendView(ctx, cfg, logger, parsed.sendChannel, nodes, stdout)
	}
	return writeOutput(stdout, wire, parsed.outputFormat)
}

func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	default:
		return config.Default(), nil
	}
}

// sendView posts the view to channel and prints the created message's
// IDs as JSON.
func sendView(ctx context.Context, cfg *config.Config, logger *slog.Logger, channel string, nodes []component.Component, stdout io.Writer) error {
	channelID, err := ref.ParseSnowflake(channel)
	if err != nil {
		return fmt.Errorf("--send-channel: %w", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}
	token, err := cfg.Token()
	if err != nil {
		return err
	}
	defer token.Close()

	client, err := messaging.NewClient(messaging.ClientConfig{
		BaseURL:            cfg.API.BaseURL,
		Token:              token,
		UserAgent:          cfg.API.UserAgent,
		HTTPClient:         &http.Client{Timeout: timeout},
		Parser:             &component.Parser{Strict: cfg.Components.Strict, Logger: logger},
		ValidateComponents: cfg.Components.ValidateSchema,
		Logger:             logger,
	})
	if err != nil {
		return err
	}
	defer client.CloseIdleConnections()

	message, err := client.SendMessage(ctx, channelID, messaging.MessageSend{
		View: component.ViewFromComponents(nodes...),
	})
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(stdout)
	return encoder.Encode(map[string]ref.Snowflake{
		"channel_id": message.ChannelID,
		"message_id": message.ID,
	})
}

func writeOutput(stdout io.Writer, wire []byte, format string) error {
	switch format {
	case "cbor":
		if isTerminal(stdout) {
			return fmt.Errorf("refusing to write binary CBOR to a terminal; redirect stdout or use --format diag")
		}
		encoded, err := codec.FromJSON(wire)
		if err != nil {
			return err
		}
		_, err = stdout.Write(encoded)
		return err
	case "diag":
		encoded, err := codec.FromJSON(wire)
		if err != nil {
			return err
		}
		diagnostic, err := codec.Diagnose(encoded)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, diagnostic)
		return err
	default:
		var indented any
		if err := json.Unmarshal(wire, &indented); err != nil {
			return err
		}
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(indented)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
