// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/config"
	"github.com/tfctl/prefs/internal/log"
	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/settings"
)

// InitApp resolves the settings location, opens the store and returns the
// root command with every subcommand wired to it.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The store is opened once, before any command runs, so the settings
	// file has to be picked out of the raw args by hand.
	env, err := config.Load(settingsFileArg(args))
	if err != nil {
		return nil, err
	}

	s, err := openStore(env)
	if err != nil {
		return nil, err
	}

	meta := meta.Meta{
		Args:     args,
		Env:      env,
		Context:  ctx,
		Settings: s,
	}

	app := &cli.Command{
		Name:  "prefs",
		Usage: "Persistent Settings",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "prefs version info",
				HideDefault: true,
			},
			newSettingsFileFlag(),
		},
		Metadata: map[string]any{
			"meta": meta,
		},
	}

	app.Commands = append(app.Commands,
		getCommandBuilder(meta),
		setCommandBuilder(meta),
		unsetCommandBuilder(meta),
		showCommandBuilder(meta),
		pathCommandBuilder(meta),
		initCommandBuilder(meta),
		loginCommandBuilder(meta),
		logoutCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// openStore opens the settings file named by env. When the file cannot be
// accessed for lack of permission the process continues on ephemeral
// defaults.
func openStore(env config.Env) (*settings.Store, error) {
	s, err := settings.Open(env.SettingsFile, env.AppToken)
	if err == nil {
		return s, nil
	}
	if errors.Is(err, settings.ErrPermission) {
		log.Warnf("using ephemeral settings: %v", err)
		return settings.Ephemeral(env.AppToken), nil
	}
	return nil, fmt.Errorf("failed to open settings: %w", err)
}

// settingsFileArg returns the value of --settings-file from args, or "" when
// the flag is absent.
func settingsFileArg(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if name == a || len(a)-len(name) > 2 {
			continue
		}
		if v, ok := strings.CutPrefix(name, settingsFileFlagName+"="); ok {
			return v
		}
		if name == settingsFileFlagName && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
