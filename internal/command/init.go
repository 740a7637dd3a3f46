// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/settings"
)

// initCommandAction writes generated defaults to disk. An existing settings
// file is left alone unless --force is given, in which case it is replaced.
func initCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := store(cmd)
	if err != nil {
		return err
	}
	w := writer(cmd)

	if s.Origin() == settings.OriginEphemeral {
		return settings.ErrEphemeral
	}

	if cmd.Bool("force") {
		appToken := GetMeta(cmd).Env.AppToken
		return mutate(cmd, func(s *settings.Store) error {
			s.Reset(appToken)
			return nil
		})
	}

	wrote, err := s.Materialize()
	if err != nil {
		return err
	}
	if !wrote {
		_, err = fmt.Fprintf(w, "settings already initialized: %s\n", s.Path())
		return err
	}
	_, err = fmt.Fprintf(w, "wrote defaults: %s\n", s.Path())
	return err
}

func initCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "init",
		Usage:     "write default settings to disk",
		UsageText: "prefs init [--force] [--dry-run]",
		Args:      0,
		Writes:    true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "replace existing settings with new defaults",
				HideDefault: true,
			},
		},
		Action: initCommandAction,
		Meta:   meta,
	}
	return cb.Build()
}
