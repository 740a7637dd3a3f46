// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/settings"
)

func setCommandAction(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().Get(0)
	if err := FlagValidators(key, KeyValidator); err != nil {
		return err
	}

	value, err := parseValue(key, cmd.Args().Get(1), cmd.Bool("string"))
	if err != nil {
		return err
	}

	return mutate(cmd, func(s *settings.Store) error {
		return s.Set(key, value)
	})
}

// parseValue converts the command line text for key into the value stored.
// Recognized keys take their declared type. Other keys accept any YAML
// scalar or flow collection unless asString is set.
func parseValue(key, raw string, asString bool) (any, error) {
	switch {
	case key == settings.KeyHasShownMetricsNotification:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s wants true or false, got %q",
				settings.ErrValueType, key, raw)
		}
		return b, nil
	case settings.IsRecognized(key), asString:
		return raw, nil
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw, nil //nolint:nilerr
	}
	return v, nil
}

func setCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "set",
		Usage:     "set the value of a setting",
		UsageText: "prefs set KEY VALUE [--string] [--dry-run]",
		Args:      2,
		Writes:    true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "string",
				Usage:       "store VALUE as a string without interpreting it",
				HideDefault: true,
			},
		},
		Action: setCommandAction,
		Meta:   meta,
	}
	return cb.Build()
}
