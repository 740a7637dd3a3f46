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

func unsetCommandAction(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()

	s, err := store(cmd)
	if err != nil {
		return err
	}
	if !s.Has(key) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return mutate(cmd, func(s *settings.Store) error {
		s.Delete(key)
		return nil
	})
}

func unsetCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "unset",
		Usage:     "remove a setting",
		UsageText: "prefs unset KEY [--dry-run]",
		Args:      1,
		Writes:    true,
		Action:    unsetCommandAction,
		Meta:      meta,
	}
	return cb.Build()
}
