// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/config"
	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/settings"
)

func loginCommandAction(ctx context.Context, cmd *cli.Command) error {
	token := strings.TrimSpace(cmd.String("token"))
	if token == "" {
		return errors.New("login: --token is required")
	}

	return mutate(cmd, func(s *settings.Store) error {
		s.SetAPIToken(token)
		return nil
	})
}

func logoutCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := store(cmd)
	if err != nil {
		return err
	}
	if _, ok := s.APIToken(); !ok {
		_, err := fmt.Fprintln(writer(cmd), "not logged in")
		return err
	}

	return mutate(cmd, func(s *settings.Store) error {
		s.Delete(settings.KeyAPIToken)
		return nil
	})
}

func loginCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "login",
		Usage:     "store an api token",
		UsageText: "prefs login --token TOKEN [--dry-run]",
		Args:      0,
		Writes:    true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "token",
				Usage: "api token to store",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar(config.AppTokenEnvVar),
				),
			},
		},
		Action: loginCommandAction,
		Meta:   meta,
	}
	return cb.Build()
}

func logoutCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "logout",
		Usage:     "remove the stored api token",
		UsageText: "prefs logout [--dry-run]",
		Args:      0,
		Writes:    true,
		Action:    logoutCommandAction,
		Meta:      meta,
	}
	return cb.Build()
}
