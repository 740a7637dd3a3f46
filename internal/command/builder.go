// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/meta"
)

// CommandBuilder is a helper that constructs a cli.Command for the settings
// subcommands using a consistent pattern. It wires metadata, checks the
// positional argument count before the action runs, and appends the dry-run
// flag for commands that write.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	// Args is the exact number of positional arguments, or -1 for any.
	Args   int
	Writes bool
	Flags  []cli.Flag
	Action func(context.Context, *cli.Command) error
	Meta   meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := cb.Flags
	if cb.Writes {
		flags = append(flags, newDryRunFlag())
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, argCountValidator(c, cb.Args)
		},
		Action: cb.Action,
	}
}

// argCountValidator rejects a command invocation with the wrong number of
// positional arguments.
func argCountValidator(c *cli.Command, want int) error {
	if want < 0 || c.Args().Len() == want {
		return nil
	}
	return fmt.Errorf("%s: expected %d argument(s), got %d (usage: %s)",
		c.Name, want, c.Args().Len(), c.UsageText)
}
