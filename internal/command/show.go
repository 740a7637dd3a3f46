// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/filters"
	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/output"
)

func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := store(cmd)
	if err != nil {
		return err
	}

	doc := s.All()
	if spec := cmd.String("filter"); spec != "" {
		doc = filterDoc(doc, spec)
	}
	if !cmd.Bool("reveal") {
		doc = maskDoc(doc)
	}

	opts := output.Options{
		Format: cmd.String("output"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
		Sort:   cmd.String("sort"),
	}
	if opts.Titles {
		opts.Header = describeSource(s.Path(), s.Origin().String())
	}

	return output.Spit(writer(cmd), doc, opts)
}

// filterDoc keeps the settings whose key/value row matches spec.
func filterDoc(doc map[string]any, spec string) map[string]any {
	kept := make(map[string]any)
	for _, row := range filters.FilterRows(output.Rows(doc), spec) {
		if k, ok := row["key"].(string); ok {
			kept[k] = row["value"]
		}
	}
	return kept
}

func describeSource(path, origin string) string {
	if path == "" {
		return fmt.Sprintf("(%s)", origin)
	}
	return fmt.Sprintf("%s (%s)", path, origin)
}

func showCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "show",
		Usage:     "list all settings",
		UsageText: "prefs show [--output text|json|yaml] [--filter SPEC] [--reveal]",
		Args:      0,
		Flags:     NewDisplayFlags("show", meta.Env.SettingsFile),
		Action:    showCommandAction,
		Meta:      meta,
	}
	return cb.Build()
}
