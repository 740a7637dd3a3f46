// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/fsutil"
	"github.com/tfctl/prefs/internal/meta"
)

// pathCommandAction prints where settings live along with the file size, age
// and where the loaded contents came from.
func pathCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := store(cmd)
	if err != nil {
		return err
	}
	w := writer(cmd)

	path := s.Path()
	if path == "" {
		path = GetMeta(cmd).Env.SettingsFile
	}

	fmt.Fprintf(w, "path:     %s\n", path)
	fmt.Fprintf(w, "origin:   %s\n", s.Origin())

	info, err := fsutil.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "exists:   unknown (%v)\n", err)
		return nil
	}
	if !info.Exists {
		fmt.Fprintln(w, "exists:   false")
		return nil
	}
	fmt.Fprintln(w, "exists:   true")
	fmt.Fprintf(w, "size:     %s\n", humanize.Bytes(uint64(info.Size))) //nolint:gosec
	fmt.Fprintf(w, "modified: %s\n", humanize.Time(info.ModTime))
	return nil
}

func pathCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "path",
		Usage:     "print the settings file location",
		UsageText: "prefs path",
		Args:      0,
		Action:    pathCommandAction,
		Meta:      meta,
	}
	return cb.Build()
}
