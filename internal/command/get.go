// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/log"
	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/output"
	"github.com/tfctl/prefs/internal/settings"
)

// getCommandAction prints the value of a single setting. Keys containing dots
// that are not themselves top-level keys are resolved as paths into nested
// values, so "show.output" reaches into the show mapping.
func getCommandAction(ctx context.Context, cmd *cli.Command) error {
	s, err := store(cmd)
	if err != nil {
		return err
	}
	key := cmd.Args().First()

	// The anonymous id must stay stable once handed out, so persist the
	// generated defaults before showing it.
	if key == settings.KeyAnonymousUserID {
		if _, err := s.Materialize(); err != nil {
			log.WithError(err).Warnf("failed to persist anonymous id")
		}
	}

	value, ok := lookupPath(s, key)
	if !ok {
		if cmd.IsSet("default") {
			_, err := fmt.Fprintln(writer(cmd), cmd.String("default"))
			return err
		}
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	_, err = fmt.Fprintln(writer(cmd), value)
	return err
}

// lookupPath returns the rendered value of key. Composite values are rendered
// as indented JSON.
func lookupPath(s *settings.Store, key string) (string, bool) {
	all := s.All()
	if v, ok := all[key]; ok {
		switch v.(type) {
		case map[string]any, []any:
			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return output.InterfaceToString(v), true
			}
			return string(b), true
		default:
			return output.InterfaceToString(v), true
		}
	}

	if !strings.Contains(key, ".") {
		return "", false
	}

	doc, err := json.Marshal(all)
	if err != nil {
		log.WithError(err).Debugf("failed to marshal settings for path lookup")
		return "", false
	}

	res := gjson.GetBytes(doc, key)
	if !res.Exists() {
		return "", false
	}
	if res.IsObject() || res.IsArray() {
		return strings.TrimSpace(res.Get("@pretty").String()), true
	}
	return res.String(), true
}

func getCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "get",
		Usage:     "print the value of a setting",
		UsageText: "prefs get KEY [--default VALUE]",
		Args:      1,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "default",
				Aliases: []string{"d"},
				Usage:   "value to print when the setting is absent",
			},
		},
		Action: getCommandAction,
		Meta:   meta,
	}
	return cb.Build()
}
