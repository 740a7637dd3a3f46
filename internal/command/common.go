// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/differ"
	"github.com/tfctl/prefs/internal/log"
	"github.com/tfctl/prefs/internal/meta"
	"github.com/tfctl/prefs/internal/output"
	"github.com/tfctl/prefs/internal/settings"
)

// ErrKeyNotFound is returned by get when a key is absent and no default was
// given.
var ErrKeyNotFound = errors.New("setting not found")

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer returns the root command's Writer so tests can capture output.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().Writer; w != nil {
			return w
		}
	}
	return os.Stdout
}

// store returns the settings Store carried by the command's meta.
func store(cmd *cli.Command) (*settings.Store, error) {
	s := GetMeta(cmd).Settings
	if s == nil {
		return nil, errors.New("settings store not initialized")
	}
	return s, nil
}

// mutate applies fn to a copy of the store, prints the resulting change and
// then saves it, unless --dry-run is set.
func mutate(cmd *cli.Command, fn func(*settings.Store) error) error {
	s, err := store(cmd)
	if err != nil {
		return err
	}

	next := s.Clone()
	if err := fn(next); err != nil {
		return err
	}

	w := writer(cmd)
	color := output.ColorDefault() && w == os.Stdout
	modified, err := differ.Diff(w, maskDoc(s.All()), maskDoc(next.All()), color)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		log.Debugf("dry run, not saving: modified=%t", modified)
		return nil
	}

	*s = *next

	if !modified && s.Origin() == settings.OriginFile {
		return nil
	}

	if err := s.Save(); err != nil {
		if errors.Is(err, settings.ErrEphemeral) {
			return fmt.Errorf("change not saved: %w", err)
		}
		return err
	}
	return nil
}

// maskDoc returns doc with the api token masked.
func maskDoc(doc map[string]any) map[string]any {
	if tok, ok := doc[settings.KeyAPIToken].(string); ok {
		doc[settings.KeyAPIToken] = output.MaskSecret(tok)
	}
	return doc
}
