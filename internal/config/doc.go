// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config resolves where prefs keeps its settings file and which API
// token, if any, the environment supplies. The settings file is a YAML
// document, by default located in the user's configuration directory:
//   - Linux: $XDG_CONFIG_HOME/prefs/settings.yaml or
//     $HOME/.config/prefs/settings.yaml
//   - macOS: $HOME/Library/Application Support/prefs/settings.yaml
//   - Windows: %APPDATA%/prefs/settings.yaml
//
// PREFS_SETTINGS_FILE overrides the location entirely.
package config
