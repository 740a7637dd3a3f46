// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

const (
	// SettingsFileEnvVar overrides the full path of the settings file.
	SettingsFileEnvVar = "PREFS_SETTINGS_FILE"

	// AppTokenEnvVar supplies an API token used to seed default settings.
	AppTokenEnvVar = "PREFS_APP_TOKEN"

	// AppDirName is the application subdirectory beneath the user config dir.
	AppDirName = "prefs"

	// SettingsFileName is the base name of the settings file.
	SettingsFileName = "settings.yaml"
)

// Env is the environment-derived input to the settings store.
//
// Fields:
//   - SettingsFile: absolute or relative path of the YAML settings file. The
//     file need not exist.
//   - AppToken: optional token from the environment; empty when unset.
type Env struct {
	SettingsFile string
	AppToken     string
}

// Load resolves the Env from the process environment. An explicit override
// path, when non-empty, wins over the environment entirely.
func Load(override ...string) (Env, error) {
	var path string
	if len(override) > 0 && override[0] != "" {
		path = override[0]
		log.Debugf("using settings file from flag: %s", path)
	} else {
		p, err := SettingsFile()
		if err != nil {
			return Env{}, err
		}
		path = p
	}

	return Env{
		SettingsFile: path,
		AppToken:     os.Getenv(AppTokenEnvVar),
	}, nil
}

// SettingsFile returns the path to the YAML settings file. If the
// PREFS_SETTINGS_FILE environment variable is set, it is treated as the full
// path to the file. Otherwise, the OS-specific user configuration directory
// returned by os.UserConfigDir is used with "prefs/settings.yaml". When no
// config directory can be determined, $HOME/.prefs/settings.yaml is used.
//
// Unlike a config file, the settings file is optional: this only resolves a
// location and never checks for existence.
func SettingsFile() (string, error) {
	if p, ok := os.LookupEnv(SettingsFileEnvVar); ok && p != "" {
		if fileInfo, err := os.Stat(p); err == nil && fileInfo.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", SettingsFileEnvVar, p)
		}
		log.Debugf("using settings file from %s: %s", SettingsFileEnvVar, p)
		return p, nil
	}

	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppDirName, SettingsFileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve settings location: %w", err)
	}

	return filepath.Join(home, "."+AppDirName, SettingsFileName), nil
}
