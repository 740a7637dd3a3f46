// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import "errors"

var (
	// ErrPermission indicates the process may not access the settings path.
	// Errors wrapping it also match fs.ErrPermission.
	ErrPermission = errors.New("permission denied accessing settings")

	// ErrEphemeral indicates a save was attempted on a store with no file.
	ErrEphemeral = errors.New("settings are ephemeral and cannot be saved")

	// ErrValueType indicates a value cannot be held by a recognized key.
	ErrValueType = errors.New("value has the wrong type for setting")
)
