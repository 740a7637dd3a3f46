// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for prefs. It opens the
// settings store once per process and wires flags, validators, actions and
// shell completion for the subcommands that read and change it.
package command
