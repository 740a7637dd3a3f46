// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package settings persists user and system level preferences, such as the
// anonymous install id, an API token and whether the metrics notification has
// been shown, in a single YAML file.
//
// A Store is hydrated once by Open: the file is parsed if it exists and is
// well formed, otherwise fresh defaults are generated in memory. Permission
// errors are the only load failure reported to the caller. Mutations stay in
// memory until Save, which replaces the file atomically and keeps any keys the
// package does not know about.
//
// There is no process-wide Store; construct one and pass it to whatever needs
// it.
package settings
