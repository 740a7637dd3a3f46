// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package fsutil provides small file-system helpers used by the settings
// store: existence checks that keep permission errors distinct from missing
// files, and atomic replace-by-rename writes.
package fsutil
