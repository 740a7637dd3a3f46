// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/prefs/internal/config"
	"github.com/tfctl/prefs/internal/settings"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// the resolved environment, context, and the one settings Store for this
// invocation.
type Meta struct {
	Args     []string
	Env      config.Env
	Context  context.Context
	Settings *settings.Store
}
