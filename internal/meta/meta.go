// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/cfgload/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// the loaded settings, context, the config file used when none is given on
// the command line, and the starting working directory.
type Meta struct {
	Args        []string
	Settings    config.Type
	Context     context.Context
	DefaultFile string
	StartingDir string
}
