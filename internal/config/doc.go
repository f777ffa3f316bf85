// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config locates and reads cfgload's own settings file, which holds
// defaults for CLI flags. It is a YAML document located in the user's
// configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/cfgload.yaml or $HOME/.config/cfgload.yaml
//   - Windows: %APPDATA%/cfgload/cfgload.yaml
//
// CFGLOAD_SETTINGS overrides the location. Keys may be namespaced by command,
// e.g. "resolve.output" is preferred over "output" for the resolve command.
package config
