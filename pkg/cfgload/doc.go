// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cfgload reads YAML configuration into typed structs, resolving
// ${ENV} and !{SECRET:NAMESPACE} markers on the way.
//
//	type Config struct {
//		DB struct {
//			DSN string
//		}
//	}
//
//	cfg, err := cfgload.ReadConfig[Config](ctx, "config/config.yaml")
//
// Marker resolution is opt-in per field, see the binding package.
package cfgload
