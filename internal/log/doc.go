// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package log is a thin leveled wrapper over apex/log. The level is taken from
// CFGLOAD_LOG (trace, debug, info, warn, error, fatal; default error).
package log
