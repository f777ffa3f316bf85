// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller selects a single value out of a JSON document using a dot
// path with optional array indexes, e.g. "db.hosts[1]". It is used to pick a
// key out of a JSON formatted secret payload.
package driller
