// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package loader resolves placeholder markers inside configuration strings.
//
// A Loader owns one marker.Pattern and rewrites every marker of that family
// found in a string. A Chain holds an ordered list of loaders, always starting
// with the environment loader, and hands a string to the first loader whose
// pattern occurs in it. Only that loader runs: a string mixing marker families
// has just the first matching family resolved.
//
// Third-party loaders implement Loader directly or are built with NewFunc.
package loader
