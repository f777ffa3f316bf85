// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package marker defines the placeholder grammars recognised in configuration
// values and extracts their spans and captures.
//
// Two families are built in:
//   - Env:    ${NAME} and ${NAME:default}
//   - Secret: !{NAME:PARAM} and !{NAME:PARAM:default}
//
// Additional families can be declared with New, as long as the expression
// uses the same named groups (name, and optionally the separator, param and
// default groups).
package marker
