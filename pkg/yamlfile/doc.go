// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package yamlfile reads a YAML configuration file into a map, expanding
// !include directives.
//
// A scalar tagged !include is replaced by the parsed content of the named
// file, resolved relative to the directory of the including file:
//
//	db: !include db.yaml
//
// Includes nest; a file including itself, directly or not, is an error.
//
// A bare !{...} secret marker is read by YAML as a tag, so secret markers must
// be quoted: password: "!{db-pass:us-east-1}".
package yamlfile
