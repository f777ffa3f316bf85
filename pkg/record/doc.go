// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package record materializes a typed struct from the untyped map produced
// by a YAML parser.
//
// Fields are matched by their yaml tag name, or the lower-cased field name
// when untagged. Nested structs are built depth-first. Fields covered by a
// binding.Set (see binding.Binder) have their string values resolved through
// the binding's loader chain and get the binding's fallback policy when
// absent. All other values are stored as-is, converted to the field type the
// way yaml.v3 would decode them.
//
// Elements of slices, arrays and maps are not materialized as records and
// never go through a binding: markers inside them are kept verbatim.
package record
