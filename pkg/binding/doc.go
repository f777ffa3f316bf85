// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package binding attaches resolution and fallback policy to record fields.
//
// A struct opts in by implementing Binder and returning a Set declared once at
// package level:
//
//	var dbBindings = binding.Set{
//		"password": binding.New(binding.WithLoaders(secretLoader), binding.Required()),
//		"port":     binding.New(binding.WithDefault(5432)),
//	}
//
//	func (DB) FieldBindings() binding.Set { return dbBindings }
//
// The record materializer calls Assign for keys present in the source and
// Absent for keys that are missing.
package binding
