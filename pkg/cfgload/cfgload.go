// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgload

import (
	"context"

	"github.com/tfctl/cfgload/pkg/binding"
	"github.com/tfctl/cfgload/pkg/record"
	"github.com/tfctl/cfgload/pkg/yamlfile"
)

// DefaultPath is read when an empty path is given.
const DefaultPath = "config/config.yaml"

// ReadConfig reads the YAML file at path and builds a T from it.
func ReadConfig[T any](ctx context.Context, path string) (T, error) {
	raw, err := ReadYAMLToMap(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return FromMap[T](ctx, raw)
}

// ReadConfigInto is ReadConfig for an existing target, a pointer to a struct.
func ReadConfigInto(ctx context.Context, target any, path string) error {
	raw, err := ReadYAMLToMap(path)
	if err != nil {
		return err
	}
	return record.Build(ctx, target, raw)
}

// ReadYAMLToMap reads the YAML file at path, with includes expanded.
func ReadYAMLToMap(path string) (map[string]any, error) {
	if path == "" {
		path = DefaultPath
	}
	return yamlfile.Read(path)
}

// FromMap builds a T from an already parsed map.
func FromMap[T any](ctx context.Context, raw map[string]any) (T, error) {
	return record.FromMap[T](ctx, raw)
}

// Load returns a field binding; see binding.New.
func Load(opts ...binding.Option) *binding.Binding {
	return binding.New(opts...)
}
