// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"os"

	"github.com/tfctl/cfgload/pkg/marker"
)

// LookupFunc reports the value of an environment variable and whether it is
// set. os.LookupEnv is the default.
type LookupFunc func(key string) (string, bool)

// Env resolves ${NAME} and ${NAME:default} from the process environment. A
// variable that is set to the empty string counts as present.
type Env struct {
	lookup LookupFunc
}

// EnvOption customizes an Env loader.
type EnvOption func(*Env)

// WithLookup replaces the environment lookup. Mostly useful in tests.
func WithLookup(fn LookupFunc) EnvOption {
	return func(e *Env) { e.lookup = fn }
}

// NewEnv returns the environment loader.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Env) Pattern() *marker.Pattern {
	return marker.Env
}

func (e *Env) Load(ctx context.Context, text string) (string, error) {
	return substitute(ctx, text, marker.Env, e.resolve, missingEnv)
}

func (e *Env) resolve(_ context.Context, m marker.Marker) (string, bool, error) {
	v, ok := e.lookup(m.Name)
	return v, ok, nil
}

func missingEnv(m marker.Marker) error {
	return &MissingError{Kind: "environment variable", Name: m.Name}
}
