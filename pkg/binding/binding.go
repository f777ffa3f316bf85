// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/tfctl/cfgload/pkg/loader"
)

// ErrEmptyRequiredField is returned by Absent for a required binding.
var ErrEmptyRequiredField = errors.New("required field is empty")

// Options is the resolution and fallback policy of a Binding.
type Options struct {
	// Loaders are appended to the chain after the environment loader.
	Loaders []loader.Loader
	// Default is stored when the field is absent and no DefaultFactory is set.
	Default any
	// DefaultFactory computes the value stored when the field is absent.
	DefaultFactory func() any
	// Required makes an absent field an error.
	Required bool
}

// Option customizes a Binding.
type Option func(*Options)

// WithLoaders appends loaders after the environment loader, in order.
func WithLoaders(loaders ...loader.Loader) Option {
	return func(o *Options) { o.Loaders = append(o.Loaders, loaders...) }
}

// WithDefault sets the static default.
func WithDefault(v any) Option {
	return func(o *Options) { o.Default = v }
}

// WithDefaultFactory sets the computed default.
func WithDefaultFactory(fn func() any) Option {
	return func(o *Options) { o.DefaultFactory = fn }
}

// Required marks the field as mandatory.
func Required() Option {
	return func(o *Options) { o.Required = true }
}

// Binding is the per-field policy. It is immutable once built and may be
// shared by every value of the owning type.
type Binding struct {
	opts  Options
	chain *loader.Chain
}

// New returns a Binding whose loader chain is the environment loader
// followed by any WithLoaders loaders.
func New(opts ...Option) *Binding {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return FromOptions(o)
}

// FromOptions is New for a pre-filled Options value.
func FromOptions(o Options) *Binding {
	return &Binding{
		opts:  o,
		chain: loader.NewChain(o.Loaders...),
	}
}

// Options returns the policy the binding was built with.
func (b *Binding) Options() Options {
	return b.opts
}

// Chain returns the loader chain used for string values.
func (b *Binding) Chain() *loader.Chain {
	return b.chain
}

// Assign resolves a value that is present in the source. Strings run through
// the loader chain; anything else is returned untouched.
func (b *Binding) Assign(ctx context.Context, name string, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return raw, nil
	}

	v, err := b.chain.Load(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// Absent returns the value to store for a field missing from the source:
// an error when required, the factory result when a factory is set, and the
// static default (possibly nil) otherwise.
func (b *Binding) Absent(name string) (any, error) {
	switch {
	case b.opts.Required:
		return nil, fmt.Errorf("%w: %s field cannot be empty", ErrEmptyRequiredField, name)
	case b.opts.DefaultFactory != nil:
		return b.opts.DefaultFactory(), nil
	default:
		return b.opts.Default, nil
	}
}

// Set maps config keys to their bindings.
type Set map[string]*Binding

// Binder is implemented by record types that carry field bindings. It is
// called on the zero value, so implementations must not depend on receiver
// state.
type Binder interface {
	FieldBindings() Set
}

// Lookup returns the binding registered under any of keys, in order.
func (s Set) Lookup(keys ...string) (*Binding, bool) {
	for _, k := range keys {
		if b, ok := s[k]; ok && b != nil {
			return b, true
		}
	}
	return nil, false
}
