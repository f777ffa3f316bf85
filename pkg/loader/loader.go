// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tfctl/cfgload/internal/log"
	"github.com/tfctl/cfgload/pkg/marker"
)

var (
	// ErrMissingRequired is returned when a marker without a default resolves
	// to nothing.
	ErrMissingRequired = errors.New("missing required value")

	// ErrMalformedMarker is returned when a marker lacks a mandatory part.
	ErrMalformedMarker = errors.New("malformed marker")
)

// MissingError reports a marker that resolved to nothing and has no default.
// It matches ErrMissingRequired with errors.Is.
type MissingError struct {
	// Kind describes the source, e.g. "environment variable" or "secret".
	Kind      string
	Name      string
	Namespace string
}

func (e *MissingError) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("missing required %s %s in %s", e.Kind, e.Name, e.Namespace)
	}
	return fmt.Sprintf("missing required %s %s", e.Kind, e.Name)
}

func (e *MissingError) Is(target error) bool {
	return target == ErrMissingRequired
}

// Loader recognises and resolves one marker family.
type Loader interface {
	Pattern() *marker.Pattern
	Load(ctx context.Context, text string) (string, error)
}

// ResolveFunc resolves a single marker. It reports found=false when the
// backing source has no value; the caller then applies the marker's default.
type ResolveFunc func(ctx context.Context, m marker.Marker) (value string, found bool, err error)

// MissingFunc builds the error returned for a marker that resolved to nothing
// and carries no default. The returned error should match ErrMissingRequired.
type MissingFunc func(m marker.Marker) error

// Func is a Loader assembled from a pattern and a resolver.
type Func struct {
	pattern *marker.Pattern
	resolve ResolveFunc
	missing MissingFunc
}

// NewFunc returns a loader that resolves markers of pattern with resolve.
// A nil missing uses a generic message naming the marker.
func NewFunc(pattern *marker.Pattern, resolve ResolveFunc, missing MissingFunc) *Func {
	if missing == nil {
		missing = func(m marker.Marker) error {
			return &MissingError{Kind: pattern.Family() + " variable", Name: m.Name, Namespace: m.Param}
		}
	}
	return &Func{pattern: pattern, resolve: resolve, missing: missing}
}

func (f *Func) Pattern() *marker.Pattern {
	return f.pattern
}

func (f *Func) Load(ctx context.Context, text string) (string, error) {
	return substitute(ctx, text, f.pattern, f.resolve, f.missing)
}

// substitute rewrites every marker of pattern in text. Markers are processed
// right to left so each splice leaves the offsets of the markers still to be
// processed untouched. Resolved values are inserted verbatim and never
// rescanned.
func substitute(ctx context.Context, text string, pattern *marker.Pattern, resolve ResolveFunc, missing MissingFunc) (string, error) {
	markers := pattern.FindAll(text)
	log.Tracef("%s loader: %d marker(s) found", pattern.Family(), len(markers))

	for i := len(markers) - 1; i >= 0; i-- {
		m := markers[i]

		value, found, err := resolve(ctx, m)
		if err != nil {
			return "", err
		}

		if !found {
			if !m.HasDefault {
				return "", missing(m)
			}
			log.Debugf("%s loader: %s not found, using default", pattern.Family(), m.Name)
			value = m.Default
		} else {
			log.Debugf("%s loader: %s resolved", pattern.Family(), m.Name)
		}

		var b strings.Builder
		b.Grow(len(text) - (m.End - m.Start) + len(value))
		b.WriteString(text[:m.Start])
		b.WriteString(value)
		b.WriteString(text[m.End:])
		text = b.String()
	}

	return text, nil
}
