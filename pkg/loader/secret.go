// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"fmt"

	"github.com/tfctl/cfgload/internal/log"
	"github.com/tfctl/cfgload/pkg/marker"
)

// SecretBackend looks up a secret by id within a namespace (project, region,
// mount, ...). A secret that does not exist is reported as found=false with a
// nil error; any other failure is returned as an error.
type SecretBackend interface {
	Get(ctx context.Context, secretID, namespace string) (value string, found bool, err error)
}

// Secret resolves !{NAME:PARAM} and !{NAME:PARAM:default} against a
// SecretBackend. A Secret built without a backend is disabled: every lookup
// logs an error and is treated as not found, so markers with defaults still
// resolve.
type Secret struct {
	backend SecretBackend
	enabled bool
}

// NewSecret returns a secret loader bound to backend. A nil backend yields a
// disabled loader.
func NewSecret(backend SecretBackend) *Secret {
	return &Secret{backend: backend, enabled: backend != nil}
}

// Enabled reports whether a backend is attached.
func (s *Secret) Enabled() bool {
	return s.enabled
}

func (s *Secret) Pattern() *marker.Pattern {
	return marker.Secret
}

// Load rejects the whole string before any backend call when one of its
// markers has no namespace.
func (s *Secret) Load(ctx context.Context, text string) (string, error) {
	for _, m := range marker.Secret.FindAll(text) {
		if err := checkNamespace(m); err != nil {
			return "", err
		}
	}
	return substitute(ctx, text, marker.Secret, s.resolve, missingSecret)
}

func (s *Secret) resolve(ctx context.Context, m marker.Marker) (string, bool, error) {
	if err := checkNamespace(m); err != nil {
		return "", false, err
	}

	if !s.enabled {
		log.Errorf("secret backend is not configured, cannot fetch secret %s in %s", m.Name, m.Param)
		return "", false, nil
	}

	v, found, err := s.backend.Get(ctx, m.Name, m.Param)
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch secret %s in %s: %w", m.Name, m.Param, err)
	}
	return v, found, nil
}

func checkNamespace(m marker.Marker) error {
	if !m.HasParam {
		return fmt.Errorf("%w: namespace is not specified for secret %s", ErrMalformedMarker, m.Name)
	}
	return nil
}

func missingSecret(m marker.Marker) error {
	return &MissingError{Kind: "secret", Name: m.Name, Namespace: m.Param}
}
