// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/cfgload/pkg/marker"
)

// fakeBackend is an in-memory SecretBackend keyed by namespace/id.
type fakeBackend struct {
	secrets map[string]string
	err     error
	calls   []string
}

func (f *fakeBackend) Get(_ context.Context, id, ns string) (string, bool, error) {
	f.calls = append(f.calls, ns+"/"+id)
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.secrets[ns+"/"+id]
	return v, ok, nil
}

// envMap returns a lookup backed by a fixed map.
func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestEnvLoad(t *testing.T) {
	env := NewEnv(WithLookup(envMap(map[string]string{
		"ENV1":  "value1",
		"ENV2":  "value2",
		"EMPTY": "",
		"NESTY": "${ENV1}",
	})))

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr string
	}{
		{name: "sole marker", text: "${ENV1}", want: "value1"},
		{name: "concatenated", text: "hello-${ENV1}${ENV2}", want: "hello-value1value2"},
		{name: "surrounded", text: "<${ENV2}|${ENV1}>", want: "<value2|value1>"},
		{name: "default unused", text: "${ENV1:fallback}", want: "value1"},
		{name: "default used", text: "${UNSET:fallback}", want: "fallback"},
		{name: "empty default", text: "${UNSET:}", want: ""},
		{name: "set but empty wins over default", text: "${EMPTY:x}", want: ""},
		{name: "values are not rescanned", text: "${NESTY}", want: "${ENV1}"},
		{name: "no markers", text: "plain", want: "plain"},
		{
			name:    "missing required",
			text:    "a-${ENV1}-${UNSET}",
			wantErr: "missing required environment variable UNSET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.Load(context.Background(), tt.text)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingRequired)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvLoadFromProcess(t *testing.T) {
	t.Setenv("CFGLOAD_TEST_ENV1", "value1")
	t.Setenv("CFGLOAD_TEST_ENV2", "value2")

	got, err := NewEnv().Load(context.Background(), "hello-${CFGLOAD_TEST_ENV1}${CFGLOAD_TEST_ENV2}")
	require.NoError(t, err)
	assert.Equal(t, "hello-value1value2", got)
}

func TestEnvLoadMultibyte(t *testing.T) {
	env := NewEnv(WithLookup(envMap(map[string]string{"A": "ä", "B": "日本"})))
	got, err := env.Load(context.Background(), "ü${A}ö${B}ß")
	require.NoError(t, err)
	assert.Equal(t, "üäö日本ß", got)
}

func TestSecretLoad(t *testing.T) {
	backend := &fakeBackend{secrets: map[string]string{
		"proj/db-pass": "s3cr3t",
		"proj/user":    "admin",
		"proj/tmpl":    "${HOME}",
	}}
	s := NewSecret(backend)
	require.True(t, s.Enabled())

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
		errMsg  string
	}{
		{name: "found", text: "!{db-pass:proj}", want: "s3cr3t"},
		{name: "found ignores default", text: "!{db-pass:proj:nope}", want: "s3cr3t"},
		{name: "two markers", text: "!{user:proj}:!{db-pass:proj}@db", want: "admin:s3cr3t@db"},
		{name: "default", text: "!{absent:proj:fallback}", want: "fallback"},
		{name: "empty default", text: "!{absent:proj:}", want: ""},
		{name: "values are verbatim", text: "!{tmpl:proj}", want: "${HOME}"},
		{
			name:    "missing required",
			text:    "!{absent:proj}",
			wantErr: ErrMissingRequired,
			errMsg:  "missing required secret absent in proj",
		},
		{
			name:    "missing namespace",
			text:    "!{db-pass}",
			wantErr: ErrMalformedMarker,
			errMsg:  "namespace is not specified for secret db-pass",
		},
		{
			name:    "single character",
			text:    "!{S}",
			wantErr: ErrMalformedMarker,
		},
		{
			name:    "separator without namespace",
			text:    "!{db-pass:}",
			wantErr: ErrMalformedMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Load(context.Background(), tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSecretMalformedFailsBeforeLookups(t *testing.T) {
	backend := &fakeBackend{secrets: map[string]string{"proj/a": "1"}}

	_, err := NewSecret(backend).Load(context.Background(), "!{bad}-!{a:proj}")
	assert.ErrorIs(t, err, ErrMalformedMarker)
	assert.Empty(t, backend.calls)
}

func TestSecretMissingNamespaceWithDefault(t *testing.T) {
	backend := &fakeBackend{secrets: map[string]string{"/S": "x", "fallback/S": "x"}}

	for _, text := range []string{"!{S::fallback}", "!{S::}"} {
		_, err := NewSecret(backend).Load(context.Background(), text)
		assert.ErrorIs(t, err, ErrMalformedMarker, text)
	}
	assert.Empty(t, backend.calls)
}

func TestSecretProcessesRightToLeft(t *testing.T) {
	backend := &fakeBackend{secrets: map[string]string{"p/a": "AAAA", "p/b": "B"}}

	got, err := NewSecret(backend).Load(context.Background(), "!{a:p}-!{b:p}")
	require.NoError(t, err)
	assert.Equal(t, "AAAA-B", got)
	assert.Equal(t, []string{"p/b", "p/a"}, backend.calls)
}

func TestSecretBackendError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("access denied")}

	_, err := NewSecret(backend).Load(context.Background(), "!{a:p:default}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch secret a in p: access denied")
}

func TestSecretDisabled(t *testing.T) {
	s := NewSecret(nil)
	assert.False(t, s.Enabled())

	got, err := s.Load(context.Background(), "!{secret_name:project_id:default}")
	require.NoError(t, err)
	assert.Equal(t, "default", got)

	_, err = s.Load(context.Background(), "!{secret_name:project_id}")
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = s.Load(context.Background(), "!{secret_name}")
	assert.ErrorIs(t, err, ErrMalformedMarker)
}

func TestChain(t *testing.T) {
	t.Setenv("CFGLOAD_TEST_USER", "env-user")
	backend := &fakeBackend{secrets: map[string]string{"p/pw": "hunter2"}}
	chain := NewChain(NewSecret(backend))

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "env", text: "${CFGLOAD_TEST_USER}", want: "env-user"},
		{name: "secret", text: "!{pw:p}", want: "hunter2"},
		{name: "untouched", text: "no markers here", want: "no markers here"},
		{
			// First matching family wins; secret markers pass through.
			name: "mixed families",
			text: "${CFGLOAD_TEST_USER}:!{pw:p}",
			want: "env-user:!{pw:p}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := chain.Load(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChainOrder(t *testing.T) {
	chain := NewChain(NewSecret(nil))
	loaders := chain.Loaders()
	require.Len(t, loaders, 2)
	assert.IsType(t, &Env{}, loaders[0])
	assert.IsType(t, &Secret{}, loaders[1])

	// Mutating the copy leaves the chain alone.
	loaders[0] = nil
	assert.NotNil(t, chain.Loaders()[0])
}

func TestChainWithoutExtras(t *testing.T) {
	got, err := NewChain().Load(context.Background(), "!{pw:p}")
	require.NoError(t, err)
	assert.Equal(t, "!{pw:p}", got)
}

func TestNewFunc(t *testing.T) {
	at := marker.MustNew("at", `@\{(?P<name>[^{}:]+)(?P<separator>:?)(?P<default>.*?)\}`)
	upper := NewFunc(at, func(_ context.Context, m marker.Marker) (string, bool, error) {
		if m.Name == "missing" {
			return "", false, nil
		}
		return "<" + m.Name + ">", true, nil
	}, nil)

	chain := NewChain(upper)

	got, err := chain.Load(context.Background(), "@{a}@{b}@{missing:x}")
	require.NoError(t, err)
	assert.Equal(t, "<a><b>x", got)

	_, err = chain.Load(context.Background(), "@{missing}")
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.Contains(t, err.Error(), "at variable missing")
}

func TestMissingError(t *testing.T) {
	_, err := NewEnv(WithLookup(envMap(nil))).Load(context.Background(), "${DB_HOST}")

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "environment variable", missing.Kind)
	assert.Equal(t, "DB_HOST", missing.Name)
	assert.Empty(t, missing.Namespace)
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.NotErrorIs(t, err, ErrMalformedMarker)
}
