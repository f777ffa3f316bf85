// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFindAll(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Marker
	}{
		{
			name: "no markers",
			text: "plain value",
			want: nil,
		},
		{
			name: "required",
			text: "${HOME}",
			want: []Marker{{Start: 0, End: 7, Name: "HOME"}},
		},
		{
			name: "with default",
			text: "x=${PORT:8080}",
			want: []Marker{{Start: 2, End: 14, Name: "PORT", HasDefault: true, Default: "8080"}},
		},
		{
			name: "empty default",
			text: "${EMPTY:}",
			want: []Marker{{Start: 0, End: 9, Name: "EMPTY", HasDefault: true, Default: ""}},
		},
		{
			name: "default keeps later separators",
			text: "${URL:http://localhost:80}",
			want: []Marker{{Start: 0, End: 26, Name: "URL", HasDefault: true, Default: "http://localhost:80"}},
		},
		{
			name: "adjacent markers",
			text: "hello-${ENV1}${ENV2}",
			want: []Marker{
				{Start: 6, End: 13, Name: "ENV1"},
				{Start: 13, End: 20, Name: "ENV2"},
			},
		},
		{
			name: "secret syntax is not env",
			text: "!{NAME:project}",
			want: nil,
		},
		{
			name: "empty name is not a marker",
			text: "${}",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Env.FindAll(tt.text))
			assert.Equal(t, tt.want != nil, Env.Matches(tt.text))
		})
	}
}

func TestSecretFindAll(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Marker
	}{
		{
			name: "required",
			text: "!{db-pass:my-project}",
			want: []Marker{{Start: 0, End: 21, Name: "db-pass", HasParam: true, Param: "my-project"}},
		},
		{
			name: "with default",
			text: "!{db-pass:my-project:changeme}",
			want: []Marker{{
				Start: 0, End: 30, Name: "db-pass",
				HasParam: true, Param: "my-project",
				HasDefault: true, Default: "changeme",
			}},
		},
		{
			name: "empty default",
			text: "!{s:p:}",
			want: []Marker{{Start: 0, End: 7, Name: "s", HasParam: true, Param: "p", HasDefault: true}},
		},
		{
			name: "missing separator",
			text: "!{NAME}",
			want: []Marker{{Start: 0, End: 7, Name: "NAME"}},
		},
		{
			name: "single character without separator",
			text: "!{S}",
			want: []Marker{{Start: 0, End: 4, Name: "S"}},
		},
		{
			name: "separator with empty param",
			text: "!{NAME:}",
			want: []Marker{{Start: 0, End: 8, Name: "NAME"}},
		},
		{
			name: "embedded in text",
			text: "postgres://u:!{pw:proj}@host",
			want: []Marker{{Start: 13, End: 23, Name: "pw", HasParam: true, Param: "proj"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Secret.FindAll(tt.text))
		})
	}
}

func TestMarkerText(t *testing.T) {
	text := "a-${X:1}-b"
	markers := Env.FindAll(text)
	require.Len(t, markers, 1)
	assert.Equal(t, "${X:1}", markers[0].Text(text))
}

func TestNew(t *testing.T) {
	t.Run("custom family", func(t *testing.T) {
		p, err := New("vault", `@\{(?P<name>[^{}:]+)(?P<separator>:?)(?P<default>.*?)\}`)
		require.NoError(t, err)
		assert.Equal(t, "vault", p.Family())

		got := p.FindAll("@{token:none}")
		require.Len(t, got, 1)
		assert.Equal(t, "token", got[0].Name)
		assert.True(t, got[0].HasDefault)
		assert.Equal(t, "none", got[0].Default)
	})

	t.Run("missing name group", func(t *testing.T) {
		_, err := New("bad", `@\{(.*)\}`)
		assert.ErrorContains(t, err, `no "name" group`)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := New("bad", `(`)
		assert.Error(t, err)
		assert.Panics(t, func() { MustNew("bad", `(`) })
	})
}

func TestPatternAccessors(t *testing.T) {
	assert.Equal(t, "env", Env.Family())
	assert.Equal(t, "secret", Secret.Family())
	assert.Equal(t, Env.Regexp().String(), Env.String())
}
