// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestInitLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLevel, "warn")
	InitLoggerTo(&buf)

	Debugf("hidden %d", 1)
	Warnf("secret %s not found", "db")
	WithError(assert.AnError).Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, " W secret db not found")
	assert.Contains(t, out, " E boom error="+assert.AnError.Error())
}

func TestTracef(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLevel, "trace")
	InitLoggerTo(&buf)

	Tracef("scanning %q", "${HOME}")
	assert.Contains(t, buf.String(), ` T scanning "${HOME}"`)

	buf.Reset()
	t.Setenv(EnvLevel, "debug")
	InitLoggerTo(&buf)
	Tracef("quiet")
	assert.Empty(t, buf.String())
}
