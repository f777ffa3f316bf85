// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"

	"github.com/tfctl/cfgload/internal/log"
)

// Chain dispatches a string to the first loader whose pattern occurs in it.
// The environment loader is always first.
type Chain struct {
	loaders []Loader
}

// NewChain returns a chain of the environment loader followed by extra, in
// order.
func NewChain(extra ...Loader) *Chain {
	loaders := make([]Loader, 0, len(extra)+1)
	loaders = append(loaders, NewEnv())
	loaders = append(loaders, extra...)
	return &Chain{loaders: loaders}
}

// Loaders returns a copy of the ordered loader list.
func (c *Chain) Loaders() []Loader {
	out := make([]Loader, len(c.loaders))
	copy(out, c.loaders)
	return out
}

// Load resolves text with the first matching loader only; its result is final
// and is not offered to later loaders. Text with no markers of any family is
// returned unchanged.
func (c *Chain) Load(ctx context.Context, text string) (string, error) {
	for _, l := range c.loaders {
		if l.Pattern().Matches(text) {
			log.Tracef("chain: dispatching to %s loader", l.Pattern().Family())
			return l.Load(ctx, text)
		}
	}
	return text, nil
}
