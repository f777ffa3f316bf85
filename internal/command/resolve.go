// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/cfgload/internal/log"
	"github.com/tfctl/cfgload/internal/meta"
	"github.com/tfctl/cfgload/pkg/cfgload"
	"github.com/tfctl/cfgload/pkg/loader"
	"github.com/tfctl/cfgload/pkg/secretsmanager"
)

// resolveCommandAction is the action handler for the "resolve" subcommand. It
// reads the config, resolves every string leaf and writes the result.
func resolveCommandAction(ctx context.Context, cmd *cli.Command) error {
	tree, err := resolveFile(ctx, cmd)
	if err != nil {
		return err
	}
	return emit(cmd.Root().Writer, tree, cmd.String("output"))
}

// checkCommandAction is the action handler for the "check" subcommand. It is
// resolve without output.
func checkCommandAction(ctx context.Context, cmd *cli.Command) error {
	if _, err := resolveFile(ctx, cmd); err != nil {
		return err
	}
	log.Infof("config ok")
	return nil
}

// resolveFile reads FILE, or the default file from meta, and runs the tree
// through the loader chain.
func resolveFile(ctx context.Context, cmd *cli.Command) (any, error) {
	path := cmd.Args().First()
	if path == "" {
		path = GetMeta(cmd).DefaultFile
	}
	log.Debugf("reading config: %s", path)

	raw, err := cfgload.ReadYAMLToMap(path)
	if err != nil {
		return nil, err
	}

	return resolveTree(ctx, buildChain(ctx, cmd), raw, "")
}

// buildChain returns the env loader followed by a secret loader. The secret
// loader is backed by AWS Secrets Manager when --secrets is set and the AWS
// config loads; otherwise it is disabled.
func buildChain(ctx context.Context, cmd *cli.Command) *loader.Chain {
	if !cmd.Bool("secrets") {
		return loader.NewChain(loader.NewSecret(nil))
	}

	var opts []secretsmanager.Option
	if profile := cmd.String("aws-profile"); profile != "" {
		opts = append(opts, secretsmanager.WithProfile(profile))
	}
	if region := cmd.String("aws-region"); region != "" {
		opts = append(opts, secretsmanager.WithRegion(region))
	}

	backend, err := secretsmanager.New(ctx, opts...)
	if err != nil {
		log.Errorf("secrets disabled: %v", err)
		return loader.NewChain(loader.NewSecret(nil))
	}
	return loader.NewChain(loader.NewSecret(backend))
}

// resolveTree returns a copy of v with every string leaf run through chain.
// Map keys are visited in sorted order so the first error is stable.
func resolveTree(ctx context.Context, chain *loader.Chain, v any, path string) (any, error) {
	switch t := v.(type) {
	case string:
		s, err := chain.Load(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return s, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(t))
		for _, k := range keys {
			p := k
			if path != "" {
				p = path + "." + k
			}
			r, err := resolveTree(ctx, chain, t[k], p)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			r, err := resolveTree(ctx, chain, e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

// emit writes v to w as json or, by default, yaml.
func emit(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
}

// resolveCommandBuilder constructs the cli.Command for "resolve".
func resolveCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "resolve placeholders and print the config",
		UsageText: "cfgload resolve [options] [FILE]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(NewCommonFlags("resolve", meta.Settings.Source),
			NewOutputFlag("resolve", meta.Settings.Source),
		),
		Action: resolveCommandAction,
	}
}

// checkCommandBuilder constructs the cli.Command for "check".
func checkCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "verify every placeholder in the config resolves",
		UsageText: "cfgload check [options] [FILE]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewCommonFlags("check", meta.Settings.Source),
		Action: checkCommandAction,
	}
}
