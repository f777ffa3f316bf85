// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cfgload/internal/config"
	"github.com/tfctl/cfgload/internal/log"
	"github.com/tfctl/cfgload/internal/meta"
	"github.com/tfctl/cfgload/pkg/cfgload"
)

// EnvCfgFile names the environment variable holding the default config path.
const EnvCfgFile = "CFGLOAD_CFG_FILE"

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary is the subcommand and also
	// the namespace key used when reading settings. It could be -h/--help, so
	// ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	settings, err := config.Load(ns)
	if err != nil {
		if !errors.Is(err, config.ErrNoSettings) {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		log.Debugf("no settings: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Settings:    settings,
		Context:     ctx,
		DefaultFile: defaultFile(settings),
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "cfgload",
		Usage: "Resolve placeholders in YAML configuration",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cfgload version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		resolveCommandBuilder(meta),
		checkCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// defaultFile picks the config file read when no FILE argument is given:
// CFGLOAD_CFG_FILE, then the "file" setting, then cfgload.DefaultPath.
func defaultFile(settings config.Type) string {
	if f := os.Getenv(EnvCfgFile); f != "" {
		return f
	}
	return settings.GetString("file", cfgload.DefaultPath)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
