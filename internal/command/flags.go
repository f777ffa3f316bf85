// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// Environment variables backing the command flags.
const (
	EnvSecrets    = "CFGLOAD_SECRETS"
	EnvAWSProfile = "CFGLOAD_AWS_PROFILE"
	EnvAWSRegion  = "CFGLOAD_AWS_REGION"
)

// NewCommonFlags returns the flags shared by resolve and check. params[0] is
// the command namespace and params[1] the settings file, which, when given,
// backs each flag after its environment variable.
func NewCommonFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		NewSecretsFlag(params...),
		NewAWSProfileFlag(params...),
		NewAWSRegionFlag(params...),
	}
}

// NewOutputFlag constructs the "output" flag selecting yaml or json.
func NewOutputFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (yaml or json)",
		Value:   "yaml",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	flag.Sources.Chain = append(flag.Sources.Chain, settingsSources(flag.Name, params...)...)
	return flag
}

// NewSecretsFlag constructs the "secrets" flag enabling the AWS Secrets
// Manager backend.
func NewSecretsFlag(params ...string) *cli.BoolFlag {
	flag := &cli.BoolFlag{
		Name:    "secrets",
		Aliases: []string{"S"},
		Usage:   "resolve !{...} markers from AWS Secrets Manager",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(EnvSecrets),
		),
		Value: false,
	}
	flag.Sources.Chain = append(flag.Sources.Chain, settingsSources(flag.Name, params...)...)
	return flag
}

// NewAWSProfileFlag constructs the "aws-profile" flag.
func NewAWSProfileFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "aws-profile",
		Usage: "shared config profile used for secret lookups",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(EnvAWSProfile),
		),
	}
	flag.Sources.Chain = append(flag.Sources.Chain, settingsSources(flag.Name, params...)...)
	return flag
}

// NewAWSRegionFlag constructs the "aws-region" flag. Markers name their own
// region, so this only matters for loading the AWS config.
func NewAWSRegionFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "aws-region",
		Usage: "default AWS region",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(EnvAWSRegion),
		),
	}
	flag.Sources.Chain = append(flag.Sources.Chain, settingsSources(flag.Name, params...)...)
	return flag
}

// settingsSources returns the namespaced and global settings file sources for
// the named flag. params[0] is the namespace and params[1] the settings file.
// Nothing is returned unless both are given.
func settingsSources(name string, params ...string) []cli.ValueSource {
	if len(params) != 2 || params[1] == "" {
		return nil
	}
	ns, path := params[0], params[1]
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}
