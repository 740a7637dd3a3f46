// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/config"
	"github.com/tfctl/prefs/internal/output"
)

const settingsFileFlagName = "settings-file"

// newSettingsFileFlag is accepted on every command. InitApp reads it straight
// from the raw args since the store must exist before commands are built.
func newSettingsFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  settingsFileFlagName,
		Usage: "path to the settings file",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar(config.SettingsFileEnvVar),
		),
	}
}

func newDryRunFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "dry-run",
		Aliases:     []string{"n"},
		Usage:       "show the change without saving it",
		HideDefault: true,
	}
}

// NewDisplayFlags returns the flags controlling how settings are rendered.
// params[0] is the command namespace and params[1] the settings file, which
// lets users pin defaults such as "show.output: json" in the settings file.
func NewDisplayFlags(params ...string) (flags []cli.Flag) {
	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("PREFS_OUTPUT"),
		),
		Value: "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	if len(params) == 2 && params[1] != "" {
		outputFlag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], outputFlag)
	}

	flags = []cli.Flag{
		outputFlag,
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   output.ColorDefault(),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated filters such as key^api or value=true",
		},
		&cli.BoolFlag{
			Name:    "reveal",
			Aliases: []string{"r"},
			Usage:   "show the api token instead of masking it",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns (key, value) to sort by",
			Value:   "key",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global settings
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
