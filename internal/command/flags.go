// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/cache"
	"github.com/staranto/linkctl/internal/output"
)

const (
	defaultSource  = "links.xlsx"
	defaultLimit   = 10
	defaultContext = "cli"
)

// NewStoreFlags returns the flags that select and configure the cache entry
// store. Values fall back to the environment and then the config file at
// path, first under the ns namespace and then at the top level.
func NewStoreFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "directory holding cache entries",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LINKCTL_CACHE_DIR"),
				yaml.YAML(ns+".cache.dir", altsrc.StringSourcer(path)),
				yaml.YAML("cache.dir", altsrc.StringSourcer(path)),
			),
		},
		&cli.StringFlag{
			Name:  "s3-bucket",
			Usage: "store cache entries in this S3 bucket instead of cache-dir",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LINKCTL_S3_BUCKET"),
				yaml.YAML("cache.s3.bucket", altsrc.StringSourcer(path)),
			),
		},
		&cli.StringFlag{
			Name:  "s3-prefix",
			Usage: "key prefix for cache entries in the S3 bucket",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LINKCTL_S3_PREFIX"),
				yaml.YAML("cache.s3.prefix", altsrc.StringSourcer(path)),
			),
			Value: "linkctl",
		},
		&cli.StringFlag{
			Name:   "s3-endpoint",
			Usage:  "S3 compatible endpoint URL",
			Hidden: true,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LINKCTL_S3_ENDPOINT"),
				yaml.YAML("cache.s3.endpoint", altsrc.StringSourcer(path)),
			),
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for the S3 bucket",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cache.s3.region", altsrc.StringSourcer(path)),
			),
		},
		&cli.StringFlag{
			Name:  "profile",
			Usage: "AWS shared config profile",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cache.s3.profile", altsrc.StringSourcer(path)),
			),
		},
	}
}

// NewLinkFlags returns the flags that drive a cache lookup.
func NewLinkFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"f"},
			Usage:   "spreadsheet, csv or json file of url,name rows",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LINKCTL_SOURCE"),
				yaml.YAML(ns+".source", altsrc.StringSourcer(path)),
				yaml.YAML("source", altsrc.StringSourcer(path)),
			),
			Value: defaultSource,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "maximum number of links picked on a cache miss",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".limit", altsrc.StringSourcer(path)),
				yaml.YAML("limit", altsrc.StringSourcer(path)),
			),
			Value: defaultLimit,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:     "on-corrupt",
			Usage:    "what to do with an unreadable cache entry, one of " + joinQuoted(cache.CorruptPolicies),
			Sources:  cli.NewValueSourceChain(yaml.YAML("cache.corrupt", altsrc.StringSourcer(path))),
			Value:    string(cache.CorruptEmpty),
			Category: "cache",
			Validator: func(value string) error {
				return FlagValidators(value, CorruptPolicyValidator)
			},
		},
		&cli.Int64Flag{
			Name:   "seed",
			Usage:  "seed for sampling; 0 seeds from the clock",
			Hidden: true,
			Value:  0,
		},
	}
}

// NewOutputFlags returns the flags that control how links are printed.
func NewOutputFlags(ns string, path string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format, one of " + joinQuoted(output.Formats),
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".output", altsrc.StringSourcer(path)),
				yaml.YAML("output", altsrc.StringSourcer(path)),
			),
			Value: "html",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".color", altsrc.StringSourcer(path)),
				yaml.YAML("color", altsrc.StringSourcer(path)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".titles", altsrc.StringSourcer(path)),
				yaml.YAML("titles", altsrc.StringSourcer(path)),
			),
		},
	}
}
