// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/cacheutil"
	"github.com/staranto/linkctl/internal/meta"
)

// PurgeCommandAction removes file store entries older than --hours.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.String("s3-bucket") != "" {
		return errors.New("purge only works on the file store; use a bucket lifecycle rule for S3")
	}

	store, err := fileStore(cmd)
	if err != nil {
		return err
	}

	n, err := cacheutil.Purge(store.Dir, cmd.Int("hours"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "removed %d cache entries from %s\n", n, store.Dir)
	return nil
}

// PurgeCommandBuilder constructs the cli.Command for "purge".
func PurgeCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "purge",
		Usage:     "delete cache entries older than a number of hours",
		UsageText: "linkctl purge --hours N",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "hours",
				Usage: "age in hours past which entries are removed; 0 disables",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("cache.clean", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: 0,
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
		},
		Action: PurgeCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
