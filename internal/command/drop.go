// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/cache"
	"github.com/staranto/linkctl/internal/meta"
)

// DropCommandAction deletes the stored links for each --context so the next
// lookup picks a new sample.
func DropCommandAction(ctx context.Context, cmd *cli.Command) error {
	store, err := BuildStore(ctx, cmd)
	if err != nil {
		return err
	}
	c := cache.New(store)

	for _, k := range cmd.StringSlice("context") {
		if err := c.Invalidate(k); err != nil {
			return fmt.Errorf("failed to drop %q: %w", k, err)
		}
		fmt.Fprintf(cmd.Root().Writer, "dropped %s (%s)\n", k, c.Key(k))
	}
	return nil
}

// DropCommandBuilder constructs the cli.Command for "drop".
func DropCommandBuilder(meta meta.Meta) *cli.Command {
	b := CommandBuilder{
		Name:      "drop",
		Usage:     "delete the cached links for one or more contexts",
		UsageText: "linkctl drop --context CTX [--context CTX ...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "context",
				Aliases:  []string{"k"},
				Usage:    "request context to drop",
				Required: true,
			},
		},
		Action: DropCommandAction,
		Meta:   meta,
	}
	return b.Build()
}
