// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/meta"
	"github.com/staranto/linkctl/internal/output"
)

// GetCommandAction is the action handler for the "get" subcommand. It looks
// up the links for --context, computing and storing them on a miss, and
// prints them in the --output format.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	c, err := BuildCache(ctx, cmd)
	if err != nil {
		return err
	}

	records, err := c.Get(cmd.String("context"), cmd.String("source"), cmd.Int("limit"))
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	color := cmd.Bool("color")
	if !cmd.IsSet("color") {
		color = output.IsTerminal(w)
	}

	return output.Emit(w, records, cmd.String("output"), output.Options{
		Color:  color,
		Titles: cmd.Bool("titles"),
	})
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "get"
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "context",
			Aliases: []string{"k"},
			Usage:   "request context the links are cached under, such as a page path",
			Value:   defaultContext,
		},
	}
	flags = append(flags, NewLinkFlags(ns, meta.Config.Source)...)
	flags = append(flags, NewOutputFlags(ns, meta.Config.Source)...)

	b := CommandBuilder{
		Name:      ns,
		Usage:     "print the cached links for a context",
		UsageText: "linkctl get [--context CTX] [--source FILE] [--limit N] [options]",
		Flags:     flags,
		Action:    GetCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
