// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"

	"github.com/staranto/linkctl/internal/command"
	mylog "github.com/staranto/linkctl/internal/log"
	"github.com/staranto/linkctl/internal/version"
)

var subcommands = map[string]bool{
	"get":        true,
	"serve":      true,
	"drop":       true,
	"purge":      true,
	"completion": true,
	"help":       true,
	"h":          true,
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	// Short-circuit --version/-v.
	for _, a := range os.Args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	args := mangleArguments(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments makes "get" the implicit subcommand, so a bare linkctl
// prints the links for the "cli" context.
func mangleArguments(args []string) []string {
	if len(args) > 1 {
		first := args[1]
		if subcommands[first] || first == "--help" || first == "-h" {
			return args
		}
		if !strings.HasPrefix(first, "-") {
			// Unknown word; let the cli report it.
			return args
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args[0], "get")
	out = append(out, args[1:]...)
	log.Debugf("args=%v", out)
	return out
}
