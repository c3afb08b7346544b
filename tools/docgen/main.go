// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/command"
)

// Minimal doc generator:
// - Walks the live linkctl command tree
// - Generates docs/man/share/man1/linkctl-<cmd>.1 via md2man

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	if err := os.MkdirAll(manOutDir, 0o755); err != nil {
		fatalf("creating man output dir: %v", err)
	}

	app, err := command.InitApp(context.Background(), []string{"linkctl"})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	var processed int
	for _, cmd := range app.Commands {
		manBytes := md2man.Render([]byte(commandMarkdown(cmd)))
		manPath := filepath.Join(manOutDir, "linkctl-"+cmd.Name+".1")
		if err := writeFileIfChanged(manPath, manBytes, writeOnlyIfChanged); err != nil {
			fatalf("writing man for %s: %v", cmd.Name, err)
		}
		processed++
	}

	fmt.Printf("docgen: processed %d command(s)\n", processed)
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// commandMarkdown renders a subcommand in the md2man dialect: a title line,
// then NAME, SYNOPSIS and OPTIONS sections.
func commandMarkdown(cmd *cli.Command) string {
	var b strings.Builder

	fmt.Fprintf(&b, "linkctl-%s 1 \"\" \"linkctl\" \"User Commands\"\n", cmd.Name)
	b.WriteString("==================================================\n\n")

	b.WriteString("# NAME\n\n")
	fmt.Fprintf(&b, "linkctl-%s - %s\n\n", cmd.Name, cmd.Usage)

	if cmd.UsageText != "" {
		b.WriteString("# SYNOPSIS\n\n")
		fmt.Fprintf(&b, "`%s`\n\n", cmd.UsageText)
	}

	var opts []string
	for _, f := range cmd.Flags {
		if v, ok := f.(interface{ IsVisible() bool }); ok && !v.IsVisible() {
			continue
		}
		opts = append(opts, flagMarkdown(f))
	}
	if len(opts) > 0 {
		b.WriteString("# OPTIONS\n\n")
		b.WriteString(strings.Join(opts, "\n"))
	}

	return b.String()
}

func flagMarkdown(f cli.Flag) string {
	names := make([]string, 0, len(f.Names()))
	for _, n := range f.Names() {
		if len(n) == 1 {
			names = append(names, "-"+n)
		} else {
			names = append(names, "--"+n)
		}
	}

	usage := ""
	if u, ok := f.(interface{ GetUsage() string }); ok {
		usage = u.GetUsage()
	}
	return fmt.Sprintf("**%s**\n: %s\n", strings.Join(names, "**, **"), usage)
}
