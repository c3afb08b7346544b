// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/meta"
)

const bashCompletionScript = `# bash completion for linkctl
_linkctl()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get serve drop purge completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local store="--cache-dir --s3-bucket --s3-prefix --region --profile"
    local lookup="--source -f --limit -n --on-corrupt"

    case "$cmd" in
        get)
            local opts="$store $lookup --context -k --output -o --color -c --titles -t"
            ;;
        serve)
            local opts="$store $lookup --addr"
            ;;
        drop)
            local opts="$store --context -k"
            ;;
        purge)
            local opts="$store --hours"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "html text json yaml" -- "$cur") )
            return 0
            ;;
        --on-corrupt)
            COMPREPLY=( $(compgen -W "empty recompute" -- "$cur") )
            return 0
            ;;
        --source|-f)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
        --cache-dir)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _linkctl linkctl
`

const zshCompletionScript = `#compdef linkctl

_linkctl() {
  local -a cmds
  cmds=(
    'get:print the cached links for a context'
    'serve:serve the cached links over HTTP'
    'drop:delete the cached links for a context'
    'purge:delete old cache entries'
    'completion:generate shell completion script'
  )

  local -a store lookup
  store=(
    '--cache-dir[cache directory]:directory:_directories'
    '--s3-bucket[S3 bucket]:bucket'
    '--s3-prefix[S3 key prefix]:prefix'
    '--region[AWS region]:region'
    '--profile[AWS profile]:profile'
  )
  lookup=(
    '(-f --source)'{-f,--source}'[link source file]:file:_files'
    '(-n --limit)'{-n,--limit}'[maximum links]:limit'
    '--on-corrupt[corrupt entry policy]:policy:(empty recompute)'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'linkctl commands' cmds
    return
  fi

  case $words[2] in
    get)
      _arguments -C $store $lookup \
        '(-k --context)'{-k,--context}'[request context]:context' \
        '(-o --output)'{-o,--output}'[output format]:format:(html text json yaml)' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-t --titles)'{-t,--titles}'[show titles]'
      ;;
    serve)
      _arguments -C $store $lookup '--addr[listen address]:addr'
      ;;
    drop)
      _arguments -C $store '(-k --context)'{-k,--context}'[request context]:context'
      ;;
    purge)
      _arguments -C $store '--hours[maximum age in hours]:hours'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _linkctl linkctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(cmd.Root().ErrWriter, "usage: linkctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "linkctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
