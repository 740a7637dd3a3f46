// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/prefs/internal/meta"
)

const bashCompletionScript = `# bash completion for prefs
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_prefs()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "get set unset show path init login logout completion --settings-file --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local keys="anonymous_user_id api_token has_shown_metrics_notification"

    case "$cmd" in
        get)
            local opts="--default -d"
            ;;
        set)
            local opts="--dry-run -n --string"
            ;;
        unset)
            local opts="--dry-run -n"
            ;;
        show)
            local opts="--color -c --filter -f --output -o --reveal -r --sort -s --titles -t"
            ;;
        init)
            local opts="--dry-run -n --force -f"
            ;;
        login)
            local opts="--dry-run -n --token"
            ;;
        logout)
            local opts="--dry-run -n"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts=""
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Offer setting keys for the first positional of get, set and unset
    if [[ ${COMP_CWORD} -eq 2 && ( "$cmd" == "get" || "$cmd" == "set" || "$cmd" == "unset" ) ]]; then
        COMPREPLY=( $(compgen -W "$keys" -- "$cur") )
    fi
    return 0
}

complete -F _prefs prefs
`

const zshCompletionScript = `#compdef prefs

_prefs() {
  local -a cmds
  cmds=(
    'get:print the value of a setting'
    'set:set the value of a setting'
    'unset:remove a setting'
    'show:list all settings'
    'path:print the settings file location'
    'init:write default settings to disk'
    'login:store an api token'
    'logout:remove the stored api token'
    'completion:generate shell completion script'
  )

  local -a keys
  keys=(anonymous_user_id api_token has_shown_metrics_notification)

  local dryrun='(-n --dry-run)'{-n,--dry-run}'[show the change without saving it]'

  if (( CURRENT == 2 )); then
    _describe -t commands 'prefs commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    get)
      _arguments -C \
        '(-d --default)'{-d,--default}'[value to print when absent]:value' \
        "1:key:($keys)"
      ;;
    set)
      _arguments -C \
        $dryrun \
        '--string[store VALUE as a string]' \
        "1:key:($keys)" \
        '2:value'
      ;;
    unset)
      _arguments -C \
        $dryrun \
        "1:key:($keys)"
      ;;
    show)
      _arguments -C \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '(-r --reveal)'{-r,--reveal}'[show the api token]' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '(-t --titles)'{-t,--titles}'[show titles]'
      ;;
    init)
      _arguments -C \
        $dryrun \
        '(-f --force)'{-f,--force}'[replace existing settings]'
      ;;
    login)
      _arguments -C \
        $dryrun \
        '--token[api token to store]:token'
      ;;
    logout)
      _arguments -C $dryrun
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _prefs prefs
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := cmd.Args().First()
	if shell == "" {
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
		return fmt.Errorf("usage: %s", cmd.UsageText)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	cb := &CommandBuilder{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "prefs completion [bash|zsh]",
		Args:      -1,
		Action:    completionCommandAction,
		Meta:      meta,
	}
	return cb.Build()
}
