// Package shell finds the programs an exec keybind starts by parsing its
// command line with the tree-sitter bash grammar.
package shell

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
)

var (
	bashLang     *sitter.Language
	bashLangOnce sync.Once
)

func language() *sitter.Language {
	bashLangOnce.Do(func() {
		bashLang = bash.GetLanguage()
	})
	return bashLang
}

// execDispatchers launch their parameters as a shell command.
var execDispatchers = map[string]bool{
	"exec":  true,
	"execr": true,
}

// IsExec reports whether dispatcher runs its parameters through a shell.
func IsExec(dispatcher string) bool {
	return execDispatchers[strings.ToLower(dispatcher)]
}

// Programs returns the distinct command names invoked by cmdline in source
// order, including commands inside pipelines, lists and command
// substitutions. Hyprland window rules ("[workspace 2 silent] firefox") are
// skipped.
func Programs(ctx context.Context, cmdline string) ([]string, error) {
	cmdline = stripRules(cmdline)
	if strings.TrimSpace(cmdline) == "" {
		return nil, nil
	}
	src := []byte(cmdline)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("shell: parse %q: %w", cmdline, err)
	}
	defer tree.Close()

	var programs []string
	seen := make(map[string]bool)
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != "command_name" {
			return
		}
		name := programName(n.Content(src))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		programs = append(programs, name)
	})
	return programs, nil
}

// walk visits n and its named descendants depth-first in source order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walk(n.NamedChild(i), visit)
	}
}

// programName reduces a command word to the program it names: quotes are
// removed and paths are cut to their base name. Variables such as
// $terminal are kept as written.
func programName(word string) string {
	word = strings.Trim(strings.TrimSpace(word), `"'`)
	if word == "" || strings.HasPrefix(word, "$") {
		return word
	}
	return path.Base(word)
}

// stripRules removes a leading "[rule; rule]" block.
func stripRules(cmdline string) string {
	s := strings.TrimSpace(cmdline)
	if !strings.HasPrefix(s, "[") {
		return s
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return s
	}
	return strings.TrimSpace(s[end+1:])
}
