// Package command recognises item commands typed into the chat box.
package command

import (
	"strings"
	"unicode"

	"github.com/buildkite/shellwords"
)

// Kind is the action a command asks for.
type Kind int

const (
	// Dictionary opens the in-game item dictionary (/item).
	Dictionary Kind = iota + 1
	// Wiki opens the item's wiki page (/wiki).
	Wiki
	// Market opens the marketplace for the item (/market).
	Market
)

var keywords = map[string]Kind{
	"/item":   Dictionary,
	"/wiki":   Wiki,
	"/market": Market,
}

// Keyword returns the chat keyword for k.
func (k Kind) Keyword() string {
	switch k {
	case Dictionary:
		return "/item"
	case Wiki:
		return "/wiki"
	case Market:
		return "/market"
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case Dictionary:
		return "dictionary"
	case Wiki:
		return "wiki"
	case Market:
		return "market"
	}
	return "unknown"
}

// Command is a parsed chat command.
type Command struct {
	Kind Kind
	Arg  string
}

// Parse recognises "/item <name>", "/wiki <name>" and "/market <name>".
// It returns false for anything else, including a keyword with no argument;
// such lines are ordinary chat.
func Parse(line string) (Command, bool) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return Command{}, false
	}
	keyword, rest := line[:i], line[i:]
	kind, ok := keywords[keyword]
	if !ok {
		return Command{}, false
	}
	arg := unquote(strings.TrimSpace(rest))
	if strings.TrimSpace(arg) == "" {
		return Command{}, false
	}
	return Command{Kind: kind, Arg: arg}, true
}

// unquote strips shell-style quotes from an argument given as one quoted
// word ("Radiant Fiber"). Anything else is returned as typed.
func unquote(arg string) string {
	if arg == "" || (arg[0] != '"' && arg[0] != '\'') {
		return arg
	}
	parts, err := shellwords.SplitPosix(arg)
	if err != nil || len(parts) != 1 {
		return arg
	}
	return parts[0]
}
