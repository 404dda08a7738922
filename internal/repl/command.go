package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an input line
type Kind int

const (
	// KindNone is a blank line
	KindNone Kind = iota
	// KindSearch is a new or refined search
	KindSearch
	// KindSession is a colon command without argument (:q, :n, ...)
	KindSession
	// KindIndexed is a record action addressing the current page by position
	KindIndexed
	// KindLiteral is a record action naming a record identifier
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindSession:
		return "session"
	case KindIndexed:
		return "indexed"
	case KindLiteral:
		return "literal"
	default:
		return "none"
	}
}

// Command is a classified input line
type Command struct {
	Kind  Kind
	Name  string // colon command name without the colon
	Index int    // 0-based position in the current page, KindIndexed only
	ID    string // record identifier, KindLiteral only
	Line  string // trimmed input, KindSearch only
}

// Session commands take no argument
const (
	CmdQuit     = "q"
	CmdNext     = "n"
	CmdPrevious = "p"
	CmdRerun    = "r"
	CmdWeb      = "finna"
	CmdImages   = "img"
	CmdHelp     = "help"
)

// Record actions take an index or an identifier
const (
	ActionView     = "v"
	ActionRaw      = "raw"
	ActionFull     = "full"
	ActionImage    = "img"
	ActionOpen     = "o"
	ActionHoldings = "hold"
)

var sessionCommands = map[string]bool{
	CmdQuit:     true,
	CmdNext:     true,
	CmdPrevious: true,
	CmdRerun:    true,
	CmdWeb:      true,
	CmdImages:   true,
	CmdHelp:     true,
}

var recordActions = map[string]bool{
	ActionView:     true,
	ActionRaw:      true,
	ActionFull:     true,
	ActionImage:    true,
	ActionOpen:     true,
	ActionHoldings: true,
}

// Classify decides what an input line asks for. Lines of the form
// ":<word>" or ":<word> <token>" are colon commands; every other
// non-blank line is a search.
func Classify(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindNone}, nil
	}

	name, arg, ok := tokenize(line)
	if !ok {
		return Command{Kind: KindSearch, Line: line}, nil
	}

	if !sessionCommands[name] && !recordActions[name] {
		return Command{}, fmt.Errorf("%w: :%s", ErrUnknownCommand, name)
	}

	if arg == "" {
		if !sessionCommands[name] {
			return Command{}, fmt.Errorf("%w: :%s needs a record number or id", ErrUnknownCommand, name)
		}
		return Command{Kind: KindSession, Name: name}, nil
	}

	if !recordActions[name] {
		return Command{}, fmt.Errorf("%w: :%s takes no argument", ErrUnknownCommand, name)
	}

	n, err := strconv.Atoi(arg)
	switch {
	case err == nil && n >= 1:
		return Command{Kind: KindIndexed, Name: name, Index: n - 1}, nil
	case err == nil, errors.Is(err, strconv.ErrRange):
		return Command{}, fmt.Errorf("%w: %s", ErrInvalidIndex, arg)
	default:
		return Command{Kind: KindLiteral, Name: name, ID: arg}, nil
	}
}

// tokenize splits ":<word>[ <token>]". The word is lowercase ASCII letters;
// the token may hold letters, digits and ._-: characters.
func tokenize(line string) (name, arg string, ok bool) {
	if !strings.HasPrefix(line, ":") {
		return "", "", false
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 || len(fields) > 2 {
		return "", "", false
	}
	// ": q" is not a command
	if line[1] == ' ' || line[1] == '\t' {
		return "", "", false
	}

	name = fields[0]
	for _, c := range name {
		if c < 'a' || c > 'z' {
			return "", "", false
		}
	}

	if len(fields) == 2 {
		arg = fields[1]
		for _, c := range arg {
			if !isTokenRune(c) {
				return "", "", false
			}
		}
	}
	return name, arg, true
}

func isTokenRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '-', c == ':':
		return true
	}
	return false
}
