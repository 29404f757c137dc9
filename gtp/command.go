// Package gtp implements version 2 of the Go Text Protocol,
// http://www.lysator.liu.se/~gunnar/gtp/.
package gtp

import (
	"strconv"
	"strings"
	"unicode"
)

// Command is a single parsed GTP command line.
type Command struct {
	// ID is the optional sequence id echoed back in the response.
	ID *int
	// Name is the command name, for example "play".
	Name string
	// Args holds the remaining whitespace separated tokens.
	Args []string
}

// preprocessLine strips a trailing comment, converts tabs to spaces,
// drops other control characters, and splits on whitespace.
func preprocessLine(line string) []string {
	var b strings.Builder
	for _, c := range line {
		switch {
		case c == '#':
			return strings.Fields(b.String())
		case c == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(c):
		default:
			b.WriteRune(c)
		}
	}
	return strings.Fields(b.String())
}

// ParseCommand converts a line of input into a Command. The second return
// is false when the line holds no command at all.
func ParseCommand(line string) (Command, bool) {
	words := preprocessLine(line)
	if len(words) == 0 {
		return Command{}, false
	}

	var cmd Command
	if id, err := strconv.Atoi(words[0]); err == nil && id >= 0 {
		cmd.ID = &id
		words = words[1:]
	}
	if len(words) == 0 {
		return cmd, true
	}
	cmd.Name = words[0]
	cmd.Args = words[1:]
	return cmd, true
}
