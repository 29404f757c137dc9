package gtp

import "fmt"

const eol = "\r\n"

// Response is the engine's reply to a single Command.
type Response struct {
	// ID echoes the sequence id of the command, when one was given.
	ID *int
	// Reply holds the success text. It may be empty.
	Reply string
	// Err is set when the command failed.
	Err error
}

// String returns the wire form of the response, terminated by a blank line.
func (r Response) String() string {
	id := ""
	if r.ID != nil {
		id = fmt.Sprintf("%d", *r.ID)
	}
	if r.Err != nil {
		return fmt.Sprintf("?%s %s%s%s", id, r.Err, eol, eol)
	}
	return fmt.Sprintf("=%s %s%s%s", id, r.Reply, eol, eol)
}
