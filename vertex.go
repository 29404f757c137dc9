package libgo

import (
	"fmt"
	"strconv"
	"strings"
)

// GobanLetters are the column letters used in board coordinates. The letter
// "I" is skipped by convention so it can't be confused with a one.
const GobanLetters = "ABCDEFGHJKLMNOPQRST"

// Vertex is the x and y coordinates of a cell on the board.
//
// (0, 0) is the bottom left corner of the board.
type Vertex struct {
	X int
	Y int
}

// String formats a vertex as a column letter followed by the 1-based row
// number, e.g. "D4".
func (v Vertex) String() string {
	if v.X < 0 || v.X >= len(GobanLetters) {
		return fmt.Sprintf("(%d,%d)", v.X, v.Y)
	}
	return fmt.Sprintf("%c%d", GobanLetters[v.X], v.Y+1)
}

// ParseVertex converts a coordinate such as "D4" into a Vertex. The letter
// must be one of GobanLetters and the row number must be positive.
func ParseVertex(s string) (Vertex, error) {
	if len(s) < 2 {
		return Vertex{}, fmt.Errorf("string too short to be a vertex: %q", s)
	}

	x := strings.IndexByte(GobanLetters, s[0])
	if x < 0 {
		return Vertex{}, fmt.Errorf("invalid coordinate letter %q", s[0])
	}

	y, err := strconv.Atoi(s[1:])
	if err != nil {
		return Vertex{}, fmt.Errorf("invalid row number %q", s[1:])
	}
	if y <= 0 {
		return Vertex{}, fmt.Errorf("row number must be greater than zero")
	}

	return Vertex{X: x, Y: y - 1}, nil
}

// Vertices is a list of vertices. It is a wrapper type for providing a GTP
// friendly Display.
type Vertices []Vertex

func (vs Vertices) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
