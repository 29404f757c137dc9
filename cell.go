package libgo

// Cell is the state of a single vertex on the board.
type Cell int8

// The three possible vertex states. The zero value is CellEmpty.
const (
	CellWhite Cell = -1
	CellEmpty Cell = 0
	CellBlack Cell = 1
)

func (c Cell) String() string {
	switch c {
	case CellWhite:
		return "white"
	case CellBlack:
		return "black"
	}
	return "empty"
}
