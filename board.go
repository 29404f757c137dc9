package libgo

import (
	"fmt"
	"strings"
)

// ChineseKomi is the compensation in points White gets for going second
// under Chinese rules.
const ChineseKomi = 7.5

// CenterPoint returns the center point (tengen) of the board. Even sized
// boards don't have a center point.
func CenterPoint(size int) (Vertex, bool) {
	if size%2 == 0 {
		return Vertex{}, false
	}
	center := size / 2
	return Vertex{X: center, Y: center}, true
}

// StarPoints returns the star points (hoshi), which are traditionally marked
// with a small dot on the board.
func StarPoints(size int) []Vertex {
	if size < 7 {
		return nil
	}
	minLine := 2
	if size > 12 {
		minLine = 3
	}
	maxLine := size - minLine - 1
	points := []Vertex{
		{X: minLine, Y: minLine},
		{X: maxLine, Y: maxLine},
		{X: minLine, Y: maxLine},
		{X: maxLine, Y: minLine},
	}
	if size == 7 {
		return points
	}

	center, ok := CenterPoint(size)
	if !ok {
		return points
	}
	return append(points,
		Vertex{X: minLine, Y: center.Y},
		Vertex{X: maxLine, Y: center.Y},
		Vertex{X: center.X, Y: minLine},
		Vertex{X: center.X, Y: maxLine},
	)
}

// FixedHandicaps returns the handicap vertices for a board size and desired
// number of stones. The list is as long as the star points allow, which may
// be shorter than requested.
func FixedHandicaps(size, stones int) []Vertex {
	handicaps := StarPoints(size)
	if size > 7 && (stones == 5 || stones == 7 || stones >= 9) {
		if len(handicaps) > stones-1 {
			handicaps = handicaps[:stones-1]
		}
		if center, ok := CenterPoint(size); ok {
			handicaps = append(handicaps, center)
		}
	} else if len(handicaps) > stones {
		handicaps = handicaps[:stones]
	}
	return handicaps
}

// Board is the arrangement of stones plus the region tracking derived from
// it. Region bookkeeping is a cache: two boards are equal iff their
// arrangements are equal, which is what Identity compares.
type Board struct {
	graph *Graph
}

// NewBoard returns an empty board, or ErrInvalidSize for sizes outside
// [MinBoardSize, MaxBoardSize].
func NewBoard(size int) (*Board, error) {
	graph, err := NewGraph(size)
	if err != nil {
		return nil, err
	}
	return &Board{graph: graph}, nil
}

// Size returns the current size of the board.
func (b *Board) Size() int {
	return b.graph.Size()
}

// Get returns the cell state at a vertex.
func (b *Board) Get(v Vertex) (Cell, error) {
	return b.graph.Get(v)
}

// IsVacant returns true if the vertex is on the board and empty, otherwise
// false.
func (b *Board) IsVacant(v Vertex) bool {
	return b.graph.matrix.IsInState(v, CellEmpty)
}

// IsEmpty returns true if there are no stones on the board.
func (b *Board) IsEmpty() bool {
	return len(b.graph.Regions(CellBlack)) == 0 && len(b.graph.Regions(CellWhite)) == 0
}

// EmptyVertices returns all of the empty vertices in ascending index order.
func (b *Board) EmptyVertices() []Vertex {
	return b.graph.matrix.VerticesInState(CellEmpty)
}

// Regions returns the board's current regions in the given state.
func (b *Board) Regions(c Cell) []*Region {
	return b.graph.Regions(c)
}

// RegionAt returns the region containing a vertex.
func (b *Board) RegionAt(v Vertex) (*Region, error) {
	return b.graph.RegionAt(v)
}

// Liberties returns the liberty count of the region containing the vertex.
func (b *Board) Liberties(v Vertex) (int, error) {
	r, err := b.graph.RegionAt(v)
	if err != nil {
		return 0, err
	}
	return r.Liberties(b.graph.matrix), nil
}

// Identity returns an opaque value usable for arrangement equality, which is
// what positional superko compares.
func (b *Board) Identity() string {
	return b.graph.matrix.Identity()
}

// Clear removes all of the stones from the board.
func (b *Board) Clear() {
	b.graph.Reset()
}

// Clone returns a deep copy of the board. Clones share no mutable region
// storage with their source, so scratch evaluations never disturb the
// original.
func (b *Board) Clone() *Board {
	return &Board{graph: b.graph.Clone()}
}

// PlaceStone plays a stone for the player and resolves captures: opposing
// regions left without liberties are removed first, then the placed stone's
// own region is removed if it still has no liberties (self-capture). The
// order matters: capturing an enemy group can grant the new stone the
// liberty that saves it.
//
// Game level legality (superko, game over) is the caller's concern; the
// board only rejects off-board and occupied vertices.
func (b *Board) PlaceStone(p Player, v Vertex) error {
	i, ok := b.graph.matrix.index(v)
	if !ok {
		return fmt.Errorf("place at %v: %w", v, ErrOutOfBounds)
	}
	if b.graph.matrix.cells[i] != CellEmpty {
		return fmt.Errorf("place at %v: %w", v, ErrOccupied)
	}

	b.graph.setCellIndex(i, p.Cell())
	b.removeDead(p.Enemy().Cell())

	own := b.graph.regionWith(p.Cell(), i)
	if own == nil {
		panic(fmt.Sprintf("placed stone at %v has no region", v))
	}
	if own.Liberties(b.graph.matrix) == 0 {
		b.clearRegion(own)
	}
	return nil
}

// removeDead clears every region of the given state that has no liberties
// left.
func (b *Board) removeDead(state Cell) {
	var dead []*Region
	for _, r := range b.graph.regions[state] {
		if r.Liberties(b.graph.matrix) == 0 {
			dead = append(dead, r)
		}
	}
	for _, r := range dead {
		b.clearRegion(r)
	}
}

// clearRegion converts every cell of a region back to empty. Each conversion
// runs through the region tracker, so the shrinking group and the growing
// empty area stay consistent throughout.
func (b *Board) clearRegion(r *Region) {
	for _, i := range r.sortedCells() {
		b.graph.setCellIndex(i, CellEmpty)
	}
}

func (b *Board) pushLetters(sb *strings.Builder) {
	sb.WriteString("  ")
	for x := 0; x < b.Size(); x++ {
		sb.WriteByte(' ')
		sb.WriteByte(GobanLetters[x])
	}
	sb.WriteString("   ")
}

// String returns a human readable ASCII representation of the board. Star
// points show as '+', Black stones as 'x', and White stones as 'o'. Rows are
// numbered from the bottom.
func (b *Board) String() string {
	size := b.Size()
	starPoints := make(map[Vertex]bool)
	for _, v := range FixedHandicaps(size, 9) {
		starPoints[v] = true
	}

	var sb strings.Builder
	b.pushLetters(&sb)
	sb.WriteString("\r\n")
	for y := size - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%02d", y+1)
		for x := 0; x < size; x++ {
			sb.WriteByte(' ')
			i, _ := b.graph.matrix.index(Vertex{X: x, Y: y})
			switch b.graph.matrix.cells[i] {
			case CellBlack:
				sb.WriteByte('x')
			case CellWhite:
				sb.WriteByte('o')
			default:
				if starPoints[Vertex{X: x, Y: y}] {
					sb.WriteByte('+')
				} else {
					sb.WriteByte('.')
				}
			}
		}
		fmt.Fprintf(&sb, " %02d\r\n", y+1)
	}
	b.pushLetters(&sb)
	return sb.String()
}
