package libgo

import "fmt"

// Board sizes supported by the engine. A full size game is 19, but 13 and 9
// are also common.
const (
	MinBoardSize = 1
	MaxBoardSize = 19
)

// Matrix holds the state of each vertex on a square board, row by row from
// the bottom left corner.
type Matrix struct {
	size  int
	cells []Cell
}

// NewMatrix returns an all-empty matrix of the given size, or ErrInvalidSize
// when the size is outside [MinBoardSize, MaxBoardSize].
func NewMatrix(size int) (*Matrix, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("size %d: %w", size, ErrInvalidSize)
	}
	return &Matrix{size: size, cells: make([]Cell, size*size)}, nil
}

// Size returns the length of one side of the matrix.
func (m *Matrix) Size() int {
	return m.size
}

func (m *Matrix) index(v Vertex) (int, bool) {
	if v.X < 0 || v.X >= m.size || v.Y < 0 || v.Y >= m.size {
		return 0, false
	}
	return v.Y*m.size + v.X, true
}

func (m *Matrix) vertex(i int) Vertex {
	return Vertex{X: i % m.size, Y: i / m.size}
}

// Get returns the cell state at a vertex; it fails with ErrOutOfBounds when
// the vertex is not on the board.
func (m *Matrix) Get(v Vertex) (Cell, error) {
	i, ok := m.index(v)
	if !ok {
		return CellEmpty, fmt.Errorf("get %v: %w", v, ErrOutOfBounds)
	}
	return m.cells[i], nil
}

// Set writes a cell state at a vertex; it fails with ErrOutOfBounds when the
// vertex is not on the board and writes nothing.
func (m *Matrix) Set(v Vertex, c Cell) error {
	i, ok := m.index(v)
	if !ok {
		return fmt.Errorf("set %v: %w", v, ErrOutOfBounds)
	}
	m.cells[i] = c
	return nil
}

// IsInState returns true if the vertex is on the board and in the given
// state, otherwise false.
func (m *Matrix) IsInState(v Vertex, c Cell) bool {
	i, ok := m.index(v)
	return ok && m.cells[i] == c
}

// Adjacent returns the up to four neighboring vertices of v. Vertices at an
// edge or corner have fewer neighbors; the board never wraps around.
func (m *Matrix) Adjacent(v Vertex) []Vertex {
	adjacencies := make([]Vertex, 0, 4)
	if v.X > 0 {
		adjacencies = append(adjacencies, Vertex{X: v.X - 1, Y: v.Y})
	}
	if v.Y > 0 {
		adjacencies = append(adjacencies, Vertex{X: v.X, Y: v.Y - 1})
	}
	if v.X+1 < m.size {
		adjacencies = append(adjacencies, Vertex{X: v.X + 1, Y: v.Y})
	}
	if v.Y+1 < m.size {
		adjacencies = append(adjacencies, Vertex{X: v.X, Y: v.Y + 1})
	}
	return adjacencies
}

// adjacentIndexes appends the neighbor indexes of i to buf and returns it.
// It is the index-space twin of Adjacent used on the flood fill hot path.
func (m *Matrix) adjacentIndexes(i int, buf []int) []int {
	x := i % m.size
	if x > 0 {
		buf = append(buf, i-1)
	}
	if i >= m.size {
		buf = append(buf, i-m.size)
	}
	if x+1 < m.size {
		buf = append(buf, i+1)
	}
	if i+m.size < len(m.cells) {
		buf = append(buf, i+m.size)
	}
	return buf
}

// VerticesInState returns all of the vertices in the given state, in
// ascending index order.
func (m *Matrix) VerticesInState(c Cell) []Vertex {
	var verts []Vertex
	for i, state := range m.cells {
		if state == c {
			verts = append(verts, m.vertex(i))
		}
	}
	return verts
}

// Reset returns every cell to empty.
func (m *Matrix) Reset() {
	for i := range m.cells {
		m.cells[i] = CellEmpty
	}
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	return &Matrix{size: m.size, cells: cells}
}

// Identity packs the cell states into a comparable value. Two matrices hold
// the same arrangement of stones iff their identities are equal.
func (m *Matrix) Identity() string {
	buf := make([]byte, len(m.cells))
	for i, c := range m.cells {
		switch c {
		case CellBlack:
			buf[i] = 'x'
		case CellWhite:
			buf[i] = 'o'
		default:
			buf[i] = '.'
		}
	}
	return string(buf)
}
