package libgo

import (
	"fmt"
	"sort"
)

// Region is a maximal connected set of vertices in the same state, together
// with the vertices immediately bordering it. Regions are owned by a Graph
// and are replaced, never patched, whenever a mutation touches them; holding
// a *Region across a SetCell is not supported.
//
// The border set is structural: it only changes when the region itself is
// rebuilt. The states of the border vertices are read live from the matrix,
// so filling or clearing a cell next to a region never requires touching the
// region's bookkeeping.
type Region struct {
	state  Cell
	cells  map[int]struct{}
	border map[int]struct{}
}

// State returns the cell state shared by every vertex of the region.
func (r *Region) State() Cell {
	return r.state
}

// Size returns the number of vertices in the region.
func (r *Region) Size() int {
	return len(r.cells)
}

func (r *Region) contains(i int) bool {
	_, ok := r.cells[i]
	return ok
}

// sortedCells returns the region's member indexes in ascending order. Capture
// removal walks this so one engine run is reproducible.
func (r *Region) sortedCells() []int {
	cells := make([]int, 0, len(r.cells))
	for i := range r.cells {
		cells = append(cells, i)
	}
	sort.Ints(cells)
	return cells
}

// Vertices returns the region's vertices in ascending index order.
func (r *Region) Vertices(m *Matrix) []Vertex {
	verts := make([]Vertex, 0, len(r.cells))
	for _, i := range r.sortedCells() {
		verts = append(verts, m.vertex(i))
	}
	return verts
}

// Liberties returns the number of distinct empty vertices bordering the
// region. A stone region with zero liberties is dead.
func (r *Region) Liberties(m *Matrix) int {
	libs := 0
	for i := range r.border {
		if m.cells[i] == CellEmpty {
			libs++
		}
	}
	return libs
}

// BorderStates returns the set of distinct states found on the region's
// border.
func (r *Region) BorderStates(m *Matrix) map[Cell]bool {
	states := make(map[Cell]bool, 3)
	for i := range r.border {
		states[m.cells[i]] = true
	}
	return states
}

func (r *Region) clone() *Region {
	cells := make(map[int]struct{}, len(r.cells))
	for i := range r.cells {
		cells[i] = struct{}{}
	}
	border := make(map[int]struct{}, len(r.border))
	for i := range r.border {
		border[i] = struct{}{}
	}
	return &Region{state: r.state, cells: cells, border: border}
}

// Graph layers incremental connected-region tracking over a Matrix. It keeps,
// for every cell state, the list of maximal connected regions currently in
// that state. The empty background is tracked the same way as stones, so the
// regions of all states always partition the board.
type Graph struct {
	matrix  *Matrix
	regions map[Cell][]*Region
}

// NewGraph returns a graph over an all-empty matrix of the given size.
func NewGraph(size int) (*Graph, error) {
	matrix, err := NewMatrix(size)
	if err != nil {
		return nil, err
	}
	g := &Graph{matrix: matrix}
	g.initRegions()
	return g, nil
}

// initRegions installs the single all-board empty region.
func (g *Graph) initRegions() {
	all := make(map[int]struct{}, len(g.matrix.cells))
	for i := range g.matrix.cells {
		all[i] = struct{}{}
	}
	g.regions = map[Cell][]*Region{
		CellEmpty: {{state: CellEmpty, cells: all, border: make(map[int]struct{})}},
	}
}

// Size returns the length of one side of the board.
func (g *Graph) Size() int {
	return g.matrix.Size()
}

// Matrix returns the underlying matrix. Callers must not write to it
// directly; all mutation goes through SetCell.
func (g *Graph) Matrix() *Matrix {
	return g.matrix
}

// Get returns the cell state at a vertex.
func (g *Graph) Get(v Vertex) (Cell, error) {
	return g.matrix.Get(v)
}

// Regions returns all current regions in the given state. The slice is owned
// by the graph and is invalidated by the next mutation.
func (g *Graph) Regions(c Cell) []*Region {
	return g.regions[c]
}

// RegionAt returns the region containing the vertex.
func (g *Graph) RegionAt(v Vertex) (*Region, error) {
	i, ok := g.matrix.index(v)
	if !ok {
		return nil, fmt.Errorf("region at %v: %w", v, ErrOutOfBounds)
	}
	r := g.regionWith(g.matrix.cells[i], i)
	if r == nil {
		panic(fmt.Sprintf("no region contains %v; the partition invariant is broken", v))
	}
	return r, nil
}

// regionWith returns the region of the given state containing index i, or
// nil when no such region exists.
func (g *Graph) regionWith(state Cell, i int) *Region {
	for _, r := range g.regions[state] {
		if r.contains(i) {
			return r
		}
	}
	return nil
}

// removeRegionWith deletes the region of the given state containing index i.
// It is a no-op when no region of that state contains i.
func (g *Graph) removeRegionWith(state Cell, i int) {
	regions := g.regions[state]
	for idx, r := range regions {
		if r.contains(i) {
			regions[idx] = regions[len(regions)-1]
			g.regions[state] = regions[:len(regions)-1]
			return
		}
	}
}

// floodRegion discovers the maximal connected region in the given state
// containing start, recording the bordering vertices along the way. The cell
// at start must currently hold the given state.
func (g *Graph) floodRegion(start int, state Cell) *Region {
	r := &Region{
		state:  state,
		cells:  make(map[int]struct{}),
		border: make(map[int]struct{}),
	}

	visited := make([]bool, len(g.matrix.cells))
	queue := make([]int, 0, 4)
	queue = append(queue, start)
	visited[start] = true

	var adj [4]int
	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if g.matrix.cells[i] != state {
			r.border[i] = struct{}{}
			continue
		}
		r.cells[i] = struct{}{}
		for _, n := range g.matrix.adjacentIndexes(i, adj[:0]) {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return r
}

// SetCell writes a new state into a vertex and repairs the region partition
// around it: the outgoing region is removed and rediscovered piecewise (it
// may have split), and the incoming region is rebuilt from the changed
// vertex, absorbing any like-valued neighbor regions. Work is bounded by the
// regions touching the vertex, not the whole board.
//
// Setting a vertex to its current state is a no-op. An off-board vertex
// fails with ErrOutOfBounds and mutates nothing.
func (g *Graph) SetCell(v Vertex, c Cell) error {
	i, ok := g.matrix.index(v)
	if !ok {
		return fmt.Errorf("set %v: %w", v, ErrOutOfBounds)
	}
	g.setCellIndex(i, c)
	return nil
}

func (g *Graph) setCellIndex(i int, c Cell) {
	oldState := g.matrix.cells[i]
	if oldState == c {
		return
	}
	g.matrix.cells[i] = c

	var adj [4]int
	var maybeSplit, maybeJoined []int
	for _, n := range g.matrix.adjacentIndexes(i, adj[:0]) {
		switch g.matrix.cells[n] {
		case oldState:
			maybeSplit = append(maybeSplit, n)
		case c:
			maybeJoined = append(maybeJoined, n)
		}
	}

	// The old region no longer contains i. Any neighbors left behind in the
	// old state may now be disconnected from each other, so one region per
	// connected piece is rediscovered. Neighbors picked up by an earlier
	// piece are skipped.
	g.removeRegionWith(oldState, i)
	for _, n := range maybeSplit {
		if g.regionWith(oldState, n) != nil {
			continue
		}
		g.regions[oldState] = append(g.regions[oldState], g.floodRegion(n, oldState))
	}

	// Like-valued neighbor regions are absorbed by the region grown from i.
	// There is no partial merge: the flood fill reaches every one of them.
	for _, n := range maybeJoined {
		g.removeRegionWith(c, n)
	}
	g.regions[c] = append(g.regions[c], g.floodRegion(i, c))
}

// Reset returns the graph to an all-empty board.
func (g *Graph) Reset() {
	g.matrix.Reset()
	g.initRegions()
}

// Clone returns a deep copy sharing no mutable state with the original.
func (g *Graph) Clone() *Graph {
	regions := make(map[Cell][]*Region, len(g.regions))
	for state, rs := range g.regions {
		cloned := make([]*Region, len(rs))
		for i, r := range rs {
			cloned[i] = r.clone()
		}
		regions[state] = cloned
	}
	return &Graph{matrix: g.matrix.Clone(), regions: regions}
}
