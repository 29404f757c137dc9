package libgo

import (
	"fmt"
	"math/rand/v2"
)

// RuleSet is one of the major Go variations.
type RuleSet int

// RuleSetChinese scores by area, forbids suicide unconditionally, and uses
// positional superko. It is the only variation implemented.
const RuleSetChinese RuleSet = iota

// Move is a player and an optional coordinate; a nil vertex denotes a pass.
type Move struct {
	Player Player
	Vertex *Vertex
}

// PlayAt returns a stone placement move.
func PlayAt(p Player, v Vertex) Move {
	return Move{Player: p, Vertex: &v}
}

// Pass returns a pass move.
func Pass(p Player) Move {
	return Move{Player: p}
}

// IsPass reports whether the move is a pass.
func (m Move) IsPass() bool {
	return m.Vertex == nil
}

func (m Move) String() string {
	if m.Vertex == nil {
		return fmt.Sprintf("%s pass", m.Player)
	}
	return fmt.Sprintf("%s %s", m.Player, m.Vertex)
}

// Handicap selects how handicap stones are chosen.
type Handicap int

const (
	// HandicapFixed places stones on the traditional star points only.
	HandicapFixed Handicap = iota
	// HandicapFree lets the engine pick the stones, star points first.
	HandicapFree
)

// Game includes everything needed for playing a real game: the board, one
// snapshot per stone move for undo and superko comparison, the move history,
// the rule set, and komi. Each Game owns its board history exclusively;
// nothing is shared between games.
type Game struct {
	turn Player
	// boards holds every arrangement seen this game; the last entry is the
	// current board. Passes don't change the board and get no snapshot.
	boards []*Board
	moves  []Move

	// Komi is the score handicap White receives.
	Komi float64
	// Rules is the variation of Go being played.
	Rules RuleSet
}

// NewGame returns a new full size game.
func NewGame() *Game {
	g, err := NewGameWithSize(MaxBoardSize)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGameWithSize returns a new game on a board of the given size, or
// ErrInvalidSize for sizes outside [MinBoardSize, MaxBoardSize].
func NewGameWithSize(size int) (*Game, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &Game{
		turn:   PlayerBlack,
		boards: []*Board{board},
		Komi:   ChineseKomi,
		Rules:  RuleSetChinese,
	}, nil
}

// Board returns the current game board.
func (g *Game) Board() *Board {
	if len(g.boards) == 0 {
		panic("expected board history to not be empty")
	}
	return g.boards[len(g.boards)-1]
}

// NextPlayer returns the player expected to move next. GTP drivers are free
// to ignore it; Play accepts either color.
func (g *Game) NextPlayer() Player {
	return g.turn
}

// Moves returns the move history.
func (g *Game) Moves() []Move {
	return g.moves
}

// ClearBoard removes all stones and discards the move history.
func (g *Game) ClearBoard() {
	g.boards = g.boards[:1]
	g.Board().Clear()
	g.moves = nil
	g.turn = PlayerBlack
}

// moveLimit is a safety valve against runaway self-play; a game that
// somehow reaches it is over.
func (g *Game) moveLimit() int {
	size := g.Board().Size()
	return 2*size*size + 2
}

// IsOver reports whether the game has ended by two consecutive passes or by
// hitting the move limit.
func (g *Game) IsOver() bool {
	if len(g.moves) >= g.moveLimit() {
		return true
	}
	n := len(g.moves)
	return n >= 2 && g.moves[n-1].IsPass() && g.moves[n-2].IsPass()
}

// IsLegalMove reports whether a move may be played right now. A pass is
// always legal in a live game. A placement must target an empty vertex, must
// not be suicide after captures resolve, and must not recreate any earlier
// arrangement of this game (positional superko).
func (g *Game) IsLegalMove(m Move) bool {
	if g.IsOver() {
		return false
	}
	if m.Vertex == nil {
		return true
	}
	v := *m.Vertex
	if !g.Board().IsVacant(v) {
		return false
	}

	test := g.Board().Clone()
	if err := test.PlaceStone(m.Player, v); err != nil {
		return false
	}
	// Suicide: under Chinese rules the placed stone may never immediately
	// vanish, even when the move captures nothing worth dying for.
	if test.IsVacant(v) {
		return false
	}
	arrangement := test.Identity()
	for _, b := range g.boards {
		if b.Identity() == arrangement {
			return false
		}
	}
	return true
}

// Play attempts to play a move. On failure it returns ErrIllegalMove and the
// game is left untouched.
func (g *Game) Play(m Move) error {
	if !g.IsLegalMove(m) {
		return fmt.Errorf("play %v: %w", m, ErrIllegalMove)
	}
	if m.Vertex != nil {
		g.boards = append(g.boards, g.Board().Clone())
		if err := g.Board().PlaceStone(m.Player, *m.Vertex); err != nil {
			panic(fmt.Sprintf("legal move failed to apply: %v", err))
		}
	}
	g.moves = append(g.moves, m)
	g.turn = m.Player.Enemy()
	return nil
}

// Undo takes back the last move. Stone moves also restore the previous board
// snapshot bit for bit. It fails with ErrNothingToUndo on empty history.
func (g *Game) Undo() error {
	if len(g.moves) == 0 {
		return ErrNothingToUndo
	}
	m := g.moves[len(g.moves)-1]
	g.moves = g.moves[:len(g.moves)-1]
	if m.Vertex != nil {
		g.boards = g.boards[:len(g.boards)-1]
	}
	g.turn = m.Player
	return nil
}

// AllLegalMoves returns every legal placement for the player, in ascending
// board index order.
func (g *Game) AllLegalMoves(p Player) []Vertex {
	var legal []Vertex
	for _, v := range g.Board().EmptyVertices() {
		if g.IsLegalMove(PlayAt(p, v)) {
			legal = append(legal, v)
		}
	}
	return legal
}

// GenMoveRandom plays a move picked uniformly from the player's legal
// placements, passing when none remain. The returned move has already been
// applied to the game.
func (g *Game) GenMoveRandom(p Player) Move {
	candidates := g.Board().EmptyVertices()
	for len(candidates) > 0 {
		i := rand.IntN(len(candidates))
		m := PlayAt(p, candidates[i])
		if g.Play(m) == nil {
			return m
		}
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
	pass := Pass(p)
	_ = g.Play(pass)
	return pass
}

// Value returns the difference in legal moves left for each player. Positive
// values mean Black is ahead. This is a crude whole-game heuristic, not a
// real score.
func (g *Game) Value() int {
	return len(g.AllLegalMoves(PlayerBlack)) - len(g.AllLegalMoves(PlayerWhite))
}

// PlaceHandicap places Black handicap stones before the game starts and
// returns the vertices used. Fixed handicaps come from the star points and
// may be fewer than requested; free handicaps are topped up with empty
// vertices until the requested count is met. After placement White moves
// first.
//
// The request fails when the board is not empty, when fewer than two stones
// are asked for, or when more stones are asked for than the board has points
// minus one.
func (g *Game) PlaceHandicap(stones int, h Handicap) ([]Vertex, error) {
	if err := g.checkHandicap(stones); err != nil {
		return nil, err
	}

	verts := FixedHandicaps(g.Board().Size(), stones)
	if h == HandicapFree && len(verts) < stones {
		used := make(map[Vertex]bool, len(verts))
		for _, v := range verts {
			used[v] = true
		}
		for _, v := range g.Board().EmptyVertices() {
			if len(verts) == stones {
				break
			}
			if !used[v] {
				verts = append(verts, v)
			}
		}
	}
	if len(verts) < 2 {
		return nil, fmt.Errorf("place %d handicap stones: %w", stones, ErrIllegalMove)
	}

	g.placeHandicapStones(verts)
	return verts, nil
}

// SetFreeHandicap places Black handicap stones on the given vertices, which
// must be distinct and empty. The same preconditions as PlaceHandicap apply.
func (g *Game) SetFreeHandicap(verts []Vertex) error {
	if err := g.checkHandicap(len(verts)); err != nil {
		return err
	}
	seen := make(map[Vertex]bool, len(verts))
	for _, v := range verts {
		if seen[v] || !g.Board().IsVacant(v) {
			return fmt.Errorf("handicap stone at %v: %w", v, ErrIllegalMove)
		}
		seen[v] = true
	}
	g.placeHandicapStones(verts)
	return nil
}

func (g *Game) checkHandicap(stones int) error {
	if !g.Board().IsEmpty() || len(g.moves) > 0 {
		return fmt.Errorf("handicap on a non-empty board: %w", ErrIllegalMove)
	}
	size := g.Board().Size()
	if stones < 2 || stones > size*size-1 {
		return fmt.Errorf("%d handicap stones: %w", stones, ErrIllegalMove)
	}
	return nil
}

// placeHandicapStones writes stones straight onto the current board,
// bypassing turn order and history. Captures can't happen on an empty board.
func (g *Game) placeHandicapStones(verts []Vertex) {
	board := g.Board()
	for _, v := range verts {
		if err := board.graph.SetCell(v, CellBlack); err != nil {
			panic(fmt.Sprintf("handicap stone at %v: %v", v, err))
		}
	}
	g.turn = PlayerWhite
}
