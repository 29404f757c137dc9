package libgo

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func mustBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := NewBoard(size)
	if err != nil {
		t.Fatalf("NewBoard(%d) returned error: %v", size, err)
	}
	return b
}

func mustPlace(t *testing.T, b *Board, p Player, v Vertex) {
	t.Helper()
	if err := b.PlaceStone(p, v); err != nil {
		t.Fatalf("PlaceStone(%v, %v) returned error: %v", p, v, err)
	}
}

// checkLiveRegions asserts that every stone region on a settled board has at
// least one liberty.
func checkLiveRegions(t *testing.T, b *Board) {
	t.Helper()
	for _, state := range []Cell{CellBlack, CellWhite} {
		for _, r := range b.Regions(state) {
			if r.Liberties(b.graph.matrix) == 0 {
				t.Fatalf("%v region of size %d left with zero liberties", state, r.Size())
			}
		}
	}
}

func TestPlaceStoneValidation(t *testing.T) {
	b := mustBoard(t, 9)
	v := Vertex{X: 4, Y: 4}
	mustPlace(t, b, PlayerBlack, v)

	if err := b.PlaceStone(PlayerWhite, v); !errors.Is(err, ErrOccupied) {
		t.Errorf("placing on a stone returned %v, want ErrOccupied", err)
	}
	if err := b.PlaceStone(PlayerWhite, Vertex{X: 9, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("placing off-board returned %v, want ErrOutOfBounds", err)
	}
}

// TestSingleStoneCapture covers the spec scenario: Black and White adjacent
// stones, then Black removes White's last liberty and the White stone
// vanishes.
func TestSingleStoneCapture(t *testing.T) {
	b := mustBoard(t, 9)

	white := Vertex{X: 0, Y: 0}
	mustPlace(t, b, PlayerBlack, Vertex{X: 1, Y: 0})
	mustPlace(t, b, PlayerWhite, white)
	mustPlace(t, b, PlayerBlack, Vertex{X: 0, Y: 1})

	if !b.IsVacant(white) {
		t.Error("captured white stone should leave an empty vertex")
	}
	if n := len(b.Regions(CellWhite)); n != 0 {
		t.Errorf("%d white regions remain after capture, want 0", n)
	}
	checkLiveRegions(t, b)
	checkPartition(t, b.graph)
}

// TestSelfCapture covers the suicide scenario: a White stone played into a
// Black-surrounded point that captures nothing is itself removed.
func TestSelfCapture(t *testing.T) {
	b := mustBoard(t, 9)
	center := Vertex{X: 4, Y: 4}
	for _, v := range b.graph.matrix.Adjacent(center) {
		mustPlace(t, b, PlayerBlack, v)
	}

	mustPlace(t, b, PlayerWhite, center)
	if !b.IsVacant(center) {
		t.Error("suicide stone should be removed from the board")
	}
	checkLiveRegions(t, b)
	checkPartition(t, b.graph)
}

// TestCaptureBeforeSuicide checks the ordering rule: a move that fills its
// own last liberty while also removing an enemy group stays on the board,
// because captures resolve first.
func TestCaptureBeforeSuicide(t *testing.T) {
	b := mustBoard(t, 5)

	// White A1 is in atari; Black B1 has its own liberties filled except the
	// shared point. Playing Black A2... simplest classic: corner snapback
	// layout. Black plays the point that is the last liberty of both the
	// White corner stone and itself; White dies first and frees A1.
	mustPlace(t, b, PlayerWhite, Vertex{X: 0, Y: 0}) // A1
	mustPlace(t, b, PlayerWhite, Vertex{X: 1, Y: 1}) // B2
	mustPlace(t, b, PlayerWhite, Vertex{X: 2, Y: 0}) // C1
	mustPlace(t, b, PlayerBlack, Vertex{X: 0, Y: 1}) // A2 - White A1 in atari

	// Black B1: its only liberty is A1's point after placement... placed
	// between White C1 and White A1, it has zero empty neighbors, but it
	// captures A1 and lives in the freed point.
	black := Vertex{X: 1, Y: 0}
	mustPlace(t, b, PlayerBlack, black)

	if b.IsVacant(black) {
		t.Fatal("capturing move must not be treated as suicide")
	}
	if !b.IsVacant(Vertex{X: 0, Y: 0}) {
		t.Error("white corner stone should have been captured")
	}
	checkLiveRegions(t, b)
	checkPartition(t, b.graph)
}

// TestMultiGroupCapture removes two separate White groups with one stone.
func TestMultiGroupCapture(t *testing.T) {
	b := mustBoard(t, 5)

	// Two one-stone White groups at B1 and D1, each with their outside
	// liberties filled, both waiting on C1.
	mustPlace(t, b, PlayerWhite, Vertex{X: 1, Y: 0}) // B1
	mustPlace(t, b, PlayerWhite, Vertex{X: 3, Y: 0}) // D1
	mustPlace(t, b, PlayerBlack, Vertex{X: 0, Y: 0}) // A1
	mustPlace(t, b, PlayerBlack, Vertex{X: 1, Y: 1}) // B2
	mustPlace(t, b, PlayerBlack, Vertex{X: 3, Y: 1}) // D2
	mustPlace(t, b, PlayerBlack, Vertex{X: 4, Y: 0}) // E1

	mustPlace(t, b, PlayerBlack, Vertex{X: 2, Y: 0}) // C1 captures both

	if !b.IsVacant(Vertex{X: 1, Y: 0}) || !b.IsVacant(Vertex{X: 3, Y: 0}) {
		t.Error("both white groups should be captured by one move")
	}
	if n := len(b.Regions(CellWhite)); n != 0 {
		t.Errorf("%d white regions remain, want 0", n)
	}
	checkLiveRegions(t, b)
	checkPartition(t, b.graph)
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := mustBoard(t, 9)
	mustPlace(t, b, PlayerBlack, Vertex{X: 4, Y: 4})

	clone := b.Clone()
	mustPlace(t, clone, PlayerWhite, Vertex{X: 4, Y: 5})

	if b.Identity() == clone.Identity() {
		t.Error("clone mutation changed the source identity")
	}
	if got, _ := b.Get(Vertex{X: 4, Y: 5}); got != CellEmpty {
		t.Error("clone mutation leaked into the source board")
	}
}

func TestStarPoints(t *testing.T) {
	testCases := []struct {
		size  int
		count int
	}{
		{5, 0},
		{7, 4},
		{9, 9},
		{13, 9},
		{19, 9},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("Size%d", tc.size), func(t *testing.T) {
			points := FixedHandicaps(tc.size, 9)
			if len(points) != tc.count {
				t.Errorf("FixedHandicaps(%d, 9) returned %d points, want %d", tc.size, len(points), tc.count)
			}
		})
	}
}

func TestBoardString(t *testing.T) {
	b := mustBoard(t, 5)
	mustPlace(t, b, PlayerBlack, Vertex{X: 0, Y: 0})
	mustPlace(t, b, PlayerWhite, Vertex{X: 4, Y: 4})

	want := strings.Join([]string{
		"   A B C D E   ",
		"05 . . . . o 05",
		"04 . . . . . 04",
		"03 . . . . . 03",
		"02 . . . . . 02",
		"01 x . . . . 01",
		"   A B C D E   ",
	}, "\r\n")

	if got := b.String(); got != want {
		t.Errorf("board rendered as:\n%q\nwant:\n%q", got, want)
	}
}

func TestBoardStringStarPoints(t *testing.T) {
	b := mustBoard(t, 9)
	out := b.String()
	if got := strings.Count(out, "+"); got != 9 {
		t.Errorf("9x9 render shows %d star points, want 9", got)
	}
	// Tengen and the two side hoshi sit on row 5 of a 9x9 board.
	if !strings.Contains(out, "05 . . + . + . + . . 05") {
		t.Errorf("tengen missing from render:\n%s", out)
	}
}

func TestBoardClear(t *testing.T) {
	b := mustBoard(t, 9)
	mustPlace(t, b, PlayerBlack, Vertex{X: 2, Y: 2})
	mustPlace(t, b, PlayerWhite, Vertex{X: 6, Y: 6})
	b.Clear()
	if !b.IsEmpty() {
		t.Error("Clear left stones on the board")
	}
	checkPartition(t, b.graph)
}
