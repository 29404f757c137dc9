package libgo

import "fmt"

// Player is one of the two sides of a game.
type Player int8

// PlayerBlack moves first unless White has a handicap.
const (
	PlayerBlack Player = 1
	PlayerWhite Player = 2
)

// Enemy returns the player's opponent.
func (p Player) Enemy() Player {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

// Cell returns the cell state of a stone belonging to the player.
func (p Player) Cell() Cell {
	if p == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func (p Player) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}

// ParsePlayer converts a GTP color argument into a Player.
func ParsePlayer(color string) (Player, error) {
	switch color {
	case "b", "B", "black", "BLACK", "Black":
		return PlayerBlack, nil
	case "w", "W", "white", "WHITE", "White":
		return PlayerWhite, nil
	}
	return 0, fmt.Errorf("invalid color: %s", color)
}
