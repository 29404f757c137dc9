// A terminal client for playing against the random engine. The human
// plays Black, the engine answers as White.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"

	"github.com/dcampbell24/libgo"
)

var opts struct {
	BoardSize int `short:"s" long:"boardsize" default:"9" description:"Board size"`
}

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1).
			MarginLeft(2)

	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	whiteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)

	statusStyle = lipgloss.NewStyle().MarginLeft(2)
	errorStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			MarginLeft(2)
)

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	game, err := libgo.NewGameWithSize(opts.BoardSize)
	if err != nil {
		log.Fatal(err)
	}

	p := tea.NewProgram(initialModel(game), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	game    *libgo.Game
	cursorX int
	cursorY int
	message string
}

func initialModel(game *libgo.Game) model {
	cursor := game.Board().Size() / 2
	return model{game: game, cursorX: cursor, cursorY: cursor}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	size := m.game.Board().Size()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursorY < size-1 {
				m.cursorY++
			}
		case "down", "j":
			if m.cursorY > 0 {
				m.cursorY--
			}
		case "left", "h":
			if m.cursorX > 0 {
				m.cursorX--
			}
		case "right", "l":
			if m.cursorX < size-1 {
				m.cursorX++
			}
		case "enter", " ":
			m.playBlack(libgo.PlayAt(libgo.PlayerBlack, libgo.Vertex{X: m.cursorX, Y: m.cursorY}))
		case "p":
			m.playBlack(libgo.Pass(libgo.PlayerBlack))
		case "u":
			// Take back the engine's reply as well.
			m.message = ""
			if err := m.game.Undo(); err != nil {
				m.message = err.Error()
				break
			}
			if len(m.game.Moves()) > 0 {
				m.game.Undo()
			}
		}
	}
	return m, nil
}

// playBlack applies the human move and answers with a random White move.
func (m *model) playBlack(move libgo.Move) {
	m.message = ""
	if m.game.IsOver() {
		m.message = "the game is over"
		return
	}
	if err := m.game.Play(move); err != nil {
		m.message = err.Error()
		return
	}
	if m.game.IsOver() {
		return
	}
	reply := m.game.GenMoveRandom(libgo.PlayerWhite)
	if reply.IsPass() {
		m.message = "white passes"
	}
}

func (m model) View() string {
	board := m.game.Board()
	size := board.Size()

	stars := map[libgo.Vertex]bool{}
	for _, v := range libgo.FixedHandicaps(size, 9) {
		stars[v] = true
	}

	var rows []string
	for y := size - 1; y >= 0; y-- {
		row := fmt.Sprintf("%2d ", y+1)
		for x := 0; x < size; x++ {
			v := libgo.Vertex{X: x, Y: y}
			cell, _ := board.Get(v)

			var glyph string
			switch {
			case cell == libgo.CellBlack:
				glyph = blackStyle.Render("x")
			case cell == libgo.CellWhite:
				glyph = whiteStyle.Render("o")
			case stars[v]:
				glyph = starStyle.Render("+")
			default:
				glyph = "."
			}
			if x == m.cursorX && y == m.cursorY {
				glyph = cursorStyle.Render("[") + glyph + cursorStyle.Render("]")
			} else {
				glyph = " " + glyph + " "
			}
			row += glyph
		}
		rows = append(rows, row)
	}

	letters := "   "
	for x := 0; x < size; x++ {
		letters += fmt.Sprintf(" %c ", libgo.GobanLetters[x])
	}
	rows = append(rows, letters)

	status := fmt.Sprintf("%v to play | move %d | value %d",
		m.game.NextPlayer(), len(m.game.Moves())+1, m.game.Value())
	if m.game.IsOver() {
		status = fmt.Sprintf("game over | value %d", m.game.Value())
	}

	out := titleStyle.Render("libgo") + "\n"
	out += boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
	out += statusStyle.Render(status) + "\n"
	if m.message != "" {
		out += errorStyle.Render(m.message) + "\n"
	}
	out += statusStyle.Render("arrows move, enter plays, p passes, u undoes, q quits") + "\n"
	return out
}
