package gtp

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dcampbell24/libgo"
)

const (
	// ProgramName is the official name of the agent.
	ProgramName = "libgo"

	protocolVersion = "2"
)

// CommandFunc runs a single GTP command against a game. The returned string
// is the success reply and may be empty.
type CommandFunc func(game *libgo.Game, args []string) (string, error)

// Engine maps GTP command names to their handlers.
type Engine struct {
	commands map[string]CommandFunc
}

// NewEngine returns an engine that knows the commands required by the
// protocol: protocol_version, name, version, known_command, list_commands,
// quit, boardsize, clear_board, komi, play and genmove.
func NewEngine() *Engine {
	e := &Engine{commands: map[string]CommandFunc{}}

	e.Register("protocol_version", func(_ *libgo.Game, _ []string) (string, error) {
		return protocolVersion, nil
	})
	e.Register("name", func(_ *libgo.Game, _ []string) (string, error) {
		return ProgramName, nil
	})
	e.Register("version", func(_ *libgo.Game, _ []string) (string, error) {
		return libgo.Version, nil
	})
	// known_command and list_commands are answered by Exec itself, but are
	// registered so they show up in their own listing.
	e.Register("known_command", nil)
	e.Register("list_commands", nil)
	e.Register("quit", func(_ *libgo.Game, _ []string) (string, error) {
		return "", nil
	})
	e.Register("boardsize", gtpBoardsize)
	e.Register("clear_board", func(game *libgo.Game, _ []string) (string, error) {
		game.ClearBoard()
		return "", nil
	})
	e.Register("komi", gtpKomi)
	e.Register("play", gtpPlay)
	e.Register("genmove", gtpGenmove)

	return e
}

// Register adds a command to the engine, replacing any previous handler
// with the same name.
func (e *Engine) Register(name string, f CommandFunc) {
	e.commands[name] = f
}

// RegisterAllCommands registers every optional command the engine supports.
func (e *Engine) RegisterAllCommands() {
	e.RegisterExtraCommands()
	e.RegisterTournamentCommands()
	e.RegisterDlcCommands()
}

// RegisterExtraCommands registers undo and showboard.
func (e *Engine) RegisterExtraCommands() {
	e.Register("undo", func(game *libgo.Game, _ []string) (string, error) {
		if err := game.Undo(); err != nil {
			return "", errors.New("cannot undo")
		}
		return "", nil
	})
	e.Register("showboard", func(game *libgo.Game, _ []string) (string, error) {
		return "\r\n" + game.Board().String(), nil
	})
}

// RegisterTournamentCommands registers the handicap commands required for
// tournament play.
func (e *Engine) RegisterTournamentCommands() {
	e.Register("fixed_handicap", func(game *libgo.Game, args []string) (string, error) {
		return gtpPlaceHandicap(game, args, libgo.HandicapFixed)
	})
	e.Register("place_free_handicap", func(game *libgo.Game, args []string) (string, error) {
		return gtpPlaceHandicap(game, args, libgo.HandicapFree)
	})
	e.Register("set_free_handicap", gtpSetFreeHandicap)
}

// RegisterDlcCommands registers the private dlc- extension commands.
func (e *Engine) RegisterDlcCommands() {
	e.Register("dlc-legal_moves", func(game *libgo.Game, args []string) (string, error) {
		if len(args) == 0 {
			return "", errors.New("too few arguments, expected: dlc-legal_moves <color>")
		}
		player, err := libgo.ParsePlayer(args[0])
		if err != nil {
			return "", err
		}
		return libgo.Vertices(game.AllLegalMoves(player)).String(), nil
	})
	e.Register("dlc-game_value", func(game *libgo.Game, _ []string) (string, error) {
		return strconv.Itoa(game.Value()), nil
	})
	e.Register("dlc-debug_game", func(game *libgo.Game, _ []string) (string, error) {
		var b strings.Builder
		b.WriteString("\r\n")
		b.WriteString(game.Board().String())
		b.WriteString("\r\nkomi: ")
		b.WriteString(strconv.FormatFloat(game.Komi, 'f', -1, 64))
		for _, m := range game.Moves() {
			b.WriteString("\r\n")
			b.WriteString(m.String())
		}
		return b.String(), nil
	})
}

// Knows reports whether name is a registered command.
func (e *Engine) Knows(name string) bool {
	_, ok := e.commands[name]
	return ok
}

// List returns all registered command names, sorted, one per line. The
// list starts with a line break so it reads cleanly after the "= " prefix.
func (e *Engine) List() string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "\r\n" + strings.Join(names, "\r\n")
}

// Exec runs the command against game and returns the response to send.
func (e *Engine) Exec(game *libgo.Game, cmd Command) Response {
	resp := Response{ID: cmd.ID}
	switch cmd.Name {
	case "list_commands":
		resp.Reply = e.List()
	case "known_command":
		known := len(cmd.Args) > 0 && e.Knows(cmd.Args[0])
		resp.Reply = strconv.FormatBool(known)
	default:
		f, ok := e.commands[cmd.Name]
		if !ok || f == nil {
			resp.Err = errors.New("unknown command")
			return resp
		}
		resp.Reply, resp.Err = f(game, cmd.Args)
	}
	return resp
}

// Run reads commands from r and writes responses to w until r is
// exhausted or a quit command is handled.
func (e *Engine) Run(game *libgo.Game, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, ok := ParseCommand(scanner.Text())
		if !ok {
			continue
		}
		if _, err := io.WriteString(w, e.Exec(game, cmd).String()); err != nil {
			return err
		}
		if cmd.Name == "quit" {
			return nil
		}
	}
	return scanner.Err()
}

func gtpBoardsize(game *libgo.Game, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("boardsize not given")
	}
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.New("boardsize not an integer")
	}
	next, err := libgo.NewGameWithSize(size)
	if err != nil {
		return "", errors.New("unacceptable size")
	}
	*game = *next
	return "", nil
}

func gtpKomi(game *libgo.Game, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("expected komi value")
	}
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", errors.New("komi is not a float")
	}
	game.Komi = komi
	return "", nil
}

func gtpPlay(game *libgo.Game, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("too few arguments, expected: play <color> <vertex>")
	}
	player, err := libgo.ParsePlayer(args[0])
	if err != nil {
		return "", err
	}
	if strings.EqualFold(args[1], "pass") {
		return "", game.Play(libgo.Pass(player))
	}
	vertex, err := libgo.ParseVertex(strings.ToUpper(args[1]))
	if err != nil {
		return "", err
	}
	return "", game.Play(libgo.PlayAt(player, vertex))
}

func gtpGenmove(game *libgo.Game, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("too few arguments, expected: genmove <color>")
	}
	player, err := libgo.ParsePlayer(args[0])
	if err != nil {
		return "", err
	}
	move := game.GenMoveRandom(player)
	if move.IsPass() {
		return "pass", nil
	}
	return move.Vertex.String(), nil
}

func gtpPlaceHandicap(game *libgo.Game, args []string, h libgo.Handicap) (string, error) {
	if len(args) == 0 {
		return "", errors.New("syntax error")
	}
	stones, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.New("number of stones is not an integer")
	}
	verts, err := game.PlaceHandicap(stones, h)
	if err != nil {
		return "", err
	}
	return libgo.Vertices(verts).String(), nil
}

func gtpSetFreeHandicap(game *libgo.Game, args []string) (string, error) {
	verts := make([]libgo.Vertex, 0, len(args))
	seen := map[libgo.Vertex]bool{}
	for _, arg := range args {
		v, err := libgo.ParseVertex(strings.ToUpper(arg))
		if err != nil || seen[v] {
			return "", errors.New("syntax error, repeated vertex, or pass given as argument")
		}
		seen[v] = true
		verts = append(verts, v)
	}
	return "", game.SetFreeHandicap(verts)
}
