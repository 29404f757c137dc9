// A TCP server that waits for GTP engines to connect and plays them
// against each other in pairs.
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
)

var opts struct {
	BoardSize int `long:"boardsize" description:"Send 'boardsize N' to clients"`

	Args struct {
		Address string `positional-arg-name:"host:port"`
	} `positional-args:"yes"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	var setupCommands []string
	if opts.BoardSize > 0 {
		setupCommands = append(setupCommands, fmt.Sprintf("boardsize %d\n", opts.BoardSize))
	}

	address := opts.Args.Address
	if address == "" {
		address = "127.0.0.1:8000"
	}
	start(address, setupCommands)
}

func start(address string, setupCommands []string) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Panicf("%+v", err)
	}
	fmt.Printf("listening on %s ...\n", address)

	var waiting net.Conn
	for {
		conn, err := listener.Accept()
		if err != nil {
			continue
		}
		if waiting == nil {
			waiting = conn
		} else {
			m := &match{black: waiting, white: conn}
			waiting = nil
			go m.start(setupCommands)
		}
	}
}

type match struct {
	black net.Conn
	white net.Conn
}

// sendCommand writes a command and reads the two line reply, the response
// itself and the blank line that terminates it.
func sendCommand(command string, conn net.Conn, reader *bufio.Reader) (string, error) {
	fmt.Printf("-> %s", command)
	if _, err := conn.Write([]byte(command)); err != nil {
		return "", err
	}

	reply, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	if _, err := reader.ReadString('\n'); err != nil {
		return "", err
	}
	fmt.Printf("<- %s", reply)
	return reply, nil
}

// playCommand turns a genmove reply like "= D4" into "play <color> D4".
func playCommand(reply, color string) string {
	move := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(reply), "="))
	return fmt.Sprintf("play %s %s\n", color, move)
}

func isPass(reply string) bool {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(reply), "=")) == "pass"
}

func (m *match) start(setupCommands []string) {
	defer m.black.Close()
	defer m.white.Close()

	blackReader := bufio.NewReader(m.black)
	whiteReader := bufio.NewReader(m.white)

	for _, command := range setupCommands {
		if _, err := sendCommand(command, m.black, blackReader); err != nil {
			return
		}
		if _, err := sendCommand(command, m.white, whiteReader); err != nil {
			return
		}
	}

	for i := 1; i <= 361; i++ {
		fmt.Printf("*** turn %04d ***\n", 2*i-1)
		blackMove, err := sendCommand("genmove b\n", m.black, blackReader)
		if err != nil {
			return
		}
		if _, err := sendCommand(playCommand(blackMove, "b"), m.white, whiteReader); err != nil {
			return
		}

		fmt.Printf("*** turn %04d ***\n", 2*i)
		whiteMove, err := sendCommand("genmove w\n", m.white, whiteReader)
		if err != nil {
			return
		}
		if _, err := sendCommand(playCommand(whiteMove, "w"), m.black, blackReader); err != nil {
			return
		}

		if isPass(blackMove) && isPass(whiteMove) {
			break
		}
	}

	sendCommand("quit\n", m.black, blackReader)
	sendCommand("quit\n", m.white, whiteReader)
}
