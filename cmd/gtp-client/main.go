// A GTP engine that connects to a TCP server and lets it drive the play.
// The traffic is echoed to stdout.
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/dcampbell24/libgo"
	"github.com/dcampbell24/libgo/gtp"
)

var opts struct {
	Args struct {
		Address string `positional-arg-name:"host:port" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	game := libgo.NewGame()
	engine := gtp.NewEngine()
	engine.RegisterAllCommands()

	conn, err := net.Dial("tcp", opts.Args.Address)
	if err != nil {
		log.Panicf("failed to connect to server: %+v", err)
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Printf("<- %s\n", line)

		cmd, ok := gtp.ParseCommand(line)
		if !ok {
			continue
		}
		response := engine.Exec(game, cmd).String()
		fmt.Printf("-> %s", response)
		if _, err := conn.Write([]byte(response)); err != nil {
			log.Panicf("failed to send reply: %+v", err)
		}

		if cmd.Name == "quit" {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Panicf("failed to read line: %+v", err)
	}
}
