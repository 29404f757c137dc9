// A GTP engine that reads from stdin and writes to stdout.
package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/dcampbell24/libgo"
	"github.com/dcampbell24/libgo/gtp"
)

var opts struct {
	BoardSize int `short:"s" long:"boardsize" default:"19" description:"Initial board size"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	game, err := libgo.NewGameWithSize(opts.BoardSize)
	if err != nil {
		log.Panicf("%+v", err)
	}

	engine := gtp.NewEngine()
	engine.RegisterAllCommands()

	if err := engine.Run(game, os.Stdin, os.Stdout); err != nil {
		log.Panicf("%+v", err)
	}
}
