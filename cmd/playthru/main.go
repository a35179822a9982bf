package main

import (
	"log"
	"os"

	"github.com/brandonbloom/playthru/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("playthru: ")
	if err := cli.Execute(); err != nil {
		log.Print(err)
		os.Exit(cli.ExitCode(err))
	}
}
