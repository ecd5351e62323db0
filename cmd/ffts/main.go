package main

import (
	"fmt"
	"os"

	"github.com/mneves75/ffts-grep-sub001/internal/cli"
)

func main() {
	err := cli.Run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ffts: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
