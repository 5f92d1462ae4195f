// Command enigma encodes text on a simulated rotor machine and searches for
// the settings behind a ciphertext.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/roach88/enigma/internal/cli"
)

func main() {
	// The search fans out to GOMAXPROCS workers by default.
	_, _ = maxprocs.Set()

	err := cli.NewRootCommand().Execute()
	if err != nil {
		// Commands report their own failures; anything else came from
		// flag or argument parsing.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitCommandError)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
