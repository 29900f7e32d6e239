// Command yggdrasil filters and type-checks record collections.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/wtsi-hgi/yggdrasil/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands report their own ExitErrors; anything else is a usage
	// problem caught by cobra.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'yggdrasil --help' for usage.")
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(exitErr.Code)
}
