// Package main provides the CLI entrypoint for datamix.
//
// datamix compiles a nested data mixture document into a flat list of
// "<proportion> <path>" pairs whose proportions sum to exactly 1, ready to be
// passed to a training data loader.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"datamix-tools/internal/app"
	"datamix-tools/internal/cli"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:], os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string, getenv func(string) string) error {
	cfg, shouldExit, err := cli.Parse(args, outW, getenv)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	return app.NewApp(outW, logW, cfg).Run(context.Background())
}
