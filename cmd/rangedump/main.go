// Package main provides rangedump, a date-windowed front end for a
// database dump tool.
package main

import (
	"os"
	"strings"

	"rangedump/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env)

	os.Exit(exitCode)
}
