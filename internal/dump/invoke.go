package dump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandLine assembles the full shell command: tool name, pass-through
// tokens verbatim, then the rendered filter in single quotes.
func CommandLine(tool string, passthru Passthru, filter string) string {
	parts := []string{tool}
	parts = append(parts, passthru.Args()...)
	parts = append(parts, "--query", "'"+filter+"'")

	return strings.Join(parts, " ")
}

// Invoke runs the command line through the shell with the given streams and
// blocks until the child exits. Returns the child's exit code; a non-zero
// code is not an error here since the child reports its own diagnostics.
// The error return covers setup failures only (shell missing, spawn error).
func Invoke(ctx context.Context, cmdLine string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdLine)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return 1, fmt.Errorf("%w: %w", ErrInvoke, runErr)
	}

	return 0, nil
}
