// Command buildmark generates a Kotlin object holding build metadata.
//
// Usage:
//
//	buildmark generate [-c buildmark.yaml] [--set NAME=VALUE]...
//	buildmark check
//	buildmark inspect build/generated/buildmark/com/example/BuildMark.kt
//	buildmark watch
//	buildmark version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(Main())
}

// Main runs the tool and returns the exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// errReported ends a command whose failure was already written out.
var errReported = errors.New("terminating because of errors")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, "buildmark:", err)
		}

		return 1
	}

	return 0
}
