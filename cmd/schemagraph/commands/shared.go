// Package commands implements the schemagraph CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/speakeasy-api/schemagraph/typegraph"
	"github.com/spf13/cobra"
)

// StdinIndicator is the conventional Unix indicator to read from stdin.
const StdinIndicator = "-"

// Apply registers every command on root.
func Apply(root *cobra.Command) {
	root.AddCommand(lintCmd)
	root.AddCommand(namesCmd)
	root.AddCommand(canonicalCmd)
	root.AddCommand(rulesCmd)
}

// IsStdin returns true if the given path indicates stdin should be used.
func IsStdin(path string) bool {
	return path == StdinIndicator
}

// openInput opens a snapshot file, or stdin for "-". It returns the reader and the location
// diagnostics are reported against.
func openInput(file string) (io.ReadCloser, string, error) {
	if IsStdin(file) {
		return io.NopCloser(os.Stdin), "stdin", nil
	}

	cleanFile := filepath.Clean(file)
	absPath, err := filepath.Abs(cleanFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	f, err := os.Open(cleanFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, absPath, nil
}

// loadProgram reads a snapshot and fails on any load diagnostic.
func loadProgram(ctx context.Context, file string, stderr io.Writer) (*typegraph.Program, error) {
	reader, _, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	program, validationErrs, err := typegraph.Unmarshal(ctx, reader)
	for _, vErr := range validationErrs {
		fmt.Fprintf(stderr, "%v\n", vErr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return program, nil
}

// newLogger returns a debug logger writing to stderr when --verbose is set, a discarding logger
// otherwise.
func newLogger(cmd *cobra.Command, stderr io.Writer) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func reportElapsed(w io.Writer, action string, elapsed time.Duration) {
	roundedElapsed := elapsed.Round(time.Millisecond)
	if roundedElapsed < time.Millisecond {
		roundedElapsed = time.Millisecond
	}

	fmt.Fprintf(w, "%s completed in %s\n", action, roundedElapsed)
}
