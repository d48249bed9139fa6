package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "0.1.0"

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state out of package globals.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "span-tokenizer",
		Short: "Tokenize natural-language text into typed spans",
		Long: `span-tokenizer splits text into letter, number, punctuation, separator and
line-break spans, then lets helpers (URLs, e-mails, abbreviations, times)
override runs of tokens with a single coarser span.

Offsets are character offsets, not bytes. With no file arguments, or with
"-", input is read from stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "log debug information to stderr")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newMakeConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger on w, at debug level when verbose.
func newLogger(cmd *cobra.Command, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
