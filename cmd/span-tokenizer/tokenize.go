package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spicery/span-tokenizer/pkg/config"
	"github.com/spicery/span-tokenizer/pkg/output"
	"github.com/spicery/span-tokenizer/pkg/tokenizer"
)

// exitError carries an exit code for failures already reported on stderr.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type process func(text string) ([]tokenizer.Span, error)

type result struct {
	text  string
	spans []tokenizer.Span
	err   error
}

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file...]",
		Short: "Split text into letter, number, punctuation, separator and break spans",
		Example: `  span-tokenizer tokenize notes.txt
  echo "Hello, world!" | span-tokenizer tokenize --format pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &config.Config{}, tokenizer.Tokenize)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [flags] [file...]",
		Short: "Tokenize, then merge helper spans (urls, emails, abbrevs, time)",
		Example: `  span-tokenizer analyze --helpers emails,urls mail.txt
  span-tokenizer analyze --config helpers.yaml --format pretty -`,
		RunE: runAnalyze,
	}
	addOutputFlags(cmd)
	cmd.Flags().StringP("config", "c", "", "YAML or TOML helper configuration file")
	cmd.Flags().StringSlice("helpers", nil, "comma-separated helper order (overrides the config file)")
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "jsonl", "output format (jsonl|pretty|msgpack)")
	cmd.Flags().StringP("output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().String("color", "auto", "colorize pretty output (auto|on|off)")
	cmd.Flags().Bool("exit0", false, "exit with code 0 even on tokenization errors (suppress stderr)")
	cmd.Flags().Bool("nfc", false, "normalize input to NFC before tokenizing")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("helpers") {
		names, err := cmd.Flags().GetStringSlice("helpers")
		if err != nil {
			return fmt.Errorf("failed to get helpers flag: %w", err)
		}
		cfg.Helpers = names
	}

	a, err := cfg.Analyzer()
	if err != nil {
		return fmt.Errorf("applying config: %w", err)
	}
	a = a.WithLogger(newLogger(cmd, cmd.ErrOrStderr()))
	return run(cmd, args, cfg, a.Analyze)
}

func run(cmd *cobra.Command, args []string, cfg *config.Config, fn process) error {
	flags := cmd.Flags()
	logger := newLogger(cmd, cmd.ErrOrStderr())

	formatName, _ := flags.GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	colorFlag, _ := flags.GetString("color")
	if colorFlag != "auto" && colorFlag != "on" && colorFlag != "off" {
		return fmt.Errorf("unknown color mode: %s (must be auto, on or off)", colorFlag)
	}
	outputFile, _ := flags.GetString("output")
	exit0, _ := flags.GetBool("exit0")
	if nfc, _ := flags.GetBool("nfc"); nfc {
		cfg.Normalize = "nfc"
	}
	if _, err := cfg.NormalizeText(""); err != nil {
		return err
	}

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	results, err := processInputs(inputs, cfg.NormalizeText, fn)
	if err != nil {
		return err
	}

	// Prepare output destination
	var out io.Writer = cmd.OutOrStdout()
	var outputCloser io.Closer
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file '%s': %w", outputFile, err)
		}
		out = file
		outputCloser = file
	}
	opts := output.Options{
		Color: colorFlag == "on" || (colorFlag == "auto" && outputCloser == nil && isTerminal(out)),
	}

	// Output every input that tokenized, even if another one failed
	var failures []string
	for i, res := range results {
		if res.err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", inputs[i].name, res.err))
			continue
		}
		logger.Debug("writing tokens", "source", inputs[i].name, "spans", len(res.spans))
		doc := output.Document{Text: res.text, Spans: res.spans}
		if len(inputs) > 1 {
			doc.Source = inputs[i].name
		}
		if err := output.Write(out, format, doc, opts); err != nil {
			closeQuietly(outputCloser)
			return err
		}
	}

	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			return fmt.Errorf("closing output file '%s': %w", outputFile, err)
		}
	}

	if len(failures) > 0 {
		if exit0 {
			return nil
		}
		for _, failure := range failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "Tokenization error: %s\n", failure)
		}
		return &exitError{code: 1}
	}
	return nil
}

// processInputs runs fn over every input concurrently. Results keep the
// input order. Per-input tokenization errors are kept in the results.
func processInputs(inputs []input, normalize func(string) (string, error), fn process) ([]result, error) {
	results := make([]result, len(inputs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			text, err := normalize(in.text)
			if err != nil {
				return err
			}
			spans, err := fn(text)
			results[i] = result{text: text, spans: spans, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
