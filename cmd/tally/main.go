package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/tally/internal/app"
	"github.com/chriscorrea/tally/internal/counter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	// get flag values
	chars, _ := cmd.Flags().GetBool("chars")
	lines, _ := cmd.Flags().GetBool("lines")
	tokens, _ := cmd.Flags().GetBool("tokens")
	selector, _ := cmd.Flags().GetString("selector")
	htmlFlag, _ := cmd.Flags().GetBool("html")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	foldCase, _ := cmd.Flags().GetBool("fold-case")
	stem, _ := cmd.Flags().GetBool("stem")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	top, _ := cmd.Flags().GetInt("top")
	minCount, _ := cmd.Flags().GetInt("min-count")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// determine counting mode; words is the default when no mode flag is set
	// (the --words flag exists so scripts can be explicit)
	var mode counter.Mode
	switch {
	case chars:
		mode = counter.Char
	case lines:
		mode = counter.Line
	case tokens:
		mode = counter.Tokens
	default:
		mode = counter.Word
	}

	// determine key folding
	fold := app.FoldNone
	switch {
	case foldCase:
		fold = app.FoldCase
	case stem:
		fold = app.FoldStem
	}

	// determine output format
	format := app.Text
	if jsonFlag {
		format = app.JSON
	}

	// use positional arguments as sources; none provided means stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	return app.Config{
		Sources:    sources,
		Mode:       mode,
		Selector:   selector,
		HTML:       htmlFlag,
		IncludeAll: includeAll,
		Fold:       fold,
		Format:     format,
		Top:        top,
		MinCount:   minCount,
		Quiet:      quiet,
		Debug:      debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// readingInteractiveStdin reports whether the run would block on a terminal
// waiting for typed input.
func readingInteractiveStdin(sources []string) bool {
	for _, source := range sources {
		if source == "-" {
			return term.IsTerminal(int(os.Stdin.Fd()))
		}
	}
	return false
}

var rootCmd = &cobra.Command{
	Use:   "tally [sources...]",
	Short: "Count unit frequencies in text",
	Long: `Tally counts how often each distinct unit appears in text and prints a
frequency table. Units are words by default; characters, lines, or tokens can
be selected instead. Sources may include local files, URLs, or standard input.

Examples:
  tally document.txt
  tally --chars notes.md
  tally --lines access.log other.log
  cat essay.txt | tally --fold-case --top 20
  tally -s article https://example.com/post.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from flags and arguments
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(config.Debug)

		if !config.Quiet && readingInteractiveStdin(config.Sources) {
			fmt.Fprintln(os.Stderr, "reading from stdin; press Ctrl-D to finish")
		}

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("tally failed: %w", err)
		}

		fmt.Print(result)

		return nil
	},
}

func init() {
	// counting mode flags
	rootCmd.Flags().BoolP("words", "w", false, "Count word frequencies (default)")
	rootCmd.Flags().BoolP("chars", "c", false, "Count character frequencies")
	rootCmd.Flags().BoolP("lines", "l", false, "Count line frequencies")
	rootCmd.Flags().BoolP("tokens", "t", false, "Count cl100k_base token frequencies")

	// mode flags are mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("words", "chars", "lines", "tokens")

	// HTML extraction flags
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector to count within (implies HTML extraction)")
	rootCmd.Flags().Bool("html", false, "Treat sources as HTML and count extracted text")
	rootCmd.Flags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")

	// key folding flags are mutually exclusive
	rootCmd.Flags().Bool("fold-case", false, "Merge counts that differ only in letter case")
	rootCmd.Flags().Bool("stem", false, "Merge counts sharing an English word stem")
	rootCmd.MarkFlagsMutuallyExclusive("fold-case", "stem")

	// output flags
	rootCmd.Flags().Bool("json", false, "Output reports as JSON")
	rootCmd.Flags().IntP("top", "n", 0, "Show only the N most frequent units")
	rootCmd.Flags().Int("min-count", 0, "Hide units appearing fewer than N times")

	// other flags
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress info messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
