// Package app contains the core application logic for the tally CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/chriscorrea/tally/internal/counter"
	"github.com/chriscorrea/tally/internal/extract"
	"github.com/chriscorrea/tally/internal/fetch"
	"github.com/chriscorrea/tally/internal/spinner"
)

// OutputFormat defines the output format for frequency reports
type OutputFormat int

const (
	// plaintext output format (default)
	Text OutputFormat = iota
	// JSON output format
	JSON
)

// String returns the string representation of the output format
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Config holds all configuration options for the tally application.
type Config struct {
	Sources    []string     // URLs, file paths, or "-" for stdin
	Mode       counter.Mode // unit being counted (words by default)
	Selector   string       // CSS selector for HTML content extraction
	HTML       bool         // force HTML extraction regardless of source name
	IncludeAll bool         // include all HTML content without readability filtering
	Fold       FoldMode     // optional post-count key folding
	Format     OutputFormat // output format (text/json)
	Top        int          // keep only the N most frequent units (0 = all)
	MinCount   int          // drop units appearing fewer than this many times
	Quiet      bool         // suppress info messages
	Debug      bool
}

// UnitCount is one row of a report, ordered most-frequent first.
type UnitCount struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

// Report is the frequency table for a single source. Total and Distinct
// describe the full table, before Top/MinCount filtering trims Units.
type Report struct {
	Source   string      `json:"source"`
	Mode     string      `json:"mode"`
	Total    int         `json:"total"`
	Distinct int         `json:"distinct"`
	Units    []UnitCount `json:"units"`
}

// Run executes the main tally application logic with the given configuration.
//
// Each source is counted independently — one report per source, never a
// merged table. Any source failure (unreadable source, invalid UTF-8) aborts
// the whole run; a partially reported run would misstate frequencies.
//
// ctx allows for cancellation of fetch operations.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	reports := make([]Report, 0, len(cfg.Sources))
	for _, source := range cfg.Sources {
		report, err := countSource(ctx, source, cfg)
		if err != nil {
			return "", fmt.Errorf("failed to count source %q: %w", source, err)
		}
		reports = append(reports, report)
	}

	if cfg.Format == JSON {
		return renderJSON(reports)
	}
	return renderText(reports, len(reports) > 1), nil
}

// countSource opens one source, counts it, and builds its report.
func countSource(ctx context.Context, source string, cfg Config) (Report, error) {
	// display spinner while fetching remote sources
	if fetch.IsURL(source) && !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "Fetching "+source)
		sp.Start()
		defer sp.Stop()
	}

	reader, err := fetch.Open(ctx, source)
	if err != nil {
		return Report{}, err
	}
	defer reader.Close()

	var freqs counter.Frequencies
	if isHTMLSource(source, cfg) {
		text, err := extract.ToText(reader, cfg.Selector, cfg.IncludeAll, baseURLFor(source))
		if err != nil {
			return Report{}, err
		}
		freqs, err = counter.Count(strings.NewReader(text), cfg.Mode)
		if err != nil {
			return Report{}, err
		}
	} else {
		freqs, err = counter.Count(reader, cfg.Mode)
		if err != nil {
			return Report{}, err
		}
	}

	freqs = Fold(freqs, cfg.Fold)

	report := Report{
		Source:   source,
		Mode:     cfg.Mode.String(),
		Total:    freqs.Total(),
		Distinct: len(freqs),
	}
	for _, entry := range freqs.Sorted() {
		if cfg.MinCount > 0 && entry.Count < cfg.MinCount {
			break // entries are count-descending; nothing later qualifies
		}
		if cfg.Top > 0 && len(report.Units) >= cfg.Top {
			break
		}
		report.Units = append(report.Units, UnitCount{Unit: entry.Unit, Count: entry.Count})
	}

	return report, nil
}

// isHTMLSource decides whether a source should pass through HTML extraction.
// A selector implies HTML; otherwise the flag or the file extension decides.
func isHTMLSource(source string, cfg Config) bool {
	if cfg.HTML || cfg.Selector != "" {
		return true
	}
	name := source
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// baseURLFor returns a parsed URL for readability context, or nil for
// non-URL sources.
func baseURLFor(source string) *url.URL {
	if !fetch.IsURL(source) {
		return nil
	}
	u, _ := url.Parse(source) // ignore parse errors, will use nil
	return u
}

// renderText formats reports as aligned "count unit" rows. A header line per
// report is included only for multi-source runs, so single-source output
// stays pipe-friendly.
func renderText(reports []Report, withHeaders bool) string {
	var b strings.Builder

	for i, report := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		if withHeaders {
			fmt.Fprintf(&b, "== %s (%d %s, %d distinct)\n",
				report.Source, report.Total, report.Mode, report.Distinct)
		}

		width := 1
		for _, row := range report.Units {
			if d := len(fmt.Sprint(row.Count)); d > width {
				width = d
			}
		}
		for _, row := range report.Units {
			fmt.Fprintf(&b, "%*d %s\n", width, row.Count, row.Unit)
		}
	}

	return b.String()
}

// renderJSON marshals the reports as a JSON array, one object per source.
func renderJSON(reports []Report) (string, error) {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode reports: %w", err)
	}
	return string(data) + "\n", nil
}
