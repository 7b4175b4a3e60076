// Package extract renders HTML sources down to plain text for counting.
//
// Counting operates on visible text, so extraction must not introduce any
// markup of its own; the output is the document's text content with block
// elements separated by newlines.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// blankLines collapses runs of blank lines left behind by block elements.
var blankLines = regexp.MustCompile(`\n{3,}`)

// ToText extracts the countable text of an HTML document.
//
// Parameters:
//   - content: io.Reader containing HTML
//   - selector: optional CSS selector restricting extraction to matching
//     elements (empty string means main-content extraction)
//   - includeAll: if true, skip readability filtering and use the whole body
//   - baseURL: optional URL for readability context (can be nil)
//
// Returns plain text, or an error when parsing fails or a selector matches
// nothing.
func ToText(content io.Reader, selector string, includeAll bool, baseURL *url.URL) (string, error) {
	// an explicit selector overrides the includeAll setting
	if selector != "" {
		return selectorText(content, selector)
	}

	if includeAll {
		return documentText(content)
	}

	return mainContentText(content, baseURL)
}

// mainContentText uses go-readability to isolate the main article text,
// dropping navigation, sidebars, and boilerplate.
func mainContentText(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	slog.Debug("Readability extraction complete",
		"title", article.Title, "textLength", len(article.TextContent))
	return tidy(article.TextContent), nil
}

// selectorText extracts the text of all elements matching a CSS selector.
func selectorText(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	separateBlocks(doc)

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return tidy(strings.Join(parts, "\n")), nil
}

// documentText returns the text of the whole document without filtering.
func documentText(content io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	separateBlocks(doc)

	return tidy(doc.Find("body").Text()), nil
}

// separateBlocks prepares a document for text rendering: invisible content
// is removed and a newline text node is appended after each block element,
// since goquery's Text concatenates nodes with no separator and would
// otherwise fuse words across adjacent blocks. Newlines are safe separators
// because no counting mode treats a line terminator as a unit.
func separateBlocks(doc *goquery.Document) {
	doc.Find("script, style, noscript").Remove()
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, br, blockquote, pre").AfterHtml("\n")
}

// tidy trims the result and collapses excess blank lines.
func tidy(text string) string {
	return blankLines.ReplaceAllString(strings.TrimSpace(text), "\n\n")
}
