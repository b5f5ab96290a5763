// Package sanitize provides text sanitization for values received from external systems.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	blockBreakRegex = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/li)\s*/?\s*>`)
	spaceRunRegex   = regexp.MustCompile(`[ \t]+`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entityReplacer.Replace(result)
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text converts a rich-text CRM field to plain text.
// Line breaking tags become newlines, runs of spaces collapse, and at most one blank line is kept.
func Text(s string) string {
	result := blockBreakRegex.ReplaceAllString(s, "\n")
	result = StripHTML(result)
	result = strings.ReplaceAll(result, "\r\n", "\n")

	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunRegex.ReplaceAllString(line, " "))
	}
	result = strings.Join(lines, "\n")
	result = blankLinesRegex.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
