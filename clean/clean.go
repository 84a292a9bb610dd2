// Package clean provides text cleaners applied by producers before element
// construction: whitespace collapsing, broken-paragraph grouping, bullet and
// dash removal, and unicode normalization. All functions are pure.
package clean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun  = regexp.MustCompile(`[\s\x{00a0}]+`)
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	lineBreakRun   = regexp.MustCompile(`\s*\n\s*`)
	leadingBullet  = regexp.MustCompile(`^[\x{2022}\x{2023}\x{2043}\x{204c}\x{204d}\x{2219}\x{25aa}\x{25cf}\x{25e6}\x{2619}\x{2765}\x{2756}\x{00b7}*\-]+\s*`)
	dashes         = regexp.MustCompile(`[\-\x{2013}\x{2014}]`)
)

// ExtraWhitespace collapses runs of whitespace (including non-breaking
// spaces) to a single space and trims the ends.
func ExtraWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// GroupBrokenParagraphs rejoins paragraphs that were hard-wrapped mid-line.
// Blank lines separate paragraphs; single line breaks within a paragraph
// become spaces.
func GroupBrokenParagraphs(text string) string {
	paragraphs := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(lineBreakRun.ReplaceAllString(p, " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

// Bullets strips a leading bullet marker and the whitespace after it.
func Bullets(text string) string {
	return leadingBullet.ReplaceAllString(strings.TrimSpace(text), "")
}

// Dashes replaces dash characters (ASCII hyphen, en and em dash) with spaces
// and trims the result.
func Dashes(text string) string {
	return strings.TrimSpace(dashes.ReplaceAllString(text, " "))
}

// TrailingPunctuation strips trailing periods, commas, colons and semicolons.
func TrailingPunctuation(text string) string {
	return strings.TrimRight(strings.TrimSpace(text), ".,:;")
}

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"", "'",
	"", "'",
	"", `"`,
	"", `"`,
)

// ReplaceUnicodeQuotes maps typographic quote characters to their ASCII
// equivalents.
func ReplaceUnicodeQuotes(text string) string {
	return quoteReplacer.Replace(text)
}

// Normalize returns the NFC normal form of text, so that visually identical
// strings produce identical deterministic element IDs regardless of how the
// producer composed its code points.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
