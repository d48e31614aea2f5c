// Package sanitize normalizes generated advert text into the plain-text
// dialect understood by the document builder.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	boldPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern  = regexp.MustCompile(`\*(.+?)\*`)
	codePattern    = regexp.MustCompile("`([^`]*)`")
	headingPattern = regexp.MustCompile(`(?m)^ {0,3}(?:#{1,6}(?:[ \t]+|$))+`)
	lineEndPattern = regexp.MustCompile(`\r\n?`)
)

// glyphReplacer maps bullet and dash glyphs onto the plain hyphen.
var glyphReplacer = strings.NewReplacer(
	"•", "-",
	"–", "-",
	"—", "-",
)

// Sanitize strips emphasis, inline code and heading markup, normalizes bullet
// and dash glyphs to "-", converts line endings to "\n" and trims the result.
//
// The passes run until the text no longer changes, so Sanitize(Sanitize(x))
// always equals Sanitize(x). Every pass that changes the text shortens it,
// which bounds the loop.
//
// Emphasis passes are not recursive: a malformed span such as "**a**b**"
// keeps its unpaired asterisks.
func Sanitize(text string) string {
	for {
		next := pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func pass(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = codePattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "")
	text = glyphReplacer.Replace(text)
	text = lineEndPattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
