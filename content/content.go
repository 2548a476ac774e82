// Package content provides small, pure helpers for working with the
// markdown produced by page fetchers.
package content

import (
	"regexp"
	"strings"
)

// DefaultExcerptLength is the excerpt budget used when callers pass no
// explicit limit.
const DefaultExcerptLength = 300

// UntitledDocument is the placeholder title used when a page carries no
// title metadata and no level-1 heading.
const UntitledDocument = "Untitled Document"

var codeBlockRe = regexp.MustCompile("(?s)```[a-zA-Z]*\n(.*?)\n```")

// markdown punctuation stripped before building an excerpt
const markdownChars = "#*_`[]()>|"

// ExtractTitle returns the text of the first level-1 markdown heading in
// content, or UntitledDocument if there is none.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return UntitledDocument
}

// Excerpt reduces markdown content to a short plain-text summary: markdown
// punctuation is stripped, whitespace runs collapse to single spaces, and
// the result is truncated to maxLength characters. Truncation backs off to
// the last word boundary and appends an ellipsis marker.
func Excerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	text := content
	for _, c := range markdownChars {
		text = strings.ReplaceAll(text, string(c), "")
	}
	text = strings.Join(strings.Fields(text), " ")

	if len(text) <= maxLength {
		return text
	}

	cut := text[:maxLength]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// CodeBlocks returns the trimmed bodies of all fenced code blocks in
// content, in document order. Language tags are ignored.
func CodeBlocks(content string) []string {
	var blocks []string
	for _, m := range codeBlockRe.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, strings.TrimSpace(m[1]))
	}
	return blocks
}
