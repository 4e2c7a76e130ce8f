package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds decoding of nested entity encodings.
const maxSanitizePasses = 8

// plainText strips every tag from free text and trims it. Entity-encoded
// markup is decoded and stripped again until the text stops changing, so
// the result decodes to nothing a browser would parse as a tag.
func plainText(s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(s)))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// Still changing: keep the escaped form.
	return strings.TrimSpace(strictPolicy.Sanitize(html.UnescapeString(s)))
}

func mailEscape(s string) string {
	return html.EscapeString(s)
}
