
package utils
import (
	"html"
	"regexp"
	"strings"
)
var (
	markupTag  = regexp.MustCompile(`(?s)<[^>]*>`)
	lineBreak  = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li)>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)
// ContainsString checks if a string slice contains a specific string.
func ContainsString(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}
// StripMarkup turns deck field markup into plain text for non-HTML surfaces.
// Line-level elements become newlines, every other tag is dropped and entities are decoded.
func StripMarkup(s string) string {
	s = lineBreak.ReplaceAllString(s, "\n")
	s = markupTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
// ValidPosition reports whether position addresses one of n options (1-based).
func ValidPosition(position, n int) bool {
	return position >= 1 && position <= n
}
