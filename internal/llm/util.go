package llm

import (
	"regexp"
	"strings"
)

// leadingHeading matches one markdown heading line and the blank space after it
var leadingHeading = regexp.MustCompile(`^#+\s.*?\n\s*`)

// CleanGeneratedText trims the response and strips one leading markdown
// heading, since callers expect a plain paragraph.
func CleanGeneratedText(text string) string {
	text = strings.TrimSpace(text)
	return leadingHeading.ReplaceAllString(text, "")
}
