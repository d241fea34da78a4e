package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString trims and bounds free-text input (message bodies, group
// names, bucket-list notes).
func SanitizeString(input string, maxLen int) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if maxLen > 0 && len(input) > maxLen {
		input = input[:maxLen]
	}

	return input
}

// SanitizeHTML strips all HTML tags.
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeContent is the combined pass applied to user-supplied text before
// it is stored.
func SanitizeContent(input string, maxLen int) string {
	return SanitizeString(SanitizeHTML(input), maxLen)
}
