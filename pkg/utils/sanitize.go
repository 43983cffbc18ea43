package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// bluemonday escapes plain punctuation as well; angle brackets stay escaped.
var punctuationUnescaper = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// SanitizeInput removes every tag and script body from free text before it is
// validated or embedded into a model prompt. Fully malicious input collapses to "".
func SanitizeInput(input string) string {
	if input == "" {
		return input
	}
	clean := strictPolicy.Sanitize(input)
	return strings.TrimSpace(punctuationUnescaper.Replace(clean))
}

func SanitizeAll(inputs []string) []string {
	if inputs == nil {
		return nil
	}
	out := make([]string, len(inputs))
	for i, in := range inputs {
		out[i] = SanitizeInput(in)
	}
	return out
}
