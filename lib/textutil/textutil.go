package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeSpace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

var wordSplitRegex = regexp.MustCompile(`[^a-z0-9@.]+`)

// lowercases and splits on whitespace/punctuation, returning the set
// of distinct words. used for fuzzy subject/title matching where
// punctuation and case differ between exports.
func WordSet(s string) map[string]struct{} {
	s = strings.ToLower(s)
	out := map[string]struct{}{}
	for _, w := range wordSplitRegex.Split(s, -1) {
		w = strings.Trim(w, ".")
		if w == "" {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// returns the first email-shaped token in s, or "" when none exists.
// never derives an address from a display name.
func FirstEmail(s string) string {
	return emailRegex.FindString(s)
}

func ContainsEmail(s string) bool {
	return emailRegex.MatchString(s)
}
