package validation

import (
	"strings"

	"gongbridge/lib/textutil"

	"github.com/antzucaro/matchr"
)

const (
	DefaultTextOverlapThreshold = 0.5
	DefaultSetOverlapThreshold  = 0.8
)

// Comparison is the outcome of matching one expected value against one
// actual value. Score is a similarity in [0,1] kept for diagnostics.
type Comparison struct {
	Match bool
	Score float64
}

// CompareExact matches after whitespace normalization.
func CompareExact(expected, actual string) Comparison {
	expected = textutil.NormalizeSpace(expected)
	actual = textutil.NormalizeSpace(actual)
	if expected == actual {
		return Comparison{Match: true, Score: 1}
	}
	return Comparison{Score: matchr.JaroWinkler(expected, actual, false)}
}

// CompareEmail matches two addresses case-insensitively, accepting the
// "Name <addr>" form on either side.
func CompareEmail(expected, actual string) Comparison {
	e := normalizeEmail(expected)
	a := normalizeEmail(actual)
	if e == a && e != "" {
		return Comparison{Match: true, Score: 1}
	}
	if e == "" || a == "" {
		return Comparison{}
	}
	return Comparison{Score: matchr.JaroWinkler(e, a, false)}
}

func normalizeEmail(s string) string {
	if open := strings.Index(s, "<"); open >= 0 {
		if close := strings.Index(s[open:], ">"); close > 0 {
			s = s[open+1 : open+close]
		}
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// CompareTextOverlap tokenizes both strings into lowercase word sets
// and matches when shared words / words in the smaller set reaches the
// threshold. Deliberately fuzzy: exports and API responses differ in
// punctuation and case.
func CompareTextOverlap(expected, actual string, threshold float64) Comparison {
	if threshold <= 0 {
		threshold = DefaultTextOverlapThreshold
	}

	e := textutil.WordSet(expected)
	a := textutil.WordSet(actual)
	if len(e) == 0 && len(a) == 0 {
		return Comparison{Match: true, Score: 1}
	}
	if len(e) == 0 || len(a) == 0 {
		return Comparison{}
	}

	shared := 0
	for w := range e {
		if _, ok := a[w]; ok {
			shared++
		}
	}
	smaller := len(e)
	if len(a) < smaller {
		smaller = len(a)
	}
	ratio := float64(shared) / float64(smaller)
	return Comparison{Match: ratio >= threshold, Score: ratio}
}

// CompareSetOverlap matches two sets of addresses when the overlap
// ratio (shared / size of the smaller set) reaches the threshold.
// Elements are matched via CompareEmail, and the result is symmetric.
func CompareSetOverlap(expected, actual []string, threshold float64) Comparison {
	if threshold <= 0 {
		threshold = DefaultSetOverlapThreshold
	}

	e := normalizeEmailSet(expected)
	a := normalizeEmailSet(actual)
	if len(e) == 0 && len(a) == 0 {
		return Comparison{Match: true, Score: 1}
	}
	if len(e) == 0 || len(a) == 0 {
		return Comparison{}
	}

	shared := 0
	for addr := range e {
		if _, ok := a[addr]; ok {
			shared++
		}
	}
	smaller := len(e)
	if len(a) < smaller {
		smaller = len(a)
	}
	ratio := float64(shared) / float64(smaller)
	return Comparison{Match: ratio >= threshold, Score: ratio}
}

func normalizeEmailSet(values []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, v := range values {
		if normalized := normalizeEmail(v); normalized != "" {
			out[normalized] = struct{}{}
		}
	}
	return out
}
