package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

func isSeparator(b byte) bool {
	return b == ' ' || b == ','
}

// Classify ranks label against query, case-insensitively. ok is false when
// the query does not occur in the label at all.
func Classify(label, query string) (tier int, ok bool) {
	return classify(cases.Fold(), label, query)
}

func classify(fold cases.Caser, label, query string) (int, bool) {
	if query == "" || label == "" {
		return 0, false
	}
	l := fold.String(label)
	q := fold.String(query)
	if len(q) > len(l) {
		return 0, false
	}

	if strings.HasPrefix(l, q) {
		if wordEndsAt(l, len(q)) {
			return TierLeadingWord, true
		}
		return TierLeadingPartial, true
	}

	best := -1
	for i := 1; i+len(q) <= len(l); i++ {
		if !isSeparator(l[i-1]) || isSeparator(l[i]) {
			continue
		}
		if !strings.HasPrefix(l[i:], q) {
			continue
		}
		if wordEndsAt(l, i+len(q)) {
			return TierInteriorWord, true
		}
		best = TierInteriorPartial
	}
	if best >= 0 {
		return best, true
	}

	if strings.Contains(l, q) {
		return TierSubstring, true
	}
	return 0, false
}

func wordEndsAt(s string, end int) bool {
	return end == len(s) || isSeparator(s[end])
}

// Rank classifies every item of src against query and returns the matches
// ordered by tier, keeping source order within a tier
func Rank(src Source, query string) []Match {
	if src == nil || query == "" {
		return nil
	}
	fold := cases.Fold()
	count := src.Count()
	var matches []Match
	for i := 0; i < count; i++ {
		label := src.Label(i)
		tier, ok := classify(fold, label, query)
		if !ok {
			continue
		}
		matches = append(matches, Match{Index: i, Label: label, Tier: tier})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Tier < matches[j].Tier
	})
	return matches
}
