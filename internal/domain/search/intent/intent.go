// Package intent extracts location, service and cost signals from a free-text query.
// Every function is pure: no I/O, no shared state.
package intent

import (
	"strings"
	"unicode"
)

// Cost is the payment preference expressed in a query.
type Cost string

// Cost constants.
const (
	CostNone Cost = ""
	CostFree Cost = "free"
	CostPaid Cost = "paid"
)

// Intent bundles everything extracted from one query.
type Intent struct {
	Locations         []string
	Services          []string
	Cost              Cost
	HasLocationIntent bool
	WantsOnline       bool
	Crisis            bool
}

// HasKeywords reports whether any filterable keyword was found.
func (in Intent) HasKeywords() bool {
	return len(in.Locations) > 0 || len(in.Services) > 0 || in.Cost != CostNone
}

// Extract runs every extractor over text.
func Extract(text string) Intent {
	locs := LocationKeywords(text)
	return Intent{
		Locations:         locs,
		Services:          ServiceKeywords(text),
		Cost:              CostKeyword(text),
		HasLocationIntent: HasLocationIntent(text, locs),
		WantsOnline:       WantsOnline(text),
		Crisis:            IsCrisis(text),
	}
}

// LocationKeywords returns states, suburbs and postcodes mentioned in text,
// in first-seen order without duplicates.
func LocationKeywords(text string) []string {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	var out []string
	seen := make(map[string]struct{})
	add := func(k string) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	// Place names match whole words only, so "kew" never fires inside "skewed".
	words := " " + strings.Join(tokens, " ") + " "
	for _, s := range stateNames {
		if strings.Contains(words, " "+s+" ") {
			add(s)
		}
	}

	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}
	for _, abbr := range stateAbbreviations {
		if _, ok := tokenSet[abbr]; ok {
			add(abbr)
		}
	}

	for _, s := range suburbs {
		if strings.Contains(words, " "+s+" ") {
			add(s)
		}
	}

	for _, t := range tokens {
		if isPostcode(t) {
			add(t)
		}
	}
	return out
}

// HasLocationIntent reports whether the user asked for something nearby:
// either a location was extracted or a proximity word appears.
func HasLocationIntent(text string, locations []string) bool {
	if len(locations) > 0 {
		return true
	}
	padded := " " + foldPunctuation(strings.ToLower(text)) + " "
	for _, m := range proximityMarkers {
		if strings.Contains(padded, m) {
			return true
		}
	}
	return false
}

// ServiceKeywords returns the synonyms of every service category mentioned in text.
// One matching synonym pulls in the whole category.
func ServiceKeywords(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	seen := make(map[string]struct{})
	for _, cat := range serviceCategories {
		if !containsAny(lower, cat.synonyms) {
			continue
		}
		for _, syn := range cat.synonyms {
			if _, ok := seen[syn]; ok {
				continue
			}
			seen[syn] = struct{}{}
			out = append(out, syn)
		}
	}
	return out
}

// CostKeyword returns the cost preference. Free indicators win over paid ones.
func CostKeyword(text string) Cost {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, freeIndicators):
		return CostFree
	case containsAny(lower, paidIndicators):
		return CostPaid
	default:
		return CostNone
	}
}

// WantsOnline reports whether the user asked for remote delivery.
func WantsOnline(text string) bool {
	return containsAny(strings.ToLower(text), onlineIndicators)
}

// IsCrisis reports whether text carries an urgent-help signal.
func IsCrisis(text string) bool {
	lower := strings.ToLower(text)
	lower = strings.NewReplacer("’", "'", "‘", "'").Replace(lower)
	return containsAny(lower, crisisIndicators)
}

// tokenize splits lowercased text into maximal letter runs and digit runs.
func tokenize(lower string) []string {
	var (
		tokens []string
		cur    strings.Builder
		digit  bool
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			if digit {
				flush()
			}
			digit = false
			cur.WriteRune(r)
		case r >= '0' && r <= '9':
			if !digit {
				flush()
			}
			digit = true
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func isPostcode(tok string) bool {
	if len(tok) != 4 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	_, denied := postcodeDenylist[tok]
	return !denied
}

func foldPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return r
	}, s)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
