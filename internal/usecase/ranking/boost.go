package ranking

import (
	"strings"

	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// Location boost per matching tier.
const (
	BoostSuburb   = 0.15
	BoostPostcode = 0.15
	BoostRegion   = 0.10
	BoostState    = 0.08
)

// Confidence is the tier of the top adjusted score.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const (
	highConfidenceScore   = 0.75
	mediumConfidenceScore = 0.55
)

type tier struct {
	text  func(*service.Record) service.Text
	boost float64
}

// tiers are checked in order; the first match wins for a keyword.
var tiers = []tier{
	{func(r *service.Record) service.Text { return r.Suburb }, BoostSuburb},
	{func(r *service.Record) service.Text { return r.Postcode }, BoostPostcode},
	{func(r *service.Record) service.Text { return r.Region }, BoostRegion},
	{func(r *service.Record) service.Text { return r.State }, BoostState},
}

// LocationBoost returns the best tier boost any keyword earns on rec.
// A keyword matches a field when either contains the other, ignoring case.
func LocationBoost(rec *service.Record, keywords []string) float64 {
	var best float64
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, t := range tiers {
			field := t.text(rec)
			if !field.IsKnown() {
				continue
			}
			v := field.Lower()
			if strings.Contains(v, kw) || strings.Contains(kw, v) {
				best = max(best, t.boost)
				break
			}
		}
	}
	return best
}

// Tier classifies the top adjusted score.
func Tier(top float64) Confidence {
	switch {
	case top > highConfidenceScore:
		return ConfidenceHigh
	case top > mediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Count is how many results a tier shows. Confident matches need fewer alternatives.
func (c Confidence) Count() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 5
	default:
		return 7
	}
}
