// Package query turns extracted intent into directory filter expressions.
package query

import (
	"strings"

	"github.com/kailas-cloud/carefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/carefinder/internal/domain/search/intent"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

const onlineMarker = "online"

var (
	broadLocationFields = []string{service.FieldSuburb, service.FieldState, service.FieldAddress}
	serviceFields       = []string{service.FieldServiceName, service.FieldServiceType, service.FieldNotes}
	fallbackFields      = []string{
		service.FieldServiceName,
		service.FieldOrganisationName,
		service.FieldSuburb,
		service.FieldServiceType,
		service.FieldNotes,
	}
)

// Broad builds the permissive query: substring matches on every location,
// service and cost keyword. With no keywords at all it searches the raw text
// across the descriptive columns. A blank raw query with no keywords yields
// the empty expression.
func Broad(in intent.Intent, raw string) filter.Expression {
	var groups []filter.Expression
	if in.HasKeywords() {
		groups = []filter.Expression{
			broadLocations(in.Locations),
			services(in.Services),
			cost(in.Cost),
		}
	} else if text := strings.TrimSpace(raw); text != "" {
		groups = []filter.Expression{anyField(fallbackFields, text)}
	}
	if len(groups) == 0 {
		return filter.Expression{}
	}
	return withOnlineExclusion(in, filter.And(groups...))
}

// Strict builds the exact-location query: suburb or postcode equality per
// location keyword, AND-ed with the service and cost groups. It is empty when
// no location keyword was extracted.
func Strict(in intent.Intent) filter.Expression {
	if len(in.Locations) == 0 {
		return filter.Expression{}
	}
	expr := filter.And(
		strictLocations(in.Locations),
		services(in.Services),
		cost(in.Cost),
	)
	return withOnlineExclusion(in, expr)
}

func broadLocations(locs []string) filter.Expression {
	var alts []filter.Expression
	for _, loc := range locs {
		for _, f := range broadLocationFields {
			alts = append(alts, filter.Leaf(filter.Match(f, loc)))
		}
		if isDigits(loc) {
			alts = append(alts, filter.Leaf(filter.Exact(service.FieldPostcode, loc)))
		}
	}
	return filter.Or(alts...)
}

func strictLocations(locs []string) filter.Expression {
	var alts []filter.Expression
	for _, loc := range locs {
		alts = append(alts, filter.Leaf(filter.Exact(service.FieldSuburb, loc)))
		if isDigits(loc) {
			alts = append(alts, filter.Leaf(filter.Exact(service.FieldPostcode, loc)))
		}
	}
	return filter.Or(alts...)
}

func services(keywords []string) filter.Expression {
	var alts []filter.Expression
	for _, kw := range keywords {
		alts = append(alts, anyField(serviceFields, kw))
	}
	return filter.Or(alts...)
}

func cost(c intent.Cost) filter.Expression {
	if c == intent.CostNone {
		return filter.Expression{}
	}
	return filter.Leaf(filter.Match(service.FieldCost, string(c)))
}

func anyField(fields []string, pattern string) filter.Expression {
	alts := make([]filter.Expression, 0, len(fields))
	for _, f := range fields {
		alts = append(alts, filter.Leaf(filter.Match(f, pattern)))
	}
	return filter.Or(alts...)
}

// withOnlineExclusion drops online-only services when the user asked for
// something local and did not ask for remote delivery. Records with no
// delivery method are kept.
func withOnlineExclusion(in intent.Intent, expr filter.Expression) filter.Expression {
	if !in.HasLocationIntent || in.WantsOnline || expr.IsEmpty() {
		return expr
	}
	return filter.And(expr, notOnline())
}

func notOnline() filter.Expression {
	return filter.Or(
		filter.Leaf(filter.Unset(service.FieldDeliveryMethod)),
		filter.Leaf(filter.Exclude(service.FieldDeliveryMethod, onlineMarker)),
	)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
