package carefinder

import (
	"github.com/kailas-cloud/carefinder/internal/domain/search/result"
	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// Source names the search path that produced a result.
type Source string

// Source constants.
const (
	SourceVector  Source = "vector"
	SourceKeyword Source = "keyword"
)

// Service is a directory entry. Unknown fields are empty strings.
type Service struct {
	ID               string
	ServiceName      string
	OrganisationName string
	ServiceType      string
	Notes            string
	Address          string
	Suburb           string
	State            string
	Postcode         string
	Region           string
	DeliveryMethod   string
	Cost             string
	WorkforceType    string
	ReferralPathway  string
	Phone            string
	Website          string
	Email            string
}

// Result is one ranked service.
type Result struct {
	Service Service
	// Score is BaseScore plus Boost, capped at 1.
	Score     float64
	BaseScore float64
	Boost     float64
	Source    Source
}

// SearchOptions tunes a search. A nil *SearchOptions uses the defaults.
type SearchOptions struct {
	// Limit caps the result count. Zero means 10; values over 50 are clamped.
	Limit int
	// PreferLocation favours in-person services near the mentioned place.
	PreferLocation bool
}

// SearchResponse is the outcome of one search.
type SearchResponse struct {
	Results []Result
	// EmbeddingTokens is the provider tokens the query consumed; 0 on a cache hit.
	EmbeddingTokens int
	// EmbeddingUsed reports whether the query was embedded at all.
	EmbeddingUsed bool
}

func fromRecord(rec *service.Record) Service {
	return Service{
		ID:               rec.ID,
		ServiceName:      rec.ServiceName.String(),
		OrganisationName: rec.OrganisationName.String(),
		ServiceType:      rec.ServiceType.String(),
		Notes:            rec.Notes.String(),
		Address:          rec.Address.String(),
		Suburb:           rec.Suburb.String(),
		State:            rec.State.String(),
		Postcode:         rec.Postcode.String(),
		Region:           rec.Region.String(),
		DeliveryMethod:   rec.DeliveryMethod.String(),
		Cost:             rec.Cost.String(),
		WorkforceType:    rec.WorkforceType.String(),
		ReferralPathway:  rec.ReferralPathway.String(),
		Phone:            rec.Phone.String(),
		Website:          rec.Website.String(),
		Email:            rec.Email.String(),
	}
}

func fromResults(in []result.Result) []Result {
	out := make([]Result, 0, len(in))
	for i := range in {
		rec := in[i].Record()
		out = append(out, Result{
			Service:   fromRecord(&rec),
			Score:     in[i].Score(),
			BaseScore: in[i].BaseScore(),
			Boost:     in[i].Boost(),
			Source:    Source(in[i].Source()),
		})
	}
	return out
}
