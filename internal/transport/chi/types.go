package chi

import "github.com/kailas-cloud/carefinder/internal/domain/service"

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeQueryTooLong      ErrorCode = "query_too_long"
	ErrorCodeSearchUnavailable ErrorCode = "search_unavailable"
	ErrorCodeVectorDimMismatch ErrorCode = "vector_dim_mismatch"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchRequest is the POST /v1/search body.
type SearchRequest struct {
	Query          string `json:"query"`
	Limit          *int   `json:"limit,omitempty"`
	PreferLocation *bool  `json:"prefer_location,omitempty"`
}

// SearchParams are the GET /v1/search query parameters.
type SearchParams struct {
	Q              string
	Limit          *int
	PreferLocation *bool
}

// ServiceItem is a directory record as exposed over HTTP. Unknown fields are omitted.
type ServiceItem struct {
	ID               string  `json:"id"`
	ServiceName      *string `json:"service_name,omitempty"`
	OrganisationName *string `json:"organisation_name,omitempty"`
	ServiceType      *string `json:"service_type,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Address          *string `json:"address,omitempty"`
	Suburb           *string `json:"suburb,omitempty"`
	State            *string `json:"state,omitempty"`
	Postcode         *string `json:"postcode,omitempty"`
	Region           *string `json:"region_name,omitempty"`
	DeliveryMethod   *string `json:"delivery_method,omitempty"`
	Cost             *string `json:"cost,omitempty"`
	WorkforceType    *string `json:"workforce_type,omitempty"`
	ReferralPathway  *string `json:"referral_pathway,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Website          *string `json:"website,omitempty"`
	Email            *string `json:"email,omitempty"`
}

// SearchResultItem is one ranked hit.
type SearchResultItem struct {
	Service   ServiceItem `json:"service"`
	Score     float64     `json:"score"`
	BaseScore float64     `json:"base_score"`
	Boost     float64     `json:"boost"`
	Source    string      `json:"source"`
}

// SearchResultListResponse is the search response body.
type SearchResultListResponse struct {
	Items []SearchResultItem `json:"items"`
	Limit int                `json:"limit"`
	Total int                `json:"total"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func textPtr(t service.Text) *string {
	v, ok := t.Value()
	if !ok {
		return nil
	}
	return &v
}

func serviceToItem(rec *service.Record) ServiceItem {
	return ServiceItem{
		ID:               rec.ID,
		ServiceName:      textPtr(rec.ServiceName),
		OrganisationName: textPtr(rec.OrganisationName),
		ServiceType:      textPtr(rec.ServiceType),
		Notes:            textPtr(rec.Notes),
		Address:          textPtr(rec.Address),
		Suburb:           textPtr(rec.Suburb),
		State:            textPtr(rec.State),
		Postcode:         textPtr(rec.Postcode),
		Region:           textPtr(rec.Region),
		DeliveryMethod:   textPtr(rec.DeliveryMethod),
		Cost:             textPtr(rec.Cost),
		WorkforceType:    textPtr(rec.WorkforceType),
		ReferralPathway:  textPtr(rec.ReferralPathway),
		Phone:            textPtr(rec.Phone),
		Website:          textPtr(rec.Website),
		Email:            textPtr(rec.Email),
	}
}
