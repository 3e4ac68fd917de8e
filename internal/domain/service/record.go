// Package service holds the directory entry read by the search core.
package service

import "strings"

// Store column names used by filters and the directory adapter.
const (
	FieldID               = "id"
	FieldServiceName      = "service_name"
	FieldOrganisationName = "organisation_name"
	FieldServiceType      = "service_type"
	FieldNotes            = "notes"
	FieldAddress          = "address"
	FieldSuburb           = "suburb"
	FieldState            = "state"
	FieldPostcode         = "postcode"
	FieldRegion           = "region_name"
	FieldDeliveryMethod   = "delivery_method"
	FieldCost             = "cost"
	FieldWorkforceType    = "workforce_type"
	FieldReferralPathway  = "referral_pathway"
	FieldPhone            = "phone"
	FieldWebsite          = "website"
	FieldEmail            = "email"
)

// Text is an optional string field with an explicit unknown state.
type Text struct {
	value string
	known bool
}

// NewText returns a known Text, or Unknown if v is blank.
func NewText(v string) Text {
	v = strings.TrimSpace(v)
	if v == "" {
		return Text{}
	}
	return Text{value: v, known: true}
}

// Unknown returns a Text with no value.
func Unknown() Text { return Text{} }

// Value returns the value and whether it is known.
func (t Text) Value() (string, bool) { return t.value, t.known }

// IsKnown reports whether the field carries a value.
func (t Text) IsKnown() bool { return t.known }

// String returns the value, or "" when unknown.
func (t Text) String() string { return t.value }

// Lower returns the lowercased value, or "" when unknown.
func (t Text) Lower() string { return strings.ToLower(t.value) }

// Record is a directory entry. The search core treats it as read-only.
type Record struct {
	ID string

	ServiceName      Text
	OrganisationName Text
	ServiceType      Text
	Notes            Text

	Address  Text
	Suburb   Text
	State    Text
	Postcode Text
	Region   Text

	DeliveryMethod  Text
	Cost            Text
	WorkforceType   Text
	ReferralPathway Text

	Phone   Text
	Website Text
	Email   Text

	// Embedding is nil for records that have not been indexed.
	Embedding []float32
}

// IsIndexed reports whether the record carries an embedding.
func (r *Record) IsIndexed() bool { return len(r.Embedding) > 0 }
