package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/carefinder/internal/domain/service"
)

// looseText decodes a JSON string, number or bool into text. null stays unknown.
type looseText struct {
	value string
	set   bool
}

func (t *looseText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = looseText{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = looseText{value: s, set: true}
		return nil
	}
	// numbers and booleans are kept verbatim
	*t = looseText{value: string(b), set: true}
	return nil
}

func (t looseText) text() service.Text {
	if !t.set {
		return service.Unknown()
	}
	return service.NewText(t.value)
}

// vectorField accepts a JSON number array or the pgvector text form "[0.1,0.2]".
type vectorField []float32

func (v *vectorField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		vec, err := parsePGVector(s)
		if err != nil {
			return err
		}
		*v = vec
		return nil
	}
	var arr []float32
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}
	*v = arr
	return nil
}

func parsePGVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("embedding component %d: %w", i, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// row is one record as returned by PostgREST selects and the match RPC.
type row struct {
	ID               looseText   `json:"id"`
	ServiceName      looseText   `json:"service_name"`
	OrganisationName looseText   `json:"organisation_name"`
	ServiceType      looseText   `json:"service_type"`
	Notes            looseText   `json:"notes"`
	Address          looseText   `json:"address"`
	Suburb           looseText   `json:"suburb"`
	State            looseText   `json:"state"`
	Postcode         looseText   `json:"postcode"`
	Region           looseText   `json:"region_name"`
	DeliveryMethod   looseText   `json:"delivery_method"`
	Cost             looseText   `json:"cost"`
	WorkforceType    looseText   `json:"workforce_type"`
	ReferralPathway  looseText   `json:"referral_pathway"`
	Phone            looseText   `json:"phone"`
	Website          looseText   `json:"website"`
	Email            looseText   `json:"email"`
	Embedding        vectorField `json:"embedding"`
	Similarity       *float64    `json:"similarity"`
}

func (r *row) toRecord() service.Record {
	return service.Record{
		ID:               strings.TrimSpace(r.ID.value),
		ServiceName:      r.ServiceName.text(),
		OrganisationName: r.OrganisationName.text(),
		ServiceType:      r.ServiceType.text(),
		Notes:            r.Notes.text(),
		Address:          r.Address.text(),
		Suburb:           r.Suburb.text(),
		State:            r.State.text(),
		Postcode:         r.Postcode.text(),
		Region:           r.Region.text(),
		DeliveryMethod:   r.DeliveryMethod.text(),
		Cost:             r.Cost.text(),
		WorkforceType:    r.WorkforceType.text(),
		ReferralPathway:  r.ReferralPathway.text(),
		Phone:            r.Phone.text(),
		Website:          r.Website.text(),
		Email:            r.Email.text(),
		Embedding:        []float32(r.Embedding),
	}
}

func decodeRows(data []byte) ([]row, error) {
	var rows []row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}

// selectColumns lists every record column except the embedding.
var selectColumns = strings.Join([]string{
	service.FieldID,
	service.FieldServiceName,
	service.FieldOrganisationName,
	service.FieldServiceType,
	service.FieldNotes,
	service.FieldAddress,
	service.FieldSuburb,
	service.FieldState,
	service.FieldPostcode,
	service.FieldRegion,
	service.FieldDeliveryMethod,
	service.FieldCost,
	service.FieldWorkforceType,
	service.FieldReferralPathway,
	service.FieldPhone,
	service.FieldWebsite,
	service.FieldEmail,
}, ",")
