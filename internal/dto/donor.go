package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
)

// CreateDonorRequest defines the data needed to register a donor.
type CreateDonorRequest struct {
	Name             string  `json:"name" binding:"required"`
	NIC              *string `json:"nic"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	Address          *string `json:"address"`
	Area             *string `json:"area"`
	BloodGroup       string  `json:"blood_group" binding:"required,bloodgroup"`
	Age              *int    `json:"age" binding:"omitempty,min=0,max=130"`
	LastDonationDate *string `json:"last_donation_date" binding:"omitempty,datetime=2006-01-02"`
	Notes            *string `json:"notes"`
	Active           *bool   `json:"active"` // defaults to true
}

// UpdateDonorRequest is a partial update. Absent keys are left untouched and
// an explicit null clears a nullable field.
type UpdateDonorRequest struct {
	Name             domain.Optional[string] `json:"name" swaggertype:"string"`
	NIC              domain.Optional[string] `json:"nic" swaggertype:"string"`
	Phone            domain.Optional[string] `json:"phone" swaggertype:"string"`
	Email            domain.Optional[string] `json:"email" swaggertype:"string"`
	Address          domain.Optional[string] `json:"address" swaggertype:"string"`
	Area             domain.Optional[string] `json:"area" swaggertype:"string"`
	BloodGroup       domain.Optional[string] `json:"blood_group" swaggertype:"string"`
	Age              domain.Optional[int]    `json:"age" swaggertype:"integer"`
	LastDonationDate domain.Optional[string] `json:"last_donation_date" swaggertype:"string"`
	Notes            domain.Optional[string] `json:"notes" swaggertype:"string"`
	Active           domain.Optional[bool]   `json:"active" swaggertype:"boolean"`
}

// DonorSearchQuery holds the query-string filters of a donor search.
type DonorSearchQuery struct {
	Q          string `form:"q"`
	BloodGroup string `form:"blood_group"`
	Area       string `form:"area"`
	AgeMin     *int   `form:"age_min"`
	AgeMax     *int   `form:"age_max"`
	LastAfter  string `form:"last_after"`
	LastBefore string `form:"last_before"`
	Limit      int    `form:"limit"`
}

// DonorResponse is the wire form of a donor. Unset optional fields are null.
type DonorResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	NIC              *string   `json:"nic"`
	Phone            *string   `json:"phone"`
	Email            *string   `json:"email"`
	Address          *string   `json:"address"`
	Area             *string   `json:"area"`
	BloodGroup       string    `json:"blood_group"`
	Age              *int      `json:"age"`
	LastDonationDate *string   `json:"last_donation_date"`
	Notes            *string   `json:"notes"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DonorEnvelope wraps a single donor response.
type DonorEnvelope struct {
	Donor DonorResponse `json:"donor"`
}

// DonorListEnvelope wraps a list of donors.
type DonorListEnvelope struct {
	Donors []DonorResponse `json:"donors"`
}

// ParseDate parses a YYYY-MM-DD calendar date. The error wraps apperrors.ErrValidation.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", apperrors.ErrValidation, field)
	}
	return t, nil
}

func optionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToDomain converts the request into a donor ready for creation.
func (r CreateDonorRequest) ToDomain() (domain.Donor, error) {
	last, err := optionalDate("last_donation_date", r.LastDonationDate)
	if err != nil {
		return domain.Donor{}, err
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.Donor{
		Name:             r.Name,
		NIC:              r.NIC,
		Phone:            r.Phone,
		Email:            r.Email,
		Address:          r.Address,
		Area:             r.Area,
		BloodGroup:       domain.BloodGroup(r.BloodGroup),
		Age:              r.Age,
		LastDonationDate: last,
		Notes:            r.Notes,
		Active:           active,
	}, nil
}

// ToPatch converts the request into a domain patch, parsing typed fields.
func (r UpdateDonorRequest) ToPatch() (domain.DonorPatch, error) {
	patch := domain.DonorPatch{
		Name:    r.Name,
		NIC:     r.NIC,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Area:    r.Area,
		Age:     r.Age,
		Notes:   r.Notes,
		Active:  r.Active,
	}

	if r.BloodGroup.Set {
		if v, ok := r.BloodGroup.Get(); ok {
			group, err := domain.ParseBloodGroup(v)
			if err != nil {
				return domain.DonorPatch{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
			}
			patch.BloodGroup = domain.Some(group)
		} else {
			patch.BloodGroup = domain.Null[domain.BloodGroup]()
		}
	}

	if r.LastDonationDate.Set {
		v, ok := r.LastDonationDate.Get()
		if !ok || v == "" {
			patch.LastDonationDate = domain.Null[time.Time]()
		} else {
			t, err := ParseDate("last_donation_date", v)
			if err != nil {
				return domain.DonorPatch{}, err
			}
			patch.LastDonationDate = domain.Some(t)
		}
	}

	return patch, nil
}

// ToFilter converts the query string into a search filter.
func (q DonorSearchQuery) ToFilter() (domain.DonorFilter, error) {
	filter := domain.DonorFilter{
		Query:  nonEmpty(q.Q),
		Area:   nonEmpty(q.Area),
		AgeMin: q.AgeMin,
		AgeMax: q.AgeMax,
		Limit:  q.Limit,
	}
	if q.BloodGroup != "" {
		group, err := domain.ParseBloodGroup(q.BloodGroup)
		if err != nil {
			return domain.DonorFilter{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		filter.BloodGroup = &group
	}
	var err error
	if filter.LastAfter, err = optionalDate("last_after", nonEmpty(q.LastAfter)); err != nil {
		return domain.DonorFilter{}, err
	}
	if filter.LastBefore, err = optionalDate("last_before", nonEmpty(q.LastBefore)); err != nil {
		return domain.DonorFilter{}, err
	}
	return filter, nil
}

// ToDonorResponse converts a domain.Donor to its wire form.
func ToDonorResponse(d domain.Donor) DonorResponse {
	var last *string
	if d.LastDonationDate != nil {
		s := d.LastDonationDate.Format(domain.DateLayout)
		last = &s
	}
	return DonorResponse{
		ID:               d.DonorID,
		Name:             d.Name,
		NIC:              d.NIC,
		Phone:            d.Phone,
		Email:            d.Email,
		Address:          d.Address,
		Area:             d.Area,
		BloodGroup:       string(d.BloodGroup),
		Age:              d.Age,
		LastDonationDate: last,
		Notes:            d.Notes,
		Active:           d.Active,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.LastUpdatedAt,
	}
}

// ToDonorListResponse converts a slice of donors, never returning nil.
func ToDonorListResponse(donors []domain.Donor) []DonorResponse {
	out := make([]DonorResponse, len(donors))
	for i, d := range donors {
		out[i] = ToDonorResponse(d)
	}
	return out
}
