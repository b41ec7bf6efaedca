package domain

import "time"

// Donor is a person's contact, demographic and donation-history record.
type Donor struct {
	DonorID          int64      `json:"donorID"`
	Name             string     `json:"name"`
	NIC              *string    `json:"nic,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Address          *string    `json:"address,omitempty"`
	Area             *string    `json:"area,omitempty"`
	BloodGroup       BloodGroup `json:"bloodGroup"`
	Age              *int       `json:"age,omitempty"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	Active           bool       `json:"active"`
	AuditFields
}

// DonorPatch carries one optional slot per mutable donor attribute.
// A slot that is not Set leaves the stored value untouched.
type DonorPatch struct {
	Name             Optional[string]
	NIC              Optional[string]
	Phone            Optional[string]
	Email            Optional[string]
	Address          Optional[string]
	Area             Optional[string]
	BloodGroup       Optional[BloodGroup]
	Age              Optional[int]
	LastDonationDate Optional[time.Time]
	Notes            Optional[string]
	Active           Optional[bool]
}

// IsEmpty reports whether the patch changes nothing.
func (p DonorPatch) IsEmpty() bool {
	return !p.Name.Set && !p.NIC.Set && !p.Phone.Set && !p.Email.Set &&
		!p.Address.Set && !p.Area.Set && !p.BloodGroup.Set && !p.Age.Set &&
		!p.LastDonationDate.Set && !p.Notes.Set && !p.Active.Set
}

// Apply copies every set slot onto d. Validation is the caller's job.
func (p DonorPatch) Apply(d *Donor) {
	if v, ok := p.Name.Get(); ok {
		d.Name = v
	}
	p.NIC.ApplyTo(&d.NIC)
	p.Phone.ApplyTo(&d.Phone)
	p.Email.ApplyTo(&d.Email)
	p.Address.ApplyTo(&d.Address)
	p.Area.ApplyTo(&d.Area)
	if v, ok := p.BloodGroup.Get(); ok {
		d.BloodGroup = v
	}
	p.Age.ApplyTo(&d.Age)
	p.LastDonationDate.ApplyTo(&d.LastDonationDate)
	p.Notes.ApplyTo(&d.Notes)
	if v, ok := p.Active.Get(); ok {
		d.Active = v
	}
}

// DonorFilter constrains a donor search. Nil fields impose no constraint.
type DonorFilter struct {
	Query      *string
	BloodGroup *BloodGroup
	Area       *string
	AgeMin     *int
	AgeMax     *int
	LastAfter  *time.Time
	LastBefore *time.Time
	Limit      int
}

// IsEmpty reports whether no constraint is set.
func (f DonorFilter) IsEmpty() bool {
	return f.Query == nil && f.BloodGroup == nil && f.Area == nil &&
		f.AgeMin == nil && f.AgeMax == nil && f.LastAfter == nil && f.LastBefore == nil
}
