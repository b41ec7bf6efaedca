package mapping

import (
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	"github.com/SscSPs/blood_desk_app/internal/models"
)

// ToModelDonor converts a domain Donor to a model Donor
func ToModelDonor(d domain.Donor) models.Donor {
	var age *int32
	if d.Age != nil {
		v := int32(*d.Age)
		age = &v
	}
	return models.Donor{
		DonorID:          d.DonorID,
		Name:             d.Name,
		NIC:              d.NIC,
		Phone:            d.Phone,
		Email:            d.Email,
		Address:          d.Address,
		Area:             d.Area,
		BloodGroup:       string(d.BloodGroup),
		Age:              age,
		LastDonationDate: d.LastDonationDate,
		Notes:            d.Notes,
		IsActive:         d.Active,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDonor converts a model Donor to a domain Donor
func ToDomainDonor(m models.Donor) domain.Donor {
	var age *int
	if m.Age != nil {
		v := int(*m.Age)
		age = &v
	}
	return domain.Donor{
		DonorID:          m.DonorID,
		Name:             m.Name,
		NIC:              m.NIC,
		Phone:            m.Phone,
		Email:            m.Email,
		Address:          m.Address,
		Area:             m.Area,
		BloodGroup:       domain.BloodGroup(m.BloodGroup),
		Age:              age,
		LastDonationDate: m.LastDonationDate,
		Notes:            m.Notes,
		Active:           m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDonorSlice converts a slice of model Donors to a slice of domain Donors
func ToDomainDonorSlice(ms []models.Donor) []domain.Donor {
	ds := make([]domain.Donor, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDonor(m)
	}
	return ds
}
