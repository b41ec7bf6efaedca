package models

import "time"

// Donor mirrors a row of the donors table. Nullable columns are pointers.
type Donor struct {
	DonorID          int64      `db:"donor_id"`
	Name             string     `db:"name"`
	NIC              *string    `db:"nic"`
	Phone            *string    `db:"phone"`
	Email            *string    `db:"email"`
	Address          *string    `db:"address"`
	Area             *string    `db:"area"`
	BloodGroup       string     `db:"blood_group"`
	Age              *int32     `db:"age"`
	LastDonationDate *time.Time `db:"last_donation_date"`
	Notes            *string    `db:"notes"`
	IsActive         bool       `db:"is_active"`
	AuditFields
}
