package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
)

// BloodGroup is one of the eight ABO/Rh groups tracked by the bank.
type BloodGroup string

const (
	GroupOPos  BloodGroup = "O+"
	GroupONeg  BloodGroup = "O-"
	GroupAPos  BloodGroup = "A+"
	GroupANeg  BloodGroup = "A-"
	GroupBPos  BloodGroup = "B+"
	GroupBNeg  BloodGroup = "B-"
	GroupABPos BloodGroup = "AB+"
	GroupABNeg BloodGroup = "AB-"
)

// bloodGroups is the canonical ordering used for every listing.
var bloodGroups = [...]BloodGroup{
	GroupOPos, GroupONeg,
	GroupAPos, GroupANeg,
	GroupBPos, GroupBNeg,
	GroupABPos, GroupABNeg,
}

// AllBloodGroups returns the eight groups in canonical order.
func AllBloodGroups() []BloodGroup {
	out := make([]BloodGroup, len(bloodGroups))
	copy(out, bloodGroups[:])
	return out
}

// IsValid reports whether g is one of the enumerated groups.
func (g BloodGroup) IsValid() bool {
	return g.Index() >= 0
}

// Index returns the canonical position of g, or -1 if g is not a known group.
func (g BloodGroup) Index() int {
	for i, known := range bloodGroups {
		if g == known {
			return i
		}
	}
	return -1
}

func (g BloodGroup) String() string {
	return string(g)
}

// ParseBloodGroup normalises s and checks it against the enumerated set.
// The returned error wraps apperrors.ErrInvalidGroup.
func ParseBloodGroup(s string) (BloodGroup, error) {
	g := BloodGroup(strings.ToUpper(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidGroup, s)
	}
	return g, nil
}
