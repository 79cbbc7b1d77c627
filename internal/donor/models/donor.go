package models

import (
	"strings"
	"time"

	id "github.com/Rishov2004/Blood-Donation/pkg/domain"
	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
)

// BloodGroup is one of the eight recognized ABO/Rh types.
type BloodGroup string

const (
	APositive  BloodGroup = "A+"
	ANegative  BloodGroup = "A-"
	BPositive  BloodGroup = "B+"
	BNegative  BloodGroup = "B-"
	ABPositive BloodGroup = "AB+"
	ABNegative BloodGroup = "AB-"
	OPositive  BloodGroup = "O+"
	ONegative  BloodGroup = "O-"
)

// BloodGroups lists every recognized group, in display order.
var BloodGroups = []BloodGroup{
	APositive, ANegative,
	BPositive, BNegative,
	ABPositive, ABNegative,
	OPositive, ONegative,
}

var validBloodGroups = func() map[BloodGroup]struct{} {
	m := make(map[BloodGroup]struct{}, len(BloodGroups))
	for _, bg := range BloodGroups {
		m[bg] = struct{}{}
	}
	return m
}()

// ParseBloodGroup canonicalizes a blood-group string ("ab+" → "AB+") and
// rejects anything outside the enumerated set.
func ParseBloodGroup(s string) (BloodGroup, error) {
	bg := BloodGroup(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := validBloodGroups[bg]; !ok {
		return "", dErrors.Newf(dErrors.CodeValidation, "unrecognized blood group %q", s)
	}
	return bg, nil
}

// IsValid reports whether bg is one of the enumerated types.
func (bg BloodGroup) IsValid() bool {
	_, ok := validBloodGroups[bg]
	return ok
}

// Donor is the registry's aggregate root.
//
// Invariants:
//   - Phone is non-empty and globally unique (enforced by the store's unique
//     index, not by a caller-side pre-check)
//   - BloodGroup is one of the enumerated ABO/Rh types
//   - Latitude is within [-90, 90], Longitude within [-180, 180]
//   - Age is positive; Name and Email are non-empty
//   - ID and RegisteredAt are assigned at creation and never change
//
// Donors are created once and never mutated or deleted afterwards.
type Donor struct {
	ID           id.DonorID `json:"id"`
	Name         string     `json:"name"`
	Age          int        `json:"age"`
	BloodGroup   BloodGroup `json:"blood_group"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	RegisteredAt time.Time  `json:"registered_at"`
}

// NewDonor constructs an unsaved donor, checking every field invariant.
// The ID stays zero until the store assigns one on insert.
func NewDonor(name string, age int, bloodGroup BloodGroup, phone, email, address string, latitude, longitude float64, now time.Time) (*Donor, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donor name cannot be empty")
	}
	if age <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donor age must be positive")
	}
	if !bloodGroup.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "unrecognized blood group %q", string(bloodGroup))
	}
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donor phone cannot be empty")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donor email cannot be empty")
	}
	if latitude < -90 || latitude > 90 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "longitude must be between -180 and 180")
	}

	return &Donor{
		Name:         name,
		Age:          age,
		BloodGroup:   bloodGroup,
		Phone:        phone,
		Email:        email,
		Address:      strings.TrimSpace(address),
		Latitude:     latitude,
		Longitude:    longitude,
		RegisteredAt: now,
	}, nil
}
