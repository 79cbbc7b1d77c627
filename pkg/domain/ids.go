package domain

import (
	"strconv"

	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
)

// DonorID identifies a donor record. IDs are assigned by the registry store
// on insert (BIGSERIAL in Postgres, atomic counter in memory) and are never
// reused or mutated.
type DonorID int64

// ParseDonorID parses a decimal donor ID from a trust boundary (path params,
// query strings). Zero and negative values are rejected: the store never
// assigns them.
func ParseDonorID(s string) (DonorID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "donor id is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "donor id must be a decimal integer")
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "donor id must be positive")
	}
	return DonorID(n), nil
}

func (d DonorID) String() string {
	return strconv.FormatInt(int64(d), 10)
}

// IsZero reports whether the ID has not been assigned yet.
func (d DonorID) IsZero() bool {
	return d == 0
}
