// Package store provides donor persistence: an in-memory implementation for
// unit tests and local runs, and the PostgreSQL implementation used in
// production.
//
// Stores are pure I/O. They return sentinel errors (pkg/platform/sentinel)
// for infrastructure facts, e.g. ErrAlreadyUsed for a taken phone number,
// and leave domain error codes to the service layer.
package store

//go:generate mockgen -source=store.go -destination=../../../mocks/donor/store_mock.go -package=donormock

import (
	"context"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
)

// Store is the registry's storage contract.
//
// Create must assign the donor's ID and enforce phone uniqueness atomically:
// two concurrent Creates with the same phone must resolve to exactly one
// success and one sentinel.ErrAlreadyUsed, with no check-then-insert window.
//
// FindByBloodGroup returns matching donors in storage order; readers never
// observe partially written rows.
type Store interface {
	Create(ctx context.Context, donor *models.Donor) error
	FindByBloodGroup(ctx context.Context, bloodGroup models.BloodGroup) ([]models.Donor, error)
}
