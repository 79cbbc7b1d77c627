package store

import (
	"context"
	"sync"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	id "github.com/Rishov2004/Blood-Donation/pkg/domain"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/sentinel"
)

// InMemory keeps donors in insertion order behind a single mutex. The phone
// index and the append happen under one critical section, which is the
// in-process equivalent of the Postgres unique index: concurrent Creates with
// the same phone serialize, and only the first wins.
type InMemory struct {
	mu      sync.RWMutex
	donors  []models.Donor
	byPhone map[string]id.DonorID
	nextID  id.DonorID
}

// NewInMemory constructs an empty in-memory donor store.
func NewInMemory() *InMemory {
	return &InMemory{
		byPhone: make(map[string]id.DonorID),
		nextID:  1,
	}
}

// Create assigns the next ID and appends the donor, failing with
// sentinel.ErrAlreadyUsed when the phone number is taken.
func (s *InMemory) Create(_ context.Context, donor *models.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byPhone[donor.Phone]; taken {
		return sentinel.ErrAlreadyUsed
	}

	donor.ID = s.nextID
	s.nextID++
	s.byPhone[donor.Phone] = donor.ID
	s.donors = append(s.donors, *donor)
	return nil
}

// FindByBloodGroup returns all donors of the given group in insertion order.
func (s *InMemory) FindByBloodGroup(_ context.Context, bloodGroup models.BloodGroup) ([]models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Donor
	for _, d := range s.donors {
		if d.BloodGroup == bloodGroup {
			out = append(out, d)
		}
	}
	return out, nil
}

// Count reports the number of stored donors. Test helper.
func (s *InMemory) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.donors)
}
