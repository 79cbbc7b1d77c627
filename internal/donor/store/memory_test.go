package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	"github.com/Rishov2004/Blood-Donation/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

// newTestDonor builds a valid donor; safe for use inside goroutines.
func newTestDonor(phone string, bg models.BloodGroup) *models.Donor {
	d, err := models.NewDonor("Test Donor", 30, bg, phone, "donor@example.com", "Delhi", 28.61, 77.20, time.Now())
	if err != nil {
		panic(err)
	}
	return d
}

func (s *MemoryStoreSuite) newDonor(phone string, bg models.BloodGroup) *models.Donor {
	return newTestDonor(phone, bg)
}

// TestCreateAndScan verifies IDs are assigned monotonically and the blood
// group scan sees exactly what was written.
func (s *MemoryStoreSuite) TestCreateAndScan() {
	s.Run("assigns monotonically increasing IDs", func() {
		first := s.newDonor("111", models.APositive)
		second := s.newDonor("222", models.APositive)
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, second))

		s.Greater(int64(second.ID), int64(first.ID))
	})

	s.Run("register then find includes the donor exactly once", func() {
		d := s.newDonor("333", models.BNegative)
		s.Require().NoError(s.store.Create(s.ctx, d))

		found, err := s.store.FindByBloodGroup(s.ctx, models.BNegative)
		s.Require().NoError(err)

		seen := 0
		for _, f := range found {
			if f.Phone == "333" {
				seen++
			}
		}
		s.Equal(1, seen)
	})

	s.Run("scan filters by blood group", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newDonor("444", models.OPositive)))
		s.Require().NoError(s.store.Create(s.ctx, s.newDonor("555", models.ABNegative)))

		found, err := s.store.FindByBloodGroup(s.ctx, models.OPositive)
		s.Require().NoError(err)
		for _, f := range found {
			s.Equal(models.OPositive, f.BloodGroup)
		}
	})

	s.Run("no donors of a group yields an empty result", func() {
		found, err := s.store.FindByBloodGroup(s.ctx, models.ONegative)
		s.Require().NoError(err)
		s.Empty(found)
	})
}

// TestPhoneUniqueness verifies the store-level uniqueness invariant.
func (s *MemoryStoreSuite) TestPhoneUniqueness() {
	s.Run("rejects duplicate phone", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newDonor("dup-1", models.APositive)))

		err := s.store.Create(s.ctx, s.newDonor("dup-1", models.ONegative))
		s.Require().Error(err)
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("failed create writes nothing", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newDonor("dup-2", models.APositive)))
		before := s.store.Count()

		_ = s.store.Create(s.ctx, s.newDonor("dup-2", models.APositive))
		s.Equal(before, s.store.Count())
	})
}

// TestConcurrentDuplicatePhone verifies that racing registrations with the
// same phone resolve to exactly one success.
func (s *MemoryStoreSuite) TestConcurrentDuplicatePhone() {
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.Create(s.ctx, newTestDonor("race-phone", models.OPositive))
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should get the conflict sentinel")
}

// TestConcurrentDistinctPhones verifies distinct registrations all land and
// IDs stay unique under contention.
func (s *MemoryStoreSuite) TestConcurrentDistinctPhones() {
	const goroutines = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			d := newTestDonor(fmt.Sprintf("phone-%03d", n), models.BPositive)
			s.NoError(s.store.Create(s.ctx, d))
		}(i)
	}
	wg.Wait()

	found, err := s.store.FindByBloodGroup(s.ctx, models.BPositive)
	s.Require().NoError(err)
	s.Len(found, goroutines)

	ids := make(map[int64]struct{}, len(found))
	for _, d := range found {
		ids[int64(d.ID)] = struct{}{}
	}
	s.Len(ids, goroutines, "every donor gets a distinct ID")
}
