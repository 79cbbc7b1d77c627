package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
)

// RegisterRequestSuite tests RegisterRequest validation.
type RegisterRequestSuite struct {
	suite.Suite
}

func TestRegisterRequestSuite(t *testing.T) {
	suite.Run(t, new(RegisterRequestSuite))
}

func (s *RegisterRequestSuite) validRequest() *RegisterRequest {
	name := "Asha Verma"
	age := 29
	group := "A+"
	phone := "+919876543210"
	email := "asha@example.com"
	lat := 28.6139
	lon := 77.2090
	return &RegisterRequest{
		Name:       &name,
		Age:        &age,
		BloodGroup: &group,
		Phone:      &phone,
		Email:      &email,
		Latitude:   &lat,
		Longitude:  &lon,
	}
}

func (s *RegisterRequestSuite) TestValidation() {
	s.Run("valid request passes", func() {
		req := s.validRequest()
		s.NoError(req.Validate())
	})

	s.Run("address is optional", func() {
		req := s.validRequest()
		s.Nil(req.Address)
		s.NoError(req.Validate())
	})

	s.Run("missing email rejected", func() {
		req := s.validRequest()
		req.Email = nil
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "email")
	})

	s.Run("blank email rejected", func() {
		req := s.validRequest()
		blank := " "
		req.Email = &blank
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "email")
	})

	s.Run("missing name rejected", func() {
		req := s.validRequest()
		req.Name = nil
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "name")
	})

	s.Run("blank name rejected", func() {
		req := s.validRequest()
		blank := "   "
		req.Name = &blank
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "name")
	})

	s.Run("missing age rejected", func() {
		req := s.validRequest()
		req.Age = nil
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "age")
	})

	s.Run("missing coordinates rejected", func() {
		req := s.validRequest()
		req.Latitude = nil
		req.Longitude = nil
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "latitude")
		s.Contains(err.Error(), "longitude")
	})

	s.Run("zero coordinates pass", func() {
		req := s.validRequest()
		zero := 0.0
		req.Latitude = &zero
		req.Longitude = &zero
		s.NoError(req.Validate())
	})

	s.Run("validation failures carry the validation code", func() {
		req := &RegisterRequest{}
		err := req.Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("nil request rejected", func() {
		var req *RegisterRequest
		err := req.Validate()
		s.Require().Error(err)
		s.Contains(err.Error(), "request is required")
	})
}

func (s *RegisterRequestSuite) TestToInput() {
	req := s.validRequest()

	in := req.ToInput()
	s.Equal("Asha Verma", in.Name)
	s.Equal(29, in.Age)
	s.Equal("A+", in.BloodGroup)
	s.Equal("+919876543210", in.Phone)
	s.Equal("asha@example.com", in.Email)
	s.Empty(in.Address)
	s.InDelta(28.6139, in.Latitude, 1e-9)
	s.InDelta(77.2090, in.Longitude, 1e-9)
}

// SearchQuerySuite tests search query parsing.
type SearchQuerySuite struct {
	suite.Suite
}

func TestSearchQuerySuite(t *testing.T) {
	suite.Run(t, new(SearchQuerySuite))
}

func (s *SearchQuerySuite) parse(target string) error {
	req := httptest.NewRequest("GET", target, nil)
	_, err := parseSearchQuery(req)
	return err
}

func (s *SearchQuerySuite) TestParsing() {
	s.Run("full query parses", func() {
		req := httptest.NewRequest("GET",
			"/donors/nearby?blood_group=O-&latitude=28.6&longitude=77.2&radius_km=10", nil)
		in, err := parseSearchQuery(req)
		s.Require().NoError(err)
		s.Equal("O-", in.BloodGroup)
		s.InDelta(28.6, in.Latitude, 1e-9)
		s.InDelta(77.2, in.Longitude, 1e-9)
		s.InDelta(10, in.RadiusKm, 1e-9)
	})

	s.Run("radius defaults to zero when absent", func() {
		req := httptest.NewRequest("GET",
			"/donors/nearby?blood_group=O-&latitude=28.6&longitude=77.2", nil)
		in, err := parseSearchQuery(req)
		s.Require().NoError(err)
		s.Zero(in.RadiusKm)
	})

	s.Run("missing parameters reported together", func() {
		err := s.parse("/donors/nearby")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "blood_group")
		s.Contains(err.Error(), "latitude")
		s.Contains(err.Error(), "longitude")
	})

	s.Run("non-numeric latitude rejected", func() {
		err := s.parse("/donors/nearby?blood_group=O-&latitude=north&longitude=77.2")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("non-numeric radius rejected", func() {
		err := s.parse("/donors/nearby?blood_group=O-&latitude=28.6&longitude=77.2&radius_km=wide")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
