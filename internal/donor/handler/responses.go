package handler

import (
	"time"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	"github.com/Rishov2004/Blood-Donation/internal/proximity"
	id "github.com/Rishov2004/Blood-Donation/pkg/domain"
)

// DonorResponse is the public view of a donor.
type DonorResponse struct {
	ID           id.DonorID        `json:"id"`
	Name         string            `json:"name"`
	Age          int               `json:"age"`
	BloodGroup   models.BloodGroup `json:"blood_group"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email,omitempty"`
	Address      string            `json:"address,omitempty"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	RegisteredAt time.Time         `json:"registered_at"`
}

func donorResponse(d models.Donor) DonorResponse {
	return DonorResponse{
		ID:           d.ID,
		Name:         d.Name,
		Age:          d.Age,
		BloodGroup:   d.BloodGroup,
		Phone:        d.Phone,
		Email:        d.Email,
		Address:      d.Address,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		RegisteredAt: d.RegisteredAt,
	}
}

// MatchResponse is a search hit. It carries contact and location fields only;
// a match is for reaching a donor, not for reading their record.
type MatchResponse struct {
	ID         id.DonorID        `json:"id"`
	Name       string            `json:"name"`
	BloodGroup models.BloodGroup `json:"blood_group"`
	Phone      string            `json:"phone"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
	DistanceKm float64           `json:"distance_km"`
}

// SearchResponse is the GET /donors/nearby payload.
type SearchResponse struct {
	Matches []MatchResponse `json:"matches"`
	Count   int             `json:"count"`
}

func searchResponse(matches []proximity.Match) SearchResponse {
	out := SearchResponse{Matches: make([]MatchResponse, 0, len(matches))}
	for _, m := range matches {
		out.Matches = append(out.Matches, MatchResponse{
			ID:         m.Donor.ID,
			Name:       m.Donor.Name,
			BloodGroup: m.Donor.BloodGroup,
			Phone:      m.Donor.Phone,
			Latitude:   m.Donor.Latitude,
			Longitude:  m.Donor.Longitude,
			DistanceKm: m.DistanceKm,
		})
	}
	out.Count = len(out.Matches)
	return out
}

// ListResponse is the GET /donors payload.
type ListResponse struct {
	Donors []DonorResponse `json:"donors"`
	Count  int             `json:"count"`
}

func listResponse(donors []models.Donor) ListResponse {
	out := ListResponse{Donors: make([]DonorResponse, 0, len(donors))}
	for _, d := range donors {
		out.Donors = append(out.Donors, donorResponse(d))
	}
	out.Count = len(out.Donors)
	return out
}
