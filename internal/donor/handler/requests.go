package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rishov2004/Blood-Donation/internal/donor/service"
	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
)

// RegisterRequest is the POST /donors payload. Pointer fields distinguish an
// absent field from a zero value, so "latitude": 0 is a real coordinate and a
// missing latitude is a validation failure.
type RegisterRequest struct {
	Name       *string  `json:"name"`
	Age        *int     `json:"age"`
	BloodGroup *string  `json:"blood_group"`
	Phone      *string  `json:"phone"`
	Email      *string  `json:"email"`
	Address    *string  `json:"address"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// Validate checks required fields. Range checks live in the domain model;
// this only guards against absent fields.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeValidation, "request is required")
	}
	var missing []string
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		missing = append(missing, "name")
	}
	if r.Age == nil {
		missing = append(missing, "age")
	}
	if r.BloodGroup == nil || strings.TrimSpace(*r.BloodGroup) == "" {
		missing = append(missing, "blood_group")
	}
	if r.Phone == nil || strings.TrimSpace(*r.Phone) == "" {
		missing = append(missing, "phone")
	}
	if r.Email == nil || strings.TrimSpace(*r.Email) == "" {
		missing = append(missing, "email")
	}
	if r.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if r.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

// ToInput converts a validated request into the service input.
func (r *RegisterRequest) ToInput() service.RegisterInput {
	in := service.RegisterInput{
		Name:       *r.Name,
		Age:        *r.Age,
		BloodGroup: *r.BloodGroup,
		Phone:      *r.Phone,
		Email:      *r.Email,
		Latitude:   *r.Latitude,
		Longitude:  *r.Longitude,
	}
	if r.Address != nil {
		in.Address = *r.Address
	}
	return in
}

// parseSearchQuery reads the GET /donors/nearby query parameters. A radius of
// zero means "use the configured default".
func parseSearchQuery(r *http.Request) (service.SearchInput, error) {
	q := r.URL.Query()

	var missing []string
	for _, name := range []string{"blood_group", "latitude", "longitude"} {
		if strings.TrimSpace(q.Get(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return service.SearchInput{}, dErrors.New(dErrors.CodeValidation,
			"missing required query parameters: "+strings.Join(missing, ", "))
	}

	lat, err := parseFloatParam(q, "latitude")
	if err != nil {
		return service.SearchInput{}, err
	}
	lon, err := parseFloatParam(q, "longitude")
	if err != nil {
		return service.SearchInput{}, err
	}

	in := service.SearchInput{
		BloodGroup: q.Get("blood_group"),
		Latitude:   lat,
		Longitude:  lon,
	}

	if raw := strings.TrimSpace(q.Get("radius_km")); raw != "" {
		radius, err := parseFloatParam(q, "radius_km")
		if err != nil {
			return service.SearchInput{}, err
		}
		in.RadiusKm = radius
	}
	return in, nil
}

func parseFloatParam(q url.Values, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(q.Get(name)), 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, name+" must be a number")
	}
	return v, nil
}
