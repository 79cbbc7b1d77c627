// Package proximity is the pure matching core: given an origin and a set of
// donor candidates it computes great-circle distances, filters by radius, and
// orders the survivors. It performs no I/O and holds no state, so it is safe
// to call from any number of requests at once.
package proximity

import (
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// parallelThreshold is the candidate count above which distance computation
// fans out across CPUs. Below it the goroutine overhead outweighs the math.
const parallelThreshold = 512

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the point lies within geographic bounds.
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return dErrors.New(dErrors.CodeValidation, "latitude must be between -90 and 90")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return dErrors.New(dErrors.CodeValidation, "longitude must be between -180 and 180")
	}
	return nil
}

// Match is one qualifying donor together with its computed distance.
type Match struct {
	Donor      models.Donor
	DistanceKm float64
}

// DistanceKm returns the great-circle distance between two points using the
// spherical law of cosines:
//
//	d = R * acos(cos(lat1)*cos(lat2)*cos(lon2-lon1) + sin(lat1)*sin(lat2))
//
// For coincident points floating-point error can push the acos argument just
// past 1, which would yield NaN; the argument is clamped to [-1, 1].
func DistanceKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	arg := math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon) + math.Sin(lat1)*math.Sin(lat2)
	arg = math.Min(1, math.Max(-1, arg))

	return EarthRadiusKm * math.Acos(arg)
}

// Nearest computes the distance from origin to every candidate, keeps those
// strictly inside radiusKm, and returns them ordered by ascending distance.
// Equal distances keep the candidates' input order (stable sort). An empty
// result is a valid outcome, not an error.
//
// Candidates are trusted to carry valid coordinates; the registry enforced
// that at write time. Only the caller-supplied origin and radius are checked.
func Nearest(origin Point, candidates []models.Donor, radiusKm float64) ([]Match, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "radius must be positive")
	}

	distances := make([]float64, len(candidates))
	if len(candidates) >= parallelThreshold {
		computeParallel(origin, candidates, distances)
	} else {
		for i, c := range candidates {
			distances[i] = DistanceKm(origin, Point{Latitude: c.Latitude, Longitude: c.Longitude})
		}
	}

	matches := make([]Match, 0, len(candidates))
	for i, c := range candidates {
		// Strict inequality: a donor exactly on the boundary is excluded.
		if distances[i] < radiusKm {
			matches = append(matches, Match{Donor: c, DistanceKm: distances[i]})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}

// computeParallel splits the candidate slice into per-CPU chunks. Each chunk
// writes to a disjoint range of distances, so no synchronization is needed
// beyond the group wait.
func computeParallel(origin Point, candidates []models.Donor, distances []float64) {
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(candidates) + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				c := candidates[i]
				distances[i] = DistanceKm(origin, Point{Latitude: c.Latitude, Longitude: c.Longitude})
			}
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()
}
