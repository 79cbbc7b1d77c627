package proximity

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
	id "github.com/Rishov2004/Blood-Donation/pkg/domain"
	dErrors "github.com/Rishov2004/Blood-Donation/pkg/domain-errors"
)

var (
	delhi      = Point{Latitude: 28.6139, Longitude: 77.2090}
	northDelhi = Point{Latitude: 28.7041, Longitude: 77.1025}
	mumbai     = Point{Latitude: 19.0760, Longitude: 72.8777}
)

func donorAt(n int64, p Point) models.Donor {
	return models.Donor{
		ID:         id.DonorID(n + 1),
		Name:       fmt.Sprintf("donor-%d", n),
		BloodGroup: models.OPositive,
		Phone:      fmt.Sprintf("98100%05d", n),
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
	}
}

func TestDistanceKm(t *testing.T) {
	t.Run("known pair lands in expected band", func(t *testing.T) {
		// Connaught Place to North Delhi: a short hop, well inside the
		// 15 km default radius.
		d := DistanceKm(delhi, northDelhi)
		assert.Greater(t, d, 13.0)
		assert.Less(t, d, 15.0)
	})

	t.Run("symmetry", func(t *testing.T) {
		pairs := [][2]Point{
			{delhi, mumbai},
			{delhi, northDelhi},
			{{Latitude: -33.8688, Longitude: 151.2093}, {Latitude: 51.5074, Longitude: -0.1278}},
			{{Latitude: 90, Longitude: 0}, {Latitude: -90, Longitude: 0}},
		}
		for _, pair := range pairs {
			assert.Equal(t, DistanceKm(pair[0], pair[1]), DistanceKm(pair[1], pair[0]))
		}
	})

	t.Run("coincident points yield exactly zero", func(t *testing.T) {
		// Without clamping, acos of a value epsilon above 1 returns NaN.
		for _, p := range []Point{delhi, {Latitude: 0, Longitude: 0}, {Latitude: -89.9, Longitude: 179.9}} {
			d := DistanceKm(p, p)
			require.False(t, math.IsNaN(d), "distance must never be NaN")
			assert.Equal(t, 0.0, d)
		}
	})

	t.Run("antipodal distance is half the circumference", func(t *testing.T) {
		d := DistanceKm(Point{Latitude: 0, Longitude: 0}, Point{Latitude: 0, Longitude: 180})
		// acos is ill-conditioned near -1, so allow a few meters of slack.
		assert.InDelta(t, math.Pi*EarthRadiusKm, d, 0.01)
	})
}

func TestNearest(t *testing.T) {
	t.Run("nearby donor included with computed distance", func(t *testing.T) {
		matches, err := Nearest(delhi, []models.Donor{donorAt(1, northDelhi)}, 15)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Greater(t, matches[0].DistanceKm, 13.0)
		assert.Less(t, matches[0].DistanceKm, 15.0)
	})

	t.Run("far donor excluded", func(t *testing.T) {
		matches, err := Nearest(delhi, []models.Donor{donorAt(1, mumbai)}, 15)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("boundary-exact donor excluded", func(t *testing.T) {
		candidate := donorAt(1, northDelhi)
		d := DistanceKm(delhi, northDelhi)
		require.Greater(t, d, 0.0)

		// Radius exactly equal to the donor's distance excludes it.
		matches, err := Nearest(delhi, []models.Donor{candidate}, d)
		require.NoError(t, err)
		assert.Empty(t, matches, "distance == radius must not match (strict inequality)")

		// The next representable radius includes it again.
		matches, err = Nearest(delhi, []models.Donor{candidate}, math.Nextafter(d, math.Inf(1)))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("ordered ascending by distance", func(t *testing.T) {
		candidates := []models.Donor{
			donorAt(1, Point{Latitude: 28.70, Longitude: 77.10}),
			donorAt(2, Point{Latitude: 28.62, Longitude: 77.21}),
			donorAt(3, Point{Latitude: 28.65, Longitude: 77.15}),
		}
		matches, err := Nearest(delhi, candidates, 50)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		for i := 1; i < len(matches); i++ {
			assert.LessOrEqual(t, matches[i-1].DistanceKm, matches[i].DistanceKm)
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		a := donorAt(1, delhi)
		b := donorAt(2, delhi)
		c := donorAt(3, delhi)

		matches, err := Nearest(delhi, []models.Donor{a, b, c}, 15)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, a.Name, matches[0].Donor.Name)
		assert.Equal(t, b.Name, matches[1].Donor.Name)
		assert.Equal(t, c.Name, matches[2].Donor.Name)
		for _, m := range matches {
			assert.Equal(t, 0.0, m.DistanceKm)
		}
	})

	t.Run("every match is inside the radius", func(t *testing.T) {
		var candidates []models.Donor
		for i := range 40 {
			candidates = append(candidates, donorAt(int64(i),
				Point{Latitude: 28.0 + float64(i)*0.05, Longitude: 77.0 + float64(i)*0.03}))
		}
		matches, err := Nearest(delhi, candidates, 15)
		require.NoError(t, err)
		for _, m := range matches {
			assert.Less(t, m.DistanceKm, 15.0)
		}
	})

	t.Run("empty candidate set is a valid empty result", func(t *testing.T) {
		matches, err := Nearest(delhi, nil, 15)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("out-of-range origin rejected", func(t *testing.T) {
		for _, origin := range []Point{
			{Latitude: 91, Longitude: 0},
			{Latitude: -90.1, Longitude: 0},
			{Latitude: 0, Longitude: 181},
			{Latitude: 0, Longitude: -180.5},
		} {
			_, err := Nearest(origin, []models.Donor{donorAt(1, delhi)}, 15)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		}
	})

	t.Run("non-positive radius rejected", func(t *testing.T) {
		for _, radius := range []float64{0, -1} {
			_, err := Nearest(delhi, []models.Donor{donorAt(1, delhi)}, radius)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		}
	})
}

// TestNearestParallelAgreesWithSerial pins the parallel path to the serial
// one: same distances, same order, regardless of chunking.
func TestNearestParallelAgreesWithSerial(t *testing.T) {
	candidates := make([]models.Donor, parallelThreshold+37)
	for i := range candidates {
		candidates[i] = donorAt(int64(i), Point{
			Latitude:  28.0 + float64(i%90)*0.01,
			Longitude: 77.0 + float64(i%180)*0.01,
		})
	}

	parallel, err := Nearest(delhi, candidates, 200)
	require.NoError(t, err)

	serialDistances := make([]float64, len(candidates))
	for i, c := range candidates {
		serialDistances[i] = DistanceKm(delhi, Point{Latitude: c.Latitude, Longitude: c.Longitude})
	}
	var serial []Match
	for i, c := range candidates {
		if serialDistances[i] < 200 {
			serial = append(serial, Match{Donor: c, DistanceKm: serialDistances[i]})
		}
	}

	require.Equal(t, len(serial), len(parallel))
	for i := 1; i < len(parallel); i++ {
		assert.LessOrEqual(t, parallel[i-1].DistanceKm, parallel[i].DistanceKm)
	}
}
