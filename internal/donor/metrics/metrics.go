package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the donor module.
// Tracks registration and search counts and critical path durations.
type Metrics struct {
	DonorsRegistered    prometheus.Counter
	RegisterConflicts   prometheus.Counter
	SearchesPerformed   prometheus.Counter
	SearchMatches       prometheus.Histogram
	RegisterDuration    prometheus.Histogram
	SearchDuration      prometheus.Histogram
	ListByGroupDuration prometheus.Histogram
}

// New creates a new Metrics instance with all donor module metrics registered.
func New() *Metrics {
	return &Metrics{
		DonorsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donor_registered_total",
			Help: "Total number of donors registered",
		}),
		RegisterConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donor_register_conflicts_total",
			Help: "Total number of registrations rejected for a duplicate phone",
		}),
		SearchesPerformed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donor_searches_total",
			Help: "Total number of proximity searches performed",
		}),
		SearchMatches: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "donor_search_matches",
			Help:    "Number of donors returned per proximity search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "donor_register_duration_seconds",
			Help:    "Duration of Register operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "donor_search_duration_seconds",
			Help:    "Duration of proximity Search operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ListByGroupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "donor_list_by_group_duration_seconds",
			Help:    "Duration of blood group listing operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementDonorsRegistered records a successful registration.
func (m *Metrics) IncrementDonorsRegistered() {
	m.DonorsRegistered.Inc()
}

// IncrementRegisterConflicts records a duplicate phone rejection.
func (m *Metrics) IncrementRegisterConflicts() {
	m.RegisterConflicts.Inc()
}

// ObserveRegister records the duration of a Register operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// ObserveSearch records the duration and result size of a Search operation.
func (m *Metrics) ObserveSearch(start time.Time, matches int) {
	m.SearchesPerformed.Inc()
	m.SearchMatches.Observe(float64(matches))
	m.SearchDuration.Observe(time.Since(start).Seconds())
}

// ObserveListByGroup records the duration of a group listing operation.
func (m *Metrics) ObserveListByGroup(start time.Time) {
	m.ListByGroupDuration.Observe(time.Since(start).Seconds())
}
