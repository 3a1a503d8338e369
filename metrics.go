package main

import "github.com/prometheus/client_golang/prometheus"

// runMetrics counts what a reconstruction run saw. A nil *runMetrics
// discards everything.
type runMetrics struct {
	entities    prometheus.Counter
	splines     prometheus.Counter
	cables      prometheus.Counter
	discarded   prometheus.Counter
	stitched    prometheus.Counter
	diagnostics *prometheus.CounterVec
	diameter    prometheus.Histogram
}

func newRunMetrics(reg prometheus.Registerer) *runMetrics {
	m := &runMetrics{
		entities: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepcable_entities_total",
			Help: "Entity statements read from the exchange file",
		}),
		splines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepcable_splines_total",
			Help: "B-spline curves extracted",
		}),
		cables: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepcable_cables_total",
			Help: "Cables reconstructed",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepcable_cables_discarded_total",
			Help: "Cables discarded as noise",
		}),
		stitched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepcable_segments_stitched_total",
			Help: "Cable segments absorbed into another cable by stitching",
		}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stepcable_diagnostics_total",
			Help: "Recoverable problems found during reconstruction",
		}, []string{"kind"}),
		diameter: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stepcable_cable_diameter",
			Help:    "Diameter of reconstructed cables in file units",
			Buckets: []float64{0.5, 1, 2, 3, 5, 8, 12, 20, 30},
		}),
	}
	reg.MustRegister(m.entities, m.splines, m.cables, m.discarded, m.stitched, m.diagnostics, m.diameter)
	return m
}

func (m *runMetrics) diagnostic(kind DiagKind) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(string(kind)).Inc()
}

func (m *runMetrics) parsed(entities, splines int) {
	if m == nil {
		return
	}
	m.entities.Add(float64(entities))
	m.splines.Add(float64(splines))
}

func (m *runMetrics) cable(c *Cable) {
	if m == nil {
		return
	}
	m.cables.Inc()
	m.diameter.Observe(c.Diameter)
}

func (m *runMetrics) noise() {
	if m == nil {
		return
	}
	m.discarded.Inc()
}

func (m *runMetrics) absorbed(n int) {
	if m == nil {
		return
	}
	m.stitched.Add(float64(n))
}
