package store

import (
	"errors"

	"github.com/davidroman0O/borrown"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	stateLabel    = "state"
	stateBorrowed = "borrowed"
	stateOwned    = "owned"
)

type metrics struct {
	promotions prometheus.Counter
	clones     prometheus.Counter
	entries    *prometheus.GaugeVec
}

func newMetrics(namespace string, reg prometheus.Registerer, logger borrown.Logger) *metrics {
	m := &metrics{
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "promotions_total",
			Help:      "Lent entries promoted to owned copies.",
		}),
		clones: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "clones_total",
			Help:      "Owned values duplicated by Clone and Merge.",
		}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "entries",
			Help:      "Entries currently held, by state.",
		}, []string{stateLabel}),
	}

	if reg != nil {
		m.promotions = register(reg, m.promotions, logger)
		m.clones = register(reg, m.clones, logger)
		m.entries = register(reg, m.entries, logger)
	}
	return m
}

// register adds c to reg, reusing an identical collector registered by
// another store.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, logger borrown.Logger) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	logger.Warn("store: failed to register metrics: %v", err)
	return c
}

func stateOf(c cell) string {
	if c.borrowed() {
		return stateBorrowed
	}
	return stateOwned
}

func (m *metrics) added(c cell) {
	m.entries.WithLabelValues(stateOf(c)).Inc()
}

func (m *metrics) removed(c cell) {
	m.entries.WithLabelValues(stateOf(c)).Dec()
}

func (m *metrics) promoted() {
	m.promotions.Inc()
	m.entries.WithLabelValues(stateBorrowed).Dec()
	m.entries.WithLabelValues(stateOwned).Inc()
}
