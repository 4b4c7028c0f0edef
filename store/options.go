package store

import (
	"github.com/davidroman0O/borrown"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes metric names unless WithNamespace says otherwise.
const DefaultNamespace = "borrown"

// Option is a function that configures a Store
type Option func(*Store)

// WithLogger sets the logger for the store
func WithLogger(logger borrown.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegisterer registers the store metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Store) {
		s.registerer = reg
	}
}

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		s.namespace = namespace
	}
}
