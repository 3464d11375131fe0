package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for WorkflowTransitionsTotal
const (
	OutcomeOK        = "ok"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeConflict  = "conflict"
	OutcomeInvalid   = "validation"
	OutcomeError     = "error"
)

var (
	WorkflowTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Workflow operations by outcome",
		},
		[]string{"workflow", "operation", "outcome"},
	)

	CertificationsRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certifications_removed_total",
			Help: "Certification rows deleted by resets and executed uncertifications",
		},
		[]string{"source"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
