package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// WizardSaves counts "save & continue" outcomes: saved, skipped (nothing
	// changed, no gateway call), invalid (required fields missing) and failed.
	WizardSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "wizard_saves_total", Help: "Number of save & continue attempts by document kind and outcome."},
		[]string{"kind", "outcome"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "document_cache_lookups_total", Help: "Number of document cache lookups by result."},
		[]string{"result"},
	)
	OpenSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "resume_builder", Name: "wizard_open_sessions", Help: "Number of editing sessions held in memory."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_builder", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(WizardSaves)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(OpenSessions)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
