// Copyright 2025 Certen Protocol

package verify

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for verification outcomes. A nil
// *Metrics disables instrumentation entirely; Verifier.Verify checks for
// nil before calling Observe.
type Metrics struct {
	outcomes          *prometheus.CounterVec
	signedPowerRatio  prometheus.Histogram
	countedSignatures prometheus.Histogram
	unknownPerCommit  prometheus.Histogram
	invalidPerCommit  prometheus.Histogram
}

// NewMetrics constructs and registers the verifier's collectors against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lightcommit",
			Subsystem: "verify",
			Name:      "outcomes_total",
			Help:      "Count of commit verifications by ok/quorum result.",
		}, []string{"ok", "quorum"}),
		signedPowerRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lightcommit",
			Subsystem: "verify",
			Name:      "signed_power_ratio",
			Help:      "signed_power / total_power per verified commit.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		countedSignatures: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lightcommit",
			Subsystem: "verify",
			Name:      "counted_signatures",
			Help:      "Number of commit-vote signatures attributed to known validators.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		unknownPerCommit: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lightcommit",
			Subsystem: "verify",
			Name:      "unknown_validators_per_commit",
			Help:      "Number of unknown-validator signature slots per commit.",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
		invalidPerCommit: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lightcommit",
			Subsystem: "verify",
			Name:      "invalid_signatures_per_commit",
			Help:      "Number of invalid-signature slots per commit.",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
	}

	reg.MustRegister(m.outcomes, m.signedPowerRatio, m.countedSignatures, m.unknownPerCommit, m.invalidPerCommit)
	return m
}

// Observe records one verification outcome.
func (m *Metrics) Observe(o *Outcome) {
	m.outcomes.WithLabelValues(boolLabel(o.OK), boolLabel(o.Quorum)).Inc()
	m.countedSignatures.Observe(float64(o.CountedSignatures))
	m.unknownPerCommit.Observe(float64(len(o.UnknownValidators)))
	m.invalidPerCommit.Observe(float64(len(o.InvalidSignatures)))

	if o.TotalPower != nil && o.TotalPower.Sign() > 0 && o.SignedPower != nil {
		ratio := new(big.Rat).SetFrac(o.SignedPower, o.TotalPower)
		f, _ := ratio.Float64()
		m.signedPowerRatio.Observe(f)
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
