package verify

import (
	"math/big"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsObserveDoesNotPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Observe(&Outcome{
		OK:                true,
		Quorum:            true,
		SignedPower:       big.NewInt(3),
		TotalPower:        big.NewInt(4),
		CountedSignatures: 3,
		UnknownValidators: []UnknownValidator{{Index: 1, ValidatorAddress: "aa"}},
		InvalidSignatures: nil,
	})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error gathering metrics: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected at least one metric family to be registered")
	}
}

func TestMetricsObserveSkipsRatioWhenTotalPowerZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	// Must not panic or divide by zero when total power is zero or nil.
	m.Observe(&Outcome{OK: false, Quorum: false, SignedPower: big.NewInt(0), TotalPower: big.NewInt(0)})
	m.Observe(&Outcome{OK: false, Quorum: false})
}

func TestBoolLabel(t *testing.T) {
	if boolLabel(true) != "true" || boolLabel(false) != "false" {
		t.Fatal("unexpected boolLabel output")
	}
}
