package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutcome(t *testing.T) {
	if Outcome(nil) != "ok" {
		t.Errorf("expected ok, got %s", Outcome(nil))
	}
	if Outcome(errors.New("boom")) != "error" {
		t.Errorf("expected error, got %s", Outcome(errors.New("boom")))
	}
}

func TestCalculationsTotalCounts(t *testing.T) {
	c := CalculationsTotal.WithLabelValues(EngineAHP, "ok")
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("expected %f, got %f", before+1, got)
	}
}

func TestHcroiZonesCounts(t *testing.T) {
	c := HcroiZones.WithLabelValues("red")
	before := testutil.ToFloat64(c)
	c.Add(2)
	if got := testutil.ToFloat64(c); got != before+2 {
		t.Errorf("expected %f, got %f", before+2, got)
	}
}
