package metrics

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewOtelInstrumentsWithNoopProvider(t *testing.T) {
	inst, err := newOtelInstruments(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inst.recordGame(false, -12.5)
	inst.recordSeries(7)
	inst.recordChampion("DEN")
	inst.recordPoller(time.Second, nil)
}

func TestNilInstrumentsAreInert(t *testing.T) {
	var inst *otelInstruments
	inst.recordHTTPRequest("GET", "/teams", 200, time.Millisecond)
	inst.recordProviderAttempt("fixture", time.Millisecond, nil)
	inst.recordRateLimit("balldontlie", time.Second)
	inst.recordPoller(time.Millisecond, nil)
	inst.recordGame(true, 3)
	inst.recordSeries(4)
	inst.recordChampion("BOS")
}

func TestInstrumentBuilderKeepsFirstError(t *testing.T) {
	b := &instrumentBuilder{}
	first := errTest("first")
	b.keep(nil)
	b.keep(first)
	b.keep(errTest("second"))
	if b.err != first {
		t.Fatalf("kept %v, want first error", b.err)
	}
}

func TestMillisKeepsFractions(t *testing.T) {
	if got := millis(1500 * time.Microsecond); got != 1.5 {
		t.Fatalf("millis = %v, want 1.5", got)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
