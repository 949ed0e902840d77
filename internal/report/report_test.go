package report

import (
	"strings"
	"testing"

	"fltrace/internal/dynamo"
	"fltrace/internal/integrate"
)

func TestPoincareNoHitsRendersMessage(t *testing.T) {
	out := Poincare(nil, 20, 10, "test")
	if !strings.Contains(out, "no Phi-plane crossings") {
		t.Errorf("expected placeholder message, got %q", out)
	}
}

func TestPoincareRendersDots(t *testing.T) {
	hits := []integrate.Hit{
		{T: 1, Kind: integrate.HitPhi, Y: dynamo.State{0.3, 0.1, 0, 0}},
		{T: 2, Kind: integrate.HitPhi, Y: dynamo.State{0.5, 4.0, 0, 0}},
	}
	out := Poincare(hits, 20, 10, "poincare")
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestTimeSeriesEmptyPath(t *testing.T) {
	out := TimeSeries(nil, 0, "empty")
	if !strings.Contains(out, "no samples") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestSummaryCountsHitsByKind(t *testing.T) {
	path := []integrate.Sample{{T: 0}, {T: 1}, {T: 2}}
	hits := []integrate.Hit{
		{Kind: integrate.HitPhi}, {Kind: integrate.HitPhi}, {Kind: integrate.HitVpar},
	}
	out := Summary("fieldline", path, hits)
	if !strings.Contains(out, "phi hits: 2") || !strings.Contains(out, "vpar hits: 1") {
		t.Errorf("summary missing expected counts: %q", out)
	}
}
