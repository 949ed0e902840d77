package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"fltrace/internal/integrate"
)

// TimeSeries plots one state component against time using asciigraph,
// the way the teacher's live view plots an energy history.
func TimeSeries(path []integrate.Sample, component int, caption string) string {
	if len(path) == 0 {
		return labelStyle.Render("no samples to plot")
	}
	data := make([]float64, 0, len(path))
	for _, s := range path {
		if component < len(s.Y) {
			data = append(data, s.Y[component])
		}
	}
	if len(data) == 0 {
		return labelStyle.Render("component out of range")
	}
	return asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(caption))
}

// Summary renders a short styled panel describing the run: sample count,
// event counts by kind, and final time.
func Summary(mode string, path []integrate.Sample, hits []integrate.Hit) string {
	counts := map[integrate.HitKind]int{}
	for _, h := range hits {
		counts[h.Kind]++
	}
	finalT := 0.0
	if len(path) > 0 {
		finalT = path[len(path)-1].T
	}
	body := fmt.Sprintf(
		"mode: %s\nsamples: %d\nfinal t: %.6g\nvpar hits: %d  phi hits: %d  stop hits: %d",
		mode, len(path), finalT, counts[integrate.HitVpar], counts[integrate.HitPhi], counts[integrate.HitStop],
	)
	return panelStyle.Render(titleStyle.Render("trace summary") + "\n" + body)
}
