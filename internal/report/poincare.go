package report

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"fltrace/internal/integrate"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

// Poincare renders a Phi-plane crossing section as a Braille-dot scatter
// plot of (theta, s) for chart-aware traces, panelled with lipgloss.
func Poincare(hits []integrate.Hit, width, height int, title string) string {
	canvas := NewCanvas(width, height)

	var pts []integrate.Hit
	for _, h := range hits {
		if h.Kind == integrate.HitPhi {
			pts = append(pts, h)
		}
	}
	if len(pts) == 0 {
		return panelStyle.Render(titleStyle.Render(title) + "\n" + labelStyle.Render("no Phi-plane crossings recorded"))
	}

	minTheta, maxTheta := pts[0].Y[1], pts[0].Y[1]
	minS, maxS := pts[0].Y[0], pts[0].Y[0]
	for _, h := range pts {
		theta, s := math.Mod(h.Y[1], 2*math.Pi), h.Y[0]
		if theta < minTheta {
			minTheta = theta
		}
		if theta > maxTheta {
			maxTheta = theta
		}
		if s < minS {
			minS = s
		}
		if s > maxS {
			maxS = s
		}
	}
	if maxTheta-minTheta < 1e-9 {
		maxTheta = minTheta + 1
	}
	if maxS-minS < 1e-9 {
		maxS = minS + 1
	}

	subW, subH := width*2, height*4
	for _, h := range pts {
		theta := math.Mod(h.Y[1], 2*math.Pi)
		x := int((theta - minTheta) / (maxTheta - minTheta) * float64(subW-1))
		y := int((1 - (h.Y[0]-minS)/(maxS-minS)) * float64(subH-1))
		canvas.Set(x, y)
	}

	body := canvas.String()
	return panelStyle.Render(titleStyle.Render(title) + "\n" + body + labelStyle.Render(
		"s in ["+trimFloat(minS)+", "+trimFloat(maxS)+"], theta in ["+trimFloat(minTheta)+", "+trimFloat(maxTheta)+"]"))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'g', -1, 64)
}
