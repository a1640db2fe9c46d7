package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/ravn-k/threebody/internal/gravity"
)

// StaticPlot renders the full trajectory as a colored 3D path plot with a
// legend, the terminal analogue of the original static preview figure.
func StaticPlot(res *gravity.Result, width, height int, cam *Camera) string {
	c := NewCanvas(width, height)
	RenderFrame(c, res, len(res.Times), cam, FitRadius(res))
	return CanvasStyle.Render(c.Render()) + "\n" + CanvasStyle.Render(BodyLegend()) + "\n"
}

// CoordinatePlots renders per-body coordinate time series as line charts,
// one chart per axis.
func CoordinatePlots(res *gravity.Result, body int, width, height int) string {
	if body < 0 || body >= gravity.NumBodies || len(res.Positions[body]) == 0 {
		return ""
	}
	var b strings.Builder
	axes := [...]struct {
		name string
		get  func(gravity.Vec3) float64
	}{
		{"x", func(p gravity.Vec3) float64 { return p.X }},
		{"y", func(p gravity.Vec3) float64 { return p.Y }},
		{"z", func(p gravity.Vec3) float64 { return p.Z }},
	}
	for _, axis := range axes {
		data := make([]float64, len(res.Positions[body]))
		for i, p := range res.Positions[body] {
			data[i] = axis.get(p)
		}
		chart := asciigraph.Plot(data,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("body %d: %s vs time", body+1, axis.name)),
		)
		b.WriteString(chart)
		b.WriteString("\n\n")
	}
	return b.String()
}
