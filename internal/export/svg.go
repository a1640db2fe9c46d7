// Package export writes trajectories to standalone image formats: an SVG
// of the projected static plot and an animated GIF mirroring the
// interactive playback, rendered headless.
package export

import (
	"fmt"
	"io"

	"github.com/ravn-k/threebody/internal/gravity"
	"github.com/ravn-k/threebody/internal/viz"
)

var svgColors = [gravity.NumBodies]string{"#ff4040", "#40ff40", "#40a0ff"}

// WriteSVG writes the camera-projected trajectory paths as an SVG with one
// polyline per body.
func WriteSVG(w io.Writer, res *gravity.Result, width, height int, cam *viz.Camera) error {
	if len(res.Times) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}
	if _, err := fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height); err != nil {
		return err
	}

	radius := viz.FitRadius(res)
	inv := 1.0 / radius
	for b := 0; b < gravity.NumBodies; b++ {
		if _, err := fmt.Fprintf(w, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, svgColors[b]); err != nil {
			return err
		}
		started := false
		for _, p := range res.Positions[b] {
			x, y, _, ok := cam.Project(p.Scale(inv), width, height)
			if !ok {
				continue
			}
			cmd := " L"
			if !started {
				cmd = "M"
				started = true
			}
			if _, err := fmt.Fprintf(w, "%s%d,%d", cmd, x, y); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\"/>\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</svg>\n")
	return err
}
