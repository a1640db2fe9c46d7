package export

import (
	"fmt"
	"image/gif"
	"io"

	"github.com/ravn-k/threebody/internal/gravity"
	"github.com/ravn-k/threebody/internal/viz"
)

// GIFOptions controls the headless animation render.
type GIFOptions struct {
	Width  int // canvas cells
	Height int
	FPS    int
	Stride int // samples per frame; 0 picks one keeping the GIF near 400 frames
}

func (o *GIFOptions) defaults(samples int) {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 40
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Stride <= 0 {
		o.Stride = samples / 400
		if o.Stride < 1 {
			o.Stride = 1
		}
	}
}

// WriteGIF renders the full animation offline: every frame shows each
// body's path up to the frame's sample plus the current position marker,
// exactly like the interactive player.
func WriteGIF(w io.Writer, res *gravity.Result, cam *viz.Camera, opts GIFOptions) error {
	if len(res.Times) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}
	opts.defaults(len(res.Times))

	canvas := viz.NewCanvas(opts.Width, opts.Height)
	radius := viz.FitRadius(res)

	delay := 100 / opts.FPS
	if delay < 2 {
		delay = 2
	}

	anim := gif.GIF{LoopCount: 0}
	for upTo := 1; upTo <= len(res.Times); upTo += opts.Stride {
		viz.RenderFrame(canvas, res, upTo, cam, radius)
		anim.Image = append(anim.Image, canvas.Rasterize(2, 2))
		anim.Delay = append(anim.Delay, delay)
	}
	// Always land on the final sample.
	viz.RenderFrame(canvas, res, len(res.Times), cam, radius)
	anim.Image = append(anim.Image, canvas.Rasterize(2, 2))
	anim.Delay = append(anim.Delay, delay*10)

	return gif.EncodeAll(w, &anim)
}
