package viz

import (
	"image"
	"image/color"
)

// GIFPalette maps canvas color indices to image palette entries; index 0
// is the background.
var GIFPalette = color.Palette{
	color.Black,
	color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff},
	color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff},
	color.RGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xff},
	color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff},
}

// Rasterize converts the canvas into a paletted image, one image pixel
// block per braille dot, for GIF assembly.
func (c *Canvas) Rasterize(dotW, dotH int) *image.Paletted {
	pw, ph := c.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, pw*dotW, ph*dotH), GIFPalette)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !c.Dot(x, y) {
				continue
			}
			_, ci := c.Cell(x/2, y/4)
			if ci == ColorNone {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, ci)
				}
			}
		}
	}
	return img
}
