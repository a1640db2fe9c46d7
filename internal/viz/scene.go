package viz

import (
	"math"
	"sort"

	"github.com/ravn-k/threebody/internal/gravity"
)

// Camera projects world coordinates onto the canvas with a simple
// rotate-then-perspective pipeline.
type Camera struct {
	Distance float64 // eye distance along +Z
	Near     float64
	RotX     float64
	RotY     float64
	RotZ     float64
	Zoom     float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p gravity.Vec3) gravity.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a world point to sub-pixel canvas coordinates. The boolean
// is false when the point sits behind the near plane.
func (c *Camera) Project(p gravity.Vec3, pw, ph int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	minDim := float64(ph)
	if float64(pw) < minDim {
		minDim = float64(pw)
	}
	scale := minDim / 3.0
	x := int(rot.X*persp*scale) + pw/2
	y := int(-rot.Y*persp*scale) + ph/2
	return x, y, rot.Z, true
}

type segment struct {
	x1, y1, x2, y2 int
	depth          float64
	color          uint8
	marker         bool
	radius         int
}

// FitRadius returns the largest coordinate magnitude across the whole
// trajectory, used to normalize the scene into the camera's unit box. The
// whole run shares one scale so animation frames do not rescale.
func FitRadius(res *gravity.Result) float64 {
	max := 1e-9
	for b := 0; b < gravity.NumBodies; b++ {
		for _, p := range res.Positions[b] {
			for _, v := range [...]float64{p.X, p.Y, p.Z} {
				if a := math.Abs(v); a > max {
					max = a
				}
			}
		}
	}
	return max
}

// RenderFrame draws the three bodies' paths through sample index upTo
// (exclusive) plus a position marker at the newest revealed sample.
// RenderFrame with upTo = len(res.Times) is the static plot. Segments are
// depth-sorted back to front, the painter's algorithm.
func RenderFrame(c *Canvas, res *gravity.Result, upTo int, cam *Camera, radius float64) {
	c.Clear()
	if upTo > len(res.Times) {
		upTo = len(res.Times)
	}
	pw, ph := c.PixelSize()
	inv := 1.0 / radius

	segs := make([]segment, 0, 3*upTo+6)
	segs = appendAxes(segs, cam, pw, ph)

	for b := 0; b < gravity.NumBodies; b++ {
		color := ColorBody1 + uint8(b)
		pts := res.Positions[b]
		var prevX, prevY int
		var prevOK bool
		for i := 0; i < upTo; i++ {
			x, y, depth, ok := cam.Project(pts[i].Scale(inv), pw, ph)
			if ok && prevOK {
				segs = append(segs, segment{prevX, prevY, x, y, depth, color, false, 0})
			}
			prevX, prevY, prevOK = x, y, ok
		}
		if upTo > 0 {
			if x, y, depth, ok := cam.Project(pts[upTo-1].Scale(inv), pw, ph); ok {
				segs = append(segs, segment{x, y, x, y, depth, color, true, 2})
			}
		}
	}

	sort.SliceStable(segs, func(i, j int) bool { return segs[i].depth < segs[j].depth })
	for _, s := range segs {
		switch {
		case s.marker:
			c.Marker(s.x1, s.y1, s.radius, s.color)
		case s.x1 == s.x2 && s.y1 == s.y2:
			c.Set(s.x1, s.y1, s.color)
		default:
			c.Line(s.x1, s.y1, s.x2, s.y2, s.color)
		}
	}
}

func appendAxes(segs []segment, cam *Camera, pw, ph int) []segment {
	origin := gravity.Vec3{}
	for _, axis := range [...]gravity.Vec3{{X: 1}, {Y: 1}, {Z: 1}} {
		x0, y0, d0, ok0 := cam.Project(origin, pw, ph)
		x1, y1, d1, ok1 := cam.Project(axis, pw, ph)
		if ok0 && ok1 {
			segs = append(segs, segment{x0, y0, x1, y1, (d0 + d1) / 2, ColorAxes, false, 0})
		}
	}
	return segs
}
