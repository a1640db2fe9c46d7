package export

import (
	"bytes"
	"image/gif"
	"math"
	"strings"
	"testing"

	"github.com/ravn-k/threebody/internal/gravity"
	"github.com/ravn-k/threebody/internal/viz"
)

func circleResult(n int) *gravity.Result {
	res := &gravity.Result{Success: true}
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		res.Times = append(res.Times, float64(i))
		res.Positions[0] = append(res.Positions[0], gravity.Vec3{X: math.Cos(a), Y: math.Sin(a)})
		res.Positions[1] = append(res.Positions[1], gravity.Vec3{X: -0.5 * math.Cos(a), Z: 0.2})
		res.Positions[2] = append(res.Positions[2], gravity.Vec3{Y: -0.5 * math.Sin(a), Z: -0.2})
	}
	return res
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, circleResult(64), 400, 300, viz.NewCamera()); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, `<?xml`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(out, `width="400" height="300"`) {
		t.Error("missing dimensions")
	}
	if got := strings.Count(out, "<path"); got != gravity.NumBodies {
		t.Errorf("got %d paths, want %d", got, gravity.NumBodies)
	}
	for _, color := range svgColors {
		if !strings.Contains(out, color) {
			t.Errorf("missing body color %s", color)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("unterminated document")
	}
}

func TestWriteSVG_EmptyTrajectory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, &gravity.Result{}, 100, 100, viz.NewCamera()); err == nil {
		t.Error("expected error for empty trajectory")
	}
}

func TestWriteGIF(t *testing.T) {
	var buf bytes.Buffer
	res := circleResult(40)
	opts := GIFOptions{Width: 20, Height: 10, FPS: 25, Stride: 10}
	if err := WriteGIF(&buf, res, viz.NewCamera(), opts); err != nil {
		t.Fatalf("write gif: %v", err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	// Samples 1,11,21,31 plus the closing full frame.
	if len(anim.Image) != 5 {
		t.Errorf("got %d frames, want 5", len(anim.Image))
	}
	b := anim.Image[0].Bounds()
	if b.Dx() != 20*2*2 || b.Dy() != 10*4*2 {
		t.Errorf("frame size %dx%d, want 80x80", b.Dx(), b.Dy())
	}
	last := len(anim.Delay) - 1
	if anim.Delay[last] <= anim.Delay[0] {
		t.Error("final frame should linger")
	}
}

func TestWriteGIF_EmptyTrajectory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGIF(&buf, &gravity.Result{}, viz.NewCamera(), GIFOptions{}); err == nil {
		t.Error("expected error for empty trajectory")
	}
}
