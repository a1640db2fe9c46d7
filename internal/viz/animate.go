package viz

import (
	"fmt"
	"image"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ravn-k/threebody/internal/gravity"
)

const (
	playerWidth  = 80
	playerHeight = 28
)

type TickMsg time.Time

// Player is the interactive playback model: it replays a finished
// trajectory frame by frame, each frame revealing every body's path up to
// the current sample plus its position marker.
type Player struct {
	res    *gravity.Result
	sys    *gravity.System
	title  string
	canvas *Canvas
	cam    *Camera
	radius float64

	frame   int
	speed   int // samples advanced per tick
	fps     int
	playing bool

	recording bool
	frames    []*image.Paletted
	gifPath   string
	showHelp  bool
}

// NewPlayer builds a player over a successful run. sys may be nil when the
// physical parameters are unknown (energy readout is then omitted).
func NewPlayer(res *gravity.Result, sys *gravity.System, title string, fps int) Player {
	if fps <= 0 {
		fps = 30
	}
	return Player{
		res:     res,
		sys:     sys,
		title:   title,
		canvas:  NewCanvas(playerWidth, playerHeight),
		cam:     NewCamera(),
		radius:  FitRadius(res),
		speed:   1,
		fps:     fps,
		playing: true,
		gifPath: "animation.gif",
	}
}

func (p Player) Init() tea.Cmd {
	return p.tick()
}

func (p Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.playing = !p.playing
		case "r":
			p.frame = 0
		case "[":
			p.playing = false
			p.frame -= p.speed
			if p.frame < 0 {
				p.frame = 0
			}
		case "]":
			p.playing = false
			p.frame += p.speed
			if p.frame >= len(p.res.Times) {
				p.frame = len(p.res.Times) - 1
			}
		case "up", "k":
			if p.speed < 64 {
				p.speed *= 2
			}
		case "down", "j":
			if p.speed > 1 {
				p.speed /= 2
			}
		case "x":
			p.cam.RotateX(0.1)
		case "X":
			p.cam.RotateX(-0.1)
		case "y":
			p.cam.RotateY(0.1)
		case "Y":
			p.cam.RotateY(-0.1)
		case "z":
			p.cam.RotateZ(0.1)
		case "Z":
			p.cam.RotateZ(-0.1)
		case "+", "=":
			p.cam.ZoomIn()
		case "-", "_":
			p.cam.ZoomOut()
		case "g":
			if p.recording {
				p.saveGIF()
				p.recording = false
				p.frames = nil
			} else {
				p.recording = true
				p.frames = make([]*image.Paletted, 0, 256)
			}
		case "?":
			p.showHelp = !p.showHelp
		}
	case TickMsg:
		if p.playing {
			p.frame += p.speed
			if p.frame >= len(p.res.Times) {
				p.frame = len(p.res.Times) - 1
				p.playing = false
			}
		}
		if p.recording {
			RenderFrame(p.canvas, p.res, p.frame+1, p.cam, p.radius)
			p.frames = append(p.frames, p.canvas.Rasterize(2, 2))
		}
		return p, p.tick()
	}
	return p, nil
}

func (p *Player) saveGIF() {
	if len(p.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	delay := 100 / p.fps // centiseconds
	if delay < 2 {
		delay = 2
	}
	for _, frame := range p.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(p.gifPath)
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &anim)
}

func (p Player) View() string {
	RenderFrame(p.canvas, p.res, p.frame+1, p.cam, p.radius)
	canvasView := CanvasStyle.Render(p.canvas.Render())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(p.title)) + "\n")
	status := "PLAYING"
	if !p.playing {
		status = "PAUSED"
	}
	if p.recording {
		status += "  " + FailStyle.Render("REC")
	}
	s.WriteString(status + "\n\n")

	t := p.res.Times[p.frame]
	s.WriteString(LabelStyle.Render("Time") + ValueStyle.Render(fmt.Sprintf("%.2f", t)) + "\n")
	s.WriteString(LabelStyle.Render("Sample") + ValueStyle.Render(fmt.Sprintf("%d / %d", p.frame+1, len(p.res.Times))) + "\n")
	s.WriteString(LabelStyle.Render("Speed") + ValueStyle.Render(fmt.Sprintf("%dx", p.speed)) + "\n")
	if p.sys != nil {
		st := p.res.States[p.frame]
		s.WriteString(LabelStyle.Render("Energy") + ValueStyle.Render(fmt.Sprintf("%.6f", p.sys.Energy(st))) + "\n")
		s.WriteString(LabelStyle.Render("Min sep") + ValueStyle.Render(fmt.Sprintf("%.4f", p.sys.MinSeparation(st))) + "\n")
	}
	s.WriteString("\n" + BodyLegend() + "\n")
	s.WriteString(HelpStyle.Render("SP:Pause R:Restart [ ]:Scrub ↑↓:Speed\nX/Y/Z:Rotate +/-:Zoom G:Record ?:Help Q:Quit"))
	statsView := StatsStyle.Render(s.String())

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if p.showHelp {
		return helpOverlay + "\n" + main
	}
	return main
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from frame 0     ║
║  [ / ]    - Step backward/forward    ║
║  Up/Down  - Playback speed           ║
║  X/Y/Z    - Rotate camera (shift: -) ║
║  + / -    - Zoom                     ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
