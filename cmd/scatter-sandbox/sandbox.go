package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scatter/config"
	"github.com/lixenwraith/scatter/sampler"
	"github.com/lixenwraith/scatter/viewport"
	"github.com/lixenwraith/scatter/vmath"
)

const (
	pointGlyph = '●'
	probeGlyph = '+'

	separationStep = 0.5
	marginStep     = 0.05
)

var (
	stylePoint   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleProbe   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
)

// probe is the last clicked cell and its world-space readout
type probe struct {
	col, row int
	world    vmath.Vec2
	edges    vmath.Vec2
	inside   bool
}

// sandbox owns the terminal view of one scatter
// Bottom row is the status line, everything above is the camera's screen
type sandbox struct {
	screen  tcell.Screen
	cfg     config.Config
	cam     *viewport.Camera
	sampler *sampler.Sampler
	cues    cuePlayer

	width, height int

	result  sampler.Result
	elapsed time.Duration
	lastErr error
	probe   *probe
}

func newSandbox(screen tcell.Screen, cfg config.Config, cues cuePlayer) (*sandbox, error) {
	smp, err := sampler.New(cfg.Sampler)
	if err != nil {
		return nil, err
	}

	seed := cfg.Sandbox.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &sandbox{
		screen:  screen,
		cfg:     cfg,
		sampler: smp,
		cues:    cues,
		cam:     viewport.NewCamera(0, 0, cfg.Camera.OrthographicSize, vmath.NewFastRand(seed)),
	}
	s.cam.MaxMargin = cfg.Sampler.MaxMargin

	w, h := screen.Size()
	s.resize(w, h)
	return s, nil
}

func (s *sandbox) playRows() int {
	if s.height < 2 {
		return 0
	}
	return s.height - 1
}

func (s *sandbox) resize(w, h int) {
	s.width, s.height = w, h
	pixelHeight := int(math.Round(float64(s.playRows()) * s.cfg.Camera.CellAspect))
	s.cam.Resize(w, pixelHeight)
	s.probe = nil
	s.resample()
}

// applyConfig swaps in a reloaded configuration, keeping the camera's RNG
func (s *sandbox) applyConfig(cfg config.Config) {
	smp, err := sampler.New(cfg.Sampler)
	if err != nil {
		s.lastErr = err
		log.Printf("sandbox: rejected config: %v", err)
		return
	}
	s.sampler = smp
	s.cfg = cfg
	s.cam.OrthographicSize = cfg.Camera.OrthographicSize
	s.cam.MaxMargin = cfg.Sampler.MaxMargin
	log.Printf("sandbox: config applied: %+v", cfg.Scatter)
	s.resize(s.width, s.height)
}

func (s *sandbox) resample() {
	if s.cam.PixelWidth <= 0 || s.cam.PixelHeight <= 0 {
		s.result = sampler.Result{}
		return
	}

	start := time.Now()
	res, err := s.sampler.Sample(s.cfg.Scatter.Request(), s.cam)
	s.elapsed = time.Since(start)
	if err != nil {
		s.lastErr = err
		log.Printf("sandbox: sample failed: %v", err)
		return
	}

	s.result = res
	s.lastErr = nil
	log.Printf("sandbox: placed %d/%d in %d iterations (%v)", len(res.Points), res.Requested, res.Iterations, s.elapsed)

	if s.cues != nil && res.Requested > 0 {
		s.cues.Cue(res.Partial())
	}
}

// handleKey applies one keypress, returns false to quit
func (s *sandbox) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	sc := &s.cfg.Scatter
	switch r {
	case 'q', 'Q':
		return false
	case ' ', 'r', 'R':
	case '+', '=':
		sc.Count++
	case '-', '_':
		if sc.Count > 0 {
			sc.Count--
		}
	case ']':
		sc.MinSeparation += separationStep
	case '[':
		sc.MinSeparation = math.Max(0, sc.MinSeparation-separationStep)
	case '>', '.':
		sc.EdgeMargin = stepMargin(sc.EdgeMargin, marginStep, s.cfg.Sampler.MaxMargin)
	case '<', ',':
		sc.EdgeMargin = stepMargin(sc.EdgeMargin, -marginStep, s.cfg.Sampler.MaxMargin)
	default:
		return true
	}

	s.resample()
	return true
}

// stepMargin moves m by delta, rounded to hundredths and clamped to [0, limit]
func stepMargin(m, delta, limit float64) float64 {
	m = math.Round((m+delta)*100) / 100
	return math.Max(0, math.Min(limit, m))
}

// handleClick records a world-space probe at the clicked cell
func (s *sandbox) handleClick(col, row int) {
	if row >= s.playRows() {
		s.probe = nil
		return
	}
	screenPt := s.cellToScreen(col, row)
	world := s.cam.ScreenToWorld(screenPt)
	s.probe = &probe{
		col:    col,
		row:    row,
		world:  world,
		edges:  s.cam.DistanceToNearestEdges(world),
		inside: s.cam.IsInsideScreen(screenPt),
	}
}

// cellToScreen returns the camera pixel at the centre of a cell
func (s *sandbox) cellToScreen(col, row int) vmath.Vec2 {
	return vmath.Vec2{
		X: float64(col) + 0.5,
		Y: (float64(s.playRows()-row) - 0.5) * s.cfg.Camera.CellAspect,
	}
}

// worldToCell returns the terminal cell showing a world point, clamped to the play area
func (s *sandbox) worldToCell(p vmath.Vec2) (col, row int) {
	sp := s.cam.WorldToScreen(p)
	rows := s.playRows()
	col = int(math.Floor(sp.X))
	row = rows - 1 - int(math.Floor(sp.Y/s.cfg.Camera.CellAspect))
	col = max(0, min(s.width-1, col))
	row = max(0, min(rows-1, row))
	return col, row
}

func (s *sandbox) render() {
	s.screen.Clear()

	if s.playRows() > 0 && s.width > 0 {
		for _, p := range s.result.Points {
			col, row := s.worldToCell(p)
			s.screen.SetContent(col, row, pointGlyph, nil, stylePoint)
		}
		if s.probe != nil {
			s.screen.SetContent(s.probe.col, s.probe.row, probeGlyph, nil, styleProbe)
		}
	}

	if s.height > 0 {
		text, style := s.statusLine()
		drawLine(s.screen, 0, s.height-1, s.width, text, style)
	}

	s.screen.Show()
}

func (s *sandbox) statusLine() (string, tcell.Style) {
	sc := s.cfg.Scatter
	if s.lastErr != nil {
		return fmt.Sprintf(" error: %v ", s.lastErr), styleError
	}

	text := fmt.Sprintf(" placed %d/%d  sep %.2f  margin %.2f  iter %d  %v",
		len(s.result.Points), sc.Count, sc.MinSeparation, sc.EdgeMargin, s.result.Iterations, s.elapsed.Round(time.Microsecond))
	style := styleStatus

	if s.result.Relaxed {
		text += "  relaxed"
	}
	if s.result.Partial() {
		text += fmt.Sprintf("  short %d", s.result.Shortfall)
		style = styleWarning
	}
	if p := s.probe; p != nil {
		text += fmt.Sprintf("  probe (%.2f, %.2f) edge (%.2f, %.2f)", p.world.X, p.world.Y, p.edges.X, p.edges.Y)
		if !p.inside {
			text += " offscreen"
		}
	}
	return text, style
}

// drawLine writes text at row y, padding the rest of the row with style
func drawLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}

// handleEvent dispatches one tcell event, returns false to quit
func (s *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		w, h := ev.Size()
		s.resize(w, h)
		s.screen.Sync()
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			s.handleClick(x, y)
		}
	case *tcell.EventInterrupt:
		if cfg, ok := ev.Data().(config.Config); ok {
			s.applyConfig(cfg)
		}
	}
	return true
}

// run polls events until quit or the screen closes
func (s *sandbox) run() {
	s.render()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if !s.handleEvent(ev) {
			return
		}
		s.render()
	}
}
