package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/pixee/config"
	"github.com/milk9111/pixee/engine"
	"github.com/milk9111/pixee/input"
	"github.com/milk9111/pixee/render"
	"github.com/milk9111/pixee/script"
)

const (
	squareSize  = 16.0
	squareSpeed = 120.0
	maxMarks    = 32
	blipSound   = "blip"
)

type mark struct {
	x, y float64
}

// Game is the demo: a square steered with the arrows or WASD, placed with
// the mouse, with a pause menu on Escape.
type Game struct {
	ctx     *engine.Context
	systems *engine.Scheduler
	script  *script.Runtime
	ui      *ebitenui.UI
	cursor  *render.Image2D

	watcher    *config.Watcher
	configPath string
	debug      bool

	paused bool
	x, y   float64
	marks  []mark
}

func NewGame(ctx *engine.Context, rt *script.Runtime, debug bool) *Game {
	g := &Game{
		ctx:    ctx,
		script: rt,
		debug:  debug,
		x:      (float64(ctx.Config.Width) - squareSize) / 2,
		y:      (float64(ctx.Config.Height) - squareSize) / 2,
	}

	g.systems = engine.NewScheduler(
		engine.SystemFunc(g.updateControls),
		engine.SystemFunc(g.updateUI),
	)
	if rt != nil {
		g.systems.Add(engine.SystemFunc(g.updateScript))
	} else {
		g.systems.Add(engine.SystemFunc(g.updateMovement))
		g.systems.Add(engine.SystemFunc(g.updatePlacement))
		g.systems.Add(engine.SystemFunc(g.updateSound))
	}

	ctx.SetCallbacks(g.render, g.systems.Update)
	return g
}

// updateControls handles the keys that work whether or not the game is
// paused.
func (g *Game) updateControls(c *engine.Context, dt float64) error {
	if c.Input.ConsumeJustPressed("F12") {
		c.Stop()
		return nil
	}
	if c.Input.ConsumeJustPressed("Escape") {
		g.SetPaused(!g.paused)
	}
	if c.Input.ConsumeJustPressed("F3") {
		g.debug = !g.debug
	}
	return nil
}

func (g *Game) updateUI(c *engine.Context, dt float64) error {
	if g.paused && g.ui != nil {
		g.ui.Update()
	}
	return nil
}

func (g *Game) updateScript(c *engine.Context, dt float64) error {
	if g.paused {
		return nil
	}
	if err := g.script.Run(c, dt); err != nil {
		return err
	}
	if x, ok := g.script.Float("x"); ok {
		g.x = x
	}
	if y, ok := g.script.Float("y"); ok {
		g.y = y
	}
	return nil
}

func (g *Game) updateMovement(c *engine.Context, dt float64) error {
	if g.paused {
		return nil
	}

	var dx, dy float64
	if c.Input.IsDown("ArrowLeft") || c.Input.IsDown("A") {
		dx--
	}
	if c.Input.IsDown("ArrowRight") || c.Input.IsDown("D") {
		dx++
	}
	if c.Input.IsDown("ArrowUp") || c.Input.IsDown("W") {
		dy--
	}
	if c.Input.IsDown("ArrowDown") || c.Input.IsDown("S") {
		dy++
	}

	g.moveTo(g.x+dx*squareSpeed*dt, g.y+dy*squareSpeed*dt)
	return nil
}

func (g *Game) updatePlacement(c *engine.Context, dt float64) error {
	if g.paused || !c.Input.ConsumeJustPressed(input.MouseLeft) {
		return nil
	}
	px, py := c.Pointer.Position()
	g.moveTo(px-squareSize/2, py-squareSize/2)

	g.marks = append(g.marks, mark{x: g.x, y: g.y})
	if len(g.marks) > maxMarks {
		g.marks = g.marks[len(g.marks)-maxMarks:]
	}
	c.Log.Verbosef("Game", "Placed at %.0f,%.0f.", g.x, g.y)
	return nil
}

func (g *Game) updateSound(c *engine.Context, dt float64) error {
	if g.paused {
		return nil
	}
	if c.Input.ConsumeJustPressed("Space") {
		c.Audio.PlaySound(blipSound)
	}
	if c.Input.ConsumeJustPressed("M") {
		c.Audio.ToggleMusic()
	}
	return nil
}

func (g *Game) moveTo(x, y float64) {
	maxX := float64(g.ctx.Config.Width) - squareSize
	maxY := float64(g.ctx.Config.Height) - squareSize
	g.x = min(max(x, 0), maxX)
	g.y = min(max(y, 0), maxY)
}

func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if g.ctx.Audio.MusicName() != "" {
		if paused {
			g.ctx.Audio.PauseMusic()
		} else {
			g.ctx.Audio.PlayMusic()
		}
	}
	g.ctx.Log.Infof("Game", "Paused: %t.", paused)
}

func (g *Game) Paused() bool { return g.paused }

func (g *Game) render(c *engine.Context, r *render.Renderer) {
	r.ClearScreen()

	setColor(r, colornames.Slategray, 0.6)
	for _, m := range g.marks {
		r.DrawRect(m.x+squareSize/4, m.y+squareSize/4, squareSize/2, squareSize/2)
	}

	if g.paused {
		setColor(r, colornames.Gray, 1)
	} else {
		setColor(r, colornames.Orange, 1)
	}
	r.DrawRect(g.x, g.y, squareSize, squareSize)

	if g.paused && g.ui != nil && r.Ready() {
		g.ui.Draw(r.Target())
	}

	clip := 0
	if c.Input.IsDown(input.MouseLeft) {
		clip = 1
	}
	px, py := c.Pointer.Position()
	r.DrawImage(g.cursor, clip, px-float64(g.cursorWidth())/2, py-float64(g.cursorWidth())/2)
}

func (g *Game) cursorWidth() int {
	if g.cursor == nil {
		return 0
	}
	return g.cursor.ClipWidth
}

func setColor(r *render.Renderer, c color.RGBA, alpha float64) {
	r.SetRenderColorRGBA(c.R, c.G, c.B, alpha)
}

// drawOverlay prints pacing and input diagnostics over a rendered frame.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	if !g.debug {
		return
	}
	ebitenutil.DebugPrint(screen, g.debugText())
}

func (g *Game) debugText() string {
	c := g.ctx
	held := strings.Join(c.Input.Held(), " ")
	if held == "" {
		held = "-"
	}
	return fmt.Sprintf("%s  fps %.0f (measured %.2f)  tps %.0f\nheld: %s\nframes %d  ticks %d",
		c.Clock.ElapsedFormatted(),
		c.Pacer.DesiredFPS(),
		c.Pacer.MeasuredFPS(),
		ebiten.ActualTPS(),
		held,
		c.Pacer.FrameCount(),
		c.Ticks(),
	)
}

// Watch makes each tick drain w and reload path when it changes.
func (g *Game) Watch(w *config.Watcher, path string) {
	g.watcher = w
	g.configPath = path
}

func (g *Game) beforeTick() error {
	if g.watcher == nil {
		return nil
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.ctx.Log.Warningf("Config", "Watcher: %v", err)
		}
	default:
	}

	for {
		name, ok := g.watcher.Poll()
		if !ok {
			return nil
		}
		if !sameFile(name, g.configPath) {
			continue
		}
		g.reload()
	}
}

func (g *Game) reload() {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		g.ctx.Log.Warningf("Config", "Reload failed, keeping current settings: %v", err)
		return
	}
	if err := g.ctx.Apply(cfg); err != nil {
		g.ctx.Log.Warningf("Config", "Reload rejected: %v", err)
	}
}
