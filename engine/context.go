package engine

import (
	"fmt"
	"image"
	"io"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pixee/assert"
	"github.com/milk9111/pixee/audio"
	"github.com/milk9111/pixee/clock"
	"github.com/milk9111/pixee/config"
	"github.com/milk9111/pixee/input"
	"github.com/milk9111/pixee/logger"
	"github.com/milk9111/pixee/render"
)

const (
	Name    = "pixee"
	Version = "0.3.0"
)

const source = "Engine"

// UpdateFunc runs game logic once per tick with the seconds since the
// previous tick.
type UpdateFunc func(c *Context, dt float64) error

// RenderFunc draws a frame. It only runs on ticks the pacer marks as frame
// boundaries.
type RenderFunc func(c *Context, r *render.Renderer)

// Context owns everything one running game needs. There is no package level
// engine; pass the Context to whatever needs it.
type Context struct {
	Config config.Config

	Clock    *clock.WallClock
	Pacer    *clock.FramePacer
	Input    *input.State
	Pointer  *input.Pointer
	Source   *input.Source
	Log      *logger.Logger
	Renderer *render.Renderer
	Audio    *audio.Audio

	update UpdateFunc
	render RenderFunc

	running       bool
	ticking       bool
	renderPending bool
	ticks         uint64
}

type options struct {
	time   clock.TimeSource
	device input.Device
	log    *logger.Logger
	out    io.Writer
	audio  *audio.Audio
}

type Option func(*options)

// WithTimeSource replaces the system clock.
func WithTimeSource(ts clock.TimeSource) Option {
	return func(o *options) { o.time = ts }
}

// WithDevice replaces the Ebitengine input device.
func WithDevice(d input.Device) Option {
	return func(o *options) { o.device = d }
}

// WithLogger uses log instead of building one from the configuration.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithLogOutput sends the configured logger's output to w.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithAudio attaches an audio capability. Sounds named in the configuration
// are loaded into it.
func WithAudio(a *audio.Audio) Option {
	return func(o *options) { o.audio = a }
}

func New(cfg config.Config, opts ...Option) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		Config:  cfg,
		Clock:   clock.NewWallClock(o.time),
		Pacer:   clock.NewFramePacer(cfg.DesiredFPS),
		Input:   input.NewState(cfg.JustWindow()),
		Pointer: &input.Pointer{},
		Audio:   o.audio,
		running: true,
	}

	c.Log = o.log
	if c.Log == nil {
		c.Log = logger.New(o.out, logger.Options{
			Debug:      cfg.Log.Debug,
			Timestamp:  cfg.Log.Timestamp,
			SingleLine: cfg.Log.SingleLine,
			Level:      cfg.LogLevel(),
			Clock:      c.Clock,
		})
	} else {
		c.Log.SetClock(c.Clock)
	}
	c.Log.Info(Name, fmt.Sprintf("%s - %s", Name, Version))

	c.Source = input.NewSource(o.device, c.Input, c.Pointer, c.viewport())

	r, err := render.New(cfg.Width, cfg.Height, cfg.ClearColor, c.Log)
	if err != nil {
		return nil, err
	}
	c.Renderer = r

	c.loadSounds()
	return c, nil
}

func (c *Context) viewport() input.Viewport {
	return input.Viewport{
		Origin: image.Point{},
		Width:  float64(c.Config.Width),
		Height: float64(c.Config.Height),
	}
}

func (c *Context) loadSounds() {
	if c.Audio == nil {
		return
	}
	c.Audio.SetLogger(c.Log)
	ac := c.Config.Audio
	for _, name := range ac.Sounds {
		if err := c.Audio.LoadSound(name, ac.SoundsDir); err != nil {
			c.Log.Warning(source, err.Error())
		}
	}
	if ac.Music == "" {
		return
	}
	if err := c.Audio.LoadMusic(ac.Music, ac.MusicDir, ac.LoopMusic); err != nil {
		c.Log.Warning(source, err.Error())
	}
}

// SetCallbacks installs the render and update hooks. Either may be nil.
func (c *Context) SetCallbacks(render RenderFunc, update UpdateFunc) {
	c.render = render
	c.update = update
}

// Tick runs one host iteration: apply pending input edges, advance the
// clock, decay input, update, then ask the pacer for a frame boundary. It
// does nothing once the context is stopped. An error from the update
// callback is returned unchanged.
func (c *Context) Tick() error {
	if !c.running {
		return nil
	}
	assert.That(!c.ticking, "engine: Tick called from inside a tick")
	c.ticking = true
	defer func() { c.ticking = false }()

	c.Source.Poll()

	dt := c.Clock.Tick()
	c.Input.Decay(dt)

	if c.update != nil {
		clockTicks, decays := c.Clock.Ticks(), c.Input.Decays()
		if err := c.update(c, dt); err != nil {
			return err
		}
		assert.That(c.Clock.Ticks() == clockTicks, "engine: clock ticked from inside update")
		assert.That(c.Input.Decays() == decays, "engine: input decayed from inside update")
	}

	c.Pacer.Accumulate(dt * 1000)
	if c.Pacer.ShouldRender() {
		c.renderPending = true
	}
	c.ticks++
	return nil
}

// RenderPending reports whether the next Draw will call the render hook.
func (c *Context) RenderPending() bool {
	return c.renderPending
}

// Draw binds the renderer to screen and, if the pacer marked a frame
// boundary since the last Draw, calls the render hook. It reports whether
// the hook ran.
func (c *Context) Draw(screen *ebiten.Image) bool {
	c.Renderer.Bind(screen)
	if !c.renderPending {
		return false
	}
	c.renderPending = false
	if c.render != nil {
		c.render(c, c.Renderer)
	}
	return true
}

// Ticks returns how many ticks have completed.
func (c *Context) Ticks() uint64 {
	return c.ticks
}

// Stop halts the loop before the next tick. Work in the current tick is
// never interrupted.
func (c *Context) Stop() {
	if c.running {
		c.Log.Info(source, "Stopping.")
	}
	c.running = false
}

func (c *Context) Running() bool {
	return c.running
}

// Apply takes the live-reloadable parts of cfg: pacing, clear colour and
// logging.
func (c *Context) Apply(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := c.Renderer.SetClearColor(cfg.ClearColor); err != nil {
		return err
	}
	c.Pacer.SetDesiredFPS(cfg.DesiredFPS)
	c.Log.EnableDebug(cfg.Log.Debug)
	if err := c.Log.SetLevel(cfg.LogLevel()); err != nil {
		return err
	}

	c.Config.ClearColor = cfg.ClearColor
	c.Config.DesiredFPS = cfg.DesiredFPS
	c.Config.Log = cfg.Log
	c.Log.Info(source, fmt.Sprintf("Configuration applied: %.0f fps, clear %s.", cfg.DesiredFPS, cfg.ClearColor))
	return nil
}
