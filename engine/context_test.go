package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pixee/assert"
	"github.com/milk9111/pixee/audio"
	"github.com/milk9111/pixee/config"
	"github.com/milk9111/pixee/logger"
	"github.com/milk9111/pixee/render"
)

type fakeTime struct {
	current time.Time
}

func (f *fakeTime) Now() time.Time          { return f.current }
func (f *fakeTime) Advance(d time.Duration) { f.current = f.current.Add(d) }

type fakeDevice struct {
	pressed  []ebiten.Key
	released []ebiten.Key
	x, y     int
}

func (d *fakeDevice) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	keys = append(keys, d.pressed...)
	d.pressed = nil
	return keys
}

func (d *fakeDevice) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	keys = append(keys, d.released...)
	d.released = nil
	return keys
}

func (d *fakeDevice) IsMouseButtonJustPressed(ebiten.MouseButton) bool  { return false }
func (d *fakeDevice) IsMouseButtonJustReleased(ebiten.MouseButton) bool { return false }
func (d *fakeDevice) CursorPosition() (int, int)                        { return d.x, d.y }
func (d *fakeDevice) IsFocused() bool                                   { return true }

type harness struct {
	ctx  *Context
	time *fakeTime
	dev  *fakeDevice
	log  *bytes.Buffer
}

func newHarness(t *testing.T, cfg config.Config) *harness {
	t.Helper()
	h := &harness{
		time: &fakeTime{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		dev:  &fakeDevice{},
		log:  &bytes.Buffer{},
	}
	ctx, err := New(cfg, WithTimeSource(h.time), WithDevice(h.dev), WithLogOutput(h.log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.ctx = ctx
	return h
}

// step advances time and runs one tick.
func (h *harness) step(t *testing.T, d time.Duration) {
	t.Helper()
	h.time.Advance(d)
	if err := h.ctx.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
}

func TestNewLogsBanner(t *testing.T) {
	h := newHarness(t, config.Default())
	if !strings.Contains(h.log.String(), "pixee - "+Version) {
		t.Fatalf("expected banner, got %q", h.log.String())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DesiredFPS = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	cfg = config.Default()
	cfg.ClearColor = "not a colour"
	if _, err := New(cfg, WithLogOutput(&bytes.Buffer{})); err == nil {
		t.Fatalf("expected clear colour error")
	}
}

func TestTickOrder(t *testing.T) {
	h := newHarness(t, config.Default())

	var seen []string
	var dts []float64
	h.ctx.SetCallbacks(nil, func(c *Context, dt float64) error {
		dts = append(dts, dt)
		if c.Input.ConsumeJustPressed("Space") {
			seen = append(seen, "space")
		}
		return nil
	})

	h.dev.pressed = []ebiten.Key{ebiten.KeySpace}
	h.step(t, 16*time.Millisecond)
	h.step(t, 16*time.Millisecond)

	if len(seen) != 1 {
		t.Fatalf("expected the press seen once by update, got %v", seen)
	}
	if len(dts) != 2 || dts[0] != 0.016 || dts[1] != 0.016 {
		t.Fatalf("expected update to receive clock deltas, got %v", dts)
	}
	if h.ctx.Ticks() != 2 {
		t.Fatalf("expected 2 ticks, got %d", h.ctx.Ticks())
	}
}

func TestTickDecaysBeforeUpdate(t *testing.T) {
	h := newHarness(t, config.Default())

	var pressedSeen bool
	h.ctx.SetCallbacks(nil, func(c *Context, dt float64) error {
		pressedSeen = c.Input.ConsumeJustPressed("A")
		return nil
	})

	// The press lands on a tick whose delta already exceeds the just window,
	// so decay expires it before update can see it.
	h.dev.pressed = []ebiten.Key{ebiten.KeyA}
	h.step(t, 100*time.Millisecond)
	if pressedSeen {
		t.Fatalf("expected press expired by decay before update")
	}
	if !h.ctx.Input.IsDown("A") {
		t.Fatalf("expired press must leave the key held")
	}
}

func TestDrawFollowsPacer(t *testing.T) {
	h := newHarness(t, config.Default())

	renders := 0
	h.ctx.SetCallbacks(func(c *Context, r *render.Renderer) {
		renders++
		if r != c.Renderer {
			t.Fatalf("render hook should receive the context renderer")
		}
	}, nil)

	// 30fps: one frame boundary every 33.3ms of ticks at 10ms.
	for i := 0; i < 3; i++ {
		h.step(t, 10*time.Millisecond)
		if h.ctx.Draw(nil) {
			t.Fatalf("tick %d: rendered before the interval passed", i)
		}
	}
	h.step(t, 10*time.Millisecond)
	if !h.ctx.RenderPending() {
		t.Fatalf("expected a pending render after 40ms")
	}
	if !h.ctx.Draw(nil) || renders != 1 {
		t.Fatalf("expected one render, got %d", renders)
	}
	if h.ctx.Draw(nil) {
		t.Fatalf("a pending render is consumed by one Draw")
	}
	if h.ctx.Pacer.FrameCount() != 1 {
		t.Fatalf("expected one paced frame, got %d", h.ctx.Pacer.FrameCount())
	}
}

func TestUpdateErrorStopsTick(t *testing.T) {
	h := newHarness(t, config.Default())
	boom := errors.New("boom")
	h.ctx.SetCallbacks(nil, func(*Context, float64) error { return boom })

	h.time.Advance(time.Second)
	if err := h.ctx.Tick(); !errors.Is(err, boom) {
		t.Fatalf("expected update error, got %v", err)
	}
	if h.ctx.RenderPending() {
		t.Fatalf("a failed tick must not request a render")
	}
}

func TestStop(t *testing.T) {
	h := newHarness(t, config.Default())
	calls := 0
	h.ctx.SetCallbacks(nil, func(c *Context, dt float64) error {
		calls++
		c.Stop()
		return nil
	})

	h.step(t, 10*time.Millisecond)
	h.step(t, 10*time.Millisecond)
	if calls != 1 {
		t.Fatalf("expected no updates after Stop, got %d", calls)
	}
	if h.ctx.Running() {
		t.Fatalf("expected stopped context")
	}

	host := NewHost(h.ctx)
	if err := host.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination, got %v", err)
	}
}

func TestPointerFollowsCursor(t *testing.T) {
	h := newHarness(t, config.Default())
	h.dev.x, h.dev.y = 5000, 20
	h.step(t, 10*time.Millisecond)

	x, y := h.ctx.Pointer.Position()
	if x != float64(h.ctx.Config.Width) || y != 20 {
		t.Fatalf("expected pointer clamped to viewport, got (%v, %v)", x, y)
	}
}

func TestApply(t *testing.T) {
	h := newHarness(t, config.Default())

	cfg := config.Default()
	cfg.DesiredFPS = 60
	cfg.ClearColor = "#ffffff"
	if err := h.ctx.Apply(cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if h.ctx.Pacer.DesiredFPS() != 60 || h.ctx.Config.DesiredFPS != 60 {
		t.Fatalf("expected pacing updated")
	}

	cfg.DesiredFPS = -1
	if err := h.ctx.Apply(cfg); err == nil {
		t.Fatalf("expected invalid config rejected")
	}
	if h.ctx.Pacer.DesiredFPS() != 60 {
		t.Fatalf("rejected config must not change pacing")
	}
}

func TestHostLayoutAndHooks(t *testing.T) {
	h := newHarness(t, config.Default())
	host := NewHost(h.ctx)

	if w, hgt := host.Layout(1920, 1080); w != h.ctx.Config.Width || hgt != h.ctx.Config.Height {
		t.Fatalf("expected layout to report the configured viewport, got %dx%d", w, hgt)
	}

	before := 0
	host.BeforeTick = func() error { before++; return nil }
	overlays := 0
	host.Overlay = func(*ebiten.Image) { overlays++ }

	h.time.Advance(50 * time.Millisecond)
	if err := host.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	host.Draw(nil)
	host.Draw(nil)
	if before != 1 || overlays != 1 {
		t.Fatalf("expected one BeforeTick and one overlay, got %d and %d", before, overlays)
	}
}

type silentPlayer struct{ playing bool }

func (p *silentPlayer) Play()             { p.playing = true }
func (p *silentPlayer) Pause()            { p.playing = false }
func (p *silentPlayer) Rewind() error     { return nil }
func (p *silentPlayer) IsPlaying() bool   { return p.playing }
func (p *silentPlayer) SetVolume(float64) {}
func (p *silentPlayer) Close() error      { return nil }

type silentDecoder struct{ files []string }

func (d *silentDecoder) Decode(name string, data []byte, loop bool) (audio.Player, error) {
	d.files = append(d.files, name)
	return &silentPlayer{}, nil
}

func TestNewLoadsConfiguredAudio(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Sounds = []string{"blip", "missing"}
	cfg.Audio.Music = "theme"

	dec := &silentDecoder{}
	load := func(p string) ([]byte, error) {
		switch p {
		case "sounds/blip.wav", "music/theme.ogg":
			return []byte("data"), nil
		}
		return nil, errors.New("not found")
	}
	buf := &bytes.Buffer{}
	ctx, err := New(cfg, WithLogOutput(buf), WithAudio(audio.New(dec, load, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !ctx.Audio.HasSound("blip") || ctx.Audio.HasSound("missing") {
		t.Fatalf("expected only blip loaded, decoded %v", dec.files)
	}
	if ctx.Audio.MusicName() != "theme" {
		t.Fatalf("expected theme music, got %q", ctx.Audio.MusicName())
	}
	if !strings.Contains(buf.String(), "[WARNING] Engine:") {
		t.Fatalf("expected a warning for the missing sound, got %q", buf.String())
	}
}

func TestWithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(buf, logger.Options{Debug: true, SingleLine: true})
	ctx, err := New(config.Default(), WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ctx.Log != log {
		t.Fatalf("expected the supplied logger to be used")
	}
	if !strings.Contains(buf.String(), "[INFO] pixee: pixee - "+Version) {
		t.Fatalf("expected banner on the supplied logger, got %q", buf.String())
	}
}

func TestTickContractViolations(t *testing.T) {
	tests := []struct {
		name   string
		update func(c *Context, dt float64) error
	}{
		{"clock ticked in update", func(c *Context, dt float64) error {
			c.Clock.Tick()
			return nil
		}},
		{"input decayed in update", func(c *Context, dt float64) error {
			c.Input.Decay(dt)
			return nil
		}},
		{"tick from inside a tick", func() func(c *Context, dt float64) error {
			nested := false
			return func(c *Context, dt float64) error {
				if nested {
					return nil
				}
				nested = true
				return c.Tick()
			}
		}()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, config.Default())
			h.ctx.SetCallbacks(nil, tc.update)
			h.time.Advance(10 * time.Millisecond)

			defer func() {
				r := recover()
				if assert.Enabled && r == nil {
					t.Fatalf("expected contract violation to panic in debug build")
				}
				if !assert.Enabled && r != nil {
					t.Fatalf("expected no panic in release build, got %v", r)
				}
			}()
			_ = h.ctx.Tick()
		})
	}
}
