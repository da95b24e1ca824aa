package engine

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Host runs a Context as an ebiten.Game. Ebitengine calls Update once per
// tick and Draw once per display frame, both on the same goroutine, so input
// mutations and ticks never overlap.
type Host struct {
	Context *Context

	// BeforeTick runs ahead of every tick, e.g. to drain external events.
	BeforeTick func() error
	// Overlay draws on top of each rendered frame.
	Overlay func(screen *ebiten.Image)
}

func NewHost(c *Context) *Host {
	return &Host{Context: c}
}

func (h *Host) Update() error {
	if !h.Context.Running() {
		return ebiten.Termination
	}
	if h.BeforeTick != nil {
		if err := h.BeforeTick(); err != nil {
			return err
		}
	}
	return h.Context.Tick()
}

// Draw leaves the screen untouched on frames the pacer skips; Run turns off
// Ebitengine's per-frame clear so the last rendered frame stays visible.
func (h *Host) Draw(screen *ebiten.Image) {
	if !h.Context.Draw(screen) {
		return
	}
	if h.Overlay != nil {
		h.Overlay(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.Context.Config.Width, h.Context.Config.Height
}

// Run opens the window and blocks until the context stops or the window
// closes.
func Run(h *Host) error {
	cfg := h.Context.Config
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*2, cfg.Height*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	// Tick at the display rate and let the pacer decide which ticks render.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	h.Context.Log.Info(source, "Starting game loop.")
	return ebiten.RunGame(h)
}
