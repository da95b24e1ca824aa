package main

import (
	"fmt"

	"github.com/milk9111/pixee/engine"
	"github.com/milk9111/pixee/render"
)

// preview cycles through the clips of a sheet at a fixed rate. Left and
// Right step while paused, Space pauses, F12 quits.
type preview struct {
	sheet  *render.Image2D
	rate   float64
	scale  float64
	clip   int
	timer  float64
	paused bool
}

func newPreview(sheet *render.Image2D, rate, scale float64) *preview {
	if rate <= 0 {
		rate = 1
	}
	if scale <= 0 {
		scale = 1
	}
	return &preview{sheet: sheet, rate: rate, scale: scale}
}

func (p *preview) update(c *engine.Context, dt float64) error {
	in := c.Input
	if in.ConsumeJustPressed("F12") {
		c.Stop()
		return nil
	}
	if in.ConsumeJustPressed("Space") {
		p.paused = !p.paused
		p.timer = 0
	}
	if in.ConsumeJustPressed("ArrowRight") {
		p.step(1)
	}
	if in.ConsumeJustPressed("ArrowLeft") {
		p.step(-1)
	}
	if p.paused {
		return nil
	}

	p.timer += dt
	period := 1 / p.rate
	for p.timer >= period {
		p.timer -= period
		p.step(1)
	}
	return nil
}

func (p *preview) step(n int) {
	count := p.sheet.Clips()
	p.clip = ((p.clip+n)%count + count) % count
}

func (p *preview) render(c *engine.Context, r *render.Renderer) {
	r.ClearScreen()
	w, h := r.Size()
	cw := float64(p.sheet.ClipWidth) * p.scale
	ch := float64(p.sheet.ClipHeight) * p.scale
	x := (float64(w) - cw) / 2
	y := (float64(h) - ch) / 2

	r.SetRenderColorRGBA(0x3c, 0x38, 0x36, 1)
	r.DrawRect(x, y, cw, ch)
	r.DrawImageScaled(p.sheet, p.clip, x, y, p.scale)
	r.DebugPrint(fmt.Sprintf("clip %d/%d  %.1f/s  paused %t", p.clip+1, p.sheet.Clips(), p.rate, p.paused))
}
