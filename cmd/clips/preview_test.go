package main

import (
	"bytes"
	"image"
	"testing"

	"github.com/milk9111/pixee/config"
	"github.com/milk9111/pixee/engine"
	"github.com/milk9111/pixee/render"
)

func newTestPreview(t *testing.T, clips int) (*preview, *engine.Context) {
	t.Helper()
	sheet, err := render.NewImage2D("sheet", image.NewRGBA(image.Rect(0, 0, 8*clips, 8)), clips, 1)
	if err != nil {
		t.Fatalf("NewImage2D: %v", err)
	}
	ctx, err := engine.New(config.Default(), engine.WithLogOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return newPreview(sheet, 4, 2), ctx
}

func TestPreviewAdvances(t *testing.T) {
	tests := []struct {
		name string
		dts  []float64
		want int
	}{
		{"short of a period", []float64{0.2}, 0},
		{"one period", []float64{0.125, 0.125}, 1},
		{"several in one tick", []float64{0.75}, 3},
		{"wraps", []float64{1.0}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ctx := newTestPreview(t, 4)
			for _, dt := range tc.dts {
				if err := p.update(ctx, dt); err != nil {
					t.Fatalf("update: %v", err)
				}
			}
			if p.clip != tc.want {
				t.Fatalf("expected clip %d, got %d", tc.want, p.clip)
			}
		})
	}
}

func TestPreviewControls(t *testing.T) {
	p, ctx := newTestPreview(t, 3)

	ctx.Input.OnRawTransition("Space", true)
	_ = p.update(ctx, 0)
	if !p.paused {
		t.Fatalf("expected Space to pause")
	}
	_ = p.update(ctx, 10)
	if p.clip != 0 {
		t.Fatalf("expected no advance while paused, got %d", p.clip)
	}

	ctx.Input.OnRawTransition("ArrowLeft", true)
	_ = p.update(ctx, 0)
	if p.clip != 2 {
		t.Fatalf("expected Left to wrap to the last clip, got %d", p.clip)
	}
	ctx.Input.OnRawTransition("ArrowRight", true)
	_ = p.update(ctx, 0)
	if p.clip != 0 {
		t.Fatalf("expected Right to wrap to the first clip, got %d", p.clip)
	}

	ctx.Input.OnRawTransition("F12", true)
	_ = p.update(ctx, 0)
	if ctx.Running() {
		t.Fatalf("expected F12 to stop")
	}
}
