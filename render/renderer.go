package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/mazznoer/csscolorparser"

	"github.com/milk9111/pixee/logger"
)

const source = "Renderer"

// Renderer draws onto the screen image handed to it each frame. It does not
// decide what to draw.
type Renderer struct {
	target *ebiten.Image
	lost   bool

	width, height int
	clearColor    color.Color
	drawColor     color.Color

	log *logger.Logger
}

// New creates a renderer for a width x height viewport. clear is any CSS
// colour, e.g. "#222", "rgb(10 20 30)" or "aqua".
func New(width, height int, clear string, log *logger.Logger) (*Renderer, error) {
	c, err := ParseColor(clear)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		width:      width,
		height:     height,
		clearColor: c,
		drawColor:  color.White,
		log:        log,
	}, nil
}

// ParseColor parses a CSS colour string.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render: parse color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// Bind sets the frame's draw target. A nil target means the surface could
// not be acquired; it is logged once and drawing is skipped until a target
// returns.
func (r *Renderer) Bind(target *ebiten.Image) {
	if r == nil {
		return
	}
	r.target = target
	if target == nil {
		if !r.lost {
			r.log.Error(source, "Could not acquire a draw target.")
		}
		r.lost = true
		return
	}
	if r.lost {
		r.log.Info(source, "Draw target acquired.")
	}
	r.lost = false
}

// Ready reports whether a draw target is bound.
func (r *Renderer) Ready() bool {
	return r != nil && r.target != nil
}

func (r *Renderer) Size() (width, height int) {
	if r == nil {
		return 0, 0
	}
	return r.width, r.height
}

// Resize changes the viewport used by ClearScreen.
func (r *Renderer) Resize(width, height int) {
	if r == nil {
		return
	}
	r.width, r.height = width, height
}

// ClearScreen fills the viewport with the clear colour.
func (r *Renderer) ClearScreen() {
	if !r.Ready() {
		return
	}
	vector.DrawFilledRect(r.target, 0, 0, float32(r.width), float32(r.height), r.clearColor, false)
}

// DrawRect fills a rectangle with the current draw colour.
func (r *Renderer) DrawRect(x, y, width, height float64) {
	if !r.Ready() {
		return
	}
	vector.DrawFilledRect(r.target, float32(x), float32(y), float32(width), float32(height), r.drawColor, false)
}

// SetRenderColor sets the draw colour from a CSS colour string. On error the
// current colour is kept.
func (r *Renderer) SetRenderColor(css string) error {
	if r == nil {
		return nil
	}
	c, err := ParseColor(css)
	if err != nil {
		r.log.Warning(source, err.Error())
		return err
	}
	r.drawColor = c
	return nil
}

// SetRenderColorRGBA sets the draw colour from 0-255 channels and a 0-1
// alpha. Alpha outside that range is clamped.
func (r *Renderer) SetRenderColorRGBA(red, green, blue uint8, alpha float64) {
	if r == nil {
		return
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	r.drawColor = color.NRGBA{R: red, G: green, B: blue, A: uint8(alpha*255 + 0.5)}
}

// SetClearColor changes the colour ClearScreen uses.
func (r *Renderer) SetClearColor(css string) error {
	if r == nil {
		return nil
	}
	c, err := ParseColor(css)
	if err != nil {
		return err
	}
	r.clearColor = c
	return nil
}

func (r *Renderer) DrawColor() color.Color {
	if r == nil {
		return nil
	}
	return r.drawColor
}

func (r *Renderer) ClearColor() color.Color {
	if r == nil {
		return nil
	}
	return r.clearColor
}

// DrawImage draws one clip of img with its top-left corner at x, y.
func (r *Renderer) DrawImage(img *Image2D, clip int, x, y float64) {
	r.DrawImageScaled(img, clip, x, y, 1)
}

// DrawImageScaled is DrawImage with the clip magnified by scale, sampled
// nearest-neighbour so pixel art stays sharp.
func (r *Renderer) DrawImageScaled(img *Image2D, clip int, x, y, scale float64) {
	if !r.Ready() || img == nil {
		return
	}
	sub, ok := img.clipImage(clip)
	if !ok {
		r.log.Warning(source, fmt.Sprintf("Clip %d out of range for image %s.", clip, img.Name))
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	r.target.DrawImage(sub, op)
}

// DebugPrint writes text in the top-left corner.
func (r *Renderer) DebugPrint(msg string) {
	if !r.Ready() {
		return
	}
	ebitenutil.DebugPrint(r.target, msg)
}

// Target exposes the bound image to callers drawing with Ebitengine
// directly.
func (r *Renderer) Target() *ebiten.Image {
	if r == nil {
		return nil
	}
	return r.target
}
