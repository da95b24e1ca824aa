package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pixee/assets"
)

// Image2D is a named image split into ClipsX x ClipsY evenly sized clips,
// numbered left to right, top to bottom. A plain image has one clip.
type Image2D struct {
	Name       string
	Width      int
	Height     int
	ClipsX     int
	ClipsY     int
	ClipWidth  int
	ClipHeight int

	src image.Image
	img *ebiten.Image
}

func NewImage2D(name string, src image.Image, clipsX, clipsY int) (*Image2D, error) {
	if src == nil {
		return nil, fmt.Errorf("render: image %s: no pixels", name)
	}
	if clipsX < 1 {
		clipsX = 1
	}
	if clipsY < 1 {
		clipsY = 1
	}
	b := src.Bounds()
	if b.Dx()%clipsX != 0 || b.Dy()%clipsY != 0 {
		return nil, fmt.Errorf("render: image %s: %dx%d does not split into %dx%d clips", name, b.Dx(), b.Dy(), clipsX, clipsY)
	}
	return &Image2D{
		Name:       name,
		Width:      b.Dx(),
		Height:     b.Dy(),
		ClipsX:     clipsX,
		ClipsY:     clipsY,
		ClipWidth:  b.Dx() / clipsX,
		ClipHeight: b.Dy() / clipsY,
		src:        src,
	}, nil
}

// LoadImage2D decodes an asset into an Image2D.
func LoadImage2D(name, path string, clipsX, clipsY int) (*Image2D, error) {
	src, err := assets.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewImage2D(name, src, clipsX, clipsY)
}

// Clips returns the number of clips.
func (i *Image2D) Clips() int {
	return i.ClipsX * i.ClipsY
}

// Clip returns the source rectangle of clip n, relative to the image.
func (i *Image2D) Clip(n int) (image.Rectangle, bool) {
	if i == nil || n < 0 || n >= i.Clips() {
		return image.Rectangle{}, false
	}
	x := (n % i.ClipsX) * i.ClipWidth
	y := (n / i.ClipsX) * i.ClipHeight
	return image.Rect(x, y, x+i.ClipWidth, y+i.ClipHeight), true
}

func (i *Image2D) clipImage(n int) (*ebiten.Image, bool) {
	rect, ok := i.Clip(n)
	if !ok {
		return nil, false
	}
	if i.img == nil {
		i.img = ebiten.NewImageFromImage(i.src)
	}
	return i.img.SubImage(rect).(*ebiten.Image), true
}
