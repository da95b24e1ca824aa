package input

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Canonical identifiers for mouse buttons. They share the State map with key
// names, which never collide with them.
const (
	MouseLeft   = "MouseLeft"
	MouseMiddle = "MouseMiddle"
	MouseRight  = "MouseRight"
)

var mouseButtons = []struct {
	button ebiten.MouseButton
	id     string
}{
	{ebiten.MouseButtonLeft, MouseLeft},
	{ebiten.MouseButtonMiddle, MouseMiddle},
	{ebiten.MouseButtonRight, MouseRight},
}

// KeyID returns the identifier State uses for k, e.g. "A" or "ArrowLeft".
func KeyID(k ebiten.Key) string {
	return k.String()
}

// Device is the polled hardware surface. The just-pressed/released queries
// must report an edge only on the frame it happened, so OS key repeat never
// reaches State.
type Device interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	CursorPosition() (x, y int)
	IsFocused() bool
}

type ebitenDevice struct{}

func (ebitenDevice) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenDevice) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (ebitenDevice) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenDevice) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenDevice) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenDevice) IsFocused() bool { return ebiten.IsFocused() }

// Ebiten reads the running Ebitengine window.
var Ebiten Device = ebitenDevice{}

// Viewport is the region pointer coordinates are clamped to.
type Viewport struct {
	Origin        image.Point
	Width, Height float64
}

// Source turns polled device state into State and Pointer mutations.
type Source struct {
	device   Device
	state    *State
	pointer  *Pointer
	viewport Viewport

	keys    []ebiten.Key
	focused bool
}

func NewSource(device Device, state *State, pointer *Pointer, viewport Viewport) *Source {
	if device == nil {
		device = Ebiten
	}
	return &Source{
		device:   device,
		state:    state,
		pointer:  pointer,
		viewport: viewport,
		focused:  true,
	}
}

// SetViewport changes the pointer clamp region, e.g. after a layout change.
func (s *Source) SetViewport(v Viewport) {
	if s == nil {
		return
	}
	s.viewport = v
}

// Poll applies this frame's edges. It must run before State.Decay on the
// same tick.
func (s *Source) Poll() {
	if s == nil || s.device == nil {
		return
	}

	focused := s.device.IsFocused()
	if !focused {
		if s.focused {
			// Releases are not delivered while unfocused; forget held keys
			// rather than leave them stuck down.
			s.state.Reset()
		}
		s.focused = false
		return
	}
	s.focused = true

	s.keys = s.device.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.state.OnRawTransition(KeyID(k), true)
	}
	s.keys = s.device.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.state.OnRawTransition(KeyID(k), false)
	}

	for _, mb := range mouseButtons {
		if s.device.IsMouseButtonJustPressed(mb.button) {
			s.state.OnRawTransition(mb.id, true)
		}
		if s.device.IsMouseButtonJustReleased(mb.button) {
			s.state.OnRawTransition(mb.id, false)
		}
	}

	x, y := s.device.CursorPosition()
	s.pointer.OnMove(float64(x), float64(y), s.viewport.Origin, s.viewport.Width, s.viewport.Height)
}
