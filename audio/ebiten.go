package audio

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is used when a non-positive rate is requested.
const DefaultSampleRate = 44100

type stream interface {
	io.ReadSeeker
	Length() int64
}

// EbitenDecoder decodes WAV, Ogg Vorbis and MP3 into Ebitengine players.
type EbitenDecoder struct {
	ctx *audio.Context
}

// NewEbitenDecoder returns a decoder on the process audio context, creating
// it at sampleRate if needed. Ebitengine allows one context per process.
func NewEbitenDecoder(sampleRate int) *EbitenDecoder {
	ctx := audio.CurrentContext()
	if ctx == nil {
		if sampleRate <= 0 {
			sampleRate = DefaultSampleRate
		}
		ctx = audio.NewContext(sampleRate)
	}
	return &EbitenDecoder{ctx: ctx}
}

func (d *EbitenDecoder) Decode(name string, data []byte, loop bool) (Player, error) {
	s, err := d.stream(name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var src io.Reader = s
	if loop {
		src = audio.NewInfiniteLoop(s, s.Length())
	}
	p, err := d.ctx.NewPlayer(src)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (d *EbitenDecoder) stream(name string, r io.ReadSeeker) (stream, error) {
	sr := d.ctx.SampleRate()
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		return wav.DecodeWithSampleRate(sr, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sr, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sr, r)
	default:
		return nil, fmt.Errorf("unsupported format %q", ext)
	}
}
