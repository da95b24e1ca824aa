package audio

import (
	"fmt"
	"path"

	"github.com/milk9111/pixee/logger"
)

const source = "Audio"

// Player is one decoded, playable clip.
type Player interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
	Close() error
}

// Decoder turns encoded bytes into a Player. name carries the file
// extension so the decoder can pick a codec.
type Decoder interface {
	Decode(name string, data []byte, loop bool) (Player, error)
}

// Loader reads an asset by path.
type Loader func(path string) ([]byte, error)

var (
	SoundExt  = ".wav"
	MusicExts = []string{".ogg", ".mp3", ".wav"}
)

// Audio holds named sound effects and a single music track.
type Audio struct {
	dec  Decoder
	load Loader
	log  *logger.Logger

	sounds map[string]Player
	volume map[string]float64

	music     Player
	musicName string
}

func New(dec Decoder, load Loader, log *logger.Logger) *Audio {
	return &Audio{
		dec:    dec,
		load:   load,
		log:    log,
		sounds: make(map[string]Player),
		volume: make(map[string]float64),
	}
}

// SetLogger replaces the logger warnings go to. A nil logger drops them.
func (a *Audio) SetLogger(log *logger.Logger) {
	if a == nil {
		return
	}
	a.log = log
}

// LoadSound loads dir/name.wav under name, replacing any sound already
// loaded under it.
func (a *Audio) LoadSound(name, dir string) error {
	if a == nil {
		return nil
	}
	file := path.Join(dir, name+SoundExt)
	p, err := a.decode(file, false)
	if err != nil {
		return err
	}
	a.FreeSound(name)
	a.sounds[name] = p
	a.log.Verbose(source, fmt.Sprintf("Loaded sound %s from %s.", name, file))
	return nil
}

// SetVolume sets the volume, 0 to 1, used the next time name plays.
func (a *Audio) SetVolume(name string, volume float64) {
	if a == nil {
		return
	}
	a.volume[name] = volume
}

// PlaySound plays name from the start. Unknown names are ignored.
func (a *Audio) PlaySound(name string) {
	if a == nil {
		return
	}
	p, ok := a.sounds[name]
	if !ok {
		return
	}
	if v, ok := a.volume[name]; ok {
		p.SetVolume(v)
	}
	if err := p.Rewind(); err != nil {
		a.log.Warning(source, fmt.Sprintf("Rewind %s: %v", name, err))
	}
	p.Play()
}

// FreeSound releases name. Unknown names are ignored.
func (a *Audio) FreeSound(name string) {
	if a == nil {
		return
	}
	p, ok := a.sounds[name]
	if !ok {
		return
	}
	if err := p.Close(); err != nil {
		a.log.Warning(source, fmt.Sprintf("Close %s: %v", name, err))
	}
	delete(a.sounds, name)
	delete(a.volume, name)
}

// HasSound reports whether name is loaded.
func (a *Audio) HasSound(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.sounds[name]
	return ok
}

// LoadMusic loads dir/name with the first extension in MusicExts that
// exists, replacing the current track.
func (a *Audio) LoadMusic(name, dir string, looping bool) error {
	if a == nil {
		return nil
	}
	var lastErr error
	for _, ext := range MusicExts {
		file := path.Join(dir, name+ext)
		p, err := a.decode(file, looping)
		if err != nil {
			lastErr = err
			continue
		}
		a.closeMusic()
		a.music = p
		a.musicName = name
		a.log.Verbose(source, fmt.Sprintf("Loaded music %s from %s.", name, file))
		return nil
	}
	return lastErr
}

// MusicName returns the loaded track's name.
func (a *Audio) MusicName() string {
	if a == nil {
		return ""
	}
	return a.musicName
}

func (a *Audio) PlayMusic() {
	if a.requireMusic("play") {
		a.music.Play()
	}
}

func (a *Audio) PauseMusic() {
	if a.requireMusic("pause") {
		a.music.Pause()
	}
}

// StopMusic pauses the track and rewinds it to the start.
func (a *Audio) StopMusic() {
	if !a.requireMusic("stop") {
		return
	}
	a.music.Pause()
	if err := a.music.Rewind(); err != nil {
		a.log.Warning(source, fmt.Sprintf("Rewind music: %v", err))
	}
}

// ToggleMusic switches the track between playing and paused.
func (a *Audio) ToggleMusic() {
	if !a.requireMusic("toggle") {
		return
	}
	if a.music.IsPlaying() {
		a.music.Pause()
		return
	}
	a.music.Play()
}

// MusicPlaying reports whether the track is playing.
func (a *Audio) MusicPlaying() bool {
	return a != nil && a.music != nil && a.music.IsPlaying()
}

// Close releases every sound and the music track.
func (a *Audio) Close() {
	if a == nil {
		return
	}
	for name := range a.sounds {
		a.FreeSound(name)
	}
	a.closeMusic()
}

func (a *Audio) requireMusic(op string) bool {
	if a == nil {
		return false
	}
	if a.music == nil {
		a.log.Warning(source, fmt.Sprintf("Cannot %s music: no track loaded.", op))
		return false
	}
	return true
}

func (a *Audio) closeMusic() {
	if a.music == nil {
		return
	}
	if err := a.music.Close(); err != nil {
		a.log.Warning(source, fmt.Sprintf("Close music: %v", err))
	}
	a.music = nil
	a.musicName = ""
}

func (a *Audio) decode(file string, loop bool) (Player, error) {
	if a.dec == nil || a.load == nil {
		return nil, fmt.Errorf("audio: load %s: no audio device", file)
	}
	data, err := a.load(file)
	if err != nil {
		return nil, fmt.Errorf("audio: load %s: %w", file, err)
	}
	p, err := a.dec.Decode(file, data, loop)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", file, err)
	}
	return p, nil
}
