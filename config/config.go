package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/pixee/logger"
)

// FileName is the configuration file looked up on disk before falling back
// to the embedded default.
const FileName = "engine.yaml"

//go:embed engine.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Title        string  `yaml:"title"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	ClearColor   string  `yaml:"clear_color"`
	DesiredFPS   float64 `yaml:"desired_fps"`
	JustWindowMS float64 `yaml:"just_window_ms"`

	Log    LogConfig   `yaml:"log"`
	Audio  AudioConfig `yaml:"audio"`
	Script string      `yaml:"script"`
}

type LogConfig struct {
	Debug      bool   `yaml:"debug"`
	Timestamp  bool   `yaml:"timestamp"`
	SingleLine bool   `yaml:"single_line"`
	Level      string `yaml:"level"`
}

type AudioConfig struct {
	SampleRate int      `yaml:"sample_rate"`
	SoundsDir  string   `yaml:"sounds_dir"`
	MusicDir   string   `yaml:"music_dir"`
	Sounds     []string `yaml:"sounds"`
	Music      string   `yaml:"music"`
	LoopMusic  bool     `yaml:"loop_music"`
}

// JustWindow returns the input just window in seconds.
func (c Config) JustWindow() float64 {
	return (time.Duration(c.JustWindowMS * float64(time.Millisecond))).Seconds()
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c Config) LogLevel() logger.Level {
	l, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Info
	}
	return l
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.DesiredFPS <= 0 {
		return fmt.Errorf("%w: desired_fps %v", ErrInvalid, c.DesiredFPS)
	}
	if c.JustWindowMS < 0 {
		return fmt.Errorf("%w: just_window_ms %v", ErrInvalid, c.JustWindowMS)
	}
	if c.Audio.SampleRate < 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Default returns the embedded configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic("config: embedded default: " + err.Error())
	}
	return cfg
}

// Parse decodes data over the embedded defaults, so a file only needs the
// keys it changes.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal default: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path from disk. An empty path, or a missing file, yields the
// embedded default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}
