package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pixee/assets"
	"github.com/milk9111/pixee/audio"
	"github.com/milk9111/pixee/config"
	"github.com/milk9111/pixee/engine"
	"github.com/milk9111/pixee/render"
	"github.com/milk9111/pixee/script"
)

func main() {
	configPath := flag.String("config", config.FileName, "engine configuration file (YAML); the embedded default is used if it does not exist")
	debug := flag.Bool("debug", false, "show the pacing and input overlay")
	scriptPath := flag.String("script", "", "Tengo script driving the update step, overrides the configuration")
	watch := flag.Bool("watch", true, "reload the configuration file when it changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}

	snd := audio.New(audio.NewEbitenDecoder(cfg.Audio.SampleRate), assets.LoadFile, nil)
	ctx, err := engine.New(cfg, engine.WithAudio(snd))
	if err != nil {
		log.Fatal(err)
	}
	defer snd.Close()

	var rt *script.Runtime
	if cfg.Script != "" {
		rt, err = script.LoadFile(cfg.Script)
		if err != nil {
			log.Fatal(err)
		}
		ctx.Log.Infof("Main", "Running script %s.", rt.Name())
	}

	game := NewGame(ctx, rt, *debug)
	game.ui = NewPauseUI(game, cfg.Width, cfg.Height)
	if game.cursor, err = render.LoadImage2D("cursor", "cursor.png", 2, 1); err != nil {
		ctx.Log.Warningf("Main", "No cursor image: %v", err)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	if *watch {
		dir := filepath.Dir(*configPath)
		if w, err := config.NewWatcher(dir); err != nil {
			ctx.Log.Warningf("Main", "Not watching %s: %v", dir, err)
		} else {
			defer w.Close()
			game.Watch(w, *configPath)
		}
	}

	if snd.MusicName() != "" {
		snd.PlayMusic()
	}

	host := engine.NewHost(ctx)
	host.BeforeTick = game.beforeTick
	host.Overlay = game.drawOverlay
	if err := engine.Run(host); err != nil {
		log.Fatal(err)
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
