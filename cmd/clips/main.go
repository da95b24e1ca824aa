// Command clips previews the clips of a sprite sheet as an animation.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/milk9111/pixee/config"
	"github.com/milk9111/pixee/engine"
	"github.com/milk9111/pixee/render"
)

const viewSize = 512

func main() {
	path := flag.String("image", "cursor.png", "sheet to preview, relative to assets/ or absolute")
	cols := flag.Int("cols", 2, "clips per row")
	rows := flag.Int("rows", 1, "clip rows")
	rate := flag.Float64("rate", 4, "clips per second")
	scale := flag.Float64("scale", 8, "zoom factor")
	flag.Parse()

	sheet, err := render.LoadImage2D("sheet", *path, *cols, *rows)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	cfg.Title = fmt.Sprintf("clips - %s", *path)
	cfg.Width, cfg.Height = viewSize, viewSize
	cfg.DesiredFPS = 60

	ctx, err := engine.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	p := newPreview(sheet, *rate, *scale)
	ctx.SetCallbacks(p.render, engine.NewScheduler(engine.SystemFunc(p.update)).Update)

	if err := engine.Run(engine.NewHost(ctx)); err != nil {
		log.Fatal(err)
	}
}
