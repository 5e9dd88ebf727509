// Command ngine-bench runs a demo headless for a fixed number of frames and reports frame timings
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	"github.com/lixenwraith/ngine/config"
	"github.com/lixenwraith/ngine/demo"
	"github.com/lixenwraith/ngine/engine"
	"github.com/lixenwraith/ngine/input"
	"github.com/lixenwraith/ngine/render"
	"github.com/lixenwraith/ngine/render/termrender"
)

var (
	demoFlag    = flag.String("demo", "platformer", "Demo scene")
	framesFlag  = flag.Int("frames", 3600, "Frames to simulate")
	rasterFlag  = flag.Bool("raster", false, "Rasterize into a simulated 160x50 terminal instead of recording")
	profileFlag = flag.String("profile", "", "Profile mode: cpu, mem")
)

// nullWindow produces no events and presents nowhere
type nullWindow struct{}

func (nullWindow) PollEvents() []input.Event { return nil }
func (nullWindow) Present() error            { return nil }
func (nullWindow) Close()                    {}

func main() {
	flag.Parse()

	switch *profileFlag {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ngine-bench: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	cfg.Audio.Enabled = false

	var (
		renderer render.Renderer
		raster   *termrender.Renderer
	)
	if *rasterFlag {
		screen := tcell.NewSimulationScreen("UTF-8")
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		screen.SetSize(160, 50)
		raster = termrender.New(screen, cfg.Render, true)
		renderer = raster
	} else {
		renderer = render.NewRecorder()
	}

	game, err := engine.NewGame(cfg, nullWindow{}, renderer)
	if err != nil {
		return err
	}
	defer game.Stop()
	if err := demo.Build(*demoFlag, game.Scene(), demo.Deps{}); err != nil {
		return err
	}
	if err := game.Start(); err != nil {
		return err
	}

	dt := cfg.FrameTime()
	var worst time.Duration
	var fragments int
	start := time.Now()
	for i := 0; i < *framesFlag; i++ {
		if rec, ok := renderer.(*render.Recorder); ok {
			rec.Reset()
		}
		t0 := time.Now()
		if err := game.Frame(dt); err != nil {
			return err
		}
		worst = max(worst, time.Since(t0))
		if raster != nil {
			fragments += raster.Stats().Fragments
		}
	}
	total := time.Since(start)

	n := max(*framesFlag, 1)
	fmt.Printf("demo=%s frames=%d total=%v avg=%v worst=%v\n",
		*demoFlag, *framesFlag, total, total/time.Duration(n), worst)
	if raster != nil {
		fmt.Printf("fragments/frame=%d\n", fragments/n)
	}
	return nil
}
