package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/meadow3d/meadow"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg := meadow.DefaultConfig()
	if *configPath != "" {
		loaded, err := meadow.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config %s: %v, falling back to defaults\n", *configPath, err)
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug = true
	}

	meadow.NewApp().
		UseModules(
			meadow.LoggingModule{Prefix: "meadow", Debug: cfg.Debug},
			meadow.TimeModule{},
			meadow.InputModule{},
			meadow.WindowModule{
				Width:  cfg.Window.Width,
				Height: cfg.Window.Height,
				Title:  cfg.Window.Title,
			},
			meadow.AssetServerModule{},
			meadow.CameraModule{},
			meadow.AttentionModule{},
			meadow.GrassModule{},
			meadow.SpinModule{},
			meadow.RendererModule{},
			meadow.SceneModule{Scene: meadow.DefaultScene(cfg)},
		).
		Run()
}
