/*
Zippy's adventure: a side scrolling platformer running on the engine
package. Pass -headless to run the game loop without a window.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/zippy/engine"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/game"
)

func main() {
	configPath := flag.String("config", "configs/zippy.toml", "path to the game configuration")
	baseDir := flag.String("content", "", "directory holding the content root, defaults to the working directory")
	headless := flag.Bool("headless", false, "run without a window or GPU")
	frames := flag.Int("frames", 0, "frames to run in headless mode, 0 runs forever")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		core.LogWarn("using the default configuration: %s", err.Error())
		cfg = core.DefaultConfig()
	}
	if *headless {
		cfg.App.Headless = true
		cfg.App.HeadlessFrames = *frames
	}

	zippy := game.NewZippyGame()
	e, err := engine.New(zippy, &engine.ApplicationConfig{
		Config:  cfg,
		BaseDir: *baseDir,
	})
	if err != nil {
		core.LogFatal("engine failed to boot: %s", err.Error())
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("engine failed to initialize: %s", err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		e.Quit()
	}()

	runErr := e.Run()
	zippy.StopWatching()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err.Error())
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}
