package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-face/config"
	"github.com/Carmen-Shannon/oxy-face/viewer"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath string
		flags      config.Flags
	)
	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&flags.Model, "model", "", "glTF/GLB head asset to load")
	flag.StringVar(&flags.Track, "track", "", "blendshape CSV track to load")
	flag.StringVar(&flags.Audio, "audio", "", "WAV audio track to load")
	flag.BoolVar(&flags.Loop, "loop", false, "loop playback at the end of the track")
	flag.BoolVar(&flags.Watch, "watch", false, "reload assets when they change on disk")
	flag.BoolVar(&flags.Profile, "profile", false, "log frame rate, memory and playback position every second")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("[Viewer] %v", err)
		}
		cfg = loaded
	}
	cfg.Resolve(flags)

	v, err := viewer.New(cfg)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}
	if err := v.Run(); err != nil {
		log.Printf("[Viewer] shutdown: %v", err)
		os.Exit(1)
	}
}
