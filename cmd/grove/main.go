package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"golang.org/x/term"

	"github.com/lixenwraith/grove/audio"
	"github.com/lixenwraith/grove/config"
	"github.com/lixenwraith/grove/core"
	"github.com/lixenwraith/grove/game"
	"github.com/lixenwraith/grove/render"
	"github.com/lixenwraith/grove/status"
	"github.com/lixenwraith/grove/system"
)

var (
	configFlag   = flag.String("config", "", "Path to a TOML config file")
	debugFlag    = flag.Bool("debug", false, "Write debug log to logs/grove.log")
	headlessFlag = flag.Bool("headless", false, "Print frames as text instead of the terminal UI")
	ticksFlag    = flag.Int64("ticks", 0, "Stop after this many ticks, 0 runs until quit")
	seedFlag     = flag.Int64("seed", 0, "Tree placement seed, 0 keeps the configured seed")
	muteFlag     = flag.Bool("mute", false, "Disable sound")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic Recovery: restore the terminal before the stack trace is printed
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keyboard := system.NewKeyboard(cfg.Player.KeyHold)

	var sink render.Sink
	if *headlessFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		sink = render.NewTextSink(os.Stdout)
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
			return 1
		}
		if err := screen.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
			return 1
		}
		// Normal exit terminal cleanup
		defer screen.Fini()
		core.SetCrashCleanup(screen.Fini)

		screen.HideCursor()
		sink = render.NewScreenSink(screen)
		core.Go(func() { pollEvents(screen, keyboard) })
	}

	var cue system.CuePlayer
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.AudioSettings())
		if err := player.Start(); err != nil {
			log.Printf("Audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer player.Stop()
			cue = player
		}
	}

	metrics := status.NewRegistry()
	defer func() { log.Printf("metrics: %s", metrics.Summary()) }()

	g, err := game.New(game.Options{
		Config:   cfg,
		Sink:     sink,
		Cue:      cue,
		Keyboard: keyboard,
		MaxTicks: *ticksFlag,
		Metrics:  metrics,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		return 1
	}

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("game: %s", eris.ToString(err, true))
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		return 1
	}
	return 0
}

// loadConfig applies the config file, then flag overrides
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if *seedFlag != 0 {
		cfg.Board.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

// pollEvents feeds terminal key events into the keyboard until the screen is finalized
func pollEvents(screen tcell.Screen, keyboard *system.Keyboard) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
			continue
		}
		keyboard.HandleEvent(ev, time.Now())
	}
}
