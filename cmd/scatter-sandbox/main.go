// Command scatter-sandbox shows a constrained random scatter in the terminal
// and lets the sampling parameters be tuned live.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scatter/config"
)

var (
	configFlag = flag.String("config", "", "TOML config file, watched for changes")
	countFlag  = flag.Int("count", -1, "Number of points (overrides config)")
	sepFlag    = flag.Float64("sep", -1, "Minimum separation in world units (overrides config)")
	marginFlag = flag.Float64("margin", -1, "Edge margin fraction in [0, 0.5] (overrides config)")
	seedFlag   = flag.Uint64("seed", 0, "RNG seed, 0 for time based (overrides config)")
	soundFlag  = flag.Bool("sound", false, "Play a tone after each resample")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/scatter.log")
	dumpFlag   = flag.Bool("dump-config", false, "Print the effective config as TOML and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	if *dumpFlag {
		data, err := config.Encode(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	if logFile := setupLogging(cfg.Sandbox.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Deferred Fini below runs first and restores the terminal before this reports
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSCATTER-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse()

	var cues cuePlayer
	if cfg.Sandbox.Sound {
		if a, err := newAudioCue(); err == nil {
			defer a.Close()
			cues = a
		} else {
			// Non-fatal, sandbox runs silent
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	sb, err := newSandbox(screen, cfg, cues)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start sandbox: %v\n", err)
		os.Exit(1)
	}

	if *configFlag != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			err := config.Watch(ctx, *configFlag, func(c config.Config) {
				applyFlags(&c)
				_ = screen.PostEvent(tcell.NewEventInterrupt(c))
			})
			if err != nil {
				log.Printf("config watch stopped: %v", err)
			}
		}()
	}

	sb.run()
}

// applyFlags lets explicitly set flags win over file and environment
func applyFlags(cfg *config.Config) {
	if *countFlag >= 0 {
		cfg.Scatter.Count = *countFlag
	}
	if *sepFlag >= 0 {
		cfg.Scatter.MinSeparation = *sepFlag
	}
	if *marginFlag >= 0 {
		cfg.Scatter.EdgeMargin = *marginFlag
	}
	if *seedFlag != 0 {
		cfg.Sandbox.Seed = *seedFlag
	}
	if *soundFlag {
		cfg.Sandbox.Sound = true
	}
	if *debugFlag {
		cfg.Sandbox.Debug = true
	}
}
