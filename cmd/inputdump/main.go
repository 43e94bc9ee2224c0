// Command inputdump prints every canonical input event produced by a window,
// or by a replay script when -replay is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tinyrange/wininput/internal/chrono"
	"github.com/tinyrange/wininput/internal/config"
	"github.com/tinyrange/wininput/internal/replay"
	"github.com/tinyrange/wininput/internal/window"
)

// pollInterval is how long the pump sleeps once the queue is empty.
const pollInterval = time.Millisecond

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func logEvent(log *slog.Logger) func(window.Event) {
	return func(ev window.Event) {
		log.Info("event", "t_ms", chrono.SinceStart(), "type", ev.Type.String(), "event", ev.String())
	}
}

func run() error {
	configPath := flag.String("config", "", "Window description YAML (default: built-in)")
	replayPath := flag.String("replay", "", "Replay a message script instead of opening a window")
	confine := flag.Bool("confine", false, "Confine the cursor to the window once it is shown")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Log every input event delivered to a window.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScript messages: %v\n", replay.MessageNames())
	}
	flag.Parse()

	log := newLogger(*debug)
	slog.SetDefault(log)
	chrono.Start()

	if *replayPath != "" {
		return runReplay(log, *replayPath)
	}

	desc := config.Default()
	if *configPath != "" {
		var err error
		desc, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}
	if *confine {
		desc.ConfineCursor = true
	}
	return runWindow(log, desc)
}

func runReplay(log *slog.Logger, path string) error {
	s, err := replay.Load(path)
	if err != nil {
		return err
	}
	res, err := replay.Run(s, log, logEvent(log))
	if err != nil {
		return fmt.Errorf("replay %s: %w", s.Name, err)
	}
	log.Info("replay finished",
		"script", s.Name,
		"events", len(res.Events),
		"exited", res.Exited,
		"skipped", res.Skipped,
		"confined", res.State.CursorConfined)

	if len(s.Expect) > 0 {
		if err := res.Check(s.Expect); err != nil {
			return err
		}
		log.Info("expectation met", "script", s.Name)
	}
	return nil
}

func runWindow(log *slog.Logger, desc config.WindowDesc) error {
	w, err := window.New(desc, window.HandlersFunc(logEvent(log)), log)
	if errors.Is(err, window.ErrUnsupported) {
		return fmt.Errorf("%w: use -replay on this platform", err)
	} else if err != nil {
		return err
	}
	defer w.Destroy()

	if err := w.Show(); err != nil {
		return err
	}
	if desc.ConfineCursor {
		w.ConfineCursor(true)
	}

	width, height := w.ClientSize()
	log.Info("window open", "title", desc.Title, "width", width, "height", height, "raw_mouse", desc.RawMouse)

	for !w.Poll() {
		time.Sleep(pollInterval)
	}

	log.Info("window closed", "uptime_ms", chrono.SinceStart())
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inputdump: %v\n", err)
		os.Exit(1)
	}
}
