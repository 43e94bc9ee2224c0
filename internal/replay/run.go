package replay

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tinyrange/wininput/internal/window"
)

// virtualScreen is the clip reported when a script does not set one.
var virtualScreen = window.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}

// SimPlatform is an in-memory window.Platform.
type SimPlatform struct {
	// ScanCodes maps scan codes to sided virtual keys.
	ScanCodes map[uint32]window.KeyCode

	Clip   window.Rect
	Bounds window.Rect

	// History records every clip applied through SetClipRect.
	History []window.Rect
}

func NewSimPlatform(clip, bounds window.Rect) *SimPlatform {
	return &SimPlatform{
		ScanCodes: map[uint32]window.KeyCode{
			0x2A: window.KeyLeftShift,
			0x36: window.KeyRightShift,
		},
		Clip:   clip,
		Bounds: bounds,
	}
}

func (p *SimPlatform) MapScanCode(scanCode uint32) window.KeyCode {
	return p.ScanCodes[scanCode]
}

func (p *SimPlatform) ClipRect() (window.Rect, error) {
	return p.Clip, nil
}

func (p *SimPlatform) SetClipRect(r window.Rect) error {
	p.Clip = r
	p.History = append(p.History, r)
	return nil
}

func (p *SimPlatform) WindowRect() (window.Rect, error) {
	return p.Bounds, nil
}

// Result is the outcome of running a script.
type Result struct {
	Events []window.Event
	State  window.SessionState

	// Exited is set once the script delivered WM_CLOSE or WM_DESTROY. A
	// close is followed by WM_DESTROY as on a native window. Later steps
	// are not run, matching a pump that stops on exit.
	Exited  bool
	Skipped int

	Platform *SimPlatform
}

// Run feeds every step of s to a fresh dispatcher. onEvent, if not nil, is
// called for each event as it is produced.
func Run(s *Script, logger *slog.Logger, onEvent func(window.Event)) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	clip := s.Clip.window()
	if s.Clip.empty() {
		clip = virtualScreen
	}
	bounds := s.Bounds.window()
	if s.Bounds.empty() {
		bounds = window.Rect{Right: int32(s.Window.Width), Bottom: int32(s.Window.Height)}
	}

	res := &Result{Platform: NewSimPlatform(clip, bounds)}
	handlers := window.HandlersFunc(func(ev window.Event) {
		res.Events = append(res.Events, ev)
		if onEvent != nil {
			onEvent(ev)
		}
	})
	d := window.NewDispatcher(res.Platform, handlers,
		window.WithLogger(logger),
		window.WithWindowSize(s.Window.Width, s.Window.Height),
	)

	for i, step := range s.Steps {
		if res.Exited {
			res.Skipped = len(s.Steps) - i
			logger.Debug("script continues after exit", "script", s.Name, "skipped", res.Skipped)
			break
		}

		if step.Confine != nil {
			d.ConfineCursor(*step.Confine)
			continue
		}

		e, err := step.Encode()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		logger.Debug("replay step", "index", i, "message", step.Message,
			"wparam", fmt.Sprintf("%#x", e.WParam), "lparam", fmt.Sprintf("%#x", e.LParam))

		if e.Message == window.MessageInput {
			d.RawInput(e.Raw)
			continue
		}
		d.HandleMessage(e.Message, e.WParam, e.LParam)
		switch e.Message {
		case window.MessageClose:
			// A native window is destroyed as soon as it accepts the close.
			d.HandleMessage(window.MessageDestroy, 0, 0)
			res.Exited = true
		case window.MessageDestroy:
			res.Exited = true
		}
	}

	res.State = d.State()
	return res, nil
}

// ErrMismatch is wrapped by Check when events differ from the expectation.
var ErrMismatch = errors.New("replay: events do not match expectation")

// Check compares the produced events with expect by their String form.
func (r *Result) Check(expect []string) error {
	got := make([]string, len(r.Events))
	for i, ev := range r.Events {
		got[i] = ev.String()
	}

	n := max(len(got), len(expect))
	var diffs []string
	for i := 0; i < n; i++ {
		var g, w string
		if i < len(got) {
			g = got[i]
		}
		if i < len(expect) {
			w = expect[i]
		}
		if g != w {
			diffs = append(diffs, fmt.Sprintf("  #%d: got %q, want %q", i, g, w))
		}
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%w:\n%s", ErrMismatch, strings.Join(diffs, "\n"))
	}
	return nil
}
