package replay

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/tinyrange/wininput/internal/window"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionScript(t *testing.T) {
	s, err := Load("testdata/session.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var streamed int
	res, err := Run(s, quietLogger(), func(window.Event) { streamed++ })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := res.Check(s.Expect); err != nil {
		t.Fatal(err)
	}
	if streamed != len(res.Events) {
		t.Fatalf("onEvent saw %d events, result has %d", streamed, len(res.Events))
	}

	if !res.Exited || res.Skipped != 1 {
		t.Fatalf("Exited = %v, Skipped = %d", res.Exited, res.Skipped)
	}
	if !res.State.Exiting || res.State.CursorConfined {
		t.Fatalf("unexpected final state %+v", res.State)
	}
	if res.State.WindowSize != (window.Size{Width: 1024, Height: 768}) {
		t.Fatalf("window size = %+v", res.State.WindowSize)
	}

	screen := window.Rect{Right: 2560, Bottom: 1440}
	bounds := window.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}
	h := res.Platform.History
	if len(h) != 2 || h[0] != bounds || h[1] != screen {
		t.Fatalf("clip history = %+v", h)
	}
	if res.Platform.Clip != screen {
		t.Fatalf("clip not restored: %+v", res.Platform.Clip)
	}
}

func TestCheckReportsMismatch(t *testing.T) {
	res := &Result{Events: []window.Event{
		{Type: window.EventKeyDown, Key: window.KeyLeftShift},
	}}
	if err := res.Check([]string{"KeyDown LeftShift"}); err != nil {
		t.Fatalf("unexpected mismatch: %v", err)
	}

	err := res.Check([]string{"KeyDown RightShift", "KeyUp Shift"})
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("err = %v, want ErrMismatch", err)
	}
	if !strings.Contains(err.Error(), "#1") {
		t.Fatalf("missing trailing expectation not reported: %v", err)
	}
}

func TestKeyNames(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - {message: wm_keydown, key: vk_lshift}
  - {message: WM_KEYDOWN, key: 7}
  - {message: WM_KEYDOWN, key: 0x41}
  - {message: WM_KEYUP, key: Escape}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []window.KeyCode{window.KeyLeftShift, window.KeyCode(7), window.KeyA, window.KeyEscape}
	for i, w := range want {
		if got := window.KeyCode(s.Steps[i].Key); got != w {
			t.Errorf("step %d key = %v, want %v", i, got, w)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown message": "steps: [{message: WM_PAINT}]",
		"missing message": "steps: [{key: A}]",
		"confine+message": "steps: [{message: WM_CLOSE, confine: true}]",
		"unknown key":     "steps: [{message: WM_KEYDOWN, key: NOPE}]",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: Parse accepted %q", name, doc)
		}
	}
}

func TestEncode(t *testing.T) {
	e, err := Step{Message: "WM_MOUSEWHEEL", Delta: -120}.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if int16(uint16(e.WParam>>16)) != -120 {
		t.Fatalf("wheel wParam = %#x", e.WParam)
	}

	chord := uint32(0x0003)
	e, err = Step{Message: "WM_LBUTTONDOWN", Buttons: &chord, X: -2, Y: 9}.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if e.WParam != 3 {
		t.Fatalf("button mask = %#x", e.WParam)
	}
	if p := window.PointFromLParam(e.LParam); p != (window.Point{X: -2, Y: 9}) {
		t.Fatalf("point = %+v", p)
	}

	e, err = Step{Message: "WM_KEYDOWN", Key: Key(window.KeyMenu), Scan: 0x38, Extended: true}.Encode()
	if err != nil {
		t.Fatal(err)
	}
	f := window.DecodeKeyFlags(e.LParam)
	if f.ScanCode != 0x38 || !f.Extended || f.RepeatCount != 1 {
		t.Fatalf("key flags = %+v", f)
	}

	on := true
	if _, err := (Step{Confine: &on}).Encode(); err == nil {
		t.Fatal("confine step encoded")
	}
}

func TestRunDropsChords(t *testing.T) {
	chord := uint32(0x0003)
	s := &Script{Steps: []Step{
		{Message: "WM_LBUTTONDOWN", Buttons: &chord},
		{Message: "WM_RBUTTONDOWN"},
	}}
	res, err := Run(s, quietLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := res.Check([]string{"MouseDown Right"}); err != nil {
		t.Fatal(err)
	}
}

func TestRunDefaultsClipToScreen(t *testing.T) {
	on, off := true, false
	s := &Script{
		Window: Size{Width: 320, Height: 200},
		Steps:  []Step{{Confine: &on}, {Confine: &off}},
	}
	res, err := Run(s, quietLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	h := res.Platform.History
	if len(h) != 2 || h[0] != (window.Rect{Right: 320, Bottom: 200}) || h[1] != virtualScreen {
		t.Fatalf("clip history = %+v", h)
	}
	if res.State.CursorConfined {
		t.Fatal("cursor still confined")
	}
}

func TestRunStopsAfterClose(t *testing.T) {
	for _, msg := range []string{"WM_CLOSE", "WM_DESTROY"} {
		on := true
		s := &Script{
			Window: Size{Width: 640, Height: 480},
			Steps: []Step{
				{Confine: &on},
				{Message: msg},
				{Message: "WM_KEYDOWN", Key: Key(window.KeyA)},
				{Confine: &on},
			},
		}
		res, err := Run(s, quietLogger(), nil)
		if err != nil {
			t.Fatalf("%s: %v", msg, err)
		}
		if !res.Exited || res.Skipped != 2 {
			t.Fatalf("%s: Exited = %v, Skipped = %d", msg, res.Exited, res.Skipped)
		}
		if len(res.Events) != 0 {
			t.Fatalf("%s: events after exit: %v", msg, res.Events)
		}
		if !res.State.Exiting || res.State.CursorConfined {
			t.Fatalf("%s: final state %+v", msg, res.State)
		}
	}
}
