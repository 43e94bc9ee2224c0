// Package replay drives a window.Dispatcher from a YAML script of raw
// window messages, so input sequences can be reproduced without a native
// window.
package replay

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinyrange/wininput/internal/window"
)

const maxScriptSize = 4 * 1024 * 1024

// Script is a recorded input session.
type Script struct {
	Name string `yaml:"name"`

	// Window is the initial client size.
	Window Size `yaml:"window"`

	// Clip is the cursor clip in effect before the session starts. An empty
	// rectangle means the whole virtual screen.
	Clip Rect `yaml:"clip"`

	// Bounds is the window rectangle in screen coordinates.
	Bounds Rect `yaml:"bounds"`

	Steps []Step `yaml:"steps"`

	// Expect optionally lists the String() form of every event the script
	// must produce, in order.
	Expect []string `yaml:"expect,omitempty"`
}

type Size struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

type Rect struct {
	Left   int32 `yaml:"left"`
	Top    int32 `yaml:"top"`
	Right  int32 `yaml:"right"`
	Bottom int32 `yaml:"bottom"`
}

func (r Rect) window() window.Rect {
	return window.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func (r Rect) empty() bool {
	return r == Rect{}
}

// Step is either a window message or a cursor confinement request.
type Step struct {
	Message string `yaml:"message,omitempty"`

	// Keyboard
	Key      Key    `yaml:"key,omitempty"`
	Scan     uint32 `yaml:"scan,omitempty"`
	Extended bool   `yaml:"extended,omitempty"`

	// Mouse buttons. Buttons overrides the MK_* mask derived from Message.
	Buttons *uint32 `yaml:"buttons,omitempty"`
	XButton uint16  `yaml:"xbutton,omitempty"`

	Delta  int16  `yaml:"delta,omitempty"`
	X      int32  `yaml:"x,omitempty"`
	Y      int32  `yaml:"y,omitempty"`
	DX     int32  `yaml:"dx,omitempty"`
	DY     int32  `yaml:"dy,omitempty"`
	Width  uint16 `yaml:"width,omitempty"`
	Height uint16 `yaml:"height,omitempty"`

	// Focus
	Window uint64 `yaml:"window,omitempty"`
	Active bool   `yaml:"active,omitempty"`

	// Confine requests cursor confinement instead of sending a message.
	Confine *bool `yaml:"confine,omitempty"`

	// Raw overrides the WM_INPUT payload with literal bytes.
	Raw []byte `yaml:"raw,omitempty"`
}

// Key is a virtual-key code that can be written as a number or as a name
// such as VK_SHIFT, SHIFT or A.
type Key uint32

var keyNames = map[string]window.KeyCode{
	"SHIFT":    window.KeyShift,
	"CONTROL":  window.KeyControl,
	"CTRL":     window.KeyControl,
	"MENU":     window.KeyMenu,
	"ALT":      window.KeyMenu,
	"LSHIFT":   window.KeyLeftShift,
	"RSHIFT":   window.KeyRightShift,
	"LCONTROL": window.KeyLeftControl,
	"RCONTROL": window.KeyRightControl,
	"LMENU":    window.KeyLeftAlt,
	"RMENU":    window.KeyRightAlt,
	"LWIN":     window.KeyLeftSuper,
	"RWIN":     window.KeyRightSuper,
	"BACK":     window.KeyBackspace,
	"TAB":      window.KeyTab,
	"RETURN":   window.KeyEnter,
	"ENTER":    window.KeyEnter,
	"ESCAPE":   window.KeyEscape,
	"SPACE":    window.KeySpace,
	"LEFT":     window.KeyLeft,
	"UP":       window.KeyUp,
	"RIGHT":    window.KeyRight,
	"DOWN":     window.KeyDown,
	"DELETE":   window.KeyDelete,
}

func (k *Key) UnmarshalYAML(value *yaml.Node) error {
	var n uint32
	if err := value.Decode(&n); err == nil {
		*k = Key(n)
		return nil
	}

	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("line %d: key must be a number or a name", value.Line)
	}
	code, ok := lookupKey(name)
	if !ok {
		return fmt.Errorf("line %d: unknown key %q", value.Line, name)
	}
	*k = Key(code)
	return nil
}

func lookupKey(name string) (window.KeyCode, bool) {
	name = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "VK_")
	if code, ok := keyNames[name]; ok {
		return code, true
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return window.KeyA + window.KeyCode(c-'A'), true
		case c >= '0' && c <= '9':
			return window.Key0 + window.KeyCode(c-'0'), true
		}
	}
	return 0, false
}

// messages maps the names accepted in Step.Message to message numbers.
var messages = map[string]uint32{
	"WM_CLOSE":       window.MessageClose,
	"WM_DESTROY":     window.MessageDestroy,
	"WM_SIZE":        window.MessageSize,
	"WM_KEYDOWN":     window.MessageKeyDown,
	"WM_KEYUP":       window.MessageKeyUp,
	"WM_KILLFOCUS":   window.MessageKillFocus,
	"WM_ACTIVATEAPP": window.MessageActivateApp,
	"WM_LBUTTONDOWN": window.MessageLButtonDown,
	"WM_LBUTTONUP":   window.MessageLButtonUp,
	"WM_RBUTTONDOWN": window.MessageRButtonDown,
	"WM_RBUTTONUP":   window.MessageRButtonUp,
	"WM_MBUTTONDOWN": window.MessageMButtonDown,
	"WM_MBUTTONUP":   window.MessageMButtonUp,
	"WM_XBUTTONDOWN": window.MessageXButtonDown,
	"WM_XBUTTONUP":   window.MessageXButtonUp,
	"WM_MOUSEWHEEL":  window.MessageMouseWheel,
	"WM_MOUSEMOVE":   window.MessageMouseMove,
	"WM_INPUT":       window.MessageInput,
}

// MessageNames returns the accepted message names in sorted order.
func MessageNames() []string {
	names := make([]string, 0, len(messages))
	for name := range messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Parse(data []byte) (*Script, error) {
	if len(data) > maxScriptSize {
		return nil, fmt.Errorf("script too large: %d bytes", len(data))
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &s, nil
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

func (s Step) validate() error {
	if s.Confine != nil {
		if s.Message != "" {
			return fmt.Errorf("confine and message are mutually exclusive")
		}
		return nil
	}
	if s.Message == "" {
		return fmt.Errorf("missing message")
	}
	if _, ok := messages[strings.ToUpper(s.Message)]; !ok {
		return fmt.Errorf("unknown message %q (known: %s)", s.Message, strings.Join(MessageNames(), ", "))
	}
	return nil
}

// Encoded is a step packed the way the platform delivers it.
type Encoded struct {
	Message uint32
	WParam  uintptr
	LParam  uintptr

	// Raw is the WM_INPUT payload.
	Raw []byte
}

func makeLong(lo, hi uint16) uintptr {
	return uintptr(lo) | uintptr(hi)<<16
}

// Encode packs a message step into its wParam/lParam form.
func (s Step) Encode() (Encoded, error) {
	if err := s.validate(); err != nil {
		return Encoded{}, err
	}
	if s.Confine != nil {
		return Encoded{}, fmt.Errorf("confine step has no message encoding")
	}

	msg := messages[strings.ToUpper(s.Message)]
	e := Encoded{Message: msg}

	switch msg {
	case window.MessageKeyDown, window.MessageKeyUp:
		e.WParam = uintptr(s.Key)
		e.LParam = window.EncodeKeyFlags(window.KeyFlags{
			RepeatCount: 1,
			ScanCode:    s.Scan,
			Extended:    s.Extended,
		})
	case window.MessageSize:
		e.LParam = makeLong(s.Width, s.Height)
	case window.MessageKillFocus:
		e.WParam = uintptr(s.Window)
	case window.MessageActivateApp:
		if s.Active {
			e.WParam = 1
		}
	case window.MessageLButtonDown, window.MessageRButtonDown, window.MessageMButtonDown:
		e.WParam = uintptr(defaultButtonMask(msg))
		if s.Buttons != nil {
			e.WParam = uintptr(*s.Buttons)
		}
		e.LParam = makeLong(uint16(s.X), uint16(s.Y))
	case window.MessageLButtonUp, window.MessageRButtonUp, window.MessageMButtonUp:
		e.LParam = makeLong(uint16(s.X), uint16(s.Y))
	case window.MessageXButtonDown, window.MessageXButtonUp:
		e.WParam = makeLong(0, s.XButton)
		e.LParam = makeLong(uint16(s.X), uint16(s.Y))
	case window.MessageMouseWheel:
		e.WParam = makeLong(0, uint16(s.Delta))
	case window.MessageMouseMove:
		e.LParam = makeLong(uint16(s.X), uint16(s.Y))
	case window.MessageInput:
		e.Raw = s.Raw
		if e.Raw == nil {
			e.Raw = window.EncodeRawMouse(window.Motion{DX: s.DX, DY: s.DY})
		}
	}
	return e, nil
}

func defaultButtonMask(msg uint32) uint32 {
	switch msg {
	case window.MessageLButtonDown:
		return 0x0001
	case window.MessageRButtonDown:
		return 0x0002
	case window.MessageMButtonDown:
		return 0x0010
	}
	return 0
}
