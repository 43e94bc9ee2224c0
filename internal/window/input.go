package window

import "fmt"

// KeyCode is a Windows virtual-key code. Shift, Control and Alt are
// delivered as their left/right variants on key down.
type KeyCode uint32

const (
	KeyUnknown KeyCode = 0

	// Mouse buttons as virtual keys
	KeyLButton  KeyCode = 0x01
	KeyRButton  KeyCode = 0x02
	KeyMButton  KeyCode = 0x04
	KeyXButton1 KeyCode = 0x05
	KeyXButton2 KeyCode = 0x06

	// Generic modifiers (never delivered on key down)
	KeyShift   KeyCode = 0x10
	KeyControl KeyCode = 0x11
	KeyMenu    KeyCode = 0x12 // Alt key

	// Sided modifiers
	KeyLeftShift    KeyCode = 0xA0
	KeyRightShift   KeyCode = 0xA1
	KeyLeftControl  KeyCode = 0xA2
	KeyRightControl KeyCode = 0xA3
	KeyLeftAlt      KeyCode = 0xA4
	KeyRightAlt     KeyCode = 0xA5
	KeyLeftSuper    KeyCode = 0x5B
	KeyRightSuper   KeyCode = 0x5C

	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyDelete    KeyCode = 0x2E

	Key0 KeyCode = 0x30
	KeyA KeyCode = 0x41
	KeyZ KeyCode = 0x5A

	KeyF1  KeyCode = 0x70
	KeyF12 KeyCode = 0x7B
)

// Scan codes of the two shift keys on a standard set-1 keyboard.
const (
	scanLeftShift  = 0x2A
	scanRightShift = 0x36
)

var keyNames = map[KeyCode]string{
	KeyLButton:      "LButton",
	KeyRButton:      "RButton",
	KeyMButton:      "MButton",
	KeyXButton1:     "XButton1",
	KeyXButton2:     "XButton2",
	KeyShift:        "Shift",
	KeyControl:      "Control",
	KeyMenu:         "Alt",
	KeyLeftShift:    "LeftShift",
	KeyRightShift:   "RightShift",
	KeyLeftControl:  "LeftControl",
	KeyRightControl: "RightControl",
	KeyLeftAlt:      "LeftAlt",
	KeyRightAlt:     "RightAlt",
	KeyLeftSuper:    "LeftSuper",
	KeyRightSuper:   "RightSuper",
	KeyBackspace:    "Backspace",
	KeyTab:          "Tab",
	KeyEnter:        "Enter",
	KeyEscape:       "Escape",
	KeySpace:        "Space",
	KeyLeft:         "Left",
	KeyUp:           "Up",
	KeyRight:        "Right",
	KeyDown:         "Down",
	KeyDelete:       "Delete",
}

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= Key0 && k <= Key0+9:
		return string(rune('0' + (k - Key0)))
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + (k - KeyA)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	return fmt.Sprintf("VK(%#02x)", uint32(k))
}

// MouseButton represents a mouse button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	ButtonX1 // Additional mouse button (often back button)
	ButtonX2 // Additional mouse button (often forward button)
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	case ButtonX1:
		return "X1"
	case ButtonX2:
		return "X2"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// Point is a client-area position in pixels.
type Point struct {
	X, Y int32
}

// Motion is a raw, pre-acceleration device delta.
type Motion struct {
	DX, DY int32
}

// Rect mirrors the Win32 RECT layout.
type Rect struct {
	Left, Top, Right, Bottom int32
}

func (r Rect) Width() int32  { return r.Right - r.Left }
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height uint32
}

// EventType describes the kind of canonical event.
type EventType uint8

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventLostFocus
	EventMouseDown
	EventMouseUp
	EventMouseWheel
	EventRawMotion
	EventPointerMove
)

func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "KeyDown"
	case EventKeyUp:
		return "KeyUp"
	case EventLostFocus:
		return "LostFocus"
	case EventMouseDown:
		return "MouseDown"
	case EventMouseUp:
		return "MouseUp"
	case EventMouseWheel:
		return "MouseWheel"
	case EventRawMotion:
		return "RawMotion"
	case EventPointerMove:
		return "PointerMove"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event is a canonical input event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	// Key is meaningful for KeyDown/KeyUp.
	Key KeyCode

	// Button is meaningful for MouseDown/MouseUp.
	Button MouseButton

	// Forward is meaningful for MouseWheel. True means the wheel rotated
	// away from the user.
	Forward bool

	// Window is meaningful for LostFocus. Zero when the event was
	// synthesized from an application activation.
	Window uint64

	Position Point
	Motion   Motion
}

func (e Event) String() string {
	switch e.Type {
	case EventKeyDown, EventKeyUp:
		return fmt.Sprintf("%s %s", e.Type, e.Key)
	case EventLostFocus:
		return fmt.Sprintf("%s window=%#x", e.Type, e.Window)
	case EventMouseDown, EventMouseUp:
		return fmt.Sprintf("%s %s", e.Type, e.Button)
	case EventMouseWheel:
		if e.Forward {
			return fmt.Sprintf("%s forward", e.Type)
		}
		return fmt.Sprintf("%s backward", e.Type)
	case EventRawMotion:
		return fmt.Sprintf("%s dx=%d dy=%d", e.Type, e.Motion.DX, e.Motion.DY)
	case EventPointerMove:
		return fmt.Sprintf("%s x=%d y=%d", e.Type, e.Position.X, e.Position.Y)
	default:
		return e.Type.String()
	}
}
